package motion

import (
	"errors"
	"fmt"
	"math"
)

// Grid is the virtual layout of objects on the bed.
type Grid struct {
	NumX int `json:"num_x"`
	NumY int `json:"num_y"`
}

// DegenerateGridError reports a grid too small to interpolate across.
type DegenerateGridError struct {
	NumX int
	NumY int
}

func (e *DegenerateGridError) Error() string {
	return fmt.Sprintf("degenerate grid %dx%d: both dimensions must be at least 2", e.NumX, e.NumY)
}

// Params are the computed settings for one object.
type Params struct {
	ObjectID     int `json:"object_id"`
	XLoc         int `json:"x_loc"`
	YLoc         int `json:"y_loc"`
	TravelJerk   int `json:"travel_jerk"`
	PrintAccel   int `json:"print_accel"`
	TravelAccel  int `json:"travel_accel"`
	RetractAccel int `json:"retract_accel"`
	ZJerk        int `json:"z_jerk"`
	EJerk        int `json:"e_jerk"`
}

// AccelCommand renders the acceleration command for p.
func (p Params) AccelCommand() string {
	return fmt.Sprintf("M204 R%d T%d P%d", p.RetractAccel, p.TravelAccel, p.PrintAccel)
}

// JerkCommand renders the jerk command for p.
func (p Params) JerkCommand() string {
	return fmt.Sprintf("M566 X%d Y%d Z%d E%d", p.TravelJerk, p.TravelJerk, p.ZJerk, p.EJerk)
}

// Mapper converts object IDs to Params for a fixed grid and limits.
type Mapper struct {
	grid      Grid
	limits    Limits
	jerkStep  float64
	accelStep float64
}

// NewMapper validates grid and precomputes the interpolation steps.
// Returns *DegenerateGridError if either dimension is below 2.
func NewMapper(grid Grid, limits Limits) (*Mapper, error) {
	if grid.NumX < 2 || grid.NumY < 2 {
		return nil, &DegenerateGridError{NumX: grid.NumX, NumY: grid.NumY}
	}

	return &Mapper{
		grid:      grid,
		limits:    limits,
		jerkStep:  float64(limits.JerkMax-limits.JerkMin) / float64(grid.NumX-1),
		accelStep: float64(limits.AccelMax-limits.AccelMin) / float64(grid.NumY-1),
	}, nil
}

// Map computes the settings for objectID.
//
// xLoc is objectID / NumX and yLoc is objectID % NumX. Both interpolated
// values are truncated toward zero before the minimum is added. IDs far
// enough outside the grid that a value leaves the int range are rejected.
func (m *Mapper) Map(objectID int) (Params, error) {
	if objectID < 0 {
		return Params{}, fmt.Errorf("object id %d: must not be negative", objectID)
	}

	xLoc := objectID / m.grid.NumX
	yLoc := objectID % m.grid.NumX

	travelJerk, err := interpolate(xLoc, m.jerkStep, m.limits.JerkMin)
	if err != nil {
		return Params{}, fmt.Errorf("object id %d: travel jerk %w", objectID, err)
	}
	printAccel, err := interpolate(yLoc, m.accelStep, m.limits.AccelMin)
	if err != nil {
		return Params{}, fmt.Errorf("object id %d: print accel %w", objectID, err)
	}

	return Params{
		ObjectID:     objectID,
		XLoc:         xLoc,
		YLoc:         yLoc,
		TravelJerk:   travelJerk,
		PrintAccel:   printAccel,
		TravelAccel:  m.limits.TravelAccel,
		RetractAccel: m.limits.RetractAccel,
		ZJerk:        m.limits.ZJerk,
		EJerk:        m.limits.EJerk,
	}, nil
}

// ErrOutOfRange is returned when an interpolated value does not fit in an int.
var ErrOutOfRange = errors.New("out of range")

func interpolate(loc int, step float64, base int) (int, error) {
	v := math.Trunc(float64(loc)*step) + float64(base)
	if math.IsNaN(v) || v >= float64(math.MaxInt) || v < float64(math.MinInt) {
		return 0, ErrOutOfRange
	}
	return int(v), nil
}
