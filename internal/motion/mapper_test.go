package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMapper_DegenerateGrid(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{"numX one", Grid{NumX: 1, NumY: 3}},
		{"numY one", Grid{NumX: 3, NumY: 1}},
		{"zero", Grid{NumX: 0, NumY: 0}},
		{"negative", Grid{NumX: -2, NumY: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMapper(tt.grid, DefaultLimits())
			require.Error(t, err)
			assert.Nil(t, m)

			var degenerate *DegenerateGridError
			require.ErrorAs(t, err, &degenerate)
			assert.Equal(t, tt.grid.NumX, degenerate.NumX)
			assert.Equal(t, tt.grid.NumY, degenerate.NumY)
		})
	}
}

func TestMap_TwoByTwoCorner(t *testing.T) {
	m, err := NewMapper(Grid{NumX: 2, NumY: 2}, DefaultLimits())
	require.NoError(t, err)

	p, err := m.Map(3)
	require.NoError(t, err)

	assert.Equal(t, 1, p.XLoc)
	assert.Equal(t, 1, p.YLoc)
	assert.Equal(t, 1500, p.TravelJerk)
	assert.Equal(t, 4000, p.PrintAccel)
}

func TestMap_Grid(t *testing.T) {
	m, err := NewMapper(Grid{NumX: 3, NumY: 4}, DefaultLimits())
	require.NoError(t, err)

	// jerkStep = 1200/2 = 600, accelStep = 3400/3 = 1133.33...
	tests := []struct {
		id         int
		xLoc, yLoc int
		jerk       int
		accel      int
	}{
		{0, 0, 0, 300, 600},
		{1, 0, 1, 300, 1733},
		{2, 0, 2, 300, 2866},
		{3, 1, 0, 900, 600},
		{5, 1, 2, 900, 2866},
		{8, 2, 2, 1500, 2866},
	}

	for _, tt := range tests {
		p, err := m.Map(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.xLoc, p.XLoc, "xLoc for id %d", tt.id)
		assert.Equal(t, tt.yLoc, p.YLoc, "yLoc for id %d", tt.id)
		assert.Equal(t, tt.jerk, p.TravelJerk, "jerk for id %d", tt.id)
		assert.Equal(t, tt.accel, p.PrintAccel, "accel for id %d", tt.id)
	}
}

func TestMap_OutOfGridExtrapolates(t *testing.T) {
	m, err := NewMapper(Grid{NumX: 2, NumY: 2}, DefaultLimits())
	require.NoError(t, err)

	p, err := m.Map(4)
	require.NoError(t, err)

	// xLoc 2 is past the last column: 2*1200 + 300.
	assert.Equal(t, 2700, p.TravelJerk)
	assert.Equal(t, 600, p.PrintAccel)
}

func TestMap_FixedValues(t *testing.T) {
	m, err := NewMapper(Grid{NumX: 2, NumY: 2}, DefaultLimits())
	require.NoError(t, err)

	p, err := m.Map(0)
	require.NoError(t, err)

	assert.Equal(t, 5000, p.TravelAccel)
	assert.Equal(t, 5000, p.RetractAccel)
	assert.Equal(t, 60, p.ZJerk)
	assert.Equal(t, 300, p.EJerk)
}

func TestMap_CustomLimits(t *testing.T) {
	limits := Limits{
		JerkMin: 100, JerkMax: 200,
		AccelMin: 1000, AccelMax: 1010,
		TravelAccel: 3000, RetractAccel: 2500,
		ZJerk: 30, EJerk: 250,
	}
	m, err := NewMapper(Grid{NumX: 4, NumY: 4}, limits)
	require.NoError(t, err)

	p, err := m.Map(7)
	require.NoError(t, err)

	// xLoc 1, yLoc 3: 100/3 truncated, 10/3*3 truncated.
	assert.Equal(t, 133, p.TravelJerk)
	assert.Equal(t, 1010, p.PrintAccel)
	assert.Equal(t, "M204 R2500 T3000 P1010", p.AccelCommand())
	assert.Equal(t, "M566 X133 Y133 Z30 E250", p.JerkCommand())
}

func TestMap_NegativeID(t *testing.T) {
	m, err := NewMapper(Grid{NumX: 2, NumY: 2}, DefaultLimits())
	require.NoError(t, err)

	_, err = m.Map(-1)
	assert.ErrorContains(t, err, "negative")
}

func TestMap_OutOfRange(t *testing.T) {
	m, err := NewMapper(Grid{NumX: 2, NumY: 2}, DefaultLimits())
	require.NoError(t, err)

	_, err = m.Map(1 << 62)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorContains(t, err, "travel jerk")

	p, err := m.Map(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, (1<<39)*1200+300, p.TravelJerk)
}

func TestParams_Commands(t *testing.T) {
	p := Params{TravelJerk: 1500, PrintAccel: 4000, TravelAccel: 5000, RetractAccel: 5000, ZJerk: 60, EJerk: 300}

	assert.Equal(t, "M204 R5000 T5000 P4000", p.AccelCommand())
	assert.Equal(t, "M566 X1500 Y1500 Z60 E300", p.JerkCommand())
}
