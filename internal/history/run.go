package history

import (
	"time"

	"github.com/google/uuid"
)

// Run is one recorded objmacro invocation.
type Run struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"seq"`
	Mode           string    `json:"mode"`
	InputPath      string    `json:"input_path"`
	OutputPath     string    `json:"output_path"`
	InputHash      string    `json:"input_hash"`
	OutputHash     string    `json:"output_hash"`
	GridX          int       `json:"grid_x,omitempty"`
	GridY          int       `json:"grid_y,omitempty"`
	MarkerCount    int       `json:"marker_count"`
	MacroCount     int       `json:"macro_count"`
	MacroFailures  int       `json:"macro_failures"`
	SkippedMarkers int       `json:"skipped_markers"`
	Objects        []string  `json:"objects"`
	CreatedAt      time.Time `json:"created_at"`
}

// IDGenerator produces run IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined run IDs for testing.
// Once the list is exhausted it keeps returning the last ID.
type FixedGenerator struct {
	IDs  []string
	next int
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	if len(g.IDs) == 0 {
		return ""
	}
	if g.next >= len(g.IDs) {
		return g.IDs[len(g.IDs)-1]
	}
	id := g.IDs[g.next]
	g.next++
	return id
}
