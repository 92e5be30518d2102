package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/objmacro/internal/testutil"
)

var testStart = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// createTestStore opens a store in a temp dir with a deterministic clock and
// run IDs.
func createTestStore(t *testing.T, ids ...string) (*Store, *testutil.StepClock) {
	t.Helper()
	clock := testutil.NewStepClock(testStart, time.Minute)
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path, WithClock(clock.Now), WithIDGenerator(&FixedGenerator{IDs: ids}))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clock
}

func createTestRun(input string, objects ...string) Run {
	return Run{
		Mode:        "basic",
		InputPath:   input,
		OutputPath:  input + ".updated",
		InputHash:   "00000000000000aa",
		OutputHash:  "00000000000000bb",
		MarkerCount: len(objects),
		MacroCount:  len(objects),
		Objects:     objects,
	}
}
