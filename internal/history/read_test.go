package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRuns_NewestFirst(t *testing.T) {
	s, _ := createTestStore(t, "r1", "r2", "r3")
	ctx := context.Background()

	for _, input := range []string{"a.gcode", "b.gcode", "c.gcode"} {
		_, err := s.RecordRun(ctx, createTestRun(input, "1"))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "r3", runs[0].ID)
	assert.Equal(t, "c.gcode", runs[0].InputPath)
	assert.Equal(t, testStart.Add(2*time.Minute), runs[0].CreatedAt)
	assert.Equal(t, "r1", runs[2].ID)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "r2", limited[1].ID)
}

func TestListRuns_Empty(t *testing.T) {
	s, _ := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestGetRun_RoundTrip(t *testing.T) {
	s, _ := createTestStore(t, "grid-run")
	ctx := context.Background()

	in := createTestRun("plate.gcode", "0", "2", "10")
	in.Mode = "parametrized"
	in.GridX, in.GridY = 3, 4
	in.MacroFailures = 1
	in.SkippedMarkers = 2

	stored, err := s.RecordRun(ctx, in)
	require.NoError(t, err)

	got, err := s.GetRun(ctx, "grid-run")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	// Emission order is kept, not lexical order.
	assert.Equal(t, []string{"0", "2", "10"}, got.Objects)
}

func TestGetRun_NotFound(t *testing.T) {
	s, _ := createTestStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
