package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/objmacro/internal/history"
)

func TestHistory_RecordsRuns(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	input := writeInput(t, dir, gridMarkers)

	out, err := runCLI(t, "--history", db, "--macro-root", dir, input, "2", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "run:")

	_, err = runCLI(t, "--history", db, "--macro-root", dir, input)
	require.NoError(t, err)

	store, err := history.Open(db)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	basic, grid := runs[0], runs[1]
	assert.Equal(t, ModeBasic, basic.Mode)
	assert.Equal(t, ModeParametrized, grid.Mode)
	assert.Equal(t, 2, grid.GridX)
	assert.Equal(t, 2, grid.GridY)
	assert.Equal(t, 4, grid.MarkerCount)
	assert.Equal(t, 4, grid.MacroCount)
	assert.Equal(t, []string{"0", "1", "2", "3"}, grid.Objects)
	assert.Equal(t, input, grid.InputPath)
	assert.Equal(t, input+".updated", grid.OutputPath)

	// Same input, same fingerprint; the output gains the macro calls.
	assert.Equal(t, grid.InputHash, basic.InputHash)
	assert.NotEqual(t, grid.InputHash, grid.OutputHash)

	inputHash, err := history.Fingerprint([]byte(gridMarkers))
	require.NoError(t, err)
	assert.Equal(t, inputHash, grid.InputHash)
}

func TestHistory_UnwritableDatabaseIsWarning(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, repeatedMarkers)
	db := filepath.Join(dir, "missing", "runs.db")

	out, err := runCLI(t, "--history", db, "--macro-root", dir, input)
	require.NoError(t, err)
	assert.Contains(t, out, WarnHistory)
	assert.FileExists(t, input+".updated")
}

func TestHistoryCommand_List(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	input := writeInput(t, dir, repeatedMarkers)

	_, err := runCLI(t, "--history", db, "--macro-root", dir, input)
	require.NoError(t, err)

	out, err := runCLI(t, "--history", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "SEQ")
	assert.Contains(t, out, "basic")
	assert.Contains(t, out, input)
}

func TestHistoryCommand_JSONAndSingleRun(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	input := writeInput(t, dir, gridMarkers)

	_, err := runCLI(t, "--history", db, "--macro-root", dir, input, "2", "2")
	require.NoError(t, err)

	out, err := runCLI(t, "--format", "json", "--history", db, "history")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []history.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	runID := resp.Data[0].ID

	out, err = runCLI(t, "--history", db, "history", "--run", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+runID)
	assert.Contains(t, out, "grid:    2x2")
	assert.Contains(t, out, "objects: [0 1 2 3]")
}

func TestHistoryCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := runCLI(t, "--history", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}

func TestHistoryCommand_UnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := runCLI(t, "--history", db, "history", "--run", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeHistory)
	assert.Contains(t, err.Error(), "run not found")
}

func TestHistoryCommand_NoDatabase(t *testing.T) {
	_, err := runCLI(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeHistoryAbsent)
}

func TestHistoryCommand_DatabaseFromConfig(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	cfgPath := filepath.Join(dir, "objmacro.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history_db: "+db+"\n"), 0644))
	input := writeInput(t, dir, repeatedMarkers)

	_, err := runCLI(t, "--config", cfgPath, "--macro-root", dir, input)
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, input)
}
