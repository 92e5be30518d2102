package history

import (
	"context"
	"fmt"
	"time"
)

// RecordRun inserts run and its object list in one transaction.
// ID and CreatedAt are assigned by the store; the stored Run is returned
// with Seq filled in.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	run.ID = s.idGen.Generate()
	run.CreatedAt = s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, mode, input_path, output_path, input_hash, output_hash, grid_x, grid_y,
		 marker_count, macro_count, macro_failures, skipped_markers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Mode,
		run.InputPath,
		run.OutputPath,
		run.InputHash,
		run.OutputHash,
		run.GridX,
		run.GridY,
		run.MarkerCount,
		run.MacroCount,
		run.MacroFailures,
		run.SkippedMarkers,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	run.Seq, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	for i, objectID := range run.Objects {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_objects (run_id, ord, object_id)
			VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING
		`, run.ID, i, objectID); err != nil {
			return Run{}, fmt.Errorf("record run object %q: %w", objectID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	if run.Objects == nil {
		run.Objects = []string{}
	}
	return run, nil
}
