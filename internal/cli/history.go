package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/objmacro/internal/config"
	"github.com/roach88/objmacro/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	RunID string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded in the history database, newest first.

The database is taken from --history, or history_db in the config file.
Use --run to show a single run with its object IDs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run by ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	dbPath, err := historyPath(opts.RootOptions)
	if err != nil {
		return outputProcessError(formatter, classifyError(err), err.Error(), nil)
	}
	if dbPath == "" {
		return outputProcessError(formatter, ErrCodeHistoryAbsent,
			"no history database: pass --history or set history_db in the config", nil)
	}

	formatter.VerboseLog("Opening history %s", dbPath)
	store, err := history.Open(dbPath)
	if err != nil {
		return outputProcessError(formatter, ErrCodeHistory, err.Error(), nil)
	}
	defer store.Close()

	ctx := cmd.Context()
	if opts.RunID != "" {
		run, err := store.GetRun(ctx, opts.RunID)
		if err != nil {
			return outputProcessError(formatter, ErrCodeHistory, err.Error(), nil)
		}
		return outputRun(formatter, run)
	}

	runs, err := store.ListRuns(ctx, opts.Limit)
	if err != nil {
		return outputProcessError(formatter, ErrCodeHistory, err.Error(), nil)
	}
	return outputRuns(formatter, runs)
}

// historyPath resolves the database from the flag, falling back to the
// config file.
func historyPath(opts *RootOptions) (string, error) {
	if opts.HistoryDB != "" {
		return opts.HistoryDB, nil
	}
	path := config.ResolvePath(opts.ConfigPath, opts.getenv)
	if path == "" {
		return "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	return cfg.HistoryDB, nil
}

func outputRuns(formatter *OutputFormatter, runs []history.Run) error {
	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN\tMODE\tINPUT\tOBJECTS\tWARNINGS\tCREATED")
	for _, run := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.Seq, run.ID, run.Mode, run.InputPath, len(run.Objects),
			run.MacroFailures+run.SkippedMarkers, run.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func outputRun(formatter *OutputFormatter, run history.Run) error {
	if formatter.Format == "json" {
		return formatter.Success(run)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run %s (#%d)\n", run.ID, run.Seq)
	fmt.Fprintf(w, "  mode:    %s\n", run.Mode)
	if run.GridX > 0 {
		fmt.Fprintf(w, "  grid:    %dx%d\n", run.GridX, run.GridY)
	}
	fmt.Fprintf(w, "  input:   %s (%s)\n", run.InputPath, run.InputHash)
	fmt.Fprintf(w, "  output:  %s (%s)\n", run.OutputPath, run.OutputHash)
	fmt.Fprintf(w, "  markers: %d, skipped %d\n", run.MarkerCount, run.SkippedMarkers)
	fmt.Fprintf(w, "  macros:  %d written, %d failed\n", run.MacroCount, run.MacroFailures)
	fmt.Fprintf(w, "  objects: %v\n", run.Objects)
	fmt.Fprintf(w, "  created: %s\n", run.CreatedAt.Format(time.RFC3339))
	return nil
}
