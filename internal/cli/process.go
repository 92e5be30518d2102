package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/objmacro/internal/config"
	"github.com/roach88/objmacro/internal/gcode"
	"github.com/roach88/objmacro/internal/history"
	"github.com/roach88/objmacro/internal/macro"
	"github.com/roach88/objmacro/internal/motion"
)

const usage = "expected usage: objmacro <gcode-file> [<numX> <numY>]"

// ProcessOptions holds flags for rewriting a G-code file.
type ProcessOptions struct {
	*RootOptions
	Output      string
	MacroRoot   string
	SkipInvalid bool
}

// Warning is a non-fatal problem surfaced in the summary.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProcessSummary is the result of one rewrite.
type ProcessSummary struct {
	Mode          string       `json:"mode"`
	Input         string       `json:"input"`
	Output        string       `json:"output"`
	Grid          *motion.Grid `json:"grid,omitempty"`
	Markers       int          `json:"markers"`
	Objects       []string     `json:"objects"`
	MacroDir      string       `json:"macro_dir"`
	MacrosWritten int          `json:"macros_written"`
	Warnings      []Warning    `json:"warnings"`
	RunID         string       `json:"run_id,omitempty"`
}

// Mode names used in summaries and the run history.
const (
	ModeBasic        = "basic"
	ModeParametrized = "parametrized"
)

// job is the validated plan for one run, built before any file is touched.
type job struct {
	input    string
	output   string
	mode     gcode.IDMode
	grid     *motion.Grid
	renderer macro.Renderer
	cfg      config.Config
}

func runProcess(opts *ProcessOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if len(args) != 1 && len(args) != 3 {
		return outputProcessError(formatter, ErrCodeMissingArgs, usage, nil)
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return outputProcessError(formatter, classifyError(err), err.Error(), nil)
	}

	j, code, err := planJob(opts, cfg, args)
	if err != nil {
		return outputProcessError(formatter, code, err.Error(), nil)
	}

	formatter.VerboseLog("Parsing %s", j.input)
	summary, err := execute(cmd.Context(), j, formatter)
	if err != nil {
		return outputProcessError(formatter, classifyError(err), err.Error(), nil)
	}

	return outputProcessSuccess(formatter, summary)
}

// resolveConfig layers defaults, the config file and CLI flags, then
// validates the result.
func resolveConfig(opts *ProcessOptions) (config.Config, error) {
	cfg := config.Defaults()
	if path := config.ResolvePath(opts.ConfigPath, opts.getenv); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if opts.MacroRoot != "" {
		cfg.MacroRoot = opts.MacroRoot
	}
	if opts.HistoryDB != "" {
		cfg.HistoryDB = opts.HistoryDB
	}
	if opts.SkipInvalid {
		cfg.SkipInvalid = true
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// planJob checks the positional arguments and grid. A degenerate grid is
// rejected here, before the input is read or anything is written.
func planJob(opts *ProcessOptions, cfg config.Config, args []string) (*job, string, error) {
	j := &job{
		input:    args[0],
		output:   opts.Output,
		mode:     gcode.IDModeOpaque,
		renderer: macro.StubRenderer{},
		cfg:      cfg,
	}
	if j.output == "" {
		j.output = gcode.OutputPath(j.input)
	}
	if samePath(j.input, j.output) {
		return nil, ErrCodeWriteFailed, fmt.Errorf("output %s would overwrite the input", j.output)
	}
	if len(args) == 1 {
		return j, "", nil
	}

	numX, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, ErrCodeInvalidGrid, fmt.Errorf("numX %q is not an integer", args[1])
	}
	numY, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, ErrCodeInvalidGrid, fmt.Errorf("numY %q is not an integer", args[2])
	}

	grid := motion.Grid{NumX: numX, NumY: numY}
	mapper, err := motion.NewMapper(grid, cfg.Limits)
	if err != nil {
		return nil, ErrCodeDegenerate, err
	}

	j.mode = gcode.IDModeInteger
	j.grid = &grid
	j.renderer = macro.MotionRenderer{Mapper: mapper}
	return j, "", nil
}

// execute runs the rewrite. Reading, scanning and writing the output are
// fatal on failure; macro files and the history record only add warnings.
func execute(ctx context.Context, j *job, formatter *OutputFormatter) (*ProcessSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	lines, err := gcode.ReadLines(ctx, j.input)
	if err != nil {
		return nil, err
	}

	res, err := gcode.Rewrite(lines, gcode.ScanOptions{Mode: j.mode, SkipInvalid: j.cfg.SkipInvalid})
	if err != nil {
		return nil, err
	}
	formatter.VerboseLog("Found %d marker(s), %d object(s)", len(res.Markers), res.Objects.Len())

	if err := gcode.WriteLines(ctx, j.output, res.Lines); err != nil {
		return nil, err
	}
	formatter.VerboseLog("Wrote %s", j.output)

	ids := res.Objects.Sorted(j.mode)
	report, err := macro.NewEmitter(j.cfg.MacroRoot).Emit(ctx, ids, j.renderer)
	if err != nil {
		return nil, err
	}
	for _, path := range report.Written {
		formatter.VerboseLog("Wrote macro %s", path)
	}

	summary := &ProcessSummary{
		Mode:          modeName(j.mode),
		Input:         j.input,
		Output:        j.output,
		Grid:          j.grid,
		Markers:       len(res.Markers),
		Objects:       ids,
		MacroDir:      report.Dir,
		MacrosWritten: len(report.Written),
		Warnings:      []Warning{},
	}
	for _, skipped := range res.Skipped {
		summary.Warnings = append(summary.Warnings, Warning{Code: WarnMarkerSkipped, Message: skipped.Error()})
	}
	for _, id := range ids {
		if !gcode.IsNormalized(id) {
			summary.Warnings = append(summary.Warnings, Warning{
				Code:    WarnNotNormalized,
				Message: fmt.Sprintf("object id %q is not NFC-normalized; firmware may not find its macro", id),
			})
		}
	}
	for _, failure := range report.Failures {
		summary.Warnings = append(summary.Warnings, Warning{Code: WarnMacroFailed, Message: failure.Error()})
	}

	if j.cfg.HistoryDB != "" {
		runID, err := recordRun(ctx, j, lines, res, report)
		if err != nil {
			summary.Warnings = append(summary.Warnings, Warning{Code: WarnHistory, Message: err.Error()})
		} else {
			summary.RunID = runID
			formatter.VerboseLog("Recorded run %s in %s", runID, j.cfg.HistoryDB)
		}
	}

	return summary, nil
}

func recordRun(ctx context.Context, j *job, input []string, res *gcode.Result, report *macro.Report) (string, error) {
	inputHash, err := history.Fingerprint([]byte(strings.Join(input, "")))
	if err != nil {
		return "", fmt.Errorf("fingerprint input: %w", err)
	}
	outputHash, err := history.Fingerprint([]byte(strings.Join(res.Lines, "")))
	if err != nil {
		return "", fmt.Errorf("fingerprint output: %w", err)
	}

	store, err := history.Open(j.cfg.HistoryDB)
	if err != nil {
		return "", fmt.Errorf("history %s: %w", j.cfg.HistoryDB, err)
	}
	defer store.Close()

	run := history.Run{
		Mode:           modeName(j.mode),
		InputPath:      j.input,
		OutputPath:     j.output,
		InputHash:      inputHash,
		OutputHash:     outputHash,
		MarkerCount:    len(res.Markers),
		MacroCount:     len(report.Written),
		MacroFailures:  len(report.Failures),
		SkippedMarkers: len(res.Skipped),
		Objects:        res.Objects.Sorted(j.mode),
	}
	if j.grid != nil {
		run.GridX, run.GridY = j.grid.NumX, j.grid.NumY
	}

	stored, err := store.RecordRun(ctx, run)
	if err != nil {
		return "", fmt.Errorf("history %s: %w", j.cfg.HistoryDB, err)
	}
	return stored.ID, nil
}

// samePath reports whether a and b resolve to the same absolute path.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func modeName(mode gcode.IDMode) string {
	if mode == gcode.IDModeInteger {
		return ModeParametrized
	}
	return ModeBasic
}

// outputProcessSuccess outputs the run summary.
func outputProcessSuccess(formatter *OutputFormatter, summary *ProcessSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Rewrote %s -> %s (%s mode)\n", summary.Input, summary.Output, summary.Mode)
	if summary.Grid != nil {
		fmt.Fprintf(w, "  grid:    %dx%d\n", summary.Grid.NumX, summary.Grid.NumY)
	}
	fmt.Fprintf(w, "  markers: %d\n", summary.Markers)
	fmt.Fprintf(w, "  objects: %d", len(summary.Objects))
	if len(summary.Objects) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(summary.Objects, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  macros:  %d written to %s\n", summary.MacrosWritten, summary.MacroDir)
	if summary.RunID != "" {
		fmt.Fprintf(w, "  run:     %s\n", summary.RunID)
	}

	if len(summary.Warnings) > 0 {
		fmt.Fprintf(w, "\n⚠ %d warning(s)\n", len(summary.Warnings))
		for _, warning := range summary.Warnings {
			fmt.Fprintf(w, "  %s: %s\n", warning.Code, warning.Message)
		}
	}

	return nil
}

// outputProcessError reports a fatal error; all of them are command errors
// (exit code 2).
func outputProcessError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	err := WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
	err.reported = true
	return err
}
