package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	HistoryDB  string

	// Getenv resolves environment variables; nil means os.Getenv.
	Getenv func(string) string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the objmacro command. Run with a G-code file it
// rewrites the file and emits macros; the history subcommand lists past
// runs.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Getenv: os.Getenv}
	procOpts := &ProcessOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "objmacro <gcode-file> [<numX> <numY>]",
		Short: "Insert per-object macro calls into slicer G-code",
		Long: `Insert a macro call after every "; printing object" marker and write one
macro file per object under macros/by-object.

With a single argument the macros are placeholders. With grid dimensions
numX and numY, object IDs must be integers and each macro sets jerk and
acceleration from the object's position on the grid.

The rewritten G-code is written to <gcode-file>.updated; the input file is
never modified.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(procOpts, args, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file (default $OBJMACRO_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.HistoryDB, "history", "", "SQLite run history database")

	cmd.Flags().StringVarP(&procOpts.Output, "output", "o", "", "output file path (default <gcode-file>.updated)")
	cmd.Flags().StringVar(&procOpts.MacroRoot, "macro-root", "", "directory that receives macros/by-object (default .)")
	cmd.Flags().BoolVar(&procOpts.SkipInvalid, "skip-invalid", false, "leave markers with unusable object IDs untouched instead of failing")

	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) getenv(key string) string {
	if o.Getenv == nil {
		return ""
	}
	return o.Getenv(key)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
