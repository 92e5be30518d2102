package cli

import (
	"errors"

	"github.com/roach88/objmacro/internal/config"
	"github.com/roach88/objmacro/internal/gcode"
	"github.com/roach88/objmacro/internal/macro"
	"github.com/roach88/objmacro/internal/motion"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeInputFailed   = "E005" // Input G-code missing or unreadable
	ErrCodeWriteFailed   = "E007" // Output G-code not writable
	ErrCodeMacroDir      = "E008" // Macro directory could not be created
	ErrCodeMissingArgs   = "E010" // Wrong number of positional arguments
	ErrCodeInvalidGrid   = "E011" // numX/numY not integers
	ErrCodeDegenerate    = "E012" // numX or numY below 2
	ErrCodeInvalidID     = "E020" // Marker without a usable object ID
	ErrCodeConfig        = "E030" // Config file unreadable or invalid
	ErrCodeHistory       = "E040" // Run history unavailable
	ErrCodeHistoryAbsent = "E041" // No history database configured
)

// Warning codes for non-fatal problems.
const (
	WarnMacroFailed   = "W001" // One macro file could not be written
	WarnMarkerSkipped = "W002" // Marker left without a macro call (--skip-invalid)
	WarnHistory       = "W003" // Run could not be recorded
	WarnNotNormalized = "W004" // Object ID not in Unicode NFC form
)

// classifyError maps a domain error to its CLI error code.
func classifyError(err error) string {
	var (
		openErr    *gcode.FileOpenError
		invalidErr *gcode.InvalidObjectIDError
		gridErr    *motion.DegenerateGridError
		cfgErr     *config.Error
		dirErr     *macro.DirError
	)
	switch {
	case errors.As(err, &openErr):
		if openErr.Op == "write" {
			return ErrCodeWriteFailed
		}
		return ErrCodeInputFailed
	case errors.As(err, &invalidErr):
		return ErrCodeInvalidID
	case errors.As(err, &gridErr):
		return ErrCodeDegenerate
	case errors.As(err, &cfgErr):
		return ErrCodeConfig
	case errors.As(err, &dirErr):
		return ErrCodeMacroDir
	default:
		return ErrCodeGeneric
	}
}
