package gcode

import "fmt"

// FileOpenError reports a G-code file that could not be read or written.
type FileOpenError struct {
	Path string
	Op   string // "read" or "write"
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}

// InvalidObjectIDError reports a marker line whose object ID cannot be used.
type InvalidObjectIDError struct {
	Line   int    // 1-based line number in the input
	Text   string // marker line without its terminator
	ID     string // extracted ID, empty if none was found
	Reason string
}

func (e *InvalidObjectIDError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid object id %q: %s", e.Line, e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid object id %q: %s", e.ID, e.Reason)
}
