package gcode

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// MarkerPrefix starts every object-start comment written by the slicer.
	MarkerPrefix = "; printing object"

	// MacroDir is the firmware-side directory holding per-object macros.
	MacroDir = "/macros/by-object/"
)

// ScanOptions controls Rewrite.
type ScanOptions struct {
	Mode IDMode
	// SkipInvalid passes markers with unusable IDs through without a macro
	// call instead of failing the rewrite.
	SkipInvalid bool
}

// Marker is one matched object-start line.
type Marker struct {
	Line int    `json:"line"` // 1-based line number in the input
	ID   string `json:"id"`
}

// Result is the outcome of Rewrite.
type Result struct {
	Lines   []string
	Objects *ObjectSet
	Markers []Marker
	Skipped []*InvalidObjectIDError
}

// IsMarker reports whether line starts an object region.
func IsMarker(line string) bool {
	return strings.HasPrefix(line, MarkerPrefix)
}

// MacroCall returns the macro invocation line for id, terminated by eol.
func MacroCall(id, eol string) string {
	return `M98 P"` + MacroDir + id + `"` + eol
}

// ExtractObjectID returns the text between the last colon of line and the
// next space after it. Without a following space the ID runs to the end of
// the line, minus its terminator.
func ExtractObjectID(line string) (string, error) {
	text := trimEOL(line)
	colon := strings.LastIndex(text, ":")
	if colon < 0 {
		return "", &InvalidObjectIDError{Text: text, Reason: "marker has no colon"}
	}
	rest := text[colon+1:]
	if space := strings.Index(rest, " "); space >= 0 {
		rest = rest[:space]
	}
	if rest == "" {
		return "", &InvalidObjectIDError{Text: text, Reason: "empty id"}
	}
	return rest, nil
}

// IsNormalized reports whether id is in Unicode NFC form. IDs are never
// rewritten, so a decomposed ID may not match on a filesystem that
// normalises names.
func IsNormalized(id string) bool {
	return norm.NFC.IsNormalString(id)
}

// CanonicalID validates id for mode and returns the form used for macro
// calls and file names.
func CanonicalID(id string, mode IDMode) (string, error) {
	if mode != IDModeInteger {
		return id, nil
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return "", &InvalidObjectIDError{ID: id, Reason: "not an integer"}
	}
	if n < 0 {
		return "", &InvalidObjectIDError{ID: id, Reason: "negative"}
	}
	return strconv.Itoa(n), nil
}

// Rewrite copies lines, inserting a macro call after every marker, and
// collects the distinct object IDs.
//
// The input slice is not modified. Inserted lines are never rescanned.
func Rewrite(lines []string, opts ScanOptions) (*Result, error) {
	res := &Result{
		Lines:   make([]string, 0, len(lines)),
		Objects: NewObjectSet(),
	}

	for i, line := range lines {
		res.Lines = append(res.Lines, line)
		if !IsMarker(line) {
			continue
		}

		id, err := markerID(line, opts.Mode)
		if err != nil {
			var invalid *InvalidObjectIDError
			if !errors.As(err, &invalid) {
				return nil, err
			}
			invalid.Line = i + 1
			invalid.Text = trimEOL(line)
			if opts.SkipInvalid {
				res.Skipped = append(res.Skipped, invalid)
				continue
			}
			return nil, invalid
		}

		res.Objects.Add(id)
		res.Markers = append(res.Markers, Marker{Line: i + 1, ID: id})
		res.Lines = append(res.Lines, MacroCall(id, eolOf(line)))
	}

	return res, nil
}

func markerID(line string, mode IDMode) (string, error) {
	raw, err := ExtractObjectID(line)
	if err != nil {
		return "", err
	}
	return CanonicalID(raw, mode)
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// eolOf returns the terminator of line, defaulting to "\n".
func eolOf(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
