package macro

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/roach88/objmacro/internal/gcode"
)

// Dir is the macro directory relative to the emitter root.
const Dir = "macros/by-object"

// Failure records one macro file that could not be produced.
type Failure struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("macro %s: %v", f.Path, f.Err)
}

// DirError reports a macro directory that could not be created.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("creating macro directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// Report summarises an Emit call.
type Report struct {
	Dir      string    `json:"dir"`
	Written  []string  `json:"written"`
	Failures []Failure `json:"failures,omitempty"`
}

// Emitter writes macro files below Root.
type Emitter struct {
	Root string
	fs   afs.Service
}

// NewEmitter creates an emitter rooted at root ("." for the working
// directory).
func NewEmitter(root string) *Emitter {
	return &Emitter{Root: root, fs: afs.New()}
}

// DirPath returns the directory macro files are written to.
func (e *Emitter) DirPath() string {
	return filepath.Join(e.Root, Dir)
}

// Path returns the macro file path for id.
func (e *Emitter) Path(id string) string {
	return filepath.Join(e.DirPath(), id)
}

// Emit writes one file per ID, in the given order.
//
// A *DirError is returned only if the macro directory cannot be created.
// Failures for individual files are collected in the Report and do not stop
// the remaining IDs.
func (e *Emitter) Emit(ctx context.Context, ids []string, r Renderer) (*Report, error) {
	dir := e.DirPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &DirError{Dir: dir, Err: err}
	}

	report := &Report{Dir: dir}
	for _, id := range ids {
		path := e.Path(id)
		if err := e.write(ctx, path, id, r); err != nil {
			report.Failures = append(report.Failures, Failure{ID: id, Path: path, Err: err})
			continue
		}
		report.Written = append(report.Written, path)
	}
	return report, nil
}

func (e *Emitter) write(ctx context.Context, path, id string, r Renderer) error {
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("object id %q is not a valid file name", id)
	}
	content, err := r.Render(id)
	if err != nil {
		return err
	}
	location, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := gcode.CheckTarget(location); err != nil {
		return err
	}
	return e.fs.Upload(ctx, location, 0644, strings.NewReader(content))
}
