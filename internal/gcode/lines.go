package gcode

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// ReadLines loads the file at path and splits it into lines.
// Each line keeps its terminator; a final line without one is kept as is.
func ReadLines(ctx context.Context, path string) ([]string, error) {
	location, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Op: "read", Err: err}
	}

	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, &FileOpenError{Path: path, Op: "read", Err: err}
	}

	lines, err := SplitLines(bytes.NewReader(data))
	if err != nil {
		return nil, &FileOpenError{Path: path, Op: "read", Err: err}
	}
	return lines, nil
}

// SplitLines reads r to the end and returns its lines with terminators.
func SplitLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ErrNotRegularFile is returned when a write target exists but is not a
// regular file.
var ErrNotRegularFile = errors.New("not a regular file")

// CheckTarget fails if path exists and is anything other than a regular file.
// afs Upload removes an existing target before creating it, so callers check
// first.
func CheckTarget(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	return nil
}

// WriteLines replaces the file at path with lines, written verbatim.
// Missing parent directories are created. An existing target that is not a
// regular file is left alone and reported as a *FileOpenError.
func WriteLines(ctx context.Context, path string, lines []string) error {
	location, err := filepath.Abs(path)
	if err != nil {
		return &FileOpenError{Path: path, Op: "write", Err: err}
	}
	if err := CheckTarget(location); err != nil {
		return &FileOpenError{Path: path, Op: "write", Err: err}
	}

	fs := afs.New()
	content := strings.Join(lines, "")
	if err := fs.Upload(ctx, location, 0644, strings.NewReader(content)); err != nil {
		return &FileOpenError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// OutputPath returns the default rewrite destination for input.
func OutputPath(input string) string {
	return input + ".updated"
}
