package macro

import (
	"fmt"
	"strconv"

	"github.com/roach88/objmacro/internal/motion"
)

// Renderer produces the macro file content for one object ID.
type Renderer interface {
	Render(id string) (string, error)
}

// StubComment is the placeholder line every macro starts with.
func StubComment(id string) string {
	return "; insert object-specific commands for id:" + id
}

// StubRenderer writes only the placeholder comment, without a trailing
// newline.
type StubRenderer struct{}

// Render implements Renderer.
func (StubRenderer) Render(id string) (string, error) {
	return StubComment(id), nil
}

// MotionRenderer writes the placeholder comment followed by the object's
// acceleration and jerk commands.
type MotionRenderer struct {
	Mapper *motion.Mapper
}

// Render implements Renderer. id must be a non-negative decimal integer.
func (r MotionRenderer) Render(id string) (string, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return "", fmt.Errorf("object id %q is not an integer", id)
	}
	p, err := r.Mapper.Map(n)
	if err != nil {
		return "", err
	}
	return StubComment(id) + "\n" + p.AccelCommand() + "\n" + p.JerkCommand() + "\n", nil
}
