package obj

import (
	"errors"
	"fmt"
)

// ErrParse matches every error produced while parsing mesh text.
var ErrParse = errors.New("obj: parse error")

// MalformedLineError reports a line that cannot be interpreted: a face that is
// not a triangle, a vertex reference missing a component, or a number that
// does not parse.
type MalformedLineError struct {
	Line   int    // 1-based line number
	Text   string // raw line
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("obj: line %d: malformed %q: %s", e.Line, e.Text, e.Reason)
}

// Is makes errors.Is(err, ErrParse) hold.
func (e *MalformedLineError) Is(target error) bool {
	return target == ErrParse
}

// IndexOutOfRangeError reports a face reference outside the pool of
// positions, texture coordinates or normals declared before it.
type IndexOutOfRangeError struct {
	Line  int
	Kind  string // "position", "texcoord" or "normal"
	Index int    // 1-based index as written
	Size  int    // pool size at the time of the reference
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("obj: line %d: %s index %d out of range [1, %d]", e.Line, e.Kind, e.Index, e.Size)
}

// Is makes errors.Is(err, ErrParse) hold.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrParse
}
