package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFiles is returned by Run when there is nothing to process.
	ErrNoFiles = errors.New("no source files to process")

	// ErrUnterminated reports a header block still open at end of input.
	// It is only returned in strict mode.
	ErrUnterminated = errors.New("//HEADERX block not closed by //ENDX before end of file")
)

// Error ties a failure to the source file and, when known, the line and the
// header being written.
type Error struct {
	File   string
	Line   int    // 0 when the failure is not tied to a line
	Header string // destination header, if one was involved
	Err    error
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
