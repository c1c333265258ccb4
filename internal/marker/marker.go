package marker

import (
	"errors"
	"fmt"
	"strings"
)

// Marker prefixes. Both must start at column 1 of a line.
const (
	StartPrefix = "//HEADERX"
	EndPrefix   = "//ENDX"
)

// ErrNotMarker is returned by Parse for lines that do not begin with StartPrefix.
var ErrNotMarker = errors.New("not a //HEADERX line")

// Declaration is the header file name and guard tag declared by a start marker.
type Declaration struct {
	Filename string // e.g. "include/out.h"
	Tag      string // e.g. "OUT_H"
}

// ParseError describes where a start marker deviates from the grammar.
type ParseError struct {
	Col      int    // 1-based column of the offending character
	Expected string // what the grammar required at Col
	Found    string // what was actually there, quoted, or "end of line"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %d: expected %s, found %s", e.Col, e.Expected, e.Found)
}

// IsStart reports whether line opens a header block.
func IsStart(line string) bool {
	return strings.HasPrefix(line, StartPrefix)
}

// IsEnd reports whether line closes a header block. Anything after the
// prefix is ignored.
func IsEnd(line string) bool {
	return strings.HasPrefix(line, EndPrefix)
}

// Parse decomposes a start marker of the form
//
//	//HEADERX ( <file name> , <tag> )
//
// where blanks (spaces and tabs) are allowed around every token, the file
// name is made of letters, digits, '_', '.' and '/', and the tag of letters,
// digits and '_'. Tokens are matched greedily; there is no backtracking.
// Text after the closing parenthesis is ignored.
func Parse(line string) (Declaration, error) {
	if !IsStart(line) {
		return Declaration{}, ErrNotMarker
	}
	s := scanner{src: line, pos: len(StartPrefix)}

	s.skipBlanks()
	if err := s.expect('('); err != nil {
		return Declaration{}, err
	}
	s.skipBlanks()
	filename := s.token(isFilenameChar)
	if filename == "" {
		return Declaration{}, s.mismatch("file name")
	}
	s.skipBlanks()
	if err := s.expect(','); err != nil {
		return Declaration{}, err
	}
	s.skipBlanks()
	tag := s.token(isTagChar)
	if tag == "" {
		return Declaration{}, s.mismatch("tag")
	}
	s.skipBlanks()
	if err := s.expect(')'); err != nil {
		return Declaration{}, err
	}

	return Declaration{Filename: filename, Tag: tag}, nil
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) skipBlanks() {
	for s.pos < len(s.src) && isBlank(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) token(accept func(byte) bool) string {
	start := s.pos
	for s.pos < len(s.src) && accept(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) expect(c byte) error {
	if s.pos < len(s.src) && s.src[s.pos] == c {
		s.pos++
		return nil
	}
	return s.mismatch(fmt.Sprintf("%q", c))
}

func (s *scanner) mismatch(expected string) *ParseError {
	found := "end of line"
	if s.pos < len(s.src) {
		switch c := s.src[s.pos]; c {
		case '\n', '\r':
		default:
			found = fmt.Sprintf("%q", c)
		}
	}
	return &ParseError{Col: s.pos + 1, Expected: expected, Found: found}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isAlphaNumeric(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isTagChar(c byte) bool {
	return isAlphaNumeric(c) || c == '_'
}

func isFilenameChar(c byte) bool {
	return isTagChar(c) || c == '.' || c == '/'
}
