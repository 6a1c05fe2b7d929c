package main

import (
	"bufio"
	"fmt"

	"github.com/pkg/errors"
)

// SourceUnavailableError reports an input file that could not be opened.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

// MalformedRecordError reports a line (or capture frame) that could not be
// parsed. Line is 1-based.
type MalformedRecordError struct {
	Source string
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
}

func malformed(source string, line int, err error) error {
	return &MalformedRecordError{Source: source, Line: line, Reason: err.Error()}
}

// scanError converts a bufio.Scanner failure at line into an error. An
// over-long line is a malformed record.
func scanError(source string, line int, err error) error {
	if err == bufio.ErrTooLong {
		return malformed(source, line, errors.New("line too long"))
	}
	return errors.Wrapf(err, "read %s", source)
}

func isSourceUnavailable(err error) bool {
	_, ok := errors.Cause(err).(*SourceUnavailableError)
	return ok
}

// isMalformed unwraps err with errors.Cause and reports whether the root is a
// *MalformedRecordError.
func isMalformed(err error) bool {
	_, ok := errors.Cause(err).(*MalformedRecordError)
	return ok
}
