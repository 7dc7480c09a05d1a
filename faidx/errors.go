// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faidx

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader is returned when a FASTA stream has sequence data
	// before its first header line.
	ErrNoHeader = errors.New("faidx: sequence data before first header")

	// ErrCompressed is returned when an index is requested for a
	// compressed file.
	ErrCompressed = errors.New("faidx: cannot index compressed file")

	// ErrUnknownSequence is returned when a region names a sequence
	// that is not in the index.
	ErrUnknownSequence = errors.New("faidx: unknown sequence")

	// ErrOutOfBounds is returned when region coordinates fall outside
	// the indexed sequence.
	ErrOutOfBounds = errors.New("faidx: region out of bounds")

	// ErrMalformedRegion is returned when a region descriptor cannot
	// be parsed.
	ErrMalformedRegion = errors.New("faidx: malformed region")
)

// LineLengthError reports a body line that breaks the uniform line
// length required for random access.
type LineLengthError struct {
	Line int    // 1-based line number in the FASTA file.
	Name string // Name of the record being scanned.
	Want int64  // Established bases per line.
	Got  int64  // Bases on the offending line.
}

func (e *LineLengthError) Error() string {
	return fmt.Sprintf("faidx: non-uniform line length at line %d in %q: want %d bases, got %d", e.Line, e.Name, e.Want, e.Got)
}

// IndexLineError reports a row of an index file that could not be parsed.
type IndexLineError struct {
	Row  int // 1-based row number.
	Text string
	Err  error
}

func (e *IndexLineError) Error() string {
	return fmt.Sprintf("faidx: malformed index line %d %q: %v", e.Row, e.Text, e.Err)
}

func (e *IndexLineError) Unwrap() error { return e.Err }

// IsRecoverable returns whether err only invalidates a single region
// query, so that a batch of queries may continue past it.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrUnknownSequence) ||
		errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrMalformedRegion)
}
