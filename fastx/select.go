// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"errors"
	"io"

	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// errStop terminates an Each iteration early without error.
var errStop = errors.New("fastx: stop")

// Top writes the first n records of r to w and returns the number
// written.
func Top(r io.Reader, w *fasta.Writer, n int) (int, error) {
	return Range(r, w, 0, n)
}

// Range writes take records of r to w after skipping the first skip
// records, and returns the number written.
func Range(r io.Reader, w *fasta.Writer, skip, take int) (int, error) {
	var i, written int
	if take <= 0 {
		return 0, nil
	}
	err := Each(r, func(s *linear.Seq) error {
		i++
		if i <= skip {
			return nil
		}
		if _, err := w.Write(s); err != nil {
			return err
		}
		written++
		if written == take {
			return errStop
		}
		return nil
	})
	if err == errStop {
		err = nil
	}
	return written, err
}

// Tail writes the last n records of r to w in input order and returns
// the number written.
func Tail(r io.Reader, w *fasta.Writer, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	var (
		ring = make([]*linear.Seq, n)
		seen int
	)
	err := Each(r, func(s *linear.Seq) error {
		ring[seen%n] = s
		seen++
		return nil
	})
	if err != nil {
		return 0, err
	}
	first := 0
	if seen > n {
		first = seen % n
	} else {
		n = seen
	}
	for i := 0; i < n; i++ {
		if _, err := w.Write(ring[(first+i)%len(ring)]); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Opener opens a fresh reader over the same FASTA data. It is used by
// the two-pass functions, which read their input twice.
type Opener func() (io.ReadCloser, error)

// pass opens a reader with open and calls fn for each of its records.
func pass(open Opener, fn func(*linear.Seq) error) error {
	rc, err := open()
	if err != nil {
		return err
	}
	err = Each(rc, fn)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	return err
}

// TailTwoPass writes the last n records of the data given by open to w.
// The first pass counts the records and the second writes the tail, so
// no more than one record is held in memory.
func TailTwoPass(open Opener, w *fasta.Writer, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	var total int
	err := pass(open, func(*linear.Seq) error {
		total++
		return nil
	})
	if err != nil {
		return 0, err
	}
	skip := total - n
	if skip < 0 {
		skip = 0
	}
	var i, written int
	err = pass(open, func(s *linear.Seq) error {
		i++
		if i <= skip {
			return nil
		}
		if _, err := w.Write(s); err != nil {
			return err
		}
		written++
		return nil
	})
	return written, err
}
