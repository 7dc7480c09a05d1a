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

// SeqOptions holds the filters and case conversion applied by Seq.
// Zero values disable the corresponding filter.
type SeqOptions struct {
	Upper, Lower bool

	// MinLen and MaxLen bound sequence length in bases.
	MinLen, MaxLen int
	// MinGC and MaxGC bound the GC fraction, in [0, 1].
	MinGC, MaxGC float64
}

func (o SeqOptions) keep(s *linear.Seq) bool {
	l := s.Len()
	if o.MinLen > 0 && l < o.MinLen {
		return false
	}
	if o.MaxLen > 0 && l > o.MaxLen {
		return false
	}
	if o.MinGC > 0 || o.MaxGC > 0 {
		gc := GC(Bytes(s))
		if gc < o.MinGC {
			return false
		}
		if o.MaxGC > 0 && gc > o.MaxGC {
			return false
		}
	}
	return true
}

func (o SeqOptions) convert(s *linear.Seq) {
	switch {
	case o.Upper:
		upper(s)
	case o.Lower:
		lower(s)
	}
}

// Seq writes the records of r that pass the filters in o to w, after
// case conversion, and returns the number written.
func Seq(r io.Reader, w *fasta.Writer, o SeqOptions) (int, error) {
	if o.Upper && o.Lower {
		return 0, errors.New("fastx: both upper and lower case conversion requested")
	}
	var n int
	err := Each(r, func(s *linear.Seq) error {
		if !o.keep(s) {
			return nil
		}
		o.convert(s)
		n++
		_, err := w.Write(s)
		return err
	})
	return n, err
}

// SeqOnly writes only the sequence of each record of r that passes the
// filters in o, one sequence per line.
func SeqOnly(r io.Reader, w io.Writer, o SeqOptions) (int, error) {
	if o.Upper && o.Lower {
		return 0, errors.New("fastx: both upper and lower case conversion requested")
	}
	var n int
	err := Each(r, func(s *linear.Seq) error {
		if !o.keep(s) {
			return nil
		}
		o.convert(s)
		n++
		if _, err := w.Write(Bytes(s)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	})
	return n, err
}
