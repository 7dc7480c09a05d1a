// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"io"
	"strconv"

	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Reverse writes the reverse complement of each record of r to w. If
// revOnly is true the sequences are reversed without complementing.
func Reverse(r io.Reader, w *fasta.Writer, revOnly bool) (int, error) {
	var n int
	err := Each(r, func(s *linear.Seq) error {
		if revOnly {
			s.Reverse()
		} else {
			s.RevComp()
		}
		n++
		_, err := w.Write(s)
		return err
	})
	return n, err
}

// Rename writes the records of r to w with their identifiers replaced
// by prefix followed by the 1-based record number. If prefix is empty
// the number alone is used. Descriptions are dropped unless keep is
// true.
func Rename(r io.Reader, w *fasta.Writer, prefix string, keep bool) (int, error) {
	var n int
	err := Each(r, func(s *linear.Seq) error {
		n++
		s.ID = prefix + strconv.Itoa(n)
		if !keep {
			s.Desc = ""
		}
		_, err := w.Write(s)
		return err
	})
	return n, err
}
