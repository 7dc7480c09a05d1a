// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bufio"
	"io"
	"strconv"

	"github.com/biogo/biogo/seq/linear"
)

// FlattenOptions controls the columns written by Flatten.
type FlattenOptions struct {
	Sep  byte // Column separator; tab if zero.
	Keep bool // Write the full header rather than the identifier.

	Gaps   bool // Count of N bases.
	Length bool // Sequence length.
	GC     bool // GC content as a percentage.
}

// Flatten writes each record of r to w as a single line holding the
// record name, the columns selected by o and the sequence.
func Flatten(r io.Reader, w io.Writer, o FlattenOptions) (int, error) {
	sep := o.Sep
	if sep == 0 {
		sep = '\t'
	}
	var (
		bw = bufio.NewWriter(w)
		n  int
	)
	err := Each(r, func(s *linear.Seq) error {
		n++
		b := Bytes(s)
		if o.Keep {
			bw.WriteString(Header(s))
		} else {
			bw.WriteString(s.ID)
		}
		bw.WriteByte(sep)
		if o.Gaps {
			bw.WriteString(strconv.Itoa(countBases(b, "Nn")))
			bw.WriteByte(sep)
		}
		if o.Length {
			bw.WriteString(strconv.Itoa(len(b)))
			bw.WriteByte(sep)
		}
		if o.GC {
			bw.WriteString(strconv.FormatFloat(GC(b)*100, 'f', 2, 64))
			bw.WriteByte(sep)
		}
		bw.Write(b)
		return bw.WriteByte('\n')
	})
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}
