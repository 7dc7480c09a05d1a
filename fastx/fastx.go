// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastx provides single pass transformations of FASTA record
// streams: slicing, filtering, renaming, reverse complementing,
// searching, sampling and summarising DNA sequences.
//
// Functions read FASTA from an io.Reader, typically one returned by
// xopen.Open, and write FASTA through a *fasta.Writer or tabular text
// to an io.Writer.
package fastx

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// NewReader returns a FASTA reader producing *linear.Seq values in the
// redundant DNA alphabet.
func NewReader(r io.Reader) *fasta.Reader {
	return fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant))
}

// NewWriter returns a FASTA writer wrapping sequence lines at width
// letters. A width of zero or less writes each sequence on one line.
func NewWriter(w io.Writer, width int) *fasta.Writer {
	if width <= 0 {
		width = math.MaxInt32
	}
	return fasta.NewWriter(w, width)
}

// Each calls fn for each sequence read from r, stopping at the first
// error.
func Each(r io.Reader, fn func(*linear.Seq) error) error {
	sc := seqio.NewScanner(NewReader(r))
	for sc.Next() {
		if err := fn(sc.Seq().(*linear.Seq)); err != nil {
			return err
		}
	}
	return sc.Error()
}

// ReadAll returns all sequences read from r.
func ReadAll(r io.Reader) ([]*linear.Seq, error) {
	var seqs []*linear.Seq
	err := Each(r, func(s *linear.Seq) error {
		seqs = append(seqs, s)
		return nil
	})
	return seqs, err
}

// Bytes returns the letters of s as a byte slice.
func Bytes(s *linear.Seq) []byte { return alphabet.LettersToBytes(s.Seq) }

// Header returns the full header text of s without the '>' marker.
func Header(s *linear.Seq) string {
	if s.Desc == "" {
		return s.ID
	}
	return s.ID + " " + s.Desc
}

// GC returns the fraction of G and C bases in b, ignoring case.
// GC of an empty slice is zero.
func GC(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	return float64(countBases(b, "GCgc")) / float64(len(b))
}

func countBases(b []byte, set string) int {
	var n int
	for _, c := range b {
		if strings.IndexByte(set, c) >= 0 {
			n++
		}
	}
	return n
}

func upper(s *linear.Seq) {
	s.Seq = alphabet.BytesToLetters(bytes.ToUpper(Bytes(s)))
}

func lower(s *linear.Seq) {
	s.Seq = alphabet.BytesToLetters(bytes.ToLower(Bytes(s)))
}
