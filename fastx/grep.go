// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// GrepOptions selects what Grep matches against.
type GrepOptions struct {
	Pattern    string
	ByName     bool // Match the full header line without '>'.
	BySeq      bool // Match the sequence.
	IgnoreCase bool
}

func compile(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// Grep writes the records of r whose name or sequence matches the
// pattern in o to w and returns the number written.
func Grep(r io.Reader, w *fasta.Writer, o GrepOptions) (int, error) {
	if o.ByName == o.BySeq {
		return 0, errors.New("fastx: grep needs exactly one of name or sequence matching")
	}
	re, err := compile(o.Pattern, o.IgnoreCase)
	if err != nil {
		return 0, err
	}
	var n int
	err = Each(r, func(s *linear.Seq) error {
		var ok bool
		if o.ByName {
			ok = re.MatchString(Header(s))
		} else {
			ok = re.Match(Bytes(s))
		}
		if !ok {
			return nil
		}
		n++
		_, err := w.Write(s)
		return err
	})
	return n, err
}

// SearchHeader is the column header written by Search.
const SearchHeader = "sequence_name\tstart\tend\tpattern\tlength\tsequence"

// Search writes a line to w for each non-overlapping match of pattern
// in the sequences of r, holding the record name, the 1-based start and
// inclusive end of the match, the pattern, the match length and the
// matched text. It returns the number of matches.
func Search(r io.Reader, w io.Writer, pattern string, ignoreCase, header, keep bool) (int, error) {
	re, err := compile(pattern, ignoreCase)
	if err != nil {
		return 0, err
	}
	if header {
		if _, err = fmt.Fprintln(w, SearchHeader); err != nil {
			return 0, err
		}
	}
	var n int
	err = Each(r, func(s *linear.Seq) error {
		name := s.ID
		if keep {
			name = Header(s)
		}
		b := Bytes(s)
		for _, m := range re.FindAllIndex(b, -1) {
			n++
			_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\n", name, m[0]+1, m[1], pattern, m[1]-m[0], b[m[0]:m[1]])
			if err != nil {
				return err
			}
		}
		return nil
	})
	return n, err
}
