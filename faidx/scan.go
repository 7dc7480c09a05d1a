// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faidx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// NewIndex scans the plain text FASTA data in r and returns its index.
//
// Every body line of a record except the last must hold the same number
// of bases; NewIndex returns a *LineLengthError identifying the first
// line that breaks this rule. Lines may be terminated by "\n" or "\r\n".
func NewIndex(r io.Reader) (*Index, error) {
	var (
		idx Index
		br  = bufio.NewReader(r)

		cur   Record
		inRec bool
		short bool // A line shorter than cur.LineBases has been seen.

		cursor int64
		line   int
	)
	for {
		raw, err := br.ReadBytes('\n')
		if len(raw) == 0 {
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}
		line++
		cursor += int64(len(raw))

		text := bytes.TrimSuffix(raw, []byte{'\n'})
		term := int64(len(raw) - len(text))
		if bytes.HasSuffix(text, []byte{'\r'}) {
			text = text[:len(text)-1]
			term++
		}

		switch {
		case len(text) != 0 && text[0] == '>':
			if inRec {
				idx.Add(cur)
			}
			name := headerName(text)
			if name == "" {
				return nil, fmt.Errorf("faidx: empty sequence name at line %d", line)
			}
			cur = Record{Name: name, Offset: cursor}
			inRec = true
			short = false

		case len(text) == 0:
			// Blank lines may only trail a record.
			if inRec {
				short = true
			}

		default:
			if !inRec {
				return nil, fmt.Errorf("%w at line %d", ErrNoHeader, line)
			}
			bases := int64(len(text))
			switch {
			case short:
				return nil, &LineLengthError{Line: line, Name: cur.Name, Want: cur.LineBases, Got: bases}
			case cur.LineBases == 0:
				cur.LineBases = bases
				if term == 0 {
					term = 1
				}
				cur.LineWidth = bases + term
			case bases > cur.LineBases:
				return nil, &LineLengthError{Line: line, Name: cur.Name, Want: cur.LineBases, Got: bases}
			case bases < cur.LineBases:
				short = true
			case term != 0 && bases+term != cur.LineWidth:
				return nil, fmt.Errorf("faidx: inconsistent line terminator at line %d in %q", line, cur.Name)
			}
			cur.Length += bases
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if inRec {
		idx.Add(cur)
	}
	return &idx, nil
}

// headerName returns the sequence name from a header line: the text
// following '>' up to the first white space.
func headerName(header []byte) string {
	f := bytes.Fields(header[1:])
	if len(f) == 0 {
		return ""
	}
	return string(f[0])
}
