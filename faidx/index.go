// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package faidx provides construction, storage and querying of FASTA
// index files. An index records, for each sequence in a plain text FASTA
// file, enough layout information to seek directly to any base without
// reading the preceding data.
//
// The index text format is the conventional .fai layout: one line per
// sequence holding the tab separated fields name, length, offset, line
// bases and line width.
package faidx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is the index entry for a single FASTA sequence.
type Record struct {
	Name string

	// Length is the number of bases in the sequence.
	Length int64
	// Offset is the byte offset of the first base of the sequence.
	Offset int64
	// LineBases is the number of bases on each full line.
	LineBases int64
	// LineWidth is the number of bytes on each full line, including
	// the line terminator.
	LineWidth int64
}

// String returns the .fai text row for r without a trailing newline.
func (r Record) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", r.Name, r.Length, r.Offset, r.LineBases, r.LineWidth)
}

// Position returns the byte offset of the zero-based base position pos.
func (r Record) Position(pos int64) int64 {
	if r.LineBases == 0 {
		return r.Offset
	}
	return r.Offset + pos/r.LineBases*r.LineWidth + pos%r.LineBases
}

// span returns the number of bytes holding n bases starting at the
// zero-based position pos, including embedded line terminators.
func (r Record) span(pos, n int64) int64 {
	if n == 0 {
		return 0
	}
	return r.Position(pos+n-1) - r.Position(pos) + 1
}

// Index is an ordered collection of Records keyed by sequence name.
// The zero Index is empty and ready to use.
type Index struct {
	recs   []Record
	byName map[string]int
	dups   []string
}

// Add adds r to the index. If a record with the same name already
// exists its layout is replaced by r, keeping the original position
// in iteration order.
func (idx *Index) Add(r Record) {
	if idx.byName == nil {
		idx.byName = make(map[string]int)
	}
	if i, ok := idx.byName[r.Name]; ok {
		idx.recs[i] = r
		idx.dups = append(idx.dups, r.Name)
		return
	}
	idx.byName[r.Name] = len(idx.recs)
	idx.recs = append(idx.recs, r)
}

// Get returns the record for the named sequence.
func (idx *Index) Get(name string) (Record, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return Record{}, false
	}
	return idx.recs[i], true
}

// Len returns the number of records in the index.
func (idx *Index) Len() int { return len(idx.recs) }

// Records returns the index records in insertion order. The returned
// slice must not be modified.
func (idx *Index) Records() []Record { return idx.recs }

// Duplicates returns the names that were added more than once.
func (idx *Index) Duplicates() []string { return idx.dups }

// WriteTo writes the index in .fai text format to w.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, r := range idx.recs {
		_n, err := fmt.Fprintln(bw, r)
		n += int64(_n)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadIndex reads an index in .fai text format from r. Blank lines are
// ignored; any other row that does not hold exactly five fields with
// non-negative integer values is an error, as is a row whose line
// layout cannot address its bases.
func ReadIndex(r io.Reader) (*Index, error) {
	var (
		idx Index
		sc  = bufio.NewScanner(r)
		row int
	)
	for sc.Scan() {
		row++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		rec, err := parseRecord(line)
		if err != nil {
			return nil, &IndexLineError{Row: row, Text: line, Err: err}
		}
		idx.Add(rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &idx, nil
}

func parseRecord(line string) (Record, error) {
	f := strings.Split(line, "\t")
	if len(f) != 5 {
		return Record{}, fmt.Errorf("expected 5 fields, got %d", len(f))
	}
	if f[0] == "" {
		return Record{}, errors.New("empty sequence name")
	}
	var v [4]int64
	for i, s := range f[1:] {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Record{}, err
		}
		if n < 0 {
			return Record{}, fmt.Errorf("negative value %d", n)
		}
		v[i] = n
	}
	rec := Record{Name: f[0], Length: v[0], Offset: v[1], LineBases: v[2], LineWidth: v[3]}
	switch {
	case rec.Length > 0 && rec.LineBases == 0:
		return Record{}, errors.New("zero line bases for non-empty sequence")
	case rec.LineBases > 0 && rec.LineWidth <= rec.LineBases:
		return Record{}, fmt.Errorf("line width %d not greater than line bases %d", rec.LineWidth, rec.LineBases)
	}
	return rec, nil
}
