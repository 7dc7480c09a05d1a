// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faidx

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/util"
)

// File provides random access to the sequences of an indexed FASTA file.
//
// A File owns a single read position on its underlying data, so
// queries must be made sequentially. Concurrent extraction requires a
// File per goroutine, each sharing the same read-only Index.
type File struct {
	rs  io.ReadSeeker
	idx *Index
	buf []byte

	c io.Closer
}

// NewFile returns a File reading the sequence data described by idx
// from rs.
func NewFile(rs io.ReadSeeker, idx *Index) *File {
	return &File{rs: rs, idx: idx}
}

// OpenFile opens the FASTA file at path and associates it with idx.
// Compressed files are rejected with ErrCompressed.
func OpenFile(path string, idx *Index) (*File, error) {
	if err := checkPlain(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{rs: f, idx: idx, c: f}, nil
}

// Close closes the underlying file if it was opened by OpenFile or Open.
func (f *File) Close() error {
	if f.c == nil {
		return nil
	}
	err := f.c.Close()
	*f = File{}
	return err
}

// Index returns the index associated with f.
func (f *File) Index() *Index { return f.idx }

// Seq returns the bases of the sequence region r with line terminators
// removed. Errors for unknown sequences and out of range coordinates
// wrap ErrUnknownSequence and ErrOutOfBounds respectively.
func (f *File) Seq(r Region) ([]byte, error) {
	rec, ok := f.idx.Get(r.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSequence, r.Name)
	}
	start, end := int64(1), rec.Length
	if r.Ranged {
		if r.Start < 1 || r.Start > r.End || r.End > rec.Length {
			return nil, fmt.Errorf("%w: %s: sequence length is %d", ErrOutOfBounds, r, rec.Length)
		}
		start, end = r.Start, r.End
	}
	n := end - start + 1
	if n <= 0 {
		return []byte{}, nil
	}

	pos := start - 1
	off := rec.Position(pos)
	if _, err := f.rs.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	span := int(rec.span(pos, n))
	if cap(f.buf) < span {
		f.buf = make([]byte, span)
	}
	f.buf = f.buf[:span]
	if _, err := io.ReadFull(f.rs, f.buf); err != nil {
		return nil, fmt.Errorf("faidx: reading %s at offset %d: %w", r, off, err)
	}

	seq := make([]byte, 0, n)
	col := pos % rec.LineBases
	for _, b := range f.buf {
		if col < rec.LineBases {
			if b == '\n' || b == '\r' {
				return nil, fmt.Errorf("faidx: unexpected line end in %s at offset %d: index does not match file", r, off)
			}
			seq = append(seq, b)
		}
		col++
		if col == rec.LineWidth {
			col = 0
		}
	}
	return seq, nil
}

// WriteRegion writes the region r to w as a FASTA record named by the
// region descriptor. Sequence lines are wrapped at width bases; a width
// of zero writes the sequence on a single line.
func (f *File) WriteRegion(w io.Writer, r Region, width int) error {
	seq, err := f.Seq(r)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, ">%s\n", r); err != nil {
		return err
	}
	if len(seq) == 0 {
		return nil
	}
	if _, err = util.NewWrapper(w, width, -1).Write(seq); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Query writes each region described in desc from f to w in order.
// Descriptors that cannot be parsed or resolved are passed to warn
// along with the cause and skipped. Any other error stops the batch
// and is returned.
func Query(w io.Writer, f *File, desc []string, width int, warn func(desc string, err error)) (written int, err error) {
	for _, d := range desc {
		r, err := ParseRegion(d)
		if err == nil {
			err = f.WriteRegion(w, r, width)
		}
		switch {
		case err == nil:
			written++
		case IsRecoverable(err):
			if warn != nil {
				warn(d, err)
			}
		default:
			return written, err
		}
	}
	return written, nil
}
