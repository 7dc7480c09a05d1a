// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"

	"github.com/biogo/fakit/xopen"
)

// Split writes each record of r to its own file in dir, named by the
// record identifier and ext. Output files are compressed according to
// ext at the given level. Descriptions are dropped unless keep is true.
// Split returns the paths written.
func Split(r io.Reader, dir, ext string, keep bool, width, level int) ([]string, error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "fa"
	}
	var paths []string
	err := Each(r, func(s *linear.Seq) error {
		if s.ID == "" || strings.ContainsRune(s.ID, filepath.Separator) {
			return errors.New("fastx: cannot derive file name from identifier " + s.ID)
		}
		if !keep {
			s.Desc = ""
		}
		path := filepath.Join(dir, s.ID+"."+ext)
		out, err := xopen.Create(path, level)
		if err != nil {
			return err
		}
		_, err = NewWriter(out, width).Write(s)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// ToFastq writes the records of r to w in FASTQ format, giving every
// base the quality encoded by the Sanger quality character qual.
// Descriptions are dropped unless keep is true.
func ToFastq(r io.Reader, w io.Writer, qual byte, keep bool) (int, error) {
	if qual < '!' || qual > '~' {
		return 0, errors.New("fastx: quality character out of range")
	}
	q := alphabet.Sanger.DecodeToQphred(qual)
	fw := fastq.NewWriter(w)
	var n int
	err := Each(r, func(s *linear.Seq) error {
		ql := make([]alphabet.QLetter, len(s.Seq))
		for i, l := range s.Seq {
			ql[i] = alphabet.QLetter{L: l, Q: q}
		}
		qs := linear.NewQSeq(s.ID, ql, s.Alpha, alphabet.Sanger)
		if keep {
			qs.Desc = s.Desc
		}
		n++
		_, err := fw.Write(qs)
		return err
	})
	return n, err
}

// Chunk writes the records of r to files holding n records each, named
// by prefix, the 0-based chunk number and ext. Output files are
// compressed according to ext at the given level. Chunk returns the
// paths written.
func Chunk(r io.Reader, prefix, ext string, n, width, level int) ([]string, error) {
	if n <= 0 {
		return nil, errors.New("fastx: chunk size must be positive")
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "fasta"
	}
	var (
		paths []string
		out   io.WriteCloser
		fw    *fasta.Writer
		count int
	)
	err := Each(r, func(s *linear.Seq) error {
		if count%n == 0 {
			if out != nil {
				if err := out.Close(); err != nil {
					return err
				}
			}
			path := prefix + strconv.Itoa(len(paths)) + "." + ext
			var err error
			out, err = xopen.Create(path, level)
			if err != nil {
				out = nil
				return err
			}
			fw = NewWriter(out, width)
			paths = append(paths, path)
		}
		count++
		_, err := fw.Write(s)
		return err
	})
	if out != nil {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}
	return paths, err
}
