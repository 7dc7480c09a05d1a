// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faidx

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"

	"github.com/biogo/fakit/xopen"
)

// IndexPath returns the conventional index file path for the FASTA
// file at path.
func IndexPath(path string) string { return path + ".fai" }

// Open opens the FASTA file at path for random access. If the index
// file for path exists it is used without checking whether it is
// current; otherwise the FASTA file is scanned and its index file is
// written.
func Open(path string) (*File, error) {
	idx, _, err := LoadOrBuild(path)
	if err != nil {
		return nil, err
	}
	f, err := OpenFile(path, idx)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return f, nil
}

// LoadOrBuild returns the index for the FASTA file at path, reading the
// existing index file if there is one and building and writing it if
// not. The returned bool reports whether the index was built.
// Compressed files are rejected with ErrCompressed whether or not an
// index file exists.
func LoadOrBuild(path string) (idx *Index, built bool, err error) {
	if err = checkPlain(path); err != nil {
		return nil, false, err
	}
	idx, err = ReadIndexFile(IndexPath(path))
	if err == nil {
		return idx, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}
	idx, err = Build(path)
	if err != nil {
		return nil, false, err
	}
	return idx, true, nil
}

// Build scans the FASTA file at path and writes its index file,
// replacing any existing index. Compressed files are rejected with
// ErrCompressed since their byte offsets do not address the sequence
// data.
func Build(path string) (*Index, error) {
	if err := checkPlain(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()
	idx, err := NewIndex(f)
	if err != nil {
		return nil, err
	}
	return idx, WriteIndexFile(IndexPath(path), idx)
}

// checkPlain returns ErrCompressed if the file at path holds a
// compressed stream.
func checkPlain(path string) error {
	compressed, err := xopen.IsCompressed(path)
	if err != nil {
		return pfx.Err(err)
	}
	if compressed {
		return fmt.Errorf("%w: %s", ErrCompressed, path)
	}
	return nil
}

// ReadIndexFile reads the .fai index file at path.
func ReadIndexFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIndex(f)
}

// WriteIndexFile writes idx to path. The file is written to a temporary
// file in the same directory and renamed into place, so a failed write
// never leaves a truncated index behind.
func WriteIndexFile(path string, idx *Index) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fai-*")
	if err != nil {
		return pfx.Err(err)
	}
	tmpPath := tmp.Name()
	bw := bufio.NewWriter(tmp)
	_, err = idx.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return pfx.Err(err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return pfx.Err(err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return pfx.Err(err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return pfx.Err(err)
	}
	return nil
}
