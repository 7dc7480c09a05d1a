// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xopen opens files for reading and writing with transparent
// compression. Readers detect gzip, bzip2, xz and zstd streams from
// their magic bytes; writers choose the format from the file name
// extension.
package xopen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	xzw "github.com/ulikunitz/xz"
	"github.com/xi2/xz"
)

// Format is a stream compression format.
type Format int

const (
	Plain Format = iota
	Gzip
	Bzip2
	Xz
	Zstd
)

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

var magic = []struct {
	format Format
	bytes  []byte
}{
	{Gzip, []byte{0x1f, 0x8b, 0x08}},
	{Bzip2, []byte{0x42, 0x5a, 0x68}},
	{Xz, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
}

const bufSize = 1 << 20

// ErrUnsupported is returned by NewWriter for an unknown format.
var ErrUnsupported = errors.New("xopen: unsupported output compression")

// Detect returns the compression format of the stream in r by
// inspecting its first bytes without consuming them.
func Detect(r *bufio.Reader) (Format, error) {
	b, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return Plain, err
	}
	for _, m := range magic {
		if bytes.HasPrefix(b, m.bytes) {
			return m.format, nil
		}
	}
	return Plain, nil
}

// IsCompressed returns whether the file at path holds a compressed
// stream.
func IsCompressed(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	format, err := Detect(bufio.NewReaderSize(f, 16))
	if err != nil {
		return false, err
	}
	return format != Plain, nil
}

// Open opens the named file for reading, decompressing it if needed.
// An empty name or "-" reads from standard input.
func Open(name string) (io.ReadCloser, error) {
	var (
		f   *os.File
		err error
	)
	if name == "" || name == "-" {
		f = os.Stdin
	} else if f, err = os.Open(name); err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		if f != os.Stdin {
			f.Close()
		}
		return nil, pfx.Err(fmt.Errorf("%s: %w", name, err))
	}
	if f == os.Stdin {
		return io.NopCloser(r), nil
	}
	return readCloser{Reader: r, closers: []io.Closer{f}}, nil
}

// NewReader returns a buffered reader over r that decompresses the
// stream if it is compressed.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, bufSize)
	format, err := Detect(br)
	if err != nil {
		return nil, err
	}
	switch format {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return bufio.NewReaderSize(gz, bufSize), nil
	case Bzip2:
		bz, err := bzip2.NewReader(br, nil)
		if err != nil {
			return nil, err
		}
		return bufio.NewReaderSize(bz, bufSize), nil
	case Xz:
		xr, err := xz.NewReader(br, xz.DefaultDictMax)
		if err != nil {
			return nil, err
		}
		return bufio.NewReaderSize(xr, bufSize), nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return bufio.NewReaderSize(zr.IOReadCloser(), bufSize), nil
	}
	return br, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc readCloser) Close() error {
	var err error
	for _, c := range rc.closers {
		if _err := c.Close(); _err != nil && err == nil {
			err = _err
		}
	}
	return err
}

// FormatFor returns the output compression format implied by the
// extension of name.
func FormatFor(name string) Format {
	switch filepath.Ext(name) {
	case ".gz":
		return Gzip
	case ".bz2":
		return Bzip2
	case ".xz":
		return Xz
	case ".zst":
		return Zstd
	}
	return Plain
}

// Create creates the named file for writing, compressing output by
// the file extension (.gz, .bz2, .xz or .zst) at the given level,
// which is between 1 (fastest) and 9 (smallest). An empty name or "-"
// writes to standard output.
// Closing the returned writer flushes all buffered data.
func Create(name string, level int) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return newWriteCloser(os.Stdout, nil), nil
	}
	format := FormatFor(name)
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, format, level)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}
	return newWriteCloser(w, f), nil
}

// NewWriter returns a writer compressing to w in the given format.
// The caller must close the returned writer to flush the stream.
func NewWriter(w io.Writer, format Format, level int) (io.WriteCloser, error) {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	switch format {
	case Plain:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriterLevel(w, level)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(zstdLevel(level))))
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
	case Xz:
		return xzw.WriterConfig{DictCap: xzDictCap(level)}.NewWriter(w)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
}

// zstdLevel maps a 1-9 level onto the zstd level range.
func zstdLevel(level int) int {
	switch {
	case level <= 2:
		return 1
	case level <= 5:
		return 3
	case level <= 7:
		return 7
	}
	return 11
}

// xzDictCap maps a 1-9 level onto an xz dictionary size.
func xzDictCap(level int) int {
	switch {
	case level <= 3:
		return 1 << 20
	case level <= 6:
		return 8 << 20
	}
	return 32 << 20
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// writeCloser buffers writes to an optionally compressing writer and
// closes the chain in order on Close.
type writeCloser struct {
	*bufio.Writer
	w io.Writer
	f *os.File
}

func newWriteCloser(w io.Writer, f *os.File) *writeCloser {
	return &writeCloser{Writer: bufio.NewWriterSize(w, bufSize), w: w, f: f}
}

func (wc *writeCloser) Close() error {
	err := wc.Flush()
	if c, ok := wc.w.(io.Closer); ok && wc.w != io.Writer(os.Stdout) {
		if _err := c.Close(); _err != nil && err == nil {
			err = _err
		}
	}
	if wc.f != nil {
		if _err := wc.f.Close(); _err != nil && err == nil {
			err = _err
		}
	}
	return err
}
