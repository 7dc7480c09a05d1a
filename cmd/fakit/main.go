// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fakit is a toolkit for manipulating DNA FASTA files. Input files may
// be gzip, bzip2, xz or zstd compressed, and output files named with
// the matching extension are compressed in the same way.
//
// The faidx subcommand builds a .fai index for a plain text FASTA file
// and extracts regions from it by random access:
//
//	fakit faidx genome.fa chr1:1-5000 chr2:100-800
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/biogo/biogo/io/seqio/fasta"

	"github.com/biogo/fakit/fastx"
	"github.com/biogo/fakit/xopen"
)

var version = "0.1.0"

// options holds the global flags shared by all subcommands.
type options struct {
	width   int
	level   int
	logFile string
	verbose bool
	quiet   bool

	logger *log.Logger
	logf   *os.File
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "fakit",
		Short:         "A simple program for DNA FASTA file manipulation",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.level < 1 || opts.level > 9 {
				return fmt.Errorf("compression level %d out of range 1-9", opts.level)
			}
			return opts.setupLogger()
		},
	}
	pf := root.PersistentFlags()
	pf.IntVarP(&opts.width, "line-width", "w", 70, "line width when writing FASTA sequences, 0 for no wrap")
	pf.IntVar(&opts.level, "compress-level", 6, "compression level 1 (faster) to 9 (smaller) for compressed output")
	pf.StringVar(&opts.logFile, "log", "", "also write log messages to this file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	root.Flags().BoolP("version", "V", false, "print version information")

	root.AddCommand(
		newFaidxCmd(opts),
		newTopCmd(opts),
		newTailCmd(opts),
		newRangeCmd(opts),
		newSeqCmd(opts),
		newReverseCmd(opts),
		newRenameCmd(opts),
		newFlattenCmd(opts),
		newGrepCmd(opts),
		newSearchCmd(opts),
		newWindowCmd(opts),
		newSizeCmd(opts),
		newSummCmd(opts),
		newCodonCmd(opts),
		newShuffleCmd(opts),
		newSampleCmd(opts),
		newSortCmd(opts),
		newSplitCmd(opts),
		newChunkCmd(opts),
		newKmerCmd(opts),
		newFa2fqCmd(opts),
	)
	return root
}

func (o *options) setupLogger() error {
	var w io.Writer = os.Stderr
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %v", o.logFile, err)
		}
		o.logf = f
		w = io.MultiWriter(os.Stderr, f)
	}
	o.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fakit",
	})
	switch {
	case o.quiet:
		o.logger.SetLevel(log.ErrorLevel)
	case o.verbose:
		o.logger.SetLevel(log.DebugLevel)
	default:
		o.logger.SetLevel(log.InfoLevel)
	}
	return nil
}

func (o *options) close() {
	if o.logf != nil {
		o.logf.Close()
	}
}

// input opens the single optional input argument, reading stdin when it
// is absent.
func (o *options) input(args []string) (io.ReadCloser, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" || name == "-" {
		o.logger.Debug("reading from stdin")
	} else {
		o.logger.Debug("reading from file", "path", name)
	}
	return xopen.Open(name)
}

// output creates the output file, writing to stdout when name is empty.
func (o *options) output(name string) (io.WriteCloser, error) {
	if name != "" {
		o.logger.Debug("writing to file", "path", name)
	}
	return xopen.Create(name, o.level)
}

// stream runs fn with an opened input and output, closing both. The
// output is closed even when fn fails so that partial output is
// flushed for inspection.
func (o *options) stream(args []string, out string, fn func(r io.Reader, w io.Writer) error) error {
	in, err := o.input(args)
	if err != nil {
		return err
	}
	defer in.Close()
	return o.sink(out, func(w io.Writer) error { return fn(in, w) })
}

// sink runs fn with an opened output, closing it as stream does.
func (o *options) sink(out string, fn func(w io.Writer) error) error {
	w, err := o.output(out)
	if err != nil {
		return err
	}
	err = fn(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// opener returns an opener over the named input file for the two-pass
// modes, which cannot read stdin.
func (o *options) opener(args []string) (fastx.Opener, error) {
	if len(args) == 0 || args[0] == "-" {
		return nil, errors.New("two-pass mode needs an input file, not stdin")
	}
	name := args[0]
	return func() (io.ReadCloser, error) {
		o.logger.Debug("reading from file", "path", name)
		return xopen.Open(name)
	}, nil
}

func (o *options) fastaWriter(w io.Writer) *fasta.Writer {
	return fastx.NewWriter(w, o.width)
}

func main() {
	opts := &options{}
	err := newRootCmd(opts).Execute()
	if err != nil {
		if opts.logger != nil {
			opts.logger.Error(err)
		} else {
			fmt.Fprintf(os.Stderr, "fakit: %v\n", err)
		}
	}
	opts.close()
	if err != nil {
		os.Exit(1)
	}
}
