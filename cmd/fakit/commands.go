// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biogo/fakit/fastx"
	"github.com/biogo/fakit/xopen"
)

const inputUse = "[FASTA]"

func newTopCmd(opts *options) *cobra.Command {
	var (
		out string
		n   int
	)
	cmd := &cobra.Command{
		Use:     "topn " + inputUse,
		Aliases: []string{"head"},
		Short:   "get first N records from fasta file",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				written, err := fastx.Top(r, opts.fastaWriter(w), n)
				opts.logger.Debug("records written", "n", written)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&n, "num", "n", 10, "print first N fasta records")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fasta file name, or write to stdout")
	return cmd
}

func newTailCmd(opts *options) *cobra.Command {
	var (
		out     string
		n       int
		twoPass bool
	)
	cmd := &cobra.Command{
		Use:   "tail " + inputUse,
		Short: "get last N records from fasta file",
		Long: "Get last N records from fasta file. The last N records are held in memory\n" +
			"unless --two-pass is given, which reads the input file twice instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !twoPass {
				return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
					_, err := fastx.Tail(r, opts.fastaWriter(w), n)
					return err
				})
			}
			open, err := opts.opener(args)
			if err != nil {
				return err
			}
			return opts.sink(out, func(w io.Writer) error {
				_, err := fastx.TailTwoPass(open, opts.fastaWriter(w), n)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&n, "num", "n", 10, "print last N fasta records")
	cmd.Flags().BoolVarP(&twoPass, "two-pass", "2", false, "two-pass mode: read the input file twice to lower memory usage")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fasta file name, or write to stdout")
	return cmd
}

func newRangeCmd(opts *options) *cobra.Command {
	var (
		out        string
		skip, take int
	)
	cmd := &cobra.Command{
		Use:     "range " + inputUse,
		Aliases: []string{"rg"},
		Short:   "print fasta records in a range",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				_, err := fastx.Range(r, opts.fastaWriter(w), skip, take)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&skip, "skip", "s", 0, "skip first int fasta records")
	cmd.Flags().IntVarP(&take, "take", "t", 0, "take int fasta records")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fasta file name, or write to stdout")
	cmd.MarkFlagRequired("take")
	return cmd
}

func newSeqCmd(opts *options) *cobra.Command {
	var (
		out     string
		seqOnly bool
		o       fastx.SeqOptions
	)
	cmd := &cobra.Command{
		Use:   "seq " + inputUse,
		Short: "convert all bases to lower/upper case, filter by length and GC content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				var (
					n   int
					err error
				)
				if seqOnly {
					n, err = fastx.SeqOnly(r, w, o)
				} else {
					n, err = fastx.Seq(r, opts.fastaWriter(w), o)
				}
				opts.logger.Debug("records written", "n", n)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&o.Lower, "lower-case", "l", false, "convert all bases to lowercase")
	f.BoolVarP(&o.Upper, "upper-case", "u", false, "convert all bases to uppercase")
	f.BoolVarP(&seqOnly, "seq", "s", false, "only print sequences")
	f.IntVarP(&o.MinLen, "min-len", "m", 0, "discard sequences shorter than this")
	f.IntVarP(&o.MaxLen, "max-len", "M", 0, "discard sequences longer than this")
	f.Float64VarP(&o.MinGC, "gc-min", "g", 0, "discard sequences with GC fraction below this")
	f.Float64VarP(&o.MaxGC, "gc-max", "G", 0, "discard sequences with GC fraction above this")
	f.StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newReverseCmd(opts *options) *cobra.Command {
	var (
		out string
		rev bool
	)
	cmd := &cobra.Command{
		Use:     "reverse " + inputUse,
		Aliases: []string{"rev"},
		Short:   "get a reverse-complement of fasta file",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				_, err := fastx.Reverse(r, opts.fastaWriter(w), rev)
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&rev, "reverse", "r", false, "only reverse sequences, without complementing")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newRenameCmd(opts *options) *cobra.Command {
	var (
		out    string
		prefix string
		keep   bool
	)
	cmd := &cobra.Command{
		Use:     "rename " + inputUse,
		Aliases: []string{"rn"},
		Short:   "rename sequence id in fasta file",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				n, err := fastx.Rename(r, opts.fastaWriter(w), prefix, keep)
				opts.logger.Debug("records renamed", "n", n)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "set new id prefix for sequence")
	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "keep sequence id description")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fasta file name, or write to stdout")
	return cmd
}

func newFlattenCmd(opts *options) *cobra.Command {
	var (
		out string
		sep string
		o   fastx.FlattenOptions
	)
	cmd := &cobra.Command{
		Use:     "flatten " + inputUse,
		Aliases: []string{"flat"},
		Short:   "flatten fasta sequences",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sep) != 1 {
				return fmt.Errorf("separator must be a single character: %q", sep)
			}
			o.Sep = sep[0]
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				n, err := fastx.Flatten(r, w, o)
				opts.logger.Info("sequences flattened", "n", n)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&o.Keep, "keep", "k", false, "keep sequence id description")
	f.StringVarP(&sep, "sep", "s", "\t", "output separator")
	f.BoolVarP(&o.Gaps, "gap-n", "n", false, "add N base count in output")
	f.BoolVarP(&o.Length, "length", "l", false, "add sequence length in output")
	f.BoolVarP(&o.GC, "gc-content", "g", false, "add GC content (%) in output")
	f.StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newGrepCmd(opts *options) *cobra.Command {
	var (
		out string
		o   fastx.GrepOptions
	)
	cmd := &cobra.Command{
		Use:   "grep " + inputUse,
		Short: "grep fasta sequences by name/seq",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				n, err := fastx.Grep(r, opts.fastaWriter(w), o)
				opts.logger.Debug("records matched", "n", n)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.Pattern, "pattern", "p", "", "regex pattern, e.g. \"ATC{2,}\" or \"ATCCG|GCTAA\"")
	f.BoolVarP(&o.ByName, "by-name", "n", false, "grep sequences by full name")
	f.BoolVarP(&o.BySeq, "by-seq", "s", false, "grep sequences by sequence")
	f.BoolVarP(&o.IgnoreCase, "ignore-case", "i", false, "ignore case")
	f.StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	cmd.MarkFlagRequired("pattern")
	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	var (
		out                    string
		pattern                string
		ignore, header, keepID bool
	)
	cmd := &cobra.Command{
		Use:   "search " + inputUse,
		Short: "search subsequences/motifs from fasta file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logger.Debug("search pattern", "pattern", pattern)
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				n, err := fastx.Search(r, w, pattern, ignore, header, keepID)
				opts.logger.Info("matches found", "n", n)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&pattern, "pattern", "p", "", "regex pattern/motif, e.g. \"ATC{2,}\" or ATCCG")
	f.BoolVarP(&keepID, "keep", "k", false, "keep sequence id description")
	f.BoolVarP(&ignore, "ignore-case", "i", false, "ignore case")
	f.BoolVarP(&header, "header", "H", false, "show header in result")
	f.StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	cmd.MarkFlagRequired("pattern")
	return cmd
}

func newWindowCmd(opts *options) *cobra.Command {
	var (
		out, plotPath string
		size, step    int
		keep          bool
	)
	cmd := &cobra.Command{
		Use:     "window " + inputUse,
		Aliases: []string{"slide"},
		Short:   "stat dna fasta gc content by sliding windows",
		Long: `Report the GC content of sliding windows over each sequence.

Output columns are: seqid, start, end, gc_rate, sequence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logger.Debug("window parameters", "size", size, "step", step)
			var (
				wins []fastx.Window
				fn   func(fastx.Window)
			)
			if plotPath != "" {
				fn = func(win fastx.Window) {
					win.Seq = nil
					wins = append(wins, win)
				}
			}
			err := opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				_, err := fastx.SlidingGC(r, w, size, step, keep, fn)
				return err
			})
			if err != nil || plotPath == "" {
				return err
			}
			opts.logger.Info("plotting GC content", "path", plotPath)
			return fastx.PlotGC(plotPath, wins)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&size, "window-size", "W", 500, "sliding window size")
	f.IntVarP(&step, "step-size", "s", 100, "sliding window step size")
	f.BoolVarP(&keep, "keep", "k", false, "write windows in fasta format")
	f.StringVar(&plotPath, "plot", "", "also save a GC plot to this image file (.png, .svg, .pdf)")
	f.StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newSizeCmd(opts *options) *cobra.Command {
	var (
		out           string
		all, noHeader bool
	)
	cmd := &cobra.Command{
		Use:   "size " + inputUse,
		Short: "report fasta sequence base count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				n, err := fastx.Size(r, w, all, !noHeader)
				opts.logger.Info("total sequence number", "n", n)
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "also count A, T, G, C and N bases")
	cmd.Flags().BoolVarP(&noHeader, "no-header", "n", false, "no header in output")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newSummCmd(opts *options) *cobra.Command {
	var (
		out string
		sc  fastx.SummaryColumns
	)
	cmd := &cobra.Command{
		Use:     "summ FASTA...",
		Aliases: []string{"stat"},
		Short:   "simple statistics of fasta files",
		Long: "Simple statistics of fasta files, one row per file. Bases other than\n" +
			"A, C, G, T and N are an error.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.sink(out, func(w io.Writer) error {
				if _, err := io.WriteString(w, sc.Header()); err != nil {
					return err
				}
				for _, name := range args {
					st, err := summarizeFile(name)
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					if err = sc.WriteRow(w, name, st); err != nil {
						return err
					}
					opts.logger.Debug("summarized", "path", name, "n", st.Count)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&sc.Bases, "all", "a", false, "also count bases and GC and N rates")
	cmd.Flags().BoolVar(&sc.Spread, "n50", false, "also report length standard deviation and N50")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func summarizeFile(name string) (fastx.Stats, error) {
	r, err := xopen.Open(name)
	if err != nil {
		return fastx.Stats{}, err
	}
	defer r.Close()
	return fastx.Summarize(r)
}

func newCodonCmd(opts *options) *cobra.Command {
	var (
		out  string
		name string
	)
	cmd := &cobra.Command{
		Use:   "codon",
		Short: "show codon table and amino acid name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.sink(out, func(w io.Writer) error {
				if name == "" {
					return fastx.WriteCodonTable(w)
				}
				codons, err := fastx.Codons(name)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(name), strings.Join(codons, ","))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "amino acid one letter code, show its codons")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newShuffleCmd(opts *options) *cobra.Command {
	var (
		out  string
		seed uint64
	)
	cmd := &cobra.Command{
		Use:     "shuffle " + inputUse,
		Aliases: []string{"shuf"},
		Short:   "shuffle fasta sequences",
		Long:    "Shuffle fasta sequences. All records are read into memory.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logger.Debug("rand seed", "seed", seed)
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				_, err := fastx.Shuffle(r, opts.fastaWriter(w), seed)
				return err
			})
		},
	}
	cmd.Flags().Uint64VarP(&seed, "seed", "s", 69, "set rand seed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newSampleCmd(opts *options) *cobra.Command {
	var (
		out     string
		n       int
		seed    uint64
		twoPass bool
	)
	cmd := &cobra.Command{
		Use:     "subfa " + inputUse,
		Aliases: []string{"sample"},
		Short:   "subsample sequences from big fasta file",
		Long: "Subsample sequences from big fasta file. The sampled records are held in\n" +
			"memory unless --two-pass is given, which reads the input file twice instead.\n" +
			"Both modes select the same records for the same seed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return errors.New("number of sequences to sample must be positive")
			}
			opts.logger.Debug("rand seed", "seed", seed)
			if !twoPass {
				return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
					_, err := fastx.Sample(r, opts.fastaWriter(w), n, seed)
					return err
				})
			}
			open, err := opts.opener(args)
			if err != nil {
				return err
			}
			return opts.sink(out, func(w io.Writer) error {
				_, err := fastx.SampleTwoPass(open, opts.fastaWriter(w), n, seed)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&n, "num", "n", 0, "number of sequences to sample")
	cmd.Flags().Uint64VarP(&seed, "seed", "s", 69, "set rand seed")
	cmd.Flags().BoolVarP(&twoPass, "two-pass", "2", false, "two-pass mode: read the input file twice to lower memory usage")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newSortCmd(opts *options) *cobra.Command {
	var (
		out                          string
		name, seq, gc, length, rever bool
	)
	cmd := &cobra.Command{
		Use:   "sort " + inputUse,
		Short: "sort fasta file by name/seq/gc/length",
		Long:  "Sort fasta file by name, sequence, GC content or length. All records are read into memory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				key fastx.SortKey
				set int
			)
			for _, k := range []struct {
				on  bool
				key fastx.SortKey
			}{{name, fastx.ByName}, {seq, fastx.BySeq}, {gc, fastx.ByGC}, {length, fastx.ByLength}} {
				if k.on {
					key = k.key
					set++
				}
			}
			if set != 1 {
				return errors.New("exactly one sort key must be given")
			}
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				_, err := fastx.Sort(r, opts.fastaWriter(w), key, rever)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&name, "sort-by-name", "n", false, "sort sequences by name")
	f.BoolVarP(&seq, "sort-by-seq", "s", false, "sort sequences by sequence")
	f.BoolVarP(&gc, "sort-by-gc", "g", false, "sort sequences by gc content")
	f.BoolVarP(&length, "sort-by-length", "l", false, "sort sequences by length")
	f.BoolVarP(&rever, "reverse", "r", false, "output reversed result")
	f.StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newSplitCmd(opts *options) *cobra.Command {
	var (
		dir, ext string
		keep     bool
	)
	cmd := &cobra.Command{
		Use:   "split " + inputUse,
		Short: "split fasta file by sequence id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			in, err := opts.input(args)
			if err != nil {
				return err
			}
			defer in.Close()
			paths, err := fastx.Split(in, dir, ext, keep, opts.width, opts.level)
			opts.logger.Info("files written", "n", len(paths), "dir", dir)
			return err
		},
	}
	cmd.Flags().StringVarP(&dir, "outdir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&ext, "ext", "e", "fa", "output file extension, .gz, .bz2, .xz or .zst suffixes compress")
	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "keep sequence id description")
	return cmd
}

func newFa2fqCmd(opts *options) *cobra.Command {
	var (
		out  string
		qual string
		keep bool
	)
	cmd := &cobra.Command{
		Use:   "fa2fq " + inputUse,
		Short: "convert fasta to fastq file with fake quality",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(qual) != 1 {
				return fmt.Errorf("quality must be a single character: %q", qual)
			}
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				_, err := fastx.ToFastq(r, w, qual[0], keep)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&qual, "qual", "Q", "F", "fake quality character")
	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "keep sequence id description")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fastq file name, or write to stdout")
	return cmd
}

func newKmerCmd(opts *options) *cobra.Command {
	var (
		out    string
		k      int
		header bool
	)
	cmd := &cobra.Command{
		Use:   "kmer " + inputUse,
		Short: "a simple kmer counter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.stream(args, out, func(r io.Reader, w io.Writer) error {
				n, err := fastx.Kmers(r, w, k, header)
				opts.logger.Debug("kmers counted", "distinct", n)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&k, "kmer-size", "k", 21, "set kmer size")
	cmd.Flags().BoolVarP(&header, "header", "H", false, "add header info in output file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name, or write to stdout")
	return cmd
}

func newChunkCmd(opts *options) *cobra.Command {
	var (
		n               int
		gz, bz, xz, zst bool
		prefix          string
	)
	cmd := &cobra.Command{
		Use:   "split2 " + inputUse,
		Short: "split fasta file by sequence number",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := "fasta"
			var set int
			for _, f := range []struct {
				on  bool
				ext string
			}{{gz, ".gz"}, {bz, ".bz2"}, {xz, ".xz"}, {zst, ".zst"}} {
				if f.on {
					ext += f.ext
					set++
				}
			}
			if set > 1 {
				return errors.New("only one of the flags --gzip, --bzip2, --xz and --zstd is allowed")
			}
			in, err := opts.input(args)
			if err != nil {
				return err
			}
			defer in.Close()
			paths, err := fastx.Chunk(in, prefix, ext, n, opts.width, opts.level)
			for _, p := range paths {
				opts.logger.Debug("file written", "path", p)
			}
			opts.logger.Info("files written", "n", len(paths))
			return err
		},
	}
	cmd.Flags().IntVarP(&n, "num", "n", 100, "set record number for each mini fasta file")
	cmd.Flags().BoolVarP(&gz, "gzip", "z", false, "output gzip compressed files")
	cmd.Flags().BoolVarP(&bz, "bzip2", "Z", false, "output bzip2 compressed files")
	cmd.Flags().BoolVarP(&xz, "xz", "x", false, "output xz compressed files")
	cmd.Flags().BoolVar(&zst, "zstd", false, "output zstd compressed files")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "sub", "prefix of output files, may include a directory")
	return cmd
}
