// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gopkg.in/check.v1"

	"github.com/biogo/fakit/faidx"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const genome = ">chr1 first\nACGTACGTAC\nGT\n>chr2\nAAAAA\nCCCCC\nGG\n"

func run(c *check.C, args ...string) error {
	opts := &options{}
	defer opts.close()
	root := newRootCmd(opts)
	root.SetArgs(append([]string{"-q"}, args...))
	return root.Execute()
}

func (s *S) TestFaidx(c *check.C) {
	dir := c.MkDir()
	fa := filepath.Join(dir, "genome.fa")
	c.Assert(os.WriteFile(fa, []byte(genome), 0o644), check.Equals, nil)
	out := filepath.Join(dir, "out.fa")
	db := filepath.Join(dir, "genome.db")

	err := run(c, "faidx", fa, "chr1:9-12", "chr1:12-9", "chr3", "chr2:4-9", "-w", "4", "-o", out, "--db", db)
	c.Assert(err, check.Equals, nil)

	got, err := os.ReadFile(out)
	c.Assert(err, check.Equals, nil)
	c.Check(string(got), check.Equals, ">chr1:9-12\nACGT\n>chr2:4-9\nAACC\nCC\n")

	fai, err := os.ReadFile(faidx.IndexPath(fa))
	c.Assert(err, check.Equals, nil)
	c.Check(string(fai), check.Equals, "chr1\t12\t12\t10\t11\nchr2\t12\t32\t5\t6\n")

	idx, err := faidx.LoadSQLite(db)
	c.Assert(err, check.Equals, nil)
	c.Check(idx.Len(), check.Equals, 2)

	// Index only, reusing the existing index.
	c.Check(run(c, "faidx", fa), check.Equals, nil)
	c.Check(run(c, "faidx", "--rebuild", fa), check.Equals, nil)
}

func (s *S) TestFaidxErrors(c *check.C) {
	dir := c.MkDir()
	fa := filepath.Join(dir, "bad.fa")
	c.Assert(os.WriteFile(fa, []byte(">chr1\nACGT\nACGTA\n"), 0o644), check.Equals, nil)
	c.Check(run(c, "faidx", fa), check.NotNil)
	_, err := os.Stat(faidx.IndexPath(fa))
	c.Check(os.IsNotExist(err), check.Equals, true)

	c.Check(run(c, "faidx"), check.NotNil)
	c.Check(run(c, "faidx", filepath.Join(dir, "missing.fa")), check.NotNil)
	c.Check(run(c, "--compress-level", "10", "faidx", fa), check.NotNil)
}

func (s *S) TestPipeline(c *check.C) {
	dir := c.MkDir()
	fa := filepath.Join(dir, "genome.fa")
	c.Assert(os.WriteFile(fa, []byte(genome), 0o644), check.Equals, nil)

	gz := filepath.Join(dir, "rc.fa.gz")
	c.Assert(run(c, "reverse", fa, "-o", gz, "-w", "0"), check.Equals, nil)

	// Compressed input is read transparently.
	size := filepath.Join(dir, "size.tsv")
	c.Assert(run(c, "size", gz, "-o", size), check.Equals, nil)
	got, err := os.ReadFile(size)
	c.Assert(err, check.Equals, nil)
	c.Check(string(got), check.Equals, "seq_name\tlength\nchr1\t12\nchr2\t12\n")

	top := filepath.Join(dir, "top.fa")
	c.Assert(run(c, "topn", gz, "-n", "1", "-o", top, "-w", "0"), check.Equals, nil)
	got, err = os.ReadFile(top)
	c.Assert(err, check.Equals, nil)
	c.Check(string(got), check.Equals, ">chr1 first\nACGTACGTACGT\n")

	fq := filepath.Join(dir, "out.fq")
	c.Assert(run(c, "fa2fq", fa, "-o", fq), check.Equals, nil)
	got, err = os.ReadFile(fq)
	c.Assert(err, check.Equals, nil)
	c.Check(strings.HasPrefix(string(got), "@chr1\nACGTACGTACGT\n"), check.Equals, true)

	outdir := filepath.Join(dir, "split")
	c.Assert(os.Mkdir(outdir, 0o755), check.Equals, nil)
	c.Assert(run(c, "split", fa, "-d", outdir, "-e", "fa.zst"), check.Equals, nil)
	_, err = os.Stat(filepath.Join(outdir, "chr2.fa.zst"))
	c.Check(err, check.Equals, nil)
}

func (s *S) TestSumm(c *check.C) {
	dir := c.MkDir()
	fa := filepath.Join(dir, "genome.fa")
	c.Assert(os.WriteFile(fa, []byte(genome), 0o644), check.Equals, nil)
	gz := filepath.Join(dir, "copy.fa.gz")
	c.Assert(run(c, "seq", fa, "-o", gz), check.Equals, nil)

	out := filepath.Join(dir, "summ.tsv")
	c.Assert(run(c, "summ", fa, gz, "-a", "-o", out), check.Equals, nil)
	got, err := os.ReadFile(out)
	c.Assert(err, check.Equals, nil)
	c.Check(string(got), check.Equals,
		"file\tcount_A\tcount_C\tcount_G\tcount_T\tcount_N\trate_GC\trate_N\tnum_seq\tsum_len\tmin_len\tmean_len\tmax_len\n"+
			fa+"\t8\t8\t5\t3\t0\t0.54\t0.00\t2\t24\t12\t12\t12\n"+
			gz+"\t8\t8\t5\t3\t0\t0.54\t0.00\t2\t24\t12\t12\t12\n")

	bad := filepath.Join(dir, "bad.fa")
	c.Assert(os.WriteFile(bad, []byte(">x\nACGU\n"), 0o644), check.Equals, nil)
	c.Check(run(c, "summ", fa, bad, "-o", out), check.NotNil)
	c.Check(run(c, "summ"), check.NotNil)
}

func (s *S) TestCodon(c *check.C) {
	dir := c.MkDir()
	out := filepath.Join(dir, "codon.txt")
	c.Assert(run(c, "codon", "-n", "k", "-o", out), check.Equals, nil)
	got, err := os.ReadFile(out)
	c.Assert(err, check.Equals, nil)
	c.Check(string(got), check.Equals, "K\tAAA,AAG\n")

	c.Assert(run(c, "codon", "-o", out), check.Equals, nil)
	got, err = os.ReadFile(out)
	c.Assert(err, check.Equals, nil)
	c.Check(strings.HasSuffix(string(got), "Termination codon: UAA,UAG,UGA\n"), check.Equals, true)

	c.Check(run(c, "codon", "-n", "X", "-o", out), check.NotNil)
}

func (s *S) TestTwoPass(c *check.C) {
	dir := c.MkDir()
	var many strings.Builder
	for i := 0; i < 50; i++ {
		many.WriteString(">r" + strconv.Itoa(i) + "\nACGTNACGT\n")
	}
	fa := filepath.Join(dir, "many.fa.gz")
	src := filepath.Join(dir, "many.fa")
	c.Assert(os.WriteFile(src, []byte(many.String()), 0o644), check.Equals, nil)
	c.Assert(run(c, "seq", src, "-o", fa), check.Equals, nil)

	for _, args := range [][]string{
		{"tail", fa, "-n", "7"},
		{"subfa", fa, "-n", "9", "-s", "11"},
	} {
		one := filepath.Join(dir, args[0]+".one.fa")
		two := filepath.Join(dir, args[0]+".two.fa")
		c.Assert(run(c, append(args, "-o", one)...), check.Equals, nil)
		c.Assert(run(c, append(args, "-2", "-o", two)...), check.Equals, nil)
		want, err := os.ReadFile(one)
		c.Assert(err, check.Equals, nil)
		got, err := os.ReadFile(two)
		c.Assert(err, check.Equals, nil)
		c.Check(string(got), check.Equals, string(want), check.Commentf("%s", args[0]))
		c.Check(len(want) > 0, check.Equals, true)
	}

	c.Check(run(c, "tail", "-2"), check.NotNil)
	c.Check(run(c, "subfa", "-", "-n", "2", "-2"), check.NotNil)
}

func (s *S) TestChunkCompressed(c *check.C) {
	dir := c.MkDir()
	fa := filepath.Join(dir, "genome.fa")
	c.Assert(os.WriteFile(fa, []byte(genome), 0o644), check.Equals, nil)

	for _, t := range []struct{ flag, ext string }{{"-Z", ".fasta.bz2"}, {"-x", ".fasta.xz"}} {
		prefix := filepath.Join(dir, t.flag[1:]+"_")
		c.Assert(run(c, "split2", fa, t.flag, "-n", "1", "-p", prefix), check.Equals, nil)
		paths, err := filepath.Glob(prefix + "*" + t.ext)
		c.Assert(err, check.Equals, nil)
		c.Check(len(paths), check.Equals, 2, check.Commentf("%s", t.flag))

		summ := filepath.Join(dir, t.flag[1:]+".tsv")
		c.Assert(run(c, append([]string{"summ", "-o", summ}, paths...)...), check.Equals, nil)
		got, err := os.ReadFile(summ)
		c.Assert(err, check.Equals, nil)
		c.Check(strings.Count(string(got), "\t1\t12\t12\t12\t12\n"), check.Equals, 2, check.Commentf("%s", t.flag))
	}
	c.Check(run(c, "split2", fa, "-Z", "-x"), check.NotNil)
}
