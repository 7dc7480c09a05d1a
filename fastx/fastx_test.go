// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"gopkg.in/check.v1"

	"github.com/biogo/fakit/xopen"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// a: len 8, GC 5/8. b: len 10, GC 0. c: len 6, GC 4/6, two Ns.
const in = ">a first\nACGTAC\nGG\n>b\nAAAAAAAAAA\n>c\nGGCCNN\n"

const (
	recA = ">a first\nACGTACGG\n"
	recB = ">b\nAAAAAAAAAA\n"
	recC = ">c\nGGCCNN\n"
)

func opener(data string) Opener {
	return func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(data)), nil }
}

func write(c *check.C, fn func(w *fasta.Writer) (int, error)) (string, int) {
	var buf bytes.Buffer
	n, err := fn(NewWriter(&buf, 0))
	c.Assert(err, check.Equals, nil)
	return buf.String(), n
}

func ids(c *check.C, fa string) []string {
	seqs, err := ReadAll(strings.NewReader(fa))
	c.Assert(err, check.Equals, nil)
	var id []string
	for _, s := range seqs {
		id = append(id, s.ID)
	}
	return id
}

func (s *S) TestReadAll(c *check.C) {
	seqs, err := ReadAll(strings.NewReader(in))
	c.Assert(err, check.Equals, nil)
	c.Assert(len(seqs), check.Equals, 3)
	c.Check(seqs[0].ID, check.Equals, "a")
	c.Check(seqs[0].Desc, check.Equals, "first")
	c.Check(Header(seqs[0]), check.Equals, "a first")
	c.Check(Header(seqs[1]), check.Equals, "b")
	c.Check(string(Bytes(seqs[0])), check.Equals, "ACGTACGG")
}

func (s *S) TestWrap(c *check.C) {
	var buf bytes.Buffer
	_, err := Top(strings.NewReader(in), NewWriter(&buf, 4), 1)
	c.Assert(err, check.Equals, nil)
	c.Check(buf.String(), check.Equals, ">a first\nACGT\nACGG\n")
}

func (s *S) TestTopRangeTail(c *check.C) {
	for i, t := range []struct {
		fn   func(w *fasta.Writer) (int, error)
		want string
		n    int
	}{
		{fn: func(w *fasta.Writer) (int, error) { return Top(strings.NewReader(in), w, 2) }, want: recA + recB, n: 2},
		{fn: func(w *fasta.Writer) (int, error) { return Top(strings.NewReader(in), w, 5) }, want: recA + recB + recC, n: 3},
		{fn: func(w *fasta.Writer) (int, error) { return Top(strings.NewReader(in), w, 0) }, want: "", n: 0},
		{fn: func(w *fasta.Writer) (int, error) { return Range(strings.NewReader(in), w, 1, 1) }, want: recB, n: 1},
		{fn: func(w *fasta.Writer) (int, error) { return Range(strings.NewReader(in), w, 3, 1) }, want: "", n: 0},
		{fn: func(w *fasta.Writer) (int, error) { return Tail(strings.NewReader(in), w, 2) }, want: recB + recC, n: 2},
		{fn: func(w *fasta.Writer) (int, error) { return Tail(strings.NewReader(in), w, 4) }, want: recA + recB + recC, n: 3},
		{fn: func(w *fasta.Writer) (int, error) { return Tail(strings.NewReader(in), w, 1) }, want: recC, n: 1},
		{fn: func(w *fasta.Writer) (int, error) { return TailTwoPass(opener(in), w, 2) }, want: recB + recC, n: 2},
		{fn: func(w *fasta.Writer) (int, error) { return TailTwoPass(opener(in), w, 4) }, want: recA + recB + recC, n: 3},
		{fn: func(w *fasta.Writer) (int, error) { return TailTwoPass(opener(in), w, 0) }, want: "", n: 0},
	} {
		got, n := write(c, t.fn)
		c.Check(got, check.Equals, t.want, check.Commentf("Test %d", i))
		c.Check(n, check.Equals, t.n, check.Commentf("Test %d", i))
	}
}

func (s *S) TestSeq(c *check.C) {
	got, n := write(c, func(w *fasta.Writer) (int, error) {
		return Seq(strings.NewReader(in), w, SeqOptions{MinLen: 7})
	})
	c.Check(n, check.Equals, 2)
	c.Check(got, check.Equals, recA+recB)

	got, _ = write(c, func(w *fasta.Writer) (int, error) {
		return Seq(strings.NewReader(in), w, SeqOptions{MinGC: 0.5, MaxLen: 7})
	})
	c.Check(got, check.Equals, recC)

	got, _ = write(c, func(w *fasta.Writer) (int, error) {
		return Seq(strings.NewReader(">x\nacgtNn\n"), w, SeqOptions{Upper: true})
	})
	c.Check(got, check.Equals, ">x\nACGTNN\n")

	_, err := Seq(strings.NewReader(in), NewWriter(io.Discard, 0), SeqOptions{Upper: true, Lower: true})
	c.Check(err, check.NotNil)

	var buf bytes.Buffer
	n, err = SeqOnly(strings.NewReader(in), &buf, SeqOptions{Lower: true, MaxGC: 0.5})
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 1)
	c.Check(buf.String(), check.Equals, "aaaaaaaaaa\n")
}

func (s *S) TestReverse(c *check.C) {
	got, _ := write(c, func(w *fasta.Writer) (int, error) {
		return Reverse(strings.NewReader(recA), w, false)
	})
	c.Check(got, check.Equals, ">a first\nCCGTACGT\n")

	got, _ = write(c, func(w *fasta.Writer) (int, error) {
		return Reverse(strings.NewReader(recA), w, true)
	})
	c.Check(got, check.Equals, ">a first\nGGCATGCA\n")
}

func (s *S) TestRename(c *check.C) {
	got, n := write(c, func(w *fasta.Writer) (int, error) {
		return Rename(strings.NewReader(in), w, "s", false)
	})
	c.Check(n, check.Equals, 3)
	c.Check(got, check.Equals, ">s1\nACGTACGG\n>s2\nAAAAAAAAAA\n>s3\nGGCCNN\n")

	got, _ = write(c, func(w *fasta.Writer) (int, error) {
		return Rename(strings.NewReader(recA), w, "", true)
	})
	c.Check(got, check.Equals, ">1 first\nACGTACGG\n")
}

func (s *S) TestFlatten(c *check.C) {
	var buf bytes.Buffer
	n, err := Flatten(strings.NewReader(in), &buf, FlattenOptions{Gaps: true, Length: true, GC: true})
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 3)
	c.Check(buf.String(), check.Equals,
		"a\t0\t8\t62.50\tACGTACGG\n"+
			"b\t0\t10\t0.00\tAAAAAAAAAA\n"+
			"c\t2\t6\t66.67\tGGCCNN\n")

	buf.Reset()
	_, err = Flatten(strings.NewReader(recA), &buf, FlattenOptions{Sep: ',', Keep: true})
	c.Check(err, check.Equals, nil)
	c.Check(buf.String(), check.Equals, "a first,ACGTACGG\n")
}

func (s *S) TestGrep(c *check.C) {
	got, _ := write(c, func(w *fasta.Writer) (int, error) {
		return Grep(strings.NewReader(in), w, GrepOptions{Pattern: "FIRST", ByName: true, IgnoreCase: true})
	})
	c.Check(got, check.Equals, recA)

	got, _ = write(c, func(w *fasta.Writer) (int, error) {
		return Grep(strings.NewReader(in), w, GrepOptions{Pattern: "N+", BySeq: true})
	})
	c.Check(got, check.Equals, recC)

	_, err := Grep(strings.NewReader(in), NewWriter(io.Discard, 0), GrepOptions{Pattern: "a", ByName: true, BySeq: true})
	c.Check(err, check.NotNil)
	_, err = Grep(strings.NewReader(in), NewWriter(io.Discard, 0), GrepOptions{Pattern: "(", ByName: true})
	c.Check(err, check.NotNil)
}

func (s *S) TestSearch(c *check.C) {
	var buf bytes.Buffer
	n, err := Search(strings.NewReader(in), &buf, "GG", false, true, false)
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 2)
	c.Check(buf.String(), check.Equals, SearchHeader+"\n"+
		"a\t7\t8\tGG\t2\tGG\n"+
		"c\t1\t2\tGG\t2\tGG\n")

	buf.Reset()
	n, err = Search(strings.NewReader(">x y\nacgtACGT\n"), &buf, "cg", true, false, true)
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 2)
	c.Check(buf.String(), check.Equals, "x y\t2\t3\tcg\t2\tcg\nx y\t6\t7\tcg\t2\tCG\n")
}

func (s *S) TestWindows(c *check.C) {
	sq := linear.NewSeq("w", alphabet.BytesToLetters([]byte("aaGGCCTTAA")), alphabet.DNAredundant)
	wins, err := Windows(sq, 4, 3)
	c.Assert(err, check.Equals, nil)
	c.Check(wins, check.DeepEquals, []Window{
		{Name: "w", Start: 0, End: 4, GC: 0.5, Seq: []byte("AAGG")},
		{Name: "w", Start: 3, End: 7, GC: 0.75, Seq: []byte("GCCT")},
		{Name: "w", Start: 6, End: 10, GC: 0.25, Seq: []byte("CTAA")},
	})

	wins, err = Windows(sq, 20, 5)
	c.Assert(err, check.Equals, nil)
	c.Check(len(wins), check.Equals, 1)
	c.Check(wins[0].End, check.Equals, 10)

	_, err = Windows(sq, 0, 1)
	c.Check(err, check.NotNil)
}

func (s *S) TestSlidingGC(c *check.C) {
	var (
		buf  bytes.Buffer
		wins []Window
	)
	n, err := SlidingGC(strings.NewReader(">w\nAAGGCCTTAA\n"), &buf, 4, 3, false, func(w Window) { wins = append(wins, w) })
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 3)
	c.Check(len(wins), check.Equals, 3)
	c.Check(buf.String(), check.Equals,
		"w\t1\t4\t0.5000\tAAGG\n"+
			"w\t4\t7\t0.7500\tGCCT\n"+
			"w\t7\t10\t0.2500\tCTAA\n")

	buf.Reset()
	_, err = SlidingGC(strings.NewReader(">w\nAAGGCCTTAA\n"), &buf, 8, 8, true, nil)
	c.Check(err, check.Equals, nil)
	c.Check(buf.String(), check.Equals, ">w 1-8:0.5000\nAAGGCCTT\n>w 9-10:0.0000\nAA\n")

	// A short final window is measured over its own length.
	buf.Reset()
	_, err = SlidingGC(strings.NewReader(">w\nAAGGCCTTGC\n"), &buf, 8, 8, false, nil)
	c.Check(err, check.Equals, nil)
	c.Check(buf.String(), check.Equals, "w\t1\t8\t0.5000\tAAGGCCTT\nw\t9\t10\t1.0000\tGC\n")

	path := filepath.Join(c.MkDir(), "gc.png")
	c.Check(PlotGC(path, wins), check.Equals, nil)
	fi, err := os.Stat(path)
	c.Assert(err, check.Equals, nil)
	c.Check(fi.Size() > 0, check.Equals, true)
	c.Check(PlotGC(path, nil), check.NotNil)
}

func (s *S) TestSize(c *check.C) {
	var buf bytes.Buffer
	n, err := Size(strings.NewReader(in), &buf, false, true)
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 3)
	c.Check(buf.String(), check.Equals, "seq_name\tlength\na\t8\nb\t10\nc\t6\n")

	buf.Reset()
	_, err = Size(strings.NewReader(in), &buf, true, false)
	c.Check(err, check.Equals, nil)
	c.Check(buf.String(), check.Equals,
		"a\t8\t2\t1\t3\t2\t0\n"+
			"b\t10\t10\t0\t0\t0\t0\n"+
			"c\t6\t0\t0\t2\t2\t2\n")
}

func (s *S) TestSummarize(c *check.C) {
	st, err := Summarize(strings.NewReader(in))
	c.Assert(err, check.Equals, nil)
	c.Check(st, check.Equals, Stats{
		Count: 3, Total: 24, Min: 6, Max: 10, Mean: 8, StdDev: 2, N50: 8,
		A: 12, C: 4, G: 5, T: 1, N: 2,
	})
	c.Check(st.GC(), check.Equals, 0.375)
	c.Check(st.NRate(), check.Equals, 2.0/24)

	for i, t := range []struct {
		cols SummaryColumns
		want string
	}{
		{
			want: "file\tnum_seq\tsum_len\tmin_len\tmean_len\tmax_len\n" +
				"in.fa\t3\t24\t6\t8\t10\n",
		},
		{
			cols: SummaryColumns{Bases: true},
			want: "file\tcount_A\tcount_C\tcount_G\tcount_T\tcount_N\trate_GC\trate_N\tnum_seq\tsum_len\tmin_len\tmean_len\tmax_len\n" +
				"in.fa\t12\t4\t5\t1\t2\t0.38\t0.08\t3\t24\t6\t8\t10\n",
		},
		{
			cols: SummaryColumns{Spread: true},
			want: "file\tnum_seq\tsum_len\tmin_len\tmean_len\tmax_len\tstd_len\tN50\n" +
				"in.fa\t3\t24\t6\t8\t10\t2.00\t8\n",
		},
	} {
		var buf bytes.Buffer
		buf.WriteString(t.cols.Header())
		c.Check(t.cols.WriteRow(&buf, "in.fa", st), check.Equals, nil)
		c.Check(buf.String(), check.Equals, t.want, check.Commentf("Test %d", i))
	}

	st, err = Summarize(strings.NewReader(""))
	c.Check(err, check.Equals, nil)
	c.Check(st, check.Equals, Stats{})
	c.Check(st.GC(), check.Equals, 0.0)

	_, err = Summarize(strings.NewReader(">a\nACGT\n>b\nACRT\n"))
	c.Check(err, check.ErrorMatches, `fastx: invalid DNA base 'R' in b`)
}

func (s *S) TestCodons(c *check.C) {
	table := CodonTable()
	c.Assert(len(table), check.Equals, 64)
	c.Check(table[0].String(), check.Equals, "UUU (Phe/F)")
	c.Check(table[10].String(), check.Equals, "UAA (Stop)")
	c.Check(table[35].String(), check.Equals, "AUG (Start)")
	c.Check(table[63].String(), check.Equals, "GGG (Gly/G)")
	c.Check(StopCodons(), check.DeepEquals, []string{"UAA", "UAG", "UGA"})

	for _, t := range []struct {
		name string
		want []string
	}{
		{"M", []string{"AUG"}},
		{"w", []string{"UGG"}},
		{"I", []string{"AUU", "AUC", "AUA"}},
		{"L", []string{"UUA", "UUG", "CUU", "CUC", "CUA", "CUG"}},
		{"R", []string{"CGU", "CGC", "CGA", "CGG", "AGA", "AGG"}},
		{"S", []string{"UCU", "UCC", "UCA", "UCG", "AGU", "AGC"}},
	} {
		got, err := Codons(t.name)
		c.Check(err, check.Equals, nil)
		c.Check(got, check.DeepEquals, t.want, check.Commentf("amino acid %s", t.name))
	}
	for _, name := range []string{"", "B", "*", "Met"} {
		_, err := Codons(name)
		c.Check(err, check.NotNil, check.Commentf("amino acid %q", name))
	}

	// Every sense codon is found by its amino acid.
	var n int
	for letter := range aminoAcids {
		codons, err := Codons(string(letter))
		c.Check(err, check.Equals, nil)
		n += len(codons)
	}
	c.Check(n, check.Equals, 61)

	var buf bytes.Buffer
	c.Assert(WriteCodonTable(&buf), check.Equals, nil)
	lines := strings.Split(buf.String(), "\n")
	c.Check(lines[0], check.Equals, "UUU (Phe/F)\tUUC (Phe/F)\tUUA (Leu/L)\tUUG (Leu/L)\t")
	c.Check(lines[4], check.Equals, "")
	c.Check(lines[len(lines)-3], check.Equals, "Initiation codon: AUG")
	c.Check(lines[len(lines)-2], check.Equals, "Termination codon: UAA,UAG,UGA")
}

func (s *S) TestShuffle(c *check.C) {
	first, n := write(c, func(w *fasta.Writer) (int, error) { return Shuffle(strings.NewReader(in), w, 1) })
	c.Check(n, check.Equals, 3)
	second, _ := write(c, func(w *fasta.Writer) (int, error) { return Shuffle(strings.NewReader(in), w, 1) })
	c.Check(second, check.Equals, first)

	got := ids(c, first)
	sort.Strings(got)
	c.Check(got, check.DeepEquals, []string{"a", "b", "c"})
}

func (s *S) TestSample(c *check.C) {
	var many strings.Builder
	for i := 0; i < 100; i++ {
		many.WriteString(">s" + string(rune('A'+i%26)) + string(rune('a'+i/26)) + "\nACGT\n")
	}
	all := ids(c, many.String())

	out, n := write(c, func(w *fasta.Writer) (int, error) { return Sample(strings.NewReader(many.String()), w, 10, 7) })
	c.Check(n, check.Equals, 10)
	got := ids(c, out)
	c.Check(len(got), check.Equals, 10)

	// Sampled records keep their input order.
	pos := make(map[string]int)
	for i, id := range all {
		pos[id] = i
	}
	for i := 1; i < len(got); i++ {
		c.Check(pos[got[i-1]] < pos[got[i]], check.Equals, true)
	}

	again, _ := write(c, func(w *fasta.Writer) (int, error) { return Sample(strings.NewReader(many.String()), w, 10, 7) })
	c.Check(again, check.Equals, out)

	out, n = write(c, func(w *fasta.Writer) (int, error) { return Sample(strings.NewReader(in), w, 5, 7) })
	c.Check(n, check.Equals, 3)
	c.Check(out, check.Equals, recA+recB+recC)
}

func (s *S) TestSampleTwoPass(c *check.C) {
	var many strings.Builder
	for i := 0; i < 500; i++ {
		many.WriteString(">s" + strconv.Itoa(i) + "\nACGT\n")
	}
	for _, t := range []struct {
		n    int
		seed uint64
	}{
		{n: 1, seed: 1},
		{n: 10, seed: 7},
		{n: 100, seed: 69},
		{n: 500, seed: 3},
		{n: 600, seed: 3},
	} {
		want, wantN := write(c, func(w *fasta.Writer) (int, error) { return Sample(strings.NewReader(many.String()), w, t.n, t.seed) })
		got, n := write(c, func(w *fasta.Writer) (int, error) { return SampleTwoPass(opener(many.String()), w, t.n, t.seed) })
		c.Check(got, check.Equals, want, check.Commentf("n=%d seed=%d", t.n, t.seed))
		c.Check(n, check.Equals, wantN, check.Commentf("n=%d seed=%d", t.n, t.seed))
	}

	_, err := SampleTwoPass(func() (io.ReadCloser, error) { return nil, os.ErrNotExist }, NewWriter(io.Discard, 0), 2, 1)
	c.Check(err, check.Equals, os.ErrNotExist)
}

func (s *S) TestSort(c *check.C) {
	for i, t := range []struct {
		key     SortKey
		reverse bool
		want    []string
	}{
		{key: ByName, reverse: true, want: []string{"c", "b", "a"}},
		{key: ByLength, want: []string{"c", "a", "b"}},
		{key: ByLength, reverse: true, want: []string{"b", "a", "c"}},
		{key: ByGC, want: []string{"b", "a", "c"}},
		{key: BySeq, want: []string{"b", "a", "c"}},
	} {
		out, _ := write(c, func(w *fasta.Writer) (int, error) { return Sort(strings.NewReader(in), w, t.key, t.reverse) })
		c.Check(ids(c, out), check.DeepEquals, t.want, check.Commentf("Test %d", i))
	}
	_, err := Sort(strings.NewReader(in), NewWriter(io.Discard, 0), SortKey(99), false)
	c.Check(err, check.NotNil)
}

func (s *S) TestSplit(c *check.C) {
	dir := c.MkDir()
	paths, err := Split(strings.NewReader(in), dir, ".fa.gz", false, 0, 6)
	c.Assert(err, check.Equals, nil)
	c.Check(paths, check.DeepEquals, []string{
		filepath.Join(dir, "a.fa.gz"),
		filepath.Join(dir, "b.fa.gz"),
		filepath.Join(dir, "c.fa.gz"),
	})

	compressed, err := xopen.IsCompressed(paths[0])
	c.Check(err, check.Equals, nil)
	c.Check(compressed, check.Equals, true)

	r, err := xopen.Open(paths[0])
	c.Assert(err, check.Equals, nil)
	got, err := io.ReadAll(r)
	r.Close()
	c.Check(err, check.Equals, nil)
	c.Check(string(got), check.Equals, ">a\nACGTACGG\n")

	_, err = Split(strings.NewReader(">x/y\nACGT\n"), dir, "fa", false, 0, 6)
	c.Check(err, check.NotNil)
}

func (s *S) TestToFastq(c *check.C) {
	var buf bytes.Buffer
	n, err := ToFastq(strings.NewReader(in), &buf, 'F', false)
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 3)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	c.Assert(len(lines), check.Equals, 12)
	c.Check(lines[0], check.Equals, "@a")
	c.Check(lines[1], check.Equals, "ACGTACGG")
	c.Check(strings.HasPrefix(lines[2], "+"), check.Equals, true)
	c.Check(lines[3], check.Equals, "FFFFFFFF")
	c.Check(lines[8], check.Equals, "@c")

	_, err = ToFastq(strings.NewReader(in), &buf, ' ', false)
	c.Check(err, check.NotNil)
}

func (s *S) TestGC(c *check.C) {
	c.Check(GC(nil), check.Equals, 0.0)
	c.Check(GC([]byte("gcAT")), check.Equals, 0.5)
}

func (s *S) TestKmers(c *check.C) {
	var buf bytes.Buffer
	n, err := Kmers(strings.NewReader(">a\nACGTAC\n>b\nacgtt\n>c\nACG\n"), &buf, 4, true)
	c.Check(err, check.Equals, nil)
	c.Check(n, check.Equals, 4)
	c.Check(buf.String(), check.Equals, "kmer\tcount\nACGT\t2\nCGTA\t1\nCGTT\t1\nGTAC\t1\n")

	_, err = Kmers(strings.NewReader(in), io.Discard, 1, false)
	c.Check(err, check.NotNil)
}

func (s *S) TestChunk(c *check.C) {
	prefix := filepath.Join(c.MkDir(), "part")
	paths, err := Chunk(strings.NewReader(in), prefix, "fa.zst", 2, 0, 3)
	c.Assert(err, check.Equals, nil)
	c.Check(paths, check.DeepEquals, []string{prefix + "0.fa.zst", prefix + "1.fa.zst"})

	var got []string
	for _, p := range paths {
		r, err := xopen.Open(p)
		c.Assert(err, check.Equals, nil)
		b, err := io.ReadAll(r)
		r.Close()
		c.Check(err, check.Equals, nil)
		got = append(got, string(b))
	}
	c.Check(got, check.DeepEquals, []string{recA + recB, recC})

	_, err = Chunk(strings.NewReader(in), prefix, "", 0, 0, 3)
	c.Check(err, check.NotNil)
}
