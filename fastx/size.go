// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/biogo/biogo/seq/linear"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Size writes a tab separated table of sequence lengths in r to w. If
// all is true the counts of A, T, G, C and N bases are included.
func Size(r io.Reader, w io.Writer, all, header bool) (int, error) {
	bw := bufio.NewWriter(w)
	if header {
		if all {
			bw.WriteString("seq_name\tlength\tcount_A\tcount_T\tcount_G\tcount_C\tcount_N\n")
		} else {
			bw.WriteString("seq_name\tlength\n")
		}
	}
	var n int
	err := Each(r, func(s *linear.Seq) error {
		n++
		if !all {
			_, err := fmt.Fprintf(bw, "%s\t%d\n", s.ID, s.Len())
			return err
		}
		b := Bytes(s)
		_, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n", s.ID, len(b),
			countBases(b, "Aa"), countBases(b, "Tt"), countBases(b, "Gg"), countBases(b, "Cc"), countBases(b, "Nn"))
		return err
	})
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// Stats holds summary statistics of a FASTA stream. Lengths are in
// bases and base counts ignore case.
type Stats struct {
	Count  int
	Total  int
	Min    int
	Max    int
	Mean   float64
	StdDev float64
	N50    int

	A, C, G, T, N int
}

// GC returns the fraction of G and C among the counted bases.
func (st Stats) GC() float64 { return st.rate(st.G + st.C) }

// NRate returns the fraction of N among the counted bases.
func (st Stats) NRate() float64 { return st.rate(st.N) }

func (st Stats) rate(n int) float64 {
	total := st.A + st.C + st.G + st.T + st.N
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Summarize returns the statistics of the sequences in r. A letter
// other than A, C, G, T or N is an error.
func Summarize(r io.Reader) (Stats, error) {
	var (
		st   Stats
		lens []float64
	)
	err := Each(r, func(s *linear.Seq) error {
		lens = append(lens, float64(s.Len()))
		for _, b := range Bytes(s) {
			switch b {
			case 'A', 'a':
				st.A++
			case 'C', 'c':
				st.C++
			case 'G', 'g':
				st.G++
			case 'T', 't':
				st.T++
			case 'N', 'n':
				st.N++
			default:
				return fmt.Errorf("fastx: invalid DNA base %q in %s", b, s.ID)
			}
		}
		return nil
	})
	if err != nil || len(lens) == 0 {
		return Stats{}, err
	}

	st.Count = len(lens)
	st.Total = int(floats.Sum(lens))
	st.Min = int(floats.Min(lens))
	st.Max = int(floats.Max(lens))
	st.Mean, st.StdDev = stat.MeanStdDev(lens, nil)

	// Sort in descending order of sequence length.
	sort.Sort(sort.Reverse(sort.Float64Slice(lens)))
	var csum float64
	for _, l := range lens {
		csum += l
		if 2*csum >= float64(st.Total) {
			st.N50 = int(l)
			break
		}
	}
	return st, nil
}

// SummaryColumns selects the columns of a summary table.
type SummaryColumns struct {
	// Bases adds the base counts and the GC and N rates.
	Bases bool
	// Spread adds the length standard deviation and N50.
	Spread bool
}

// Header returns the tab separated header line of a summary table.
func (sc SummaryColumns) Header() string {
	h := "file"
	if sc.Bases {
		h += "\tcount_A\tcount_C\tcount_G\tcount_T\tcount_N\trate_GC\trate_N"
	}
	h += "\tnum_seq\tsum_len\tmin_len\tmean_len\tmax_len"
	if sc.Spread {
		h += "\tstd_len\tN50"
	}
	return h + "\n"
}

// WriteRow writes st to w as a summary table row labelled name.
func (sc SummaryColumns) WriteRow(w io.Writer, name string, st Stats) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(name)
	if sc.Bases {
		fmt.Fprintf(bw, "\t%d\t%d\t%d\t%d\t%d\t%.2f\t%.2f", st.A, st.C, st.G, st.T, st.N, st.GC(), st.NRate())
	}
	fmt.Fprintf(bw, "\t%d\t%d\t%d\t%.0f\t%d", st.Count, st.Total, st.Min, st.Mean, st.Max)
	if sc.Spread {
		fmt.Fprintf(bw, "\t%.2f\t%d", st.StdDev, st.N50)
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
