// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/index/kmerindex"
	"github.com/biogo/biogo/seq/linear"
)

// Kmers counts the k-mers over A, C, G and T in the sequences of r and
// writes a tab separated table of kmer and count to w, sorted by kmer.
// K-mers spanning other letters are not counted, and sequences too
// short to index are skipped. Kmers returns the number of distinct
// k-mers written.
func Kmers(r io.Reader, w io.Writer, k int, header bool) (int, error) {
	if k < kmerindex.MinKmerLen {
		return 0, fmt.Errorf("fastx: kmer size %d less than %d", k, kmerindex.MinKmerLen)
	}
	counts := make(map[kmerindex.Kmer]int)
	err := Each(r, func(s *linear.Seq) error {
		if s.Len() <= k {
			return nil
		}
		ki, err := kmerindex.New(k, linear.NewSeq(s.ID, s.Seq, alphabet.DNA))
		if err != nil {
			return err
		}
		freqs, ok := ki.KmerFrequencies()
		if !ok {
			return nil
		}
		for km, n := range freqs {
			counts[km] += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	type row struct {
		kmer  string
		count int
	}
	rows := make([]row, 0, len(counts))
	for km, n := range counts {
		ks, err := kmerindex.Format(km, k, alphabet.DNA)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row{strings.ToUpper(ks), n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].kmer < rows[j].kmer })

	bw := bufio.NewWriter(w)
	if header {
		bw.WriteString("kmer\tcount\n")
	}
	for _, r := range rows {
		fmt.Fprintf(bw, "%s\t%d\n", r.kmer, r.count)
	}
	return len(rows), bw.Flush()
}
