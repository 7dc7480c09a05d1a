// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bytes"
	"errors"
	"io"
	"sort"

	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"golang.org/x/exp/rand"
)

// Shuffle writes the records of r to w in an order determined by seed.
// All records are held in memory.
func Shuffle(r io.Reader, w *fasta.Writer, seed uint64) (int, error) {
	seqs, err := ReadAll(r)
	if err != nil {
		return 0, err
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(seqs), func(i, j int) { seqs[i], seqs[j] = seqs[j], seqs[i] })
	return writeAll(w, seqs)
}

// sampler draws a reservoir sample of n orders from a stream.
type sampler struct {
	rnd  *rand.Rand
	n    int
	seen int
}

func newSampler(n int, seed uint64) *sampler {
	return &sampler{rnd: rand.New(rand.NewSource(seed)), n: n}
}

// next returns the reservoir slot taken by the next record, or -1 if
// the record is not sampled.
func (s *sampler) next() int {
	order := s.seen
	s.seen++
	if order < s.n {
		return order
	}
	if j := s.rnd.Intn(order + 1); j < s.n {
		return j
	}
	return -1
}

// Sample writes a uniform random sample of n records of r to w,
// keeping their input order. Only the sampled records are held in
// memory.
func Sample(r io.Reader, w *fasta.Writer, n int, seed uint64) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	type item struct {
		order int
		s     *linear.Seq
	}
	var (
		smp       = newSampler(n, seed)
		reservoir = make([]item, 0, n)
	)
	err := Each(r, func(s *linear.Seq) error {
		order := smp.seen
		switch j := smp.next(); {
		case j < 0:
		case j == len(reservoir):
			reservoir = append(reservoir, item{order, s})
		default:
			reservoir[j] = item{order, s}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	sort.Slice(reservoir, func(i, j int) bool { return reservoir[i].order < reservoir[j].order })
	seqs := make([]*linear.Seq, len(reservoir))
	for i, it := range reservoir {
		seqs[i] = it.s
	}
	return writeAll(w, seqs)
}

// SampleTwoPass writes the same sample as Sample with the same seed,
// reading the data twice through open so that only the orders of the
// sampled records are held in memory.
func SampleTwoPass(open Opener, w *fasta.Writer, n int, seed uint64) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	smp := newSampler(n, seed)
	orders := make([]int, 0, n)
	err := pass(open, func(*linear.Seq) error {
		order := smp.seen
		switch j := smp.next(); {
		case j < 0:
		case j == len(orders):
			orders = append(orders, order)
		default:
			orders[j] = order
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	sort.Ints(orders)

	var order, written int
	err = pass(open, func(s *linear.Seq) error {
		defer func() { order++ }()
		if written == len(orders) {
			return errStop
		}
		if order != orders[written] {
			return nil
		}
		if _, err := w.Write(s); err != nil {
			return err
		}
		written++
		return nil
	})
	if err == errStop {
		err = nil
	}
	return written, err
}

// SortKey is a record ordering used by Sort.
type SortKey int

const (
	ByName SortKey = iota
	BySeq
	ByGC
	ByLength
)

// Sort writes the records of r to w ordered by key, in descending order
// if reverse is true. Records with equal keys keep their input order.
// All records are held in memory.
func Sort(r io.Reader, w *fasta.Writer, key SortKey, reverse bool) (int, error) {
	seqs, err := ReadAll(r)
	if err != nil {
		return 0, err
	}
	var less func(a, b *linear.Seq) bool
	switch key {
	case ByName:
		less = func(a, b *linear.Seq) bool { return a.ID < b.ID }
	case BySeq:
		less = func(a, b *linear.Seq) bool { return bytes.Compare(Bytes(a), Bytes(b)) < 0 }
	case ByGC:
		less = func(a, b *linear.Seq) bool { return GC(Bytes(a)) < GC(Bytes(b)) }
	case ByLength:
		less = func(a, b *linear.Seq) bool { return a.Len() < b.Len() }
	default:
		return 0, errors.New("fastx: unknown sort key")
	}
	sort.SliceStable(seqs, func(i, j int) bool {
		if reverse {
			return less(seqs[j], seqs[i])
		}
		return less(seqs[i], seqs[j])
	})
	return writeAll(w, seqs)
}

func writeAll(w *fasta.Writer, seqs []*linear.Seq) (int, error) {
	for i, s := range seqs {
		if _, err := w.Write(s); err != nil {
			return i, err
		}
	}
	return len(seqs), nil
}
