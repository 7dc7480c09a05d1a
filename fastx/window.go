// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/biogo/seq/sequtils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Window is a sliding window over a sequence.
type Window struct {
	Name string
	// Start and End are the 0-based half-open window bounds.
	Start, End int
	GC         float64
	Seq        []byte
}

// Windows returns the sliding windows of length size, advancing by
// step, over s. Windows are produced while they end before the end of
// the sequence; the final window runs from the next start position to
// the end of the sequence. Sequence letters are upper cased.
func Windows(s *linear.Seq, size, step int) ([]Window, error) {
	if size <= 0 || step <= 0 {
		return nil, errors.New("fastx: window and step size must be positive")
	}
	l := s.Len()
	if l == 0 {
		return nil, nil
	}
	var wins []Window
	for start := 0; ; start += step {
		end := start + size
		last := end >= l
		if last {
			end = l
		}
		sub := linear.NewSeq("", nil, s.Alpha)
		if err := sequtils.Truncate(sub, s, start, end); err != nil {
			return nil, err
		}
		b := bytes.ToUpper(Bytes(sub))
		wins = append(wins, Window{Name: s.ID, Start: start, End: end, GC: GC(b), Seq: b})
		if last {
			return wins, nil
		}
	}
}

// SlidingGC writes the sliding window GC content of each sequence of r
// to w. Each window is written as a tab separated line of name, 1-based
// start, end, GC fraction and sequence or, if keep is true, as a FASTA
// record named "name start-end:gc". If fn is not nil it is called for
// each window after it is written.
func SlidingGC(r io.Reader, w io.Writer, size, step int, keep bool, fn func(Window)) (int, error) {
	var (
		bw = bufio.NewWriter(w)
		n  int
	)
	err := Each(r, func(s *linear.Seq) error {
		wins, err := Windows(s, size, step)
		if err != nil {
			return err
		}
		for _, win := range wins {
			n++
			if keep {
				_, err = fmt.Fprintf(bw, ">%s %d-%d:%.4f\n%s\n", win.Name, win.Start+1, win.End, win.GC, win.Seq)
			} else {
				_, err = fmt.Fprintf(bw, "%s\t%d\t%d\t%.4f\t%s\n", win.Name, win.Start+1, win.End, win.GC, win.Seq)
			}
			if err != nil {
				return err
			}
			if fn != nil {
				fn(win)
			}
		}
		return nil
	})
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// PlotGC saves a line plot of window GC content against window
// midpoint, one line per sequence, to path. The image format is taken
// from the path extension.
func PlotGC(path string, wins []Window) error {
	if len(wins) == 0 {
		return errors.New("fastx: no windows to plot")
	}
	p := plot.New()
	p.Title.Text = "GC content"
	p.X.Label.Text = "Position (bp)"
	p.Y.Label.Text = "GC fraction"

	var (
		lines []interface{}
		pts   plotter.XYs
		name  = wins[0].Name
	)
	for _, win := range wins {
		if win.Name != name {
			lines = append(lines, name, pts)
			name, pts = win.Name, nil
		}
		pts = append(pts, plotter.XY{X: float64(win.Start+win.End) / 2, Y: win.GC})
	}
	lines = append(lines, name, pts)
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
