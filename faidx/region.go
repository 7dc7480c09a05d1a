// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faidx

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a query for a named sequence or a 1-based inclusive range
// of it.
type Region struct {
	Name string

	// Start and End are the 1-based inclusive bounds of the region.
	// They are only meaningful when Ranged is true.
	Start, End int64
	Ranged     bool
}

// String returns the region in name or name:start-end form.
func (r Region) String() string {
	if !r.Ranged {
		return r.Name
	}
	return fmt.Sprintf("%s:%d-%d", r.Name, r.Start, r.End)
}

// ParseRegion parses a region descriptor of the form name or
// name:start-end. Errors returned by ParseRegion wrap ErrMalformedRegion.
func ParseRegion(s string) (Region, error) {
	name, rng, ranged := strings.Cut(s, ":")
	if name == "" {
		return Region{}, fmt.Errorf("%w %q: empty sequence name", ErrMalformedRegion, s)
	}
	if !ranged {
		return Region{Name: name}, nil
	}
	from, to, ok := strings.Cut(rng, "-")
	if !ok {
		return Region{}, fmt.Errorf("%w %q: missing '-' in range", ErrMalformedRegion, s)
	}
	start, err := strconv.ParseInt(from, 10, 64)
	if err != nil {
		return Region{}, fmt.Errorf("%w %q: bad start: %v", ErrMalformedRegion, s, err)
	}
	end, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return Region{}, fmt.Errorf("%w %q: bad end: %v", ErrMalformedRegion, s, err)
	}
	if start > end {
		return Region{}, fmt.Errorf("%w %q: start after end", ErrMalformedRegion, s)
	}
	return Region{Name: name, Start: start, End: end, Ranged: true}, nil
}
