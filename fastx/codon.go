// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastx

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Codon is an RNA codon of the standard genetic code.
type Codon struct {
	Codon  string
	Letter byte // One letter amino acid code, '*' for stop.
}

const (
	rnaBases = "UCAG"
	// Standard code amino acids in rnaBases order of first, second
	// and third codon position.
	standardCode = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

	StartCodon = "AUG"
)

var aminoAcids = map[byte]string{
	'A': "Ala", 'C': "Cys", 'D': "Asp", 'E': "Glu", 'F': "Phe",
	'G': "Gly", 'H': "His", 'I': "Ile", 'K': "Lys", 'L': "Leu",
	'M': "Met", 'N': "Asn", 'P': "Pro", 'Q': "Gln", 'R': "Arg",
	'S': "Ser", 'T': "Thr", 'V': "Val", 'W': "Trp", 'Y': "Tyr",
}

// CodonTable returns the 64 codons of the standard genetic code
// ordered by U, C, A and G at the first, second and third position.
func CodonTable() []Codon {
	t := make([]Codon, 0, len(standardCode))
	for i, aa := range []byte(standardCode) {
		t = append(t, Codon{
			Codon:  string([]byte{rnaBases[i/16], rnaBases[i/4%4], rnaBases[i%4]}),
			Letter: aa,
		})
	}
	return t
}

// String returns the codon with its amino acid, as in "UUU (Phe/F)".
// The initiation codon is labelled Start and stop codons Stop.
func (c Codon) String() string {
	switch {
	case c.Codon == StartCodon:
		return c.Codon + " (Start)"
	case c.Letter == '*':
		return c.Codon + " (Stop)"
	}
	return fmt.Sprintf("%s (%s/%c)", c.Codon, aminoAcids[c.Letter], c.Letter)
}

// Codons returns the codons coding for the amino acid with the given
// one letter code, in table order.
func Codons(letter string) ([]string, error) {
	name := strings.ToUpper(letter)
	if len(name) != 1 || aminoAcids[name[0]] == "" {
		return nil, fmt.Errorf("fastx: no amino acid named %q", letter)
	}
	var codons []string
	for _, c := range CodonTable() {
		if c.Letter == name[0] {
			codons = append(codons, c.Codon)
		}
	}
	return codons, nil
}

// StopCodons returns the termination codons of the standard code.
func StopCodons() []string {
	var stops []string
	for _, c := range CodonTable() {
		if c.Letter == '*' {
			stops = append(stops, c.Codon)
		}
	}
	return stops
}

// WriteCodonTable writes the codon table to w, four codons to a line
// and a blank line after each block sharing a first base, followed by
// the initiation and termination codons.
func WriteCodonTable(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, c := range CodonTable() {
		bw.WriteString(c.String())
		bw.WriteByte('\t')
		if (i+1)%4 == 0 {
			bw.WriteByte('\n')
		}
		if (i+1)%16 == 0 {
			bw.WriteByte('\n')
		}
	}
	fmt.Fprintf(bw, "Initiation codon: %s\n", StartCodon)
	fmt.Fprintf(bw, "Termination codon: %s\n", strings.Join(StopCodons(), ","))
	return bw.Flush()
}
