// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/biogo/fakit/faidx"
)

func newFaidxCmd(opts *options) *cobra.Command {
	var (
		out     string
		db      string
		rebuild bool
	)
	cmd := &cobra.Command{
		Use:     "faidx FASTA [REGION...]",
		Aliases: []string{"fai"},
		Short:   "create index and random access to fasta files",
		Long: `Create a .fai index for an uncompressed FASTA file, or reuse an existing
one, and extract regions from the file by random access.

Regions are given as name or name:start-end with 1-based inclusive
coordinates, for example:

  fakit faidx seq.fa chr1:1-5000 chr2:100-800

Regions that cannot be parsed or resolved are skipped with a warning.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, regions := args[0], args[1:]
			log := opts.logger

			var (
				idx   *faidx.Index
				built bool
				err   error
			)
			if rebuild {
				idx, err = faidx.Build(path)
				built = true
			} else {
				idx, built, err = faidx.LoadOrBuild(path)
			}
			if err != nil {
				return err
			}
			if built {
				log.Info("index built", "path", faidx.IndexPath(path), "sequences", idx.Len())
			} else {
				log.Info("using existing index", "path", faidx.IndexPath(path), "sequences", idx.Len())
			}
			for _, name := range idx.Duplicates() {
				log.Warn("duplicate sequence name, keeping last entry", "name", name)
			}
			if db != "" {
				if err = faidx.SaveSQLite(db, idx); err != nil {
					return err
				}
				log.Info("index exported", "db", db)
			}
			if len(regions) == 0 {
				return nil
			}

			f, err := faidx.OpenFile(path, idx)
			if err != nil {
				return err
			}
			defer f.Close()
			w, err := opts.output(out)
			if err != nil {
				return err
			}
			n, err := faidx.Query(w, f, regions, opts.width, func(region string, err error) {
				log.Warn("skipping region", "region", region, "err", err)
			})
			if cerr := w.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			log.Info("regions written", "written", n, "requested", len(regions))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fasta file name, or write to stdout")
	cmd.Flags().StringVar(&db, "db", "", "also export the index to this SQLite database")
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "rescan the fasta file even if an index exists")
	return cmd
}
