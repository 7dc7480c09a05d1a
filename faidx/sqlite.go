// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faidx

import (
	"strings"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS sequence (
	ord         INTEGER PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	length      INTEGER NOT NULL,
	byte_offset INTEGER NOT NULL,
	line_bases  INTEGER NOT NULL,
	line_width  INTEGER NOT NULL
)`

// sqlRecord is a row of the SQLite "sequence" table.
type sqlRecord struct {
	Ord       int    `db:"ord"`
	Name      string `db:"name"`
	Length    int64  `db:"length"`
	Offset    int64  `db:"byte_offset"`
	LineBases int64  `db:"line_bases"`
	LineWidth int64  `db:"line_width"`
}

func connectSQLite(path string) (*sqlx.DB, error) {
	// URI filenames must begin with "file:".
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return sqlx.Connect("sqlite", path)
}

// SaveSQLite writes idx to the "sequence" table of the SQLite database
// at path, creating the database and table if needed and replacing any
// rows already present.
func SaveSQLite(path string, idx *Index) error {
	db, err := connectSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err = db.Exec(sqliteSchema); err != nil {
		return err
	}
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM sequence"); err != nil {
		tx.Rollback()
		return err
	}
	const insert = `INSERT INTO sequence (ord, name, length, byte_offset, line_bases, line_width)
		VALUES (:ord, :name, :length, :byte_offset, :line_bases, :line_width)`
	for i, r := range idx.Records() {
		row := sqlRecord{
			Ord:       i,
			Name:      r.Name,
			Length:    r.Length,
			Offset:    r.Offset,
			LineBases: r.LineBases,
			LineWidth: r.LineWidth,
		}
		if _, err = tx.NamedExec(insert, row); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadSQLite reads an index previously written by SaveSQLite.
func LoadSQLite(path string) (*Index, error) {
	db, err := connectSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows []sqlRecord
	err = db.Select(&rows, "SELECT ord, name, length, byte_offset, line_bases, line_width FROM sequence ORDER BY ord")
	if err != nil {
		return nil, err
	}
	var idx Index
	for _, r := range rows {
		idx.Add(Record{
			Name:      r.Name,
			Length:    r.Length,
			Offset:    r.Offset,
			LineBases: r.LineBases,
			LineWidth: r.LineWidth,
		})
	}
	return &idx, nil
}
