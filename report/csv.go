/*
 * csv.go, part of ifcontacts.
 *
 * Copyright 2024 The ifcontacts Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rmera/ifcontacts/contacts"
)

//FormatSet returns the residue pairs in the set notation of the CSV summary: {'10K,20E', '30F,40F'}
//The pairs are sorted. An empty set gives "set()".
func FormatSet(s contacts.ResidueSet) string {
	if len(s) == 0 {
		return "set()"
	}
	keys := s.Sorted()
	q := make([]string, len(keys))
	for i, k := range keys {
		q[i] = "'" + string(k) + "'"
	}
	return "{" + strings.Join(q, ", ") + "}"
}

//WriteBlock writes the CSV block for one structure: a row with the structure name,
//one row per contact type and chain pair with the residue pairs found, and an empty row.
//Contact types are written in the processing order, chain pairs sorted.
func WriteBlock(out io.Writer, rep *contacts.Report) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{rep.Name}); err != nil {
		return err
	}
	for _, t := range contacts.Types {
		for _, cp := range rep.ChainPairs(t) {
			if err := w.Write([]string{t.String(), string(cp), FormatSet(rep.Pairs[t][cp])}); err != nil {
				return err
			}
		}
	}
	if err := w.Write([]string{}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

//CSVFile appends structure blocks to a CSV file shared by several workers.
//Each block is written whole, under a lock, so blocks from different structures never interleave.
type CSVFile struct {
	path string
	mu   sync.Mutex
}

//NewCSVFile returns a CSVFile that appends to path. The file is created on the first append.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

//Path returns the path of the file.
func (c *CSVFile) Path() string { return c.path }

//Append opens the file in append mode and writes the block for rep.
func (c *CSVFile) Append(rep *contacts.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return &contacts.IOError{Path: c.path, Err: err}
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &contacts.IOError{Path: c.path, Err: err}
	}
	if err := WriteBlock(f, rep); err != nil {
		f.Close()
		return &contacts.IOError{Path: c.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &contacts.IOError{Path: c.path, Err: err}
	}
	return nil
}
