/*
 * faces.go, part of ifcontacts.
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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/ifcontacts/contacts"
)

//WriteFaces writes the residues at each side of the interface to the files
//<dir>/<name>.face1 (channel side) and <dir>/<name>.face2 (partner side), one "chain resi _" line per residue.
//The files are truncated.
func WriteFaces(dir, name string, faces *contacts.Faces) error {
	p1, p2 := faces.Unique()
	for i, part := range [][]string{p1, p2} {
		path := filepath.Join(dir, fmt.Sprintf("%s.face%d", name, i+1))
		if err := writeFace(path, part); err != nil {
			return &contacts.IOError{Path: path, Err: err}
		}
	}
	return nil
}

func writeFace(path string, part []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, v := range part {
		chain, resi, _ := strings.Cut(v, ",")
		fmt.Fprintf(w, "%s %s _\n", chain, resi)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
