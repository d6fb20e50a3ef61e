/*
 * logs.go, part of ifcontacts.
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
	"os"
	"path/filepath"

	"github.com/rmera/ifcontacts/contacts"
)

//LogPath returns the path of the contact log of type t for the structure name, under outdir.
func LogPath(outdir string, t contacts.ContactType, name string) string {
	switch t {
	case contacts.Hydrophobic:
		return filepath.Join(outdir, "hydrophobic", "distance", "hydrophobic_"+name)
	default:
		return filepath.Join(outdir, t.String(), t.String()+"_"+name)
	}
}

//CreateLog creates (or truncates) the contact log of type t for the structure name,
//creating the directories as needed.
func CreateLog(outdir string, t contacts.ContactType, name string) (*os.File, error) {
	path := LogPath(outdir, t, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &contacts.IOError{Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &contacts.IOError{Path: path, Err: err}
	}
	return f, nil
}
