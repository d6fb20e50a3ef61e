/*
 * errors.go, part of ifcontacts.
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

package contacts

import "fmt"

//LookupError is returned when a residue name is not one of the 20 standard amino acids.
//It aborts the processing of the structure being aggregated.
type LookupError struct {
	Residue string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("contacts: residue %q is not a standard amino acid", e.Residue)
}

//GeometryError wraps an error from the Geometry, or an invalid value returned by it.
type GeometryError struct {
	Op  string
	Err error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("contacts: geometry %s: %v", e.Op, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

//IOError wraps a failure to write a contact log.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("contacts: writing log: %v", e.Err)
	}
	return fmt.Sprintf("contacts: writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
