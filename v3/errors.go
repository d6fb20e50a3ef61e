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

package v3

import "fmt"

//Error is the general structure for v3 errors. It fullfills chem.Error
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return fmt.Sprintf("v3: %s", err.message) }

//Decorate adds the caller's name (and optionally information) to the error.
//It returns the current decoration slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is the type used for all the panics raised in the v3 package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	not3xXMatrix  = PanicMsg("goChem/v3: A v3.Matrix should have 3 columns")
	ErrOutOfRange = PanicMsg("goChem/v3: Requested vector out of range")
)
