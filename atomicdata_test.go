/*
 * atomicdata_test.go, part of ifcontacts.
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

package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//TestOneLetterTable checks that the amino acid table is total
//on the 20 standard residues and injective.
func TestOneLetterTable(Te *testing.T) {
	names := AminoAcids()
	assert.Len(Te, names, 20)
	seen := make(map[byte]string)
	for _, n := range names {
		l, ok := OneLetter(n)
		assert.True(Te, ok, n)
		if prev, dup := seen[l]; dup {
			Te.Errorf("%s and %s share the code %c", prev, n, l)
		}
		seen[l] = n
	}
	_, ok := OneLetter("HOH")
	assert.False(Te, ok)
	l, ok := OneLetter("phe")
	assert.True(Te, ok)
	assert.Equal(Te, byte('F'), l)
}

func TestSymbolFromName(Te *testing.T) {
	for name, sym := range map[string]string{
		"CA": "C", "NZ": "N", "OE1": "O", "SG": "S", "HZ1": "H", "1HB": "H", "ZN": "Zn", "SE": "Se", "CL": "Cl",
	} {
		s, err := symbolFromName(name)
		assert.NoError(Te, err, name)
		assert.Equal(Te, sym, s, name)
	}
	_, err := symbolFromName("XX")
	assert.Error(Te, err)
}
