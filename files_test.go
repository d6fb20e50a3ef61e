/*
 * files_test.go, part of ifcontacts.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//TestPDBRead reads the test complex and checks a few atoms.
func TestPDBRead(Te *testing.T) {
	mol, err := PDBFileRead("testdata/complex.pdb", true)
	require.NoError(Te, err)
	assert.Equal(Te, 21, mol.Len())
	assert.Equal(Te, 1, mol.LenFrames())
	assert.Equal(Te, []string{"A", "B", "C"}, mol.Chains())
	nz := mol.Atom(2)
	assert.Equal(Te, "NZ", nz.Name)
	assert.Equal(Te, "LYS", nz.MolName)
	assert.Equal(Te, byte('K'), nz.MolName1)
	assert.Equal(Te, 10, nz.MolID)
	assert.Equal(Te, "10", nz.ResSeq())
	assert.Equal(Te, "N", nz.Symbol)
	assert.Equal(Te, 2, nz.Index())
	assert.InDelta(Te, 5.0, mol.Coords[0].At(2, 0), 1e-6)
	assert.Equal(Te, "H", mol.Atom(3).Symbol)
}

func TestPDBReadCompressed(Te *testing.T) {
	plain, err := PDBFileRead("testdata/complex.pdb", true)
	require.NoError(Te, err)
	gz, err := PDBFileRead("testdata/complex.pdb.gz", true)
	require.NoError(Te, err)
	assert.Equal(Te, plain.Len(), gz.Len())
	assert.True(Te, plainEqual(plain, gz))

	raw, err := os.ReadFile("testdata/complex.pdb")
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "complex.pdb.zst")
	f, err := os.Create(name)
	require.NoError(Te, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(Te, err)
	_, err = enc.Write(raw)
	require.NoError(Te, err)
	require.NoError(Te, enc.Close())
	require.NoError(Te, f.Close())
	zs, err := PDBFileRead(name, true)
	require.NoError(Te, err)
	assert.True(Te, plainEqual(plain, zs))
}

func plainEqual(a, b *Molecule) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Atom(i).Name != b.Atom(i).Name || a.Coords[0].Distance(i, i) != 0 {
			return false
		}
		for j := 0; j < 3; j++ {
			if a.Coords[0].At(i, j) != b.Coords[0].At(i, j) {
				return false
			}
		}
	}
	return true
}

func TestPDBReadModels(Te *testing.T) {
	mol, err := PDBFileRead("testdata/twomodels.pdb", true)
	require.NoError(Te, err)
	assert.Equal(Te, 2, mol.LenFrames())
	assert.Equal(Te, 21, mol.Len())
	assert.InDelta(Te, 1.0, mol.Coords[1].At(0, 0)-mol.Coords[0].At(0, 0), 1e-6)
}

func TestPDBReadErrors(Te *testing.T) {
	_, err := PDBFileRead("testdata/doesnotexist.pdb", true)
	assert.Error(Te, err)
	_, err = PDBRead(strings.NewReader("HEADER nothing here\nEND\n"), true)
	assert.Error(Te, err)
	bad := "ATOM      1  N   LYS A  1X       0.000   0.000   0.000  1.00  0.00           N\n"
	_, err = PDBRead(strings.NewReader(bad), true)
	assert.Error(Te, err)
}

func TestPDBWriteRead(Te *testing.T) {
	mol, err := PDBFileRead("testdata/complex.pdb", true)
	require.NoError(Te, err)
	var b bytes.Buffer
	require.NoError(Te, PDBWrite(&b, mol.Coords[0], mol, mol.Bfactors[0]))
	mol2, err := PDBRead(&b, true)
	require.NoError(Te, err)
	require.Equal(Te, mol.Len(), mol2.Len())
	for i := 0; i < mol.Len(); i++ {
		assert.Equal(Te, mol.Atom(i).Name, mol2.Atom(i).Name)
		assert.Equal(Te, mol.Atom(i).Chain, mol2.Atom(i).Chain)
		assert.Equal(Te, mol.Atom(i).Symbol, mol2.Atom(i).Symbol)
		assert.InDelta(Te, 0, mol.Coords[0].Vec(i).X-mol2.Coords[0].Vec(i).X, 1e-3)
	}
}

func TestAltLocations(Te *testing.T) {
	pdb := "ATOM      1  OG ASER A   5       0.000   0.000   0.000  0.50  0.00           O\n" +
		"ATOM      2  OG BSER A   5       1.000   0.000   0.000  0.50  0.00           O\n"
	mol, err := PDBRead(strings.NewReader(pdb), true)
	require.NoError(Te, err)
	assert.Equal(Te, 1, mol.Len())

	//atoms with no A location keep the first one found.
	pdb = "ATOM      1  CA  SER A   5      -1.000   0.000   0.000  1.00  0.00           C\n" +
		"ATOM      2  OG BSER A   5       1.000   0.000   0.000  0.60  0.00           O\n" +
		"ATOM      3  OG CSER A   5       2.000   0.000   0.000  0.40  0.00           O\n" +
		"ATOM      4  OG BSER A   6       3.000   0.000   0.000  0.60  0.00           O\n"
	mol, err = PDBRead(strings.NewReader(pdb), true)
	require.NoError(Te, err)
	require.Equal(Te, 3, mol.Len())
	assert.Equal(Te, "OG", mol.Atom(1).Name)
	assert.InDelta(Te, 1.0, mol.Coords[0].At(1, 0), 1e-9)
	assert.InDelta(Te, 0.6, mol.Atom(1).Occupancy, 1e-9)
	assert.Equal(Te, 6, mol.Atom(2).MolID)
}
