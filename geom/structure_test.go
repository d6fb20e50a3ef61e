/*
 * structure_test.go, part of ifcontacts.
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

package geom

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/ifcontacts"
)

func loadComplex(Te *testing.T) *Structure {
	Te.Helper()
	mol, err := chem.PDBFileRead("../testdata/complex.pdb", true)
	require.NoError(Te, err)
	S, err := NewStructure("complex", mol, 0)
	require.NoError(Te, err)
	return S
}

func pairIdx(ps []Pair) [][2]int {
	ret := make([][2]int, 0, len(ps))
	for _, p := range ps {
		ret = append(ret, [2]int{p.A.Index, p.B.Index})
	}
	return ret
}

func TestFindPairsPolar(Te *testing.T) {
	S := loadComplex(Te)
	sel := Selection{Object: "complex"}.WithElements("N", "O", "S")
	ps, err := S.FindPairs(sel, sel, ModePolar, 3.5, 150)
	require.NoError(Te, err)
	assert.Equal(Te, [][2]int{{2, 11}, {2, 20}, {11, 2}, {20, 2}}, pairIdx(ps))
	for _, p := range ps {
		assert.Equal(Te, "complex", p.A.Object)
	}
	//NZ-HZ1...OD1 deviates about 108 degrees from linearity
	ps, err = S.FindPairs(sel, sel, ModePolar, 3.5, 100)
	require.NoError(Te, err)
	assert.Equal(Te, [][2]int{{2, 11}, {11, 2}}, pairIdx(ps))
	//no angular check at all
	ps, err = S.FindPairs(sel, sel, ModeAny, 3.5, 0)
	require.NoError(Te, err)
	assert.Len(Te, ps, 4)
}

func TestFindPairsChains(Te *testing.T) {
	S := loadComplex(Te)
	a := Selection{Chains: []string{"A"}}.WithElements("N", "O")
	b := Selection{Chains: []string{"B"}}.WithElements("N", "O")
	ps, err := S.FindPairs(a, b, ModePolar, 3.5, 150)
	require.NoError(Te, err)
	assert.Equal(Te, [][2]int{{2, 11}}, pairIdx(ps))
	empty := Selection{Chains: []string{"Z"}}
	ps, err = S.FindPairs(a, empty, ModeAny, 3.5, 0)
	assert.NoError(Te, err)
	assert.Empty(Te, ps)
}

func TestFindPairsErrors(Te *testing.T) {
	S := loadComplex(Te)
	_, err := S.FindPairs(Selection{Object: "other"}, Selection{}, ModeAny, 3.5, 0)
	assert.Error(Te, err)
	_, err = S.FindPairs(Selection{}, Selection{}, ModeAny, 0, 0)
	assert.Error(Te, err)
	_, err = S.FindPairs(Selection{}, Selection{}, ModeRingCentroid, 5, 0)
	assert.Error(Te, err)
}

func TestResolve(Te *testing.T) {
	S := loadComplex(Te)
	r, err := S.Resolve(S.Ref(11))
	require.NoError(Te, err)
	assert.Equal(Te, AtomRecord{Chain: "B", ResidueSeq: "20", ResidueName: "GLU", AtomName: "OE1", Element: "O"}, r)
	_, err = S.Resolve(AtomRef{Object: "complex", Index: 21})
	assert.Error(Te, err)
	_, err = S.Resolve(AtomRef{Object: "complex", Index: -1})
	assert.Error(Te, err)
	_, err = S.Resolve(AtomRef{Object: "nope", Index: 0})
	assert.Error(Te, err)
}

func TestDistance(Te *testing.T) {
	S := loadComplex(Te)
	d, err := S.Distance(S.Ref(2), S.Ref(11), ModePolar, 0)
	require.NoError(Te, err)
	assert.InDelta(Te, 2.9, d, 1e-6)

	//stacked rings
	d, err = S.Distance(S.Ref(4), S.Ref(13), ModeRingCentroid, 5.0)
	require.NoError(Te, err)
	assert.InDelta(Te, 3.8, d, 1e-4)
	d, err = S.Distance(S.Ref(4), S.Ref(13), ModeRingCentroid, 3.0)
	assert.True(Te, errors.Is(err, ErrNoInteraction))
	assert.InDelta(Te, 3.8, d, 1e-4)

	//atom above the ring, slightly off the normal
	d, err = S.Distance(S.Ref(4), S.Ref(13), ModeEdgeToFace, 5.0)
	require.NoError(Te, err)
	assert.InDelta(Te, math.Sqrt(1.39*1.39+3.8*3.8), d, 1e-3)
	_, err = S.Distance(S.Ref(4), S.Ref(13), ModeEdgeToFace, 4.0)
	assert.True(Te, errors.Is(err, ErrNoInteraction))
	//atom in the plane of the ring
	_, err = S.Distance(S.Ref(4), S.Ref(20), ModeEdgeToFace, 0)
	assert.True(Te, errors.Is(err, ErrNoInteraction))

	//LYS has no ring
	_, err = S.Distance(S.Ref(2), S.Ref(13), ModeRingCentroid, 5.0)
	assert.Error(Te, err)
	assert.False(Te, errors.Is(err, ErrNoInteraction))
	_, err = S.Distance(S.Ref(2), S.Ref(13), Mode(3), 5.0)
	assert.Error(Te, err)
}

func TestRingNormal(Te *testing.T) {
	S := loadComplex(Te)
	r, err := residueRing(S.mol.Topology, S.coords, 6)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r.center.X, 1e-6)
	assert.InDelta(Te, 20, r.center.Y, 1e-6)
	assert.InDelta(Te, 1, math.Abs(r.normal.Z), 1e-6)
}

func TestPolarWithoutHydrogens(Te *testing.T) {
	pdb := "ATOM      1  OG  SER A   1       0.000   0.000   0.000  1.00  0.00           O\n" +
		"ATOM      2  OD1 ASP B   2       3.000   0.000   0.000  1.00  0.00           O\n"
	mol, err := chem.PDBRead(strings.NewReader(pdb), true)
	require.NoError(Te, err)
	S, err := NewStructure("x", mol, 0)
	require.NoError(Te, err)
	ps, err := S.FindPairs(Selection{Chains: []string{"A"}}, Selection{Chains: []string{"B"}}, ModePolar, 3.5, 0)
	require.NoError(Te, err)
	assert.Len(Te, ps, 1)
	_, err = NewStructure("x", mol, 3)
	assert.Error(Te, err)
}

func TestIncompleteRing(Te *testing.T) {
	pdb := "ATOM      1  CB  PHE A  30       0.000   0.000   0.000  1.00  0.00           C\n" +
		"ATOM      2  CG  PHE A  30       1.500   0.000   0.000  1.00  0.00           C\n" +
		"ATOM      3  CD1 LEU B  50       5.000   0.000   0.000  1.00  0.00           C\n"
	mol, err := chem.PDBRead(strings.NewReader(pdb), true)
	require.NoError(Te, err)
	S, err := NewStructure("truncated", mol, 0)
	require.NoError(Te, err)
	_, err = S.Distance(S.Ref(1), S.Ref(2), ModeEdgeToFace, 4.0)
	assert.True(Te, errors.Is(err, ErrNoInteraction))
	_, err = S.Distance(S.Ref(1), S.Ref(2), ModeRingCentroid, 5.0)
	assert.True(Te, errors.Is(err, ErrNoInteraction))
}
