/*
 * rings.go, part of ifcontacts.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/rmera/ifcontacts"
	v3 "github.com/rmera/ifcontacts/v3"
)

//ringAtoms contains the names of the atoms of the aromatic ring for each residue with one.
//For TRP, only the six-membered ring is considered.
var ringAtoms = map[string][]string{
	"PHE": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"TYR": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"TRP": {"CD2", "CE2", "CE3", "CZ2", "CZ3", "CH2"},
	"HIS": {"CG", "ND1", "CD2", "CE1", "NE2"},
}

//ring is the geometric description of an aromatic ring.
type ring struct {
	center r3.Vec
	normal r3.Vec //unit vector
}

//residueRing obtains the ring of the residue to which the atom i belongs.
func residueRing(top *chem.Topology, coords *v3.Matrix, i int) (ring, error) {
	at := top.Atom(i)
	names, ok := ringAtoms[at.MolName]
	if !ok {
		return ring{}, fmt.Errorf("geom: residue %s%s of chain %s has no aromatic ring", at.MolName, at.ResSeq(), at.Chain)
	}
	idx := top.ResidueAtoms(at.Chain, at.MolID, at.Insertion, names...)
	//an incomplete ring (truncated side chain) only rules out this interaction.
	if len(idx) < 3 {
		return ring{}, fmt.Errorf("%w: only %d ring atoms found for %s%s of chain %s", ErrNoInteraction, len(idx), at.MolName, at.ResSeq(), at.Chain)
	}
	c, err := coords.Centroid(idx...)
	if err != nil {
		return ring{}, err
	}
	n, err := bestPlaneNormal(coords, idx, c)
	if err != nil {
		return ring{}, err
	}
	return ring{center: c, normal: n}, nil
}

//bestPlaneNormal returns the normal of the plane that best fits the points idx of coords,
//obtained as the right singular vector with the smallest singular value of the
//centered coordinates.
func bestPlaneNormal(coords *v3.Matrix, idx []int, center r3.Vec) (r3.Vec, error) {
	centered := mat.NewDense(len(idx), 3, nil)
	for k, i := range idx {
		p := r3.Sub(coords.Vec(i), center)
		centered.Set(k, 0, p.X)
		centered.Set(k, 1, p.Y)
		centered.Set(k, 2, p.Z)
	}
	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return r3.Vec{}, fmt.Errorf("geom: SVD failed for ring plane")
	}
	var v mat.Dense
	svd.VTo(&v)
	//singular values are in decreasing order, so the last column is the normal
	n := r3.Vec{X: v.At(0, 2), Y: v.At(1, 2), Z: v.At(2, 2)}
	return r3.Unit(n), nil
}
