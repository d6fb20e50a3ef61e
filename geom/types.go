/*
 * types.go, part of ifcontacts.
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
	"strings"
)

//Mode selects the pairing or measuring heuristic used by the geometry engine.
//The numbers follow the ones PyMOL uses for the equivalent measurements.
type Mode int

const (
	ModeAny          Mode = 0 //Any pair within the distance cutoff
	ModePolar        Mode = 1 //Polar pairs, with the D-H...A angle checked when hydrogens are present
	ModeRingCentroid Mode = 6 //Distance between the centroids of the aromatic rings of both residues
	ModeEdgeToFace   Mode = 7 //Distance between the aromatic ring centroid of the first residue and the second atom
)

func (m Mode) String() string {
	switch m {
	case ModeAny:
		return "any"
	case ModePolar:
		return "polar"
	case ModeRingCentroid:
		return "ring-centroid"
	case ModeEdgeToFace:
		return "edge-to-face"
	}
	return "unknown"
}

//AtomRef identifies one atom of one structure. It is an opaque handle: only
//the structure that produced it can resolve it.
type AtomRef struct {
	Object string
	Index  int
}

//AtomRecord contains the resolved attributes of an atom.
type AtomRecord struct {
	Chain       string
	ResidueSeq  string
	ResidueName string
	AtomName    string
	Element     string
}

//Pair is a candidate pair of atoms. The order of the atoms is preserved.
type Pair struct {
	A, B AtomRef
}

//Selection restricts the atoms of a structure considered when looking for pairs.
//Empty Elements or Chains mean no restriction. An empty Object means the structure
//being queried.
type Selection struct {
	Object   string
	Elements []string
	Chains   []string
}

//WithElements returns a copy of the selection restricted to the elements given.
func (s Selection) WithElements(elements ...string) Selection {
	s.Elements = append([]string(nil), elements...)
	return s
}

func (s Selection) hasElement(e string) bool {
	if len(s.Elements) == 0 {
		return true
	}
	for _, v := range s.Elements {
		if strings.EqualFold(v, e) {
			return true
		}
	}
	return false
}

func (s Selection) hasChain(c string) bool {
	if len(s.Chains) == 0 {
		return true
	}
	for _, v := range s.Chains {
		if v == c {
			return true
		}
	}
	return false
}

//ErrNoInteraction is returned by Distance when the geometric criterion of the
//requested mode is not fulfilled within the given cutoff.
var ErrNoInteraction = errors.New("geom: no interaction within cutoff")
