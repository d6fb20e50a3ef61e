/*
 * classify.go, part of ifcontacts.
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

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rmera/ifcontacts/geom"
)

var (
	polarElements       = []string{"N", "O", "S"}
	hydrophobicElements = []string{"C", "N", "O", "S"}

	basicResidues       = []string{"LYS", "ARG", "HIS", "HIP"}
	acidicResidues      = []string{"GLU", "ASP", "CYM"}
	basicElement        = "N"
	acidicElements      = []string{"S", "O"}
	hydrophobicResidues = []string{"ALA", "VAL", "LEU", "ILE", "PHE", "PRO", "MET"}
	aromaticResidues    = []string{"PHE", "TYR", "TRP"}
	ringAtomNames       = []string{"CG", "CZ", "CD1", "CD2", "CE1", "CE2"}
)

const (
	//cutoff for the distance between the centroids of two aromatic rings.
	RingCentroidCutoff = 5.0
	//cutoff for the distance between an aromatic ring centroid and an atom.
	EdgeToFaceCutoff = 4.0
)

//Classifier turns the candidate pairs found by its Geometry into typed contacts.
//A Classifier has no state other than its Geometry, so it can be reused for any number
//of searches on the same structure.
type Classifier struct {
	Geom Geometry
}

//NewClassifier returns a classifier that works on g.
func NewClassifier(g Geometry) *Classifier {
	return &Classifier{Geom: g}
}

//Classify runs the search for contacts of type t.
func (C *Classifier) Classify(t ContactType, sel geom.Selection, f ChainFilter, p Params) ([]Contact, error) {
	switch t {
	case HBond:
		return C.HBonds(sel, f, p)
	case SaltBridge:
		return C.SaltBridges(sel, f, p)
	case Hydrophobic:
		return C.Hydrophobic(sel, f, p)
	}
	return nil, fmt.Errorf("contacts: unknown contact type %d", int(t))
}

//candidates obtains the pairs within sel, restricted to the given elements, sorted by the index
//of the first atom. The sort is stable so the order given by the Geometry is kept otherwise.
func (C *Classifier) candidates(sel geom.Selection, elements []string, p Params) ([]geom.Pair, error) {
	s := sel.WithElements(elements...)
	pairs, err := C.Geom.FindPairs(s, s, p.Mode, p.Cutoff, p.Angle)
	if err != nil {
		return nil, &GeometryError{Op: "FindPairs", Err: err}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].A.Index < pairs[j].A.Index })
	return pairs, nil
}

func (C *Classifier) resolve(p geom.Pair) (geom.AtomRecord, geom.AtomRecord, error) {
	a, err := C.Geom.Resolve(p.A)
	if err != nil {
		return a, a, &GeometryError{Op: "Resolve", Err: err}
	}
	b, err := C.Geom.Resolve(p.B)
	if err != nil {
		return a, b, &GeometryError{Op: "Resolve", Err: err}
	}
	return a, b, nil
}

//distance measures the pair with the given mode. The boolean is false if the
//geometry reports that there is no interaction within cutoff.
func (C *Classifier) distance(p geom.Pair, mode geom.Mode, cutoff float64) (float64, bool, error) {
	d, err := C.Geom.Distance(p.A, p.B, mode, cutoff)
	if errors.Is(err, geom.ErrNoInteraction) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &GeometryError{Op: "Distance", Err: err}
	}
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false, &GeometryError{Op: "Distance", Err: fmt.Errorf("invalid distance %v between atoms %d and %d", d, p.A.Index, p.B.Index)}
	}
	return d, true, nil
}

//HBonds returns the hydrogen bonds between N, O and S atoms in sel, where the first atom
//belongs to a channel chain and the second to a partner chain.
func (C *Classifier) HBonds(sel geom.Selection, f ChainFilter, p Params) ([]Contact, error) {
	pairs, err := C.candidates(sel, polarElements, p)
	if err != nil {
		return nil, err
	}
	ret := make([]Contact, 0)
	for _, pair := range pairs {
		a, b, err := C.resolve(pair)
		if err != nil {
			return nil, err
		}
		if !f.Accept(a.Chain, b.Chain) {
			continue
		}
		d, ok, err := C.distance(pair, geom.ModeAny, 0)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ret = append(ret, Contact{A: a, B: b, Distance: d, Type: HBond})
	}
	return ret, nil
}

//isSaltBridge checks that a is a basic nitrogen and b an acidic oxygen or sulfur.
//The reverse assignment is not tested.
func isSaltBridge(a, b geom.AtomRecord) bool {
	return inStrings(basicResidues, a.ResidueName) && a.Element == basicElement &&
		inStrings(acidicResidues, b.ResidueName) && inStrings(acidicElements, b.Element)
}

//SaltBridges returns the salt bridges in sel between a basic nitrogen in a channel chain
//and an acidic oxygen or sulfur in a partner chain.
func (C *Classifier) SaltBridges(sel geom.Selection, f ChainFilter, p Params) ([]Contact, error) {
	pairs, err := C.candidates(sel, polarElements, p)
	if err != nil {
		return nil, err
	}
	ret := make([]Contact, 0)
	for _, pair := range pairs {
		a, b, err := C.resolve(pair)
		if err != nil {
			return nil, err
		}
		if !isSaltBridge(a, b) || !f.Accept(a.Chain, b.Chain) {
			continue
		}
		d, ok, err := C.distance(pair, geom.ModeAny, 0)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ret = append(ret, Contact{A: a, B: b, Distance: d, Type: SaltBridge})
	}
	return ret, nil
}

//Hydrophobic returns the contacts between hydrophobic residues in sel. Two aromatic residues
//are measured between their ring centroids, an aromatic ring atom against a non-aromatic residue
//is measured from the ring centroid (edge-to-face), and non-aromatic residues are measured
//atom to atom. Any other combination is not reported.
func (C *Classifier) Hydrophobic(sel geom.Selection, f ChainFilter, p Params) ([]Contact, error) {
	pairs, err := C.candidates(sel, hydrophobicElements, p)
	if err != nil {
		return nil, err
	}
	ret := make([]Contact, 0)
	for _, pair := range pairs {
		a, b, err := C.resolve(pair)
		if err != nil {
			return nil, err
		}
		if !inStrings(hydrophobicResidues, a.ResidueName) || !inStrings(hydrophobicResidues, b.ResidueName) {
			continue
		}
		if !f.Accept(a.Chain, b.Chain) {
			continue
		}
		aroA := inStrings(aromaticResidues, a.ResidueName)
		aroB := inStrings(aromaticResidues, b.ResidueName)
		var mode geom.Mode
		var cutoff float64
		switch {
		case aroA && aroB:
			mode, cutoff = geom.ModeRingCentroid, RingCentroidCutoff
		case aroA && inStrings(ringAtomNames, a.AtomName):
			mode, cutoff = geom.ModeEdgeToFace, EdgeToFaceCutoff
		case !aroA && !aroB:
			mode, cutoff = geom.ModeAny, 0
		default:
			continue
		}
		d, ok, err := C.distance(pair, mode, cutoff)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ret = append(ret, Contact{A: a, B: b, Distance: d, Type: Hydrophobic})
	}
	return ret, nil
}
