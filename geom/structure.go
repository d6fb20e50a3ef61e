/*
 * structure.go, part of ifcontacts.
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
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/rmera/ifcontacts"
	v3 "github.com/rmera/ifcontacts/v3"
)

const (
	//maximum X-H distance for a hydrogen to be considered bonded to a heavy atom X.
	hBondedCutoff = 1.2
	//maximum angle, in degrees, between the ring normal and the centroid-atom vector
	//for an edge-to-face (ModeEdgeToFace) interaction.
	EdgeToFaceMaxAngle = 45.0
)

//Structure is one frame of a molecule prepared for contact searches.
//It fullfills the Geometry interface of package contacts.
type Structure struct {
	name      string
	mol       *chem.Molecule
	coords    *v3.Matrix
	hydrogens map[int][]int //heavy atom index -> indexes of the hydrogens bonded to it
}

//NewStructure returns a Structure named name for the frame frame of mol.
func NewStructure(name string, mol *chem.Molecule, frame int) (*Structure, error) {
	if mol == nil || frame < 0 || frame >= mol.LenFrames() {
		return nil, fmt.Errorf("geom: invalid molecule or frame %d for %s", frame, name)
	}
	S := &Structure{name: name, mol: mol, coords: mol.Coords[frame]}
	S.assignHydrogens()
	return S, nil
}

//Name returns the name of the structure, which is also the Object of its AtomRefs.
func (S *Structure) Name() string { return S.name }

//Len returns the number of atoms in the structure
func (S *Structure) Len() int { return S.mol.Len() }

//Ref returns the AtomRef for the atom with index i.
func (S *Structure) Ref(i int) AtomRef { return AtomRef{Object: S.name, Index: i} }

func isHydrogen(at *chem.Atom) bool {
	return strings.EqualFold(at.Symbol, "H") || strings.EqualFold(at.Symbol, "D")
}

//assignHydrogens bonds each hydrogen to its nearest heavy atom, if that atom is closer than hBondedCutoff.
func (S *Structure) assignHydrogens() {
	S.hydrogens = make(map[int][]int)
	heavy := make(atomPoints, 0, S.mol.Len())
	hs := make([]int, 0)
	for i := 0; i < S.mol.Len(); i++ {
		if isHydrogen(S.mol.Atom(i)) {
			hs = append(hs, i)
			continue
		}
		heavy = append(heavy, S.point(i))
	}
	if len(hs) == 0 || len(heavy) == 0 {
		return
	}
	t := newTree(heavy)
	for _, h := range hs {
		c, d := t.Nearest(S.point(h))
		if c == nil || d > hBondedCutoff*hBondedCutoff {
			continue
		}
		x := c.(atomPoint).index
		S.hydrogens[x] = append(S.hydrogens[x], h)
	}
}

func (S *Structure) point(i int) atomPoint {
	return atomPoint{index: i, x: [3]float64{S.coords.At(i, 0), S.coords.At(i, 1), S.coords.At(i, 2)}}
}

func (S *Structure) checkObject(object string) error {
	if object != "" && object != S.name {
		return fmt.Errorf("geom: object %s is not loaded (structure is %s)", object, S.name)
	}
	return nil
}

//selected returns the indexes of the atoms in the selection, in increasing order.
func (S *Structure) selected(sel Selection) []int {
	ret := make([]int, 0, S.mol.Len())
	for i := 0; i < S.mol.Len(); i++ {
		at := S.mol.Atom(i)
		if sel.hasElement(at.Symbol) && sel.hasChain(at.Chain) {
			ret = append(ret, i)
		}
	}
	return ret
}

//FindPairs returns the pairs of atoms (a, b), with a in sel1 and b in sel2, that are
//closer than cutoff. For ModePolar, the deviation from linearity of the D-H...A angle (in degrees)
//must also be equal or smaller than angle, whenever either atom has bonded hydrogens.
//A pair can appear in both orientations if both atoms are in both selections.
//The pairs are sorted by the index of the first atom, then by the index of the second.
func (S *Structure) FindPairs(sel1, sel2 Selection, mode Mode, cutoff, angle float64) ([]Pair, error) {
	if err := S.checkObject(sel1.Object); err != nil {
		return nil, err
	}
	if err := S.checkObject(sel2.Object); err != nil {
		return nil, err
	}
	if cutoff <= 0 || math.IsNaN(cutoff) {
		return nil, fmt.Errorf("geom: invalid cutoff %v", cutoff)
	}
	if mode != ModeAny && mode != ModePolar {
		return nil, fmt.Errorf("geom: mode %s can't be used to find pairs", mode)
	}
	first := S.selected(sel1)
	second := S.selected(sel2)
	if len(first) == 0 || len(second) == 0 {
		return nil, nil
	}
	points := make(atomPoints, 0, len(second))
	for _, i := range second {
		points = append(points, S.point(i))
	}
	t := newTree(points)
	ret := make([]Pair, 0, len(first))
	for _, i := range first {
		neighbors := within(t, S.point(i), cutoff)
		sort.Ints(neighbors)
		for _, j := range neighbors {
			if j == i {
				continue
			}
			if mode == ModePolar && !S.polarAngleOK(i, j, angle) {
				continue
			}
			ret = append(ret, Pair{A: S.Ref(i), B: S.Ref(j)})
		}
	}
	return ret, nil
}

//polarAngleOK checks the D-H...A geometry for the pair of atoms i and j, trying
//both atoms as the donor. If none of them has hydrogens, the check passes.
func (S *Structure) polarAngleOK(i, j int, maxdev float64) bool {
	hi := S.hydrogens[i]
	hj := S.hydrogens[j]
	if len(hi) == 0 && len(hj) == 0 {
		return true
	}
	best := math.Inf(1)
	dev := func(donor, h, acceptor int) float64 {
		hv := S.coords.Vec(h)
		a := v3.Angle(r3.Sub(S.coords.Vec(donor), hv), r3.Sub(S.coords.Vec(acceptor), hv))
		if math.IsNaN(a) {
			return math.Inf(1)
		}
		return 180 - a*chem.Rad2Deg
	}
	for _, h := range hi {
		best = math.Min(best, dev(i, h, j))
	}
	for _, h := range hj {
		best = math.Min(best, dev(j, h, i))
	}
	return best <= maxdev
}

//Resolve returns the AtomRecord for the atom ref.
func (S *Structure) Resolve(ref AtomRef) (AtomRecord, error) {
	if err := S.checkObject(ref.Object); err != nil {
		return AtomRecord{}, err
	}
	if ref.Index < 0 || ref.Index >= S.mol.Len() {
		return AtomRecord{}, fmt.Errorf("geom: atom index %d out of range for %s (%d atoms)", ref.Index, S.name, S.mol.Len())
	}
	at := S.mol.Atom(ref.Index)
	return AtomRecord{
		Chain:       at.Chain,
		ResidueSeq:  at.ResSeq(),
		ResidueName: at.MolName,
		AtomName:    at.Name,
		Element:     strings.ToUpper(at.Symbol),
	}, nil
}

//Distance measures the distance between the atoms a and b with the given mode.
//ModeAny and ModePolar give the atom-atom distance, ModeRingCentroid the distance between the
//centroids of the rings of the residues of a and b, and ModeEdgeToFace the distance between the
//centroid of the ring of a's residue and b, provided that b lies within EdgeToFaceMaxAngle of
//the ring normal. If cutoff is larger than 0 and the distance is larger than cutoff, or the
//directional criterion is not met, ErrNoInteraction is returned along with the distance.
func (S *Structure) Distance(a, b AtomRef, mode Mode, cutoff float64) (float64, error) {
	for _, r := range []AtomRef{a, b} {
		if err := S.checkObject(r.Object); err != nil {
			return 0, err
		}
		if r.Index < 0 || r.Index >= S.mol.Len() {
			return 0, fmt.Errorf("geom: atom index %d out of range for %s", r.Index, S.name)
		}
	}
	var d float64
	switch mode {
	case ModeAny, ModePolar:
		d = S.coords.Distance(a.Index, b.Index)
	case ModeRingCentroid:
		ra, err := residueRing(S.mol.Topology, S.coords, a.Index)
		if err != nil {
			return 0, err
		}
		rb, err := residueRing(S.mol.Topology, S.coords, b.Index)
		if err != nil {
			return 0, err
		}
		d = r3.Norm(r3.Sub(ra.center, rb.center))
	case ModeEdgeToFace:
		ra, err := residueRing(S.mol.Topology, S.coords, a.Index)
		if err != nil {
			return 0, err
		}
		v := r3.Sub(S.coords.Vec(b.Index), ra.center)
		d = r3.Norm(v)
		ang := v3.Angle(ra.normal, v) * chem.Rad2Deg
		//the normal can point either way.
		ang = math.Min(ang, 180-ang)
		if math.IsNaN(ang) || ang > EdgeToFaceMaxAngle {
			return d, ErrNoInteraction
		}
	default:
		return 0, fmt.Errorf("geom: unknown distance mode %d", int(mode))
	}
	if cutoff > 0 && d > cutoff {
		return d, ErrNoInteraction
	}
	return d, nil
}
