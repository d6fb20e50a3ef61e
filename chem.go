/*
 * chem.go, part of ifcontacts.
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
	"fmt"
	"strconv"

	v3 "github.com/rmera/ifcontacts/v3"
)

//Atom contains the information for one atom, except for the coordinates,
//which will be in a matrix, and the b-factors, which are in a separate slice of float64.
type Atom struct {
	Name      string //PDB name of the atom
	ID        int    //The serial number in the PDB file
	index     int    //The position of the atom in the topology, starting from 0
	MolName   string //The 3-letter residue name
	MolName1  byte   //The one letter name for residues
	MolID     int    //The residue number
	Insertion string //The insertion code, if any
	Chain     string
	Symbol    string
	Mass      float64
	Occupancy float64
	Het       bool //is hetatm in the pdb file?
}

//Index returns the index of the atom
func (N *Atom) Index() int {
	return N.index
}

//ResSeq returns the residue number of the atom's residue plus the insertion code, if any.
func (N *Atom) ResSeq() string {
	return strconv.Itoa(N.MolID) + N.Insertion
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates and b-factors)
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the atoms ats, if given, or an empty one.
func NewTopology(ats ...[]*Atom) *Topology {
	top := new(Topology)
	if len(ats) == 0 || ats[0] == nil {
		top.Atoms = make([]*Atom, 0, 0)
	} else {
		top.Atoms = ats[0]
	}
	top.FillIndexes()
	return top
}

//FillIndexes sets the index field of each atom to its position in the topology.
func (T *Topology) FillIndexes() {
	for i, v := range T.Atoms {
		v.index = i
	}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic(ErrAtomOutOfRange)
	}
	return T.Atoms[i]
}

//AppendAtom appends an atom at the end of the topology
func (T *Topology) AppendAtom(at *Atom) {
	at.index = len(T.Atoms)
	T.Atoms = append(T.Atoms, at)
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Chains returns the chain identifiers present in the topology, in order of appearance.
func (T *Topology) Chains() []string {
	seen := make(map[string]bool)
	ret := make([]string, 0, 4)
	for _, v := range T.Atoms {
		if !seen[v.Chain] {
			seen[v.Chain] = true
			ret = append(ret, v.Chain)
		}
	}
	return ret
}

//ResidueAtoms returns the indexes of the atoms that belong to the residue resid
//of chain chain and whose names are in names. If names is empty, all the atoms
//of the residue are returned.
func (T *Topology) ResidueAtoms(chain string, resid int, insertion string, names ...string) []int {
	ret := make([]int, 0, 6)
	for i, v := range T.Atoms {
		if v.Chain != chain || v.MolID != resid || v.Insertion != insertion {
			continue
		}
		if len(names) > 0 && !isInString(names, v.Name) {
			continue
		}
		ret = append(ret, i)
	}
	return ret
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
//Coordinates and b-factors are stored separately from other atomic info.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
}

//NewMolecule makes a molecule with ats atoms, coords coordinates, bfactors b-factors
//and returns it. It returns an error if the number of coordinates in any frame does not match
//the number of atoms.
func NewMolecule(coords []*v3.Matrix, ats *Topology, bfactors [][]float64) (*Molecule, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil Topology", []string{"NewMolecule"}}
	}
	mol := &Molecule{Topology: ats, Coords: coords, Bfactors: bfactors}
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms. Missing b-factors
//are filled with zeroes.
func (M *Molecule) Corrupted() error {
	if len(M.Coords) == 0 {
		return CError{"Molecule has no coordinates", []string{"Corrupted"}}
	}
	for i := range M.Coords {
		if M.Coords[i] == nil || M.Len() != M.Coords[i].NVecs() {
			return CError{fmt.Sprintf("Inconsistent coordinates/atoms in frame %d: Atoms %d", i, M.Len()), []string{"Corrupted"}}
		}
		//bfactors are not as important as coordinates, so we just fill with
		//zeroes anything that is lacking or incomplete.
		if len(M.Bfactors) <= i {
			M.Bfactors = append(M.Bfactors, make([]float64, M.Len()))
		} else if len(M.Bfactors[i]) < M.Len() {
			M.Bfactors[i] = make([]float64, M.Len())
		}
	}
	return nil
}

//LenFrames returns the number of frames in the molecule
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}
