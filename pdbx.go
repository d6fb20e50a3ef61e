/*
 * pdbx.go, part of ifcontacts.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/ifcontacts/v3"
)

//the _atom_site items we read. Keys are lowercase.
const (
	siteGroup   = "_atom_site.group_pdb"
	siteID      = "_atom_site.id"
	siteSymbol  = "_atom_site.type_symbol"
	siteAlt     = "_atom_site.label_alt_id"
	siteName    = "_atom_site.auth_atom_id"
	siteLName   = "_atom_site.label_atom_id"
	siteRes     = "_atom_site.auth_comp_id"
	siteLRes    = "_atom_site.label_comp_id"
	siteChain   = "_atom_site.auth_asym_id"
	siteLChain  = "_atom_site.label_asym_id"
	siteSeq     = "_atom_site.auth_seq_id"
	siteLSeq    = "_atom_site.label_seq_id"
	siteIns     = "_atom_site.pdbx_pdb_ins_code"
	siteX       = "_atom_site.cartn_x"
	siteY       = "_atom_site.cartn_y"
	siteZ       = "_atom_site.cartn_z"
	siteOcc     = "_atom_site.occupancy"
	siteBfactor = "_atom_site.b_iso_or_equiv"
	siteModel   = "_atom_site.pdbx_pdb_model_num"
)

//pdbxmap maps the _atom_site item names to their column.
type pdbxmap map[string]int

//get returns the field for the first of the given items present in the row, or
//"" if none is present or the value is one of the mmCIF null values ('.' and '?').
func (m pdbxmap) get(row []string, items ...string) string {
	for _, s := range items {
		if k, ok := m[s]; ok && k < len(row) {
			v := row[k]
			if v == "." || v == "?" {
				return ""
			}
			return v
		}
	}
	return ""
}

//pdbxFields splits an mmCIF data line in its fields. Fields can be quoted with
//single or double quotes, and a quote only closes a field if followed by a space or the end of the line.
func pdbxFields(line string) []string {
	ret := make([]string, 0, 20)
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if q := line[i]; q == '\'' || q == '"' {
			j := i + 1
			for j < len(line) && !(line[j] == q && (j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t')) {
				j++
			}
			ret = append(ret, line[i+1:min(j, len(line))])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		ret = append(ret, line[i:j])
		i = j
	}
	return ret
}

func pdbxAtom(row []string, m pdbxmap, line int) (*Atom, []float64, float64, error) {
	at := new(Atom)
	var err error
	at.Het = m.get(row, siteGroup) == "HETATM"
	if id := m.get(row, siteID); id != "" {
		if at.ID, err = strconv.Atoi(id); err != nil {
			return nil, nil, 0, CError{fmt.Sprintf("Error reading line %d: %s", line, err.Error()), []string{"pdbxAtom"}}
		}
	}
	at.Name = m.get(row, siteName, siteLName)
	at.MolName = m.get(row, siteRes, siteLRes)
	at.MolName1, _ = OneLetter(at.MolName)
	at.Chain = m.get(row, siteChain, siteLChain)
	at.Insertion = m.get(row, siteIns)
	seq := m.get(row, siteSeq, siteLSeq)
	if seq != "" {
		if at.MolID, err = strconv.Atoi(seq); err != nil {
			return nil, nil, 0, CError{fmt.Sprintf("Error reading residue number in line %d: %s", line, err.Error()), []string{"pdbxAtom"}}
		}
	}
	at.Symbol = normSymbol(m.get(row, siteSymbol))
	if at.Symbol == "" {
		at.Symbol, _ = symbolFromName(at.Name)
	}
	at.Mass = symbolMass[at.Symbol]
	if occ := m.get(row, siteOcc); occ != "" {
		at.Occupancy, _ = strconv.ParseFloat(occ, 64)
	}
	c := make([]float64, 3)
	for j, item := range []string{siteX, siteY, siteZ} {
		v := m.get(row, item)
		if c[j], err = strconv.ParseFloat(v, 64); err != nil {
			return nil, nil, 0, CError{fmt.Sprintf("Error reading coordinates in line %d: %s", line, err.Error()), []string{"pdbxAtom"}}
		}
	}
	var bfac float64
	if b := m.get(row, siteBfactor); b != "" {
		bfac, _ = strconv.ParseFloat(b, 64)
	}
	return at, c, bfac, nil
}

//PDBxFileRead reads the atoms of the mmCIF file name (which can be gzip or zstd-compressed) and returns
//a molecule with one frame per model.
func PDBxFileRead(name string) (*Molecule, error) {
	f, err := OpenStructure(name)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead "+name)
	}
	defer f.Close()
	mol, err := PDBxRead(f)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead "+name)
	}
	return mol, nil
}

//PDBxRead reads the _atom_site loop of an mmCIF file and returns a molecule with one frame per model.
//The author chain, residue and atom names are used when present. Only the first alternate location
//found for each atom is read.
func PDBxRead(pdbx io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(pdbx)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	top := NewTopology()
	coords := [][]float64{make([]float64, 0, 300)}
	bfactors := [][]float64{make([]float64, 0, 100)}
	m := make(pdbxmap)
	var inLoop, inSite, done bool
	var model string
	altSeen := make(map[string]struct{})
	contlines := 0
	for scanner.Scan() && !done {
		contlines++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			if inSite && len(top.Atoms) > 0 {
				done = true
			}
			inLoop = false
			continue
		case strings.HasPrefix(strings.ToLower(line), "loop_"):
			inLoop = true
			continue
		case inLoop && strings.HasPrefix(line, "_"):
			item := strings.ToLower(strings.Fields(line)[0])
			if strings.HasPrefix(item, "_atom_site.") {
				inSite = true
				m[item] = len(m)
			}
			continue
		case strings.HasPrefix(line, "_") || strings.HasPrefix(line, "data_"):
			if inSite && len(top.Atoms) > 0 {
				done = true
			}
			inLoop = false
			continue
		}
		if !inLoop || !inSite {
			continue
		}
		row := pdbxFields(line)
		if len(row) < len(m) {
			return nil, CError{fmt.Sprintf("Line %d has %d fields, expected %d", contlines, len(row), len(m)), []string{"PDBxRead"}}
		}
		mod := m.get(row, siteModel)
		if model == "" {
			model = mod
		}
		if mod != model {
			model = mod
			coords = append(coords, make([]float64, 0, len(coords[0])))
			bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			clear(altSeen)
		}
		//keep the first alternate location of each atom, whatever its label.
		if m.get(row, siteAlt) != "" {
			key := strings.Join([]string{m.get(row, siteChain, siteLChain), m.get(row, siteSeq, siteLSeq),
				m.get(row, siteIns), m.get(row, siteName, siteLName)}, "\x00")
			if _, ok := altSeen[key]; ok {
				continue
			}
			altSeen[key] = struct{}{}
		}
		at, c, bfac, err := pdbxAtom(row, m, contlines)
		if err != nil {
			return nil, errDecorate(err, "PDBxRead")
		}
		//the topology comes from the first model only.
		if len(coords) == 1 {
			top.AppendAtom(at)
		}
		last := len(coords) - 1
		coords[last] = append(coords[last], c...)
		bfactors[last] = append(bfactors[last], bfac)
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{"Error reading mmCIF: " + err.Error(), []string{"PDBxRead"}}
	}
	if top.Len() == 0 {
		return nil, CError{"No atoms found in mmCIF", []string{"PDBxRead"}}
	}
	mcoords := make([]*v3.Matrix, 0, len(coords))
	for i, v := range coords {
		mat, err := v3.NewMatrix(v)
		if err != nil {
			return nil, CError{fmt.Sprintf("Malformed coordinates in model %d: %s", i+1, err.Error()), []string{"PDBxRead"}}
		}
		mcoords = append(mcoords, mat)
	}
	mol, err := NewMolecule(mcoords, top, bfactors)
	if err != nil {
		return nil, errDecorate(err, "PDBxRead")
	}
	return mol, nil
}

//StructureFileRead reads name as mmCIF if its extension (after any compression
//extension) is .cif or .mmcif, and as PDB otherwise.
func StructureFileRead(name string) (*Molecule, error) {
	lname := strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		lname = strings.TrimSuffix(lname, ext)
	}
	if strings.HasSuffix(lname, ".cif") || strings.HasSuffix(lname, ".mmcif") {
		return PDBxFileRead(name)
	}
	return PDBFileRead(name, true)
}
