/*
 * atomicdata.go, part of ifcontacts.
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

import "strings"

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Br": 79.904,
	"I":  126.90,
}

//A map between 3-letters name for the 20 standard aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"ALA": 'A',
	"ARG": 'R',
	"ASN": 'N',
	"ASP": 'D',
	"CYS": 'C',
	"GLU": 'E',
	"GLN": 'Q',
	"GLY": 'G',
	"HIS": 'H',
	"ILE": 'I',
	"LEU": 'L',
	"LYS": 'K',
	"MET": 'M',
	"PHE": 'F',
	"PRO": 'P',
	"SER": 'S',
	"THR": 'T',
	"TRP": 'W',
	"TYR": 'Y',
	"VAL": 'V',
}

//OneLetter returns the one-letter code for the standard amino acid with 3-letter name
//name, and true, or 0 and false if name is not one of the 20 standard amino acids.
func OneLetter(name string) (byte, bool) {
	l, ok := three2OneLetter[strings.ToUpper(strings.TrimSpace(name))]
	return l, ok
}

//AminoAcids returns the 3-letter names of the 20 standard amino acids.
func AminoAcids() []string {
	ret := make([]string, 0, len(three2OneLetter))
	for k := range three2OneLetter {
		ret = append(ret, k)
	}
	return ret
}

//Mass returns the mass for the element symbol, or 0 if unknown.
func Mass(symbol string) float64 {
	return symbolMass[symbol]
}

//symbolFromName tries to guess a chemical element symbol from a PDB atom name. Mostly based on AMBER names.
//It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", CError{"Couldn't guess symbol from empty PDB name", []string{"symbolFromName"}}
	}
	//names starting with a digit are usually hydrogens, as in 1HB.
	if name[0] >= '0' && name[0] <= '9' {
		name = strings.TrimLeft(name, "0123456789")
		if name == "" {
			return "", CError{"Couldn't guess symbol from PDB name", []string{"symbolFromName"}}
		}
	}
	switch {
	case name[0] == 'H':
		return "H", nil
	case name == "CU":
		return "Cu", nil
	case name == "CL":
		return "Cl", nil
	case name[0] == 'C':
		//CA is the alpha carbon far more often than calcium.
		return "C", nil
	case name == "NA":
		return "Na", nil
	case name[0] == 'N':
		return "N", nil
	case name[0] == 'O':
		return "O", nil
	case name[0] == 'P':
		return "P", nil
	case name == "SE":
		return "Se", nil
	case name[0] == 'S':
		return "S", nil
	case strings.HasPrefix(name, "ZN"):
		return "Zn", nil
	case strings.HasPrefix(name, "FE"):
		return "Fe", nil
	case strings.HasPrefix(name, "MG"):
		return "Mg", nil
	}
	return "", CError{"Couldn't guess symbol from PDB name " + name, []string{"symbolFromName"}}
}

//normSymbol puts an element symbol in the usual capitalization (i.e. "CL" becomes "Cl")
func normSymbol(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
