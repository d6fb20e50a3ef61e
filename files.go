/*
 * files.go, part of ifcontacts.
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
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/ifcontacts/v3"
)

//PDB_read family

//zstdReadCloser makes *zstd.Decoder an io.ReadCloser,
//since its Close method doesn't return an error.
type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if err2 := g.f.Close(); err == nil {
		err = err2
	}
	return err
}

//OpenStructure opens the file name for reading. Files ending in .gz are
//read through a gzip decoder, files ending in .zst or .zstd through a zstd decoder,
//and any other file is read as it is.
func OpenStructure(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{fmt.Sprintf("Can't open gzip stream in %s: %s", name, err.Error()), []string{"OpenStructure"}}
		}
		return &gzipReadCloser{r, f}, nil
	case strings.HasSuffix(lname, ".zst") || strings.HasSuffix(lname, ".zstd"):
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{fmt.Sprintf("Can't open zstd stream in %s: %s", name, err.Error()), []string{"OpenStructure"}}
		}
		return &zstdReadCloser{r, f}, nil
	}
	return f, nil
}

//pad returns line with enough trailing spaces so it is at least 80 characters long.
func pad(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 80 {
		line = line + strings.Repeat(" ", 80-len(line))
	}
	return line
}

//Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates and b-factors, which  are returned
//separately as an array of 3 float64 and a float64, respectively
func readFullPDBLine(line string, readAdditional bool, contlines int) (*Atom, []float64, float64, error) {
	err := make([]error, 7)
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	//PDB says that pos. 17 is for other thing but I see that is
	//used for residue name in many cases
	atom.MolName = strings.TrimSpace(line[17:21])
	atom.MolName1, _ = OneLetter(atom.MolName)
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	atom.Insertion = strings.TrimSpace(line[26:27])
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	var bfactor float64
	if occ := strings.TrimSpace(line[54:60]); occ != "" {
		atom.Occupancy, err[5] = strconv.ParseFloat(occ, 64)
	}
	if bf := strings.TrimSpace(line[60:66]); bf != "" {
		bfactor, err[6] = strconv.ParseFloat(bf, 64)
	}
	//we try to read the additional only if indicated and if it is there
	//In this part we don't catch errors. If something is missing we
	//just ommit it
	if readAdditional {
		atom.Symbol = normSymbol(line[76:78])
	}
	//This part tries to guess the symbol from the atom name, if it has not been read
	//No error checking here, just fills symbol with the empty string the function returns
	if len(atom.Symbol) == 0 {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	for i := range err {
		if err[i] != nil {
			return nil, nil, 0, CError{fmt.Sprintf("Error reading line %d: %s", contlines, err[i].Error()), []string{"readFullPDBLine"}}
		}
	}
	atom.Mass = symbolMass[atom.Symbol]
	return atom, coords, bfactor, nil
}

//Parses a PDB line if only the coordinates and bfactors are to be read.
func readOnlyCoordsPDBLine(line string, contlines int) ([]float64, float64, error) {
	coords := make([]float64, 3)
	err := make([]error, 4)
	var bfactor float64
	coords[0], err[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if bf := strings.TrimSpace(line[60:66]); bf != "" {
		bfactor, err[3] = strconv.ParseFloat(bf, 64)
	}
	for i := range err {
		if err[i] != nil {
			return nil, 0, CError{fmt.Sprintf("Error reading line %d: %s", contlines, err[i].Error()), []string{"readOnlyCoordsPDBLine"}}
		}
	}
	return coords, bfactor, nil
}

//PDBFileRead reads the atomic entries of the PDB file pdbname (which can be gzip or zstd-compressed)
//and returns a molecule. If readAdditional is true, the element symbols are read from the file
//when present (they are guessed from the atom names otherwise).
func PDBFileRead(pdbname string, readAdditional bool) (*Molecule, error) {
	pdbfile, err := OpenStructure(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile, readAdditional)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	return mol, nil
}

//PDBRead reads the atomic entries of a PDB from pdb and returns a molecule
//with one coordinate frame per model. Only the first alternate location of each atom is read.
func PDBRead(pdb io.Reader, readAdditional bool) (*Molecule, error) {
	top := NewTopology()
	coords := [][]float64{make([]float64, 0, 300)}
	bfactors := [][]float64{make([]float64, 0, 100)}
	firstModel := true //are we reading the first model? if not we only save coordinates
	readingModel := false
	altSeen := make(map[string]struct{})
	scanner := bufio.NewScanner(pdb)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	contlines := 0 //count the lines read to better report errors
	for scanner.Scan() {
		contlines++
		line := scanner.Text()
		if len(line) < 4 {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			line = pad(line)
			//keep the first alternate location of each atom, whatever its label.
			if line[16] != ' ' {
				key := line[12:16] + line[21:27]
				if _, ok := altSeen[key]; ok {
					continue
				}
				altSeen[key] = struct{}{}
			}
			var c []float64
			var bfac float64
			var err error
			if !firstModel {
				c, bfac, err = readOnlyCoordsPDBLine(line, contlines)
				if err != nil {
					return nil, errDecorate(err, "PDBRead")
				}
			} else {
				var at *Atom
				at, c, bfac, err = readFullPDBLine(line, readAdditional, contlines)
				if err != nil {
					return nil, errDecorate(err, "PDBRead")
				}
				//atom data other than coords is the same in all models so just read for the first.
				top.AppendAtom(at)
			}
			last := len(coords) - 1
			coords[last] = append(coords[last], c...)
			bfactors[last] = append(bfactors[last], bfac)
		case strings.HasPrefix(line, "MODEL"):
			if readingModel || len(coords[0]) > 0 {
				firstModel = false
				coords = append(coords, make([]float64, 0, len(coords[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
			readingModel = true
			clear(altSeen)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{"Error reading PDB: " + err.Error(), []string{"PDBRead"}}
	}
	if top.Len() == 0 {
		return nil, CError{"No atoms found in PDB", []string{"PDBRead"}}
	}
	mcoords := make([]*v3.Matrix, 0, len(coords))
	for i, v := range coords {
		if len(v) == 0 {
			continue
		}
		m, err := v3.NewMatrix(v)
		if err != nil {
			return nil, CError{fmt.Sprintf("Malformed coordinates in model %d: %s", i+1, err.Error()), []string{"PDBRead"}}
		}
		mcoords = append(mcoords, m)
	}
	mol, err := NewMolecule(mcoords, top, bfactors)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	return mol, nil
}

//End PDB_read family

//PDBFileWrite writes a PDB file with name pdbname for the coordinates coords, topology mol and
//b-factors bfact (which can be nil).
func PDBFileWrite(pdbname string, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return errDecorate(err, "PDBFileWrite")
	}
	defer out.Close()
	return errDecorate(PDBWrite(out, coords, mol, bfact), "PDBFileWrite")
}

//PDBStringWrite returns a string with the PDB representation of coords, mol and bfact.
func PDBStringWrite(coords *v3.Matrix, mol Atomer, bfact []float64) (string, error) {
	var b strings.Builder
	if err := PDBWrite(&b, coords, mol, bfact); err != nil {
		return "", errDecorate(err, "PDBStringWrite")
	}
	return b.String(), nil
}

//PDBWrite writes a PDB representation of coords, mol and bfact (which can be nil) to out.
func PDBWrite(out io.Writer, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	if coords == nil || mol == nil {
		return CError{"Nil coordinates or topology", []string{"PDBWrite"}}
	}
	if mol.Len() != coords.NVecs() || (bfact != nil && len(bfact) < mol.Len()) {
		return CError{fmt.Sprintf("Mismatched sizes: %d atoms, %d coordinates", mol.Len(), coords.NVecs()), []string{"PDBWrite"}}
	}
	w := bufio.NewWriter(out)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		record := "ATOM  "
		if at.Het {
			record = "HETATM"
		}
		name := at.Name
		//names with 1-letter elements start in the second column.
		if len(name) < 4 && len(at.Symbol) < 2 {
			name = " " + name
		}
		var bf float64
		if bfact != nil {
			bf = bfact[i]
		}
		ins := at.Insertion
		if ins == "" {
			ins = " "
		}
		chain := at.Chain
		if chain == "" {
			chain = " "
		}
		_, err := fmt.Fprintf(w, "%-6s%5d %-4s %3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
			record, (at.ID % 100000), name, at.MolName, chain[:1], at.MolID, ins[:1],
			coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), at.Occupancy, bf, strings.ToUpper(at.Symbol))
		if err != nil {
			return CError{"Failed to write PDB: " + err.Error(), []string{"PDBWrite"}}
		}
	}
	if _, err := w.WriteString("END\n"); err != nil {
		return CError{"Failed to write PDB: " + err.Error(), []string{"PDBWrite"}}
	}
	if err := w.Flush(); err != nil {
		return CError{"Failed to write PDB: " + err.Error(), []string{"PDBWrite"}}
	}
	return nil
}
