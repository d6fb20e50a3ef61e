/*
 * hydrogens.go, part of ifcontacts.
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
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

//ReduceProgram is the name of the Reduce executable, which must be in the PATH.
var ReduceProgram = "reduce"

//Reduce uses the Reduce program
//(Word, et. al. (1999) J. Mol. Biol. 285, 1735-1747.
//For more information see http://kinemage.biochem.duke.edu)
//to protonate the frame frame of the molecule mol. If build is 0, residues are not flipped,
//if it is 1, they are flipped when that improves the H-bond network, and if larger than 1,
//Reduce's -BUILD option is used. Reduce's report is written to report, if not nil.
//The returned molecule has a single frame.
func Reduce(ctx context.Context, mol *Molecule, frame, build int, report io.Writer) (*Molecule, error) {
	if frame >= mol.LenFrames() || frame < 0 {
		return nil, CError{"Requested frame out of range", []string{"Reduce"}}
	}
	pdb, err := PDBStringWrite(mol.Coords[frame], mol, nil)
	if err != nil {
		return nil, errDecorate(err, "Reduce")
	}
	flip := "-NOFLIP"
	if build == 1 {
		flip = "-FLIP"
	} else if build > 1 {
		flip = "-BUILD"
	}
	var stdout bytes.Buffer
	reduce := exec.CommandContext(ctx, ReduceProgram, flip, "-")
	reduce.Stdin = strings.NewReader(pdb)
	reduce.Stdout = &stdout
	if report != nil {
		reduce.Stderr = report
	}
	err = reduce.Run()
	//Reduce returns 1 on some perfectly normal runs.
	var exitErr *exec.ExitError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.ExitCode() == 1) {
		return nil, CError{"Reduce failed: " + err.Error(), []string{"Reduce"}}
	}
	mol2, err := PDBRead(&stdout, true)
	if err != nil {
		return nil, errDecorate(err, "Reduce")
	}
	return mol2, nil
}
