/*
 * doc.go, part of ifcontacts.
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

/*Package chem is the base package of ifcontacts. It provides atom and molecule structures,
facilities for reading PDB and mmCIF files (plain, gzip- or zstd-compressed), writing PDB files and the
residue and element tables used to classify interface contacts.

	**Capabilities**

    Reads and writes PDB files. Multi-model PDBs are read as one topology
	plus one set of coordinates per model.

    Reads the atom_site loop of mmCIF (PDBx) files, also compressed.

    Guesses the element of atoms that lack one, from the atom name.

    Maps residue names to one-letter codes for the 20 standard amino acids.

    Adds hydrogens to a structure by means of the Reduce program, if present
	in the PATH.

Coordinates are stored in v3.Matrix objects (github.com/rmera/ifcontacts/v3), each row
of which represents one point in space.*/
package chem
