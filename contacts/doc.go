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

//Package contacts classifies candidate atom pairs of a protein complex into
//hydrogen bonds, salt bridges and hydrophobic/aromatic contacts, and aggregates
//the classified contacts into per-chain-pair sets of residue pairs.
//
//The package never looks at coordinates. All geometry is delegated to a
//Geometry, which finds the candidate pairs, resolves atom references and
//measures distances. geom.Structure is the implementation used by the
//ifcontacts program.
package contacts
