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

/*Package geom is the geometry engine behind ifcontacts. Given a structure read with
the chem package, it finds candidate atom pairs within distance and angle
cutoffs (using a gonum k-d tree), resolves atom indexes to chain/residue/atom
records, and measures atom-atom, ring-centroid and edge-to-face distances.

The contact classifier in package contacts only sees this package through the
opaque AtomRef handles and the AtomRecord values it returns.*/
package geom
