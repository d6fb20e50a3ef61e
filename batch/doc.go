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

//Package batch runs the contact searches over a directory of structure files.
//
//The files are split in contiguous blocks, one per worker, and each worker processes
//its structures one at a time: hydrogen bonds, salt bridges, hydrophobic contacts and then
//the outputs. An error in one structure is logged and the worker moves on to the next one.
package batch
