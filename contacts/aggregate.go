/*
 * aggregate.go, part of ifcontacts.
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

package contacts

import (
	"fmt"
	"io"
	"unicode"
)

//numeric returns true for chain identifiers made only of digits, which
//are used for ligands and waters rather than protein chains.
func numeric(chain string) bool {
	if chain == "" {
		return false
	}
	for _, r := range chain {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

//Aggregate keeps the contacts in cs (all of type t) whose first atom is in a channel chain and
//whose second atom is in a partner chain, writes each of them to log (if not nil) and adds their
//residue pairs to rep under the type t. The residues of the kept contacts are also appended to faces, if not nil.
//Contacts with a numeric chain are logged, but not added to the report. The kept contacts are returned.
//If a residue pair key can't be built, a *LookupError is returned and nothing is written or merged.
//A failure writing to log returns an *IOError, and nothing is merged.
func Aggregate(cs []Contact, t ContactType, f ChainFilter, rep *Report, faces *Faces, log io.Writer) ([]Contact, error) {
	combos := f.combinations()
	kept := make([]Contact, 0, len(cs))
	for _, c := range cs {
		if combos[[2]string{c.A.Chain, c.B.Chain}] {
			kept = append(kept, c)
		}
	}
	pairs := make(map[ChainPairKey]ResidueSet)
	keys := make([]ResiduePairKey, len(kept))
	for i, c := range kept {
		if numeric(c.A.Chain) || numeric(c.B.Chain) {
			continue
		}
		k, err := NewResiduePairKey(c.A, c.B)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	var part1, part2 []string
	for i, c := range kept {
		if log != nil {
			if _, err := fmt.Fprintln(log, c.String()); err != nil {
				return nil, &IOError{Err: err}
			}
		}
		part1 = append(part1, c.A.Chain+","+c.A.ResidueSeq)
		part2 = append(part2, c.B.Chain+","+c.B.ResidueSeq)
		if keys[i] == "" {
			continue
		}
		cp := NewChainPairKey(c.A.Chain, c.B.Chain)
		set, ok := pairs[cp]
		if !ok {
			set = make(ResidueSet)
			pairs[cp] = set
		}
		set.Add(keys[i])
	}
	if rep != nil {
		rep.Merge(t, pairs)
	}
	if faces != nil {
		faces.Part1 = append(faces.Part1, part1...)
		faces.Part2 = append(faces.Part2, part2...)
	}
	return kept, nil
}
