/*
 * types.go, part of ifcontacts.
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
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/ifcontacts"
	"github.com/rmera/ifcontacts/geom"
)

//ContactType is the kind of a non-covalent contact.
type ContactType int

const (
	HBond ContactType = iota
	SaltBridge
	Hydrophobic
)

//Types contains all the contact types, in the order in which they are processed and reported.
var Types = []ContactType{HBond, SaltBridge, Hydrophobic}

//String returns the label used for the contact type in logs and output files.
func (t ContactType) String() string {
	switch t {
	case HBond:
		return "hbonds"
	case SaltBridge:
		return "saltbridges"
	case Hydrophobic:
		return "hydrophobic"
	}
	return "ContactType(" + strconv.Itoa(int(t)) + ")"
}

//Contact is a classified contact between the atoms A and B.
type Contact struct {
	A, B     geom.AtomRecord
	Distance float64
	Type     ContactType
}

//String returns the contact in the format of the raw contact logs:
//R_A chainA seqA resnameA atomA chainB seqB resnameB atomB distance
func (c Contact) String() string {
	return fmt.Sprintf("R_A %s %s %s %s %s %s %s %s %s", c.A.Chain, c.A.ResidueSeq, c.A.ResidueName, c.A.AtomName,
		c.B.Chain, c.B.ResidueSeq, c.B.ResidueName, c.B.AtomName, strconv.FormatFloat(c.Distance, 'f', -1, 64))
}

//ResiduePairKey identifies a pair of residues as "{seqA}{codeA},{seqB}{codeB}", where
//code is the one-letter code of the residue.
type ResiduePairKey string

//NewResiduePairKey builds the key for the residues of the atoms a and b. It returns
//a *LookupError if any of the residues is not one of the 20 standard amino acids.
func NewResiduePairKey(a, b geom.AtomRecord) (ResiduePairKey, error) {
	ca, ok := chem.OneLetter(a.ResidueName)
	if !ok {
		return "", &LookupError{Residue: a.ResidueName}
	}
	cb, ok := chem.OneLetter(b.ResidueName)
	if !ok {
		return "", &LookupError{Residue: b.ResidueName}
	}
	return ResiduePairKey(fmt.Sprintf("%s%c,%s%c", a.ResidueSeq, ca, b.ResidueSeq, cb)), nil
}

//ChainPairKey identifies an ordered pair of chains as "{chainA},{chainB}".
type ChainPairKey string

//NewChainPairKey returns the key for the chains a and b, in that order.
func NewChainPairKey(a, b string) ChainPairKey {
	return ChainPairKey(a + "," + b)
}

//ResidueSet is a set of residue pairs.
type ResidueSet map[ResiduePairKey]struct{}

//Add puts k in the set.
func (s ResidueSet) Add(k ResiduePairKey) {
	s[k] = struct{}{}
}

//Has returns true if k is in the set.
func (s ResidueSet) Has(k ResiduePairKey) bool {
	_, ok := s[k]
	return ok
}

//Sorted returns the elements of the set in lexicographic order.
func (s ResidueSet) Sorted() []ResiduePairKey {
	ret := make([]ResiduePairKey, 0, len(s))
	for k := range s {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

//Report contains, for one structure, the residue pairs in contact per contact type and chain pair.
type Report struct {
	Name  string
	Pairs map[ContactType]map[ChainPairKey]ResidueSet
}

//NewReport returns an empty report, with an entry for each contact type.
func NewReport(name string) *Report {
	r := &Report{Name: name, Pairs: make(map[ContactType]map[ChainPairKey]ResidueSet, len(Types))}
	for _, t := range Types {
		r.Pairs[t] = make(map[ChainPairKey]ResidueSet)
	}
	return r
}

//Merge adds the residue pairs in pairs to the report, under the contact type t.
func (r *Report) Merge(t ContactType, pairs map[ChainPairKey]ResidueSet) {
	dest, ok := r.Pairs[t]
	if !ok {
		dest = make(map[ChainPairKey]ResidueSet)
		r.Pairs[t] = dest
	}
	for cp, set := range pairs {
		d, ok := dest[cp]
		if !ok {
			d = make(ResidueSet, len(set))
			dest[cp] = d
		}
		for k := range set {
			d.Add(k)
		}
	}
}

//ChainPairs returns the chain pairs with contacts of type t, sorted.
func (r *Report) ChainPairs(t ContactType) []ChainPairKey {
	ret := make([]ChainPairKey, 0, len(r.Pairs[t]))
	for k := range r.Pairs[t] {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

//Len returns the total number of residue pairs in the report.
func (r *Report) Len() int {
	n := 0
	for _, m := range r.Pairs {
		for _, s := range m {
			n += len(s)
		}
	}
	return n
}

//Faces collects the "chain,residue" identities of the residues at both sides
//of the interface. Part1 contains the ones in the channel chains, Part2 the ones in the partners.
type Faces struct {
	Part1, Part2 []string
}

//Unique returns the sorted unique identities in each part.
func (f *Faces) Unique() (part1, part2 []string) {
	return uniqueSorted(f.Part1), uniqueSorted(f.Part2)
}

func uniqueSorted(s []string) []string {
	seen := make(map[string]bool, len(s))
	ret := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			ret = append(ret, v)
		}
	}
	sort.Strings(ret)
	return ret
}

//ChainFilter defines the interface of interest: contacts are only kept if the first
//atom belongs to a Channel chain and the second to a Partners chain.
type ChainFilter struct {
	Channel  []string
	Partners []string
}

//Accept returns true if a is a channel chain and b a partner chain.
func (f ChainFilter) Accept(a, b string) bool {
	return inStrings(f.Channel, a) && inStrings(f.Partners, b)
}

//Chains returns all the chains in the filter, channel chains first.
func (f ChainFilter) Chains() []string {
	ret := make([]string, 0, len(f.Channel)+len(f.Partners))
	ret = append(ret, f.Channel...)
	return append(ret, f.Partners...)
}

//Validate returns an error if any of the chain groups is empty, or if they share chains.
func (f ChainFilter) Validate() error {
	if len(f.Channel) == 0 || len(f.Partners) == 0 {
		return fmt.Errorf("contacts: empty chain group (channel %v, partners %v)", f.Channel, f.Partners)
	}
	for _, c := range f.Channel {
		if inStrings(f.Partners, c) {
			return fmt.Errorf("contacts: chain %s is both in the channel and in the partners", c)
		}
	}
	return nil
}

//combinations returns the set of the ordered (channel, partner) chain pairs.
func (f ChainFilter) combinations() map[[2]string]bool {
	ret := make(map[[2]string]bool, len(f.Channel)*len(f.Partners))
	for _, c := range f.Channel {
		for _, p := range f.Partners {
			ret[[2]string{c, p}] = true
		}
	}
	return ret
}

//String returns the filter as "A,B-C,D"
func (f ChainFilter) String() string {
	return strings.Join(f.Channel, ",") + "-" + strings.Join(f.Partners, ",")
}

//Params contains the geometric criteria for one contact search.
type Params struct {
	Cutoff float64   //maximum atom-atom distance for candidate pairs, in A
	Angle  float64   //maximum deviation from linearity of polar contacts, in degrees
	Mode   geom.Mode //pair finding heuristic
}

//DefaultParams returns the default search parameters for the contact type t.
func DefaultParams(t ContactType) Params {
	switch t {
	case HBond:
		return Params{Cutoff: 3.5, Angle: 150, Mode: geom.ModePolar}
	case SaltBridge:
		return Params{Cutoff: 4.0, Angle: 180, Mode: geom.ModePolar}
	}
	return Params{Cutoff: 4.0, Angle: 180, Mode: geom.ModePolar}
}

//Geometry finds, resolves and measures atoms for the classifier.
type Geometry interface {
	//FindPairs returns the pairs of atoms (a, b), a in sel1 and b in sel2, that fulfill the criteria.
	FindPairs(sel1, sel2 geom.Selection, mode geom.Mode, cutoff, angle float64) ([]geom.Pair, error)
	//Resolve returns the attributes of an atom.
	Resolve(ref geom.AtomRef) (geom.AtomRecord, error)
	//Distance measures the distance between two atoms (or the groups they belong to, depending on the mode).
	//It returns an error wrapping geom.ErrNoInteraction if the geometric criterion is not met within cutoff.
	Distance(a, b geom.AtomRef, mode geom.Mode, cutoff float64) (float64, error)
}

func inStrings(container []string, test string) bool {
	for _, v := range container {
		if v == test {
			return true
		}
	}
	return false
}
