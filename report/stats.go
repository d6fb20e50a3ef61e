/*
 * stats.go, part of ifcontacts.
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

package report

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rmera/ifcontacts/chemplot"
	"github.com/rmera/ifcontacts/contacts"
	"github.com/rmera/ifcontacts/histo"
)

//Limits and number of bins of the distance histograms.
const (
	HistoMin  = 2.0
	HistoMax  = 6.0
	HistoBins = 16
)

//Stats summarizes the distances of a set of contacts of one type.
type Stats struct {
	Type   contacts.ContactType
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (s Stats) String() string {
	if s.N == 0 {
		return fmt.Sprintf("%s: no contacts", s.Type)
	}
	return fmt.Sprintf("%s: %d contacts, distance %.2f+/-%.2f [%.2f, %.2f]", s.Type, s.N, s.Mean, s.StdDev, s.Min, s.Max)
}

func distances(cs []contacts.Contact) []float64 {
	d := make([]float64, len(cs))
	for i, c := range cs {
		d[i] = c.Distance
	}
	return d
}

//Summarize returns the distance statistics for cs, which are all of type t.
//With fewer than 2 contacts the standard deviation is NaN.
func Summarize(t contacts.ContactType, cs []contacts.Contact) Stats {
	s := Stats{Type: t, N: len(cs)}
	if len(cs) == 0 {
		s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	d := distances(cs)
	s.Mean, s.StdDev = stat.MeanStdDev(d, nil)
	s.Min = floats.Min(d)
	s.Max = floats.Max(d)
	return s
}

//Histogram bins the distances of cs between HistoMin and HistoMax.
func Histogram(cs []contacts.Contact) *histo.Data {
	return histo.NewData(histo.Dividers(HistoMin, HistoMax, HistoBins), distances(cs))
}

//PlotPath returns the path of the distance plot for the structure name.
func PlotPath(outdir, name string) string {
	return filepath.Join(outdir, "plots", name+"_distances.png")
}

//PlotDistances saves the distance histograms of all contact types for the structure name.
//Nothing is written if there are no contacts at all.
func PlotDistances(outdir, name string, found map[contacts.ContactType][]contacts.Contact) error {
	series := make([]chemplot.Series, 0, len(contacts.Types))
	total := 0
	for _, t := range contacts.Types {
		total += len(found[t])
		series = append(series, chemplot.Series{Name: t.String(), Data: Histogram(found[t])})
	}
	if total == 0 {
		return nil
	}
	path := PlotPath(outdir, name)
	if err := mkdirFor(path); err != nil {
		return &contacts.IOError{Path: path, Err: err}
	}
	if err := chemplot.DistanceHistograms(series, name, path); err != nil {
		return &contacts.IOError{Path: path, Err: err}
	}
	return nil
}
