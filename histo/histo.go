/*
 * histo.go, part of ifcontacts.
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

package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Dividers returns n+1 equally spaced dividers for n bins between min and max.
func Dividers(min, max float64, n int) []float64 {
	if n < 1 || max <= min {
		panic("ifcontacts/histo.Dividers: need at least one bin and max > min")
	}
	return floats.Span(make([]float64, n+1), min, max)
}

//Data is a histogram. Values outside the dividers are counted in Total but not binned.
type Data struct {
	dividers   []float64
	histo      []float64
	total      int //all the points added, including the out of range ones
	normalized bool
}

//NewData returns a histogram with the given dividers, filled with rawdata, which can be nil.
//rawdata is sorted in place.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("ifcontacts/histo.NewData: at least 2 dividers are needed")
	}
	D := &Data{dividers: append([]float64(nil), dividers...)}
	D.ReHisto(rawdata)
	return D
}

//ReHisto discards the current counts and fills the histogram with rawdata.
func (D *Data) ReHisto(rawdata []float64) {
	D.total = len(rawdata)
	D.normalized = false
	sort.Float64s(rawdata)
	//stat.Histogram panics for values off limits, so we remove them first.
	mini := sort.SearchFloat64s(rawdata, D.dividers[0])
	maxi := sort.SearchFloat64s(rawdata, D.dividers[len(D.dividers)-1])
	rawdata = rawdata[mini:maxi]
	D.histo = stat.Histogram(nil, D.dividers, rawdata, nil)
}

//AddData adds points to a non-normalized histogram.
func (D *Data) AddData(point ...float64) {
	if D.normalized {
		panic("ifcontacts/histo.Data.AddData: can't add data to a normalized histogram")
	}
	for _, p := range point {
		D.total++
		if p < D.dividers[0] || p >= D.dividers[len(D.dividers)-1] {
			continue
		}
		i := sort.SearchFloat64s(D.dividers, p)
		//SearchFloat64s gives the first divider >= p
		if i == len(D.dividers) || D.dividers[i] > p {
			i--
		}
		D.histo[i]++
	}
}

//Normalize divides each bin by the total number of points.
func (D *Data) Normalize() {
	if D.normalized || D.total == 0 {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

//Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool { return D.normalized }

//Total returns the number of points added, including those out of range.
func (D *Data) Total() int { return D.total }

//Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//View returns the bins. It is not a copy.
func (D *Data) View() []float64 { return D.histo }

//Dividers returns a copy of the dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

//Centers returns the middle point of each bin.
func (D *Data) Centers() []float64 {
	ret := make([]float64, len(D.histo))
	for i := range ret {
		ret[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return ret
}

func (D *Data) String() string {
	s := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		s = append(s, fmt.Sprintf("[%5.2f,%5.2f): %g", D.dividers[i], D.dividers[i+1], v))
	}
	return strings.Join(s, "\n")
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
		Total      int       `json:"total"`
		Normalized bool      `json:"normalized"`
	}{D.dividers, D.histo, D.total, D.normalized})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
		Total      int       `json:"total"`
		Normalized bool      `json:"normalized"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.dividers, D.histo, D.total, D.normalized = a.Dividers, a.Histo, a.Total, a.Normalized
	return nil
}
