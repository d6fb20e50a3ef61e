/*
 * points.go, part of ifcontacts.
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

package geom

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

//atomPoint is a point in space that remembers which atom it came from.
//It implements kdtree.Comparable
type atomPoint struct {
	index int
	x     [3]float64
}

func (p atomPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(atomPoint)
	return p.x[d] - q.x[d]
}

func (p atomPoint) Dims() int { return 3 }

//Distance returns the squared euclidean distance, as required by kdtree.
func (p atomPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(atomPoint)
	var sum float64
	for i := range p.x {
		d := p.x[i] - q.x[i]
		sum += d * d
	}
	return sum
}

//atomPoints implements kdtree.Interface
type atomPoints []atomPoint

func (p atomPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p atomPoints) Len() int                      { return len(p) }
func (p atomPoints) Pivot(d kdtree.Dim) int        { return plane{Dim: d, atomPoints: p}.Pivot() }
func (p atomPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

//plane is the atomPoints sorted along one dimension, used to find the pivots of the tree.
type plane struct {
	kdtree.Dim
	atomPoints
}

func (p plane) Less(i, j int) bool {
	return p.atomPoints[i].x[p.Dim] < p.atomPoints[j].x[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.atomPoints = p.atomPoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.atomPoints[i], p.atomPoints[j] = p.atomPoints[j], p.atomPoints[i]
}

//newTree builds a k-d tree with the given points. The slice is reordered.
func newTree(p atomPoints) *kdtree.Tree {
	return kdtree.New(p, false)
}

//within returns the indexes of the atoms in t that are at a distance
//of q equal or smaller than cutoff.
func within(t *kdtree.Tree, q atomPoint, cutoff float64) []int {
	keep := kdtree.NewDistKeeper(cutoff * cutoff)
	t.NearestSet(keep, q)
	ret := make([]int, 0, len(keep.Heap))
	for _, v := range keep.Heap {
		//the keeper starts with a nil sentinel at the cutoff distance
		if v.Comparable == nil {
			continue
		}
		ret = append(ret, v.Comparable.(atomPoint).index)
	}
	return ret
}
