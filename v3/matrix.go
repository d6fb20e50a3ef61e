/*
 * matrix.go, part of ifcontacts.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 0.000000000001 //Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space. Within the package a "vector" is a row
//of the matrix, i.e. the cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//Dense2Matrix wraps a Nx3 gonum Dense. It panics if the Dense does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic(not3xXMatrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l == 0 || l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	if i >= F.NVecs() {
		panic(ErrOutOfRange)
	}
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

//Vec returns a copy of the ith vector of F as an r3.Vec
func (F *Matrix) Vec(i int) r3.Vec {
	if i >= F.NVecs() {
		panic(ErrOutOfRange)
	}
	return r3.Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i >= F.NVecs() {
		panic(ErrOutOfRange)
	}
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

//SomeVecs returns a new matrix with the vectors of F given by clist, in that order.
//It returns an error if any index is out of range.
func (F *Matrix) SomeVecs(clist []int) (*Matrix, error) {
	n := F.NVecs()
	ret := Zeros(len(clist))
	for k, j := range clist {
		if j < 0 || j >= n {
			return nil, Error{fmt.Sprintf("Requested vector %d (position %d) out of range", j, k), []string{"SomeVecs"}, true}
		}
		ret.SetVec(k, F.Vec(j))
	}
	return ret, nil
}

//Distance returns the euclidean distance between the vectors i and j of F.
func (F *Matrix) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(F.Vec(i), F.Vec(j)))
}

//Centroid returns the geometric center of the vectors of F given by clist.
//if clist is empty, all the vectors are used.
func (F *Matrix) Centroid(clist ...int) (r3.Vec, error) {
	if len(clist) == 0 {
		clist = make([]int, F.NVecs())
		for i := range clist {
			clist[i] = i
		}
	}
	if len(clist) == 0 {
		return r3.Vec{}, Error{"Centroid of an empty set", []string{"Centroid"}, true}
	}
	var c r3.Vec
	n := F.NVecs()
	for _, i := range clist {
		if i < 0 || i >= n {
			return r3.Vec{}, Error{fmt.Sprintf("Requested vector %d out of range", i), []string{"Centroid"}, true}
		}
		c = r3.Add(c, F.Vec(i))
	}
	return r3.Scale(1/float64(len(clist)), c), nil
}

//Angle returns the angle between the vectors a and b, in radians.
//It returns NaN if either vector has zero lenght.
func Angle(a, b r3.Vec) float64 {
	na := r3.Norm(a)
	nb := r3.Norm(b)
	if na <= appzero || nb <= appzero {
		return math.NaN()
	}
	cos := r3.Dot(a, b) / (na * nb)
	//floating point errors can push cos slightly outside [-1,1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r)
	for i := 0; i < r; i++ {
		v = append(v, fmt.Sprintf("%6.2f %6.2f %6.2f", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	return "[" + strings.Join(v, "\n ") + "]"
}
