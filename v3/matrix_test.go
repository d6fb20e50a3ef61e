/*
 * matrix_test.go, part of ifcontacts.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	m, err := NewMatrix([]float64{0, 0, 0, 3, 4, 0})
	require.NoError(Te, err)
	assert.Equal(Te, 2, m.NVecs())
	assert.InDelta(Te, 5.0, m.Distance(0, 1), 1e-9)
}

func TestCentroid(Te *testing.T) {
	m, err := NewMatrix([]float64{
		1, 0, 0,
		-1, 0, 0,
		0, 2, 0,
		0, -2, 0,
	})
	require.NoError(Te, err)
	c, err := m.Centroid()
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r3.Norm(c), 1e-12)
	c, err = m.Centroid(0, 2)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.5, c.X, 1e-12)
	assert.InDelta(Te, 1.0, c.Y, 1e-12)
	_, err = m.Centroid(7)
	assert.Error(Te, err)
}

func TestSomeVecsAndViews(Te *testing.T) {
	m, err := NewMatrix([]float64{1, 1, 1, 2, 2, 2, 3, 3, 3})
	require.NoError(Te, err)
	s, err := m.SomeVecs([]int{2, 0})
	require.NoError(Te, err)
	assert.Equal(Te, r3.Vec{X: 3, Y: 3, Z: 3}, s.Vec(0))
	assert.Equal(Te, r3.Vec{X: 1, Y: 1, Z: 1}, s.Vec(1))
	v := m.VecView(1)
	v.Set(0, 0, 9)
	assert.Equal(Te, 9.0, m.At(1, 0))
	_, err = m.SomeVecs([]int{3})
	assert.Error(Te, err)
	assert.Panics(Te, func() { m.VecView(5) })
}

func TestAngle(Te *testing.T) {
	a := r3.Vec{X: 1}
	b := r3.Vec{Y: 1}
	assert.InDelta(Te, math.Pi/2, Angle(a, b), 1e-12)
	assert.InDelta(Te, math.Pi, Angle(a, r3.Scale(-2, a)), 1e-12)
	assert.True(Te, math.IsNaN(Angle(a, r3.Vec{})))
}
