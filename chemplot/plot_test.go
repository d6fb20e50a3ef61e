/*
 * plot_test.go, part of ifcontacts.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/ifcontacts/histo"
)

func TestDistanceHistograms(Te *testing.T) {
	div := histo.Dividers(2, 6, 8)
	series := []Series{
		{"hbonds", histo.NewData(div, []float64{2.9, 3.0, 3.1})},
		{"saltbridges", histo.NewData(div, []float64{2.9, 3.9})},
		{"hydrophobic", nil},
	}
	name := filepath.Join(Te.TempDir(), "test.png")
	require.NoError(Te, DistanceHistograms(series, "test", name))
	info, err := os.Stat(name)
	require.NoError(Te, err)
	assert.True(Te, info.Size() > 0)

	assert.Error(Te, DistanceHistograms([]Series{{"none", nil}}, "empty", name))
	bad := append(series, Series{"other", histo.NewData(histo.Dividers(0, 1, 2), nil)})
	assert.Error(Te, DistanceHistograms(bad, "bad", name))
}

func TestColors(Te *testing.T) {
	seen := map[[3]uint8]bool{}
	for i := 0; i < 3; i++ {
		r, g, b := colors(i, 3)
		seen[[3]uint8{r, g, b}] = true
	}
	assert.Len(Te, seen, 3)
}
