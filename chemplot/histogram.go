/*
 * histogram.go, part of ifcontacts.
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
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/ifcontacts/histo"
)

//Series is a named histogram to be plotted.
type Series struct {
	Name string
	Data *histo.Data
}

func basicHistoPlot(title string, dividers []float64) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Distance (A)"
	p.Y.Label.Text = "Contacts"
	p.Add(plotter.NewGrid())
	names := make([]string, len(dividers)-1)
	for i := range names {
		names[i] = fmt.Sprintf("%.1f", (dividers[i]+dividers[i+1])/2)
	}
	p.NominalX(names...)
	p.Legend.Top = true
	return p
}

//DistanceHistograms saves to plotname (which must include the extension, the format
//is taken from it) a bar plot of the given histograms, one set of bars per series.
//All the series must have the same dividers. Series with nil data are skipped.
func DistanceHistograms(series []Series, title, plotname string) error {
	var dividers []float64
	for _, s := range series {
		if s.Data == nil {
			continue
		}
		if dividers == nil {
			dividers = s.Data.Dividers()
			continue
		}
		if len(s.Data.Dividers()) != len(dividers) {
			return fmt.Errorf("chemplot: series %s has %d dividers, expected %d", s.Name, len(s.Data.Dividers()), len(dividers))
		}
	}
	if dividers == nil {
		return fmt.Errorf("chemplot: no data to plot in %s", plotname)
	}
	p := basicHistoPlot(title, dividers)
	width := vg.Points(30 / float64(len(series)))
	for key, s := range series {
		if s.Data == nil {
			continue
		}
		bars, err := plotter.NewBarChart(plotter.Values(s.Data.View()), width)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(series))
		bars.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = width * vg.Length(float64(key)-float64(len(series)-1)/2)
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	//here I intentionally shadow err.
	if err := p.Save(6*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return err
	}
	return nil
}
