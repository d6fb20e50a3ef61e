/*
 * report_test.go, part of ifcontacts.
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
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/ifcontacts/contacts"
	"github.com/rmera/ifcontacts/geom"
)

func rec(chain, seq, res, name string) geom.AtomRecord {
	return geom.AtomRecord{Chain: chain, ResidueSeq: seq, ResidueName: res, AtomName: name}
}

//testReport builds the report for a few contacts through the aggregator.
func testReport(Te *testing.T, name string) (*contacts.Report, map[contacts.ContactType][]contacts.Contact) {
	Te.Helper()
	f := contacts.ChainFilter{Channel: []string{"A"}, Partners: []string{"B", "C"}}
	found := map[contacts.ContactType][]contacts.Contact{
		contacts.HBond: {
			{A: rec("A", "10", "LYS", "NZ"), B: rec("B", "20", "GLU", "OE1"), Distance: 2.9, Type: contacts.HBond},
			{A: rec("A", "10", "LYS", "NZ"), B: rec("C", "70", "ASP", "OD1"), Distance: 3.0, Type: contacts.HBond},
		},
		contacts.SaltBridge: {
			{A: rec("A", "10", "LYS", "NZ"), B: rec("B", "20", "GLU", "OE1"), Distance: 2.9, Type: contacts.SaltBridge},
		},
		contacts.Hydrophobic: {
			{A: rec("A", "50", "LEU", "CD1"), B: rec("B", "60", "ALA", "CB"), Distance: 3.7, Type: contacts.Hydrophobic},
			{A: rec("A", "30", "PHE", "CG"), B: rec("B", "40", "PHE", "CG"), Distance: 3.8, Type: contacts.Hydrophobic},
		},
	}
	rep := contacts.NewReport(name)
	for _, t := range contacts.Types {
		_, err := contacts.Aggregate(found[t], t, f, rep, nil, nil)
		require.NoError(Te, err)
	}
	return rep, found
}

func TestWriteBlock(Te *testing.T) {
	rep, _ := testReport(Te, "complex")
	var b bytes.Buffer
	require.NoError(Te, WriteBlock(&b, rep))
	expected := `complex
hbonds,"A,B","{'10K,20E'}"
hbonds,"A,C","{'10K,70D'}"
saltbridges,"A,B","{'10K,20E'}"
hydrophobic,"A,B","{'30F,40F', '50L,60A'}"

`
	assert.Equal(Te, expected, b.String())
	//it must read back as CSV
	r := csv.NewReader(strings.NewReader(b.String()))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(Te, err)
	assert.Len(Te, recs, 5)
	assert.Equal(Te, "{'30F,40F', '50L,60A'}", recs[4][2])
}

func TestFormatSet(Te *testing.T) {
	assert.Equal(Te, "set()", FormatSet(contacts.ResidueSet{}))
	s := contacts.ResidueSet{}
	s.Add("5A,6G")
	s.Add("10K,20E")
	assert.Equal(Te, "{'10K,20E', '5A,6G'}", FormatSet(s))
}

func TestCSVFileAppend(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "out", "test.csv")
	c := NewCSVFile(path)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rep, _ := testReport(Te, fmt.Sprintf("s%d", i))
			assert.NoError(Te, c.Append(rep))
		}(i)
	}
	wg.Wait()
	b, err := os.ReadFile(path)
	require.NoError(Te, err)
	blocks := strings.Split(strings.TrimSuffix(string(b), "\n\n"), "\n\n")
	require.Len(Te, blocks, 8)
	for _, bl := range blocks {
		lines := strings.Split(bl, "\n")
		assert.Len(Te, lines, 5)
		assert.True(Te, strings.HasPrefix(lines[0], "s"))
	}
}

func TestCSVFileError(Te *testing.T) {
	dir := Te.TempDir()
	//a directory can't be opened for appending
	c := NewCSVFile(dir)
	rep, _ := testReport(Te, "x")
	err := c.Append(rep)
	var ioerr *contacts.IOError
	assert.True(Te, errors.As(err, &ioerr))
}

func TestLogs(Te *testing.T) {
	dir := Te.TempDir()
	assert.Equal(Te, filepath.Join(dir, "hbonds", "hbonds_x"), LogPath(dir, contacts.HBond, "x"))
	assert.Equal(Te, filepath.Join(dir, "saltbridges", "saltbridges_x"), LogPath(dir, contacts.SaltBridge, "x"))
	assert.Equal(Te, filepath.Join(dir, "hydrophobic", "distance", "hydrophobic_x"), LogPath(dir, contacts.Hydrophobic, "x"))
	for _, t := range contacts.Types {
		f, err := CreateLog(dir, t, "x")
		require.NoError(Te, err)
		fmt.Fprintln(f, "something")
		require.NoError(Te, f.Close())
	}
	//logs are truncated
	f, err := CreateLog(dir, contacts.HBond, "x")
	require.NoError(Te, err)
	require.NoError(Te, f.Close())
	info, err := os.Stat(LogPath(dir, contacts.HBond, "x"))
	require.NoError(Te, err)
	assert.Equal(Te, int64(0), info.Size())
}

func TestFaces(Te *testing.T) {
	dir := Te.TempDir()
	faces := &contacts.Faces{Part1: []string{"A,10", "A,30", "A,10"}, Part2: []string{"B,20"}}
	require.NoError(Te, WriteFaces(dir, "x", faces))
	b, err := os.ReadFile(filepath.Join(dir, "x.face1"))
	require.NoError(Te, err)
	assert.Equal(Te, "A 10 _\nA 30 _\n", string(b))
	b, err = os.ReadFile(filepath.Join(dir, "x.face2"))
	require.NoError(Te, err)
	assert.Equal(Te, "B 20 _\n", string(b))
}

func TestStats(Te *testing.T) {
	_, found := testReport(Te, "x")
	s := Summarize(contacts.Hydrophobic, found[contacts.Hydrophobic])
	assert.Equal(Te, 2, s.N)
	assert.InDelta(Te, 3.75, s.Mean, 1e-9)
	assert.InDelta(Te, 3.7, s.Min, 1e-9)
	assert.InDelta(Te, 3.8, s.Max, 1e-9)
	assert.Contains(Te, s.String(), "hydrophobic: 2 contacts")
	e := Summarize(contacts.SaltBridge, nil)
	assert.True(Te, math.IsNaN(e.Mean))
	assert.Equal(Te, "saltbridges: no contacts", e.String())
	h := Histogram(found[contacts.HBond])
	assert.Equal(Te, 2.0, h.Sum())
}

func TestPlotDistances(Te *testing.T) {
	dir := Te.TempDir()
	_, found := testReport(Te, "x")
	require.NoError(Te, PlotDistances(dir, "x", found))
	_, err := os.Stat(PlotPath(dir, "x"))
	assert.NoError(Te, err)
	require.NoError(Te, PlotDistances(dir, "empty", nil))
	_, err = os.Stat(PlotPath(dir, "empty"))
	assert.True(Te, os.IsNotExist(err))
}

func TestStore(Te *testing.T) {
	ctx := context.Background()
	st, err := OpenStore(filepath.Join(Te.TempDir(), "db", "contacts.db"))
	require.NoError(Te, err)
	defer st.Close()
	require.NoError(Te, st.StartRun(ctx, Run{ID: "run1", InputDir: "in", OutputDir: "out"}))
	rep, found := testReport(Te, "complex")
	require.NoError(Te, st.SaveStructure(ctx, "run1", 0, rep, found))
	require.NoError(Te, st.SaveFailure(ctx, "run1", 1, "broken", errors.New("bad residue")))
	pairs, err := st.ResiduePairs(ctx, "run1", "complex", contacts.Hydrophobic)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"A,B:30F,40F", "A,B:50L,60A"}, pairs)
	n, err := st.CountContacts(ctx, "run1")
	require.NoError(Te, err)
	assert.Equal(Te, 5, n)
	failed, err := st.Failures(ctx, "run1")
	require.NoError(Te, err)
	assert.Equal(Te, []string{"broken"}, failed)
	//the same structure can't be stored twice in a run, and nothing is left behind
	assert.Error(Te, st.SaveStructure(ctx, "run1", 0, rep, found))
	n, err = st.CountContacts(ctx, "run1")
	require.NoError(Te, err)
	assert.Equal(Te, 5, n)
}
