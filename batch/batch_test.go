/*
 * batch_test.go, part of ifcontacts.
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

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/rmera/ifcontacts/config"
	"github.com/rmera/ifcontacts/contacts"
	"github.com/rmera/ifcontacts/report"
)

func TestDiscover(Te *testing.T) {
	dir := Te.TempDir()
	for _, n := range []string{"b.pdb.gz", "a.pdb", "c.txt"} {
		require.NoError(Te, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644))
	}
	require.NoError(Te, os.Mkdir(filepath.Join(dir, "d.pdb"), 0755))
	files, err := Discover(dir, ".pdb")
	require.NoError(Te, err)
	assert.Equal(Te, []string{filepath.Join(dir, "a.pdb"), filepath.Join(dir, "b.pdb.gz")}, files)
	_, err = Discover(filepath.Join(dir, "nope"), ".pdb")
	assert.Error(Te, err)
}

func TestDiscoverCollisions(Te *testing.T) {
	dir := Te.TempDir()
	for _, n := range []string{"x.pdb", "x.pdb.gz", "y.pdb", "z.pdb.zst", "z.pdb"} {
		require.NoError(Te, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644))
	}
	_, err := Discover(dir, ".pdb")
	require.Error(Te, err)
	errs := multierr.Errors(err)
	require.Len(Te, errs, 2)
	var cerr *CollisionError
	require.True(Te, errors.As(errs[0], &cerr))
	assert.Equal(Te, "x", cerr.Name)
	assert.Equal(Te, []string{"x.pdb", "x.pdb.gz"}, cerr.Files)
	require.True(Te, errors.As(errs[1], &cerr))
	assert.Equal(Te, "z", cerr.Name)
	assert.Equal(Te, []string{"z.pdb", "z.pdb.zst"}, cerr.Files)

	//the run stops before writing anything.
	out := filepath.Join(Te.TempDir(), "out")
	D, err := NewDriver(context.Background(), testConfig(dir, out), nil)
	require.NoError(Te, err)
	defer D.Close()
	_, err = D.Run(context.Background())
	assert.Error(Te, err)
	_, err = os.Stat(filepath.Join(out, "test.csv"))
	assert.True(Te, os.IsNotExist(err))
}

func TestPartition(Te *testing.T) {
	files := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	parts := Partition(files, 3)
	assert.Equal(Te, [][]string{{"0", "1", "2", "3"}, {"4", "5", "6"}, {"7", "8", "9"}}, parts)
	parts = Partition(files[:2], 4)
	require.Len(Te, parts, 4)
	assert.Equal(Te, []string{"0"}, parts[0])
	assert.Equal(Te, []string{"1"}, parts[1])
	assert.Empty(Te, parts[2])
	assert.Empty(Te, parts[3])
	assert.Len(Te, Partition(files, 0), 1)
	//every file is assigned exactly once, in order
	for w := 1; w <= 12; w++ {
		var all []string
		for _, p := range Partition(files, w) {
			all = append(all, p...)
		}
		assert.Equal(Te, files, all)
	}
}

func TestStructureName(Te *testing.T) {
	assert.Equal(Te, "complex", StructureName("/data/complex.pdb"))
	assert.Equal(Te, "1abc", StructureName("1abc.pdb.gz"))
	assert.Equal(Te, "1abc", StructureName("1abc.pdb.ZST"))
	assert.Equal(Te, "a.b", StructureName("a.b.pdb"))
}

//testInput prepares an input directory with copies of the test complex and a broken file.
func testInput(Te *testing.T) string {
	Te.Helper()
	dir := Te.TempDir()
	pdb, err := os.ReadFile("../testdata/complex.pdb")
	require.NoError(Te, err)
	gz, err := os.ReadFile("../testdata/complex.pdb.gz")
	require.NoError(Te, err)
	files := map[string][]byte{
		"complex.pdb":     pdb,
		"ard_complex.pdb": pdb,
		"packed.pdb.gz":   gz,
		"broken.pdb":      []byte("ATOM      1  N   XXX A  1X       0.000   0.000   0.000\n"),
		"notes.txt":       []byte("not a structure"),
	}
	for n, b := range files {
		require.NoError(Te, os.WriteFile(filepath.Join(dir, n), b, 0644))
	}
	return dir
}

func testConfig(in, out string) *config.Config {
	cfg := config.Default()
	cfg.InputDir = in
	cfg.OutputDir = out
	cfg.Workers = 2
	cfg.Channel = []string{"A"}
	cfg.Partners = []string{"B", "C"}
	return cfg
}

func TestRun(Te *testing.T) {
	out := Te.TempDir()
	cfg := testConfig(testInput(Te), out)
	cfg.Faces = true
	cfg.Plots = true
	cfg.SQLite = "contacts.db"
	ctx := context.Background()
	D, err := NewDriver(ctx, cfg, zap.NewNop())
	require.NoError(Te, err)
	S, err := D.Run(ctx)
	require.NoError(Te, err)
	require.NoError(Te, D.Close())
	assert.Equal(Te, 4, S.Files)
	assert.Equal(Te, 4, S.Processed)
	assert.Equal(Te, 1, S.Failed)
	assert.Len(Te, S.Workers, 2)
	errs := multierr.Errors(S.Errors)
	require.Len(Te, errs, 1)
	var serr *StructureError
	require.True(Te, errors.As(errs[0], &serr))
	assert.Equal(Te, "broken.pdb", filepath.Base(serr.File))

	//contact logs
	b, err := os.ReadFile(report.LogPath(out, contacts.HBond, "complex"))
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(Te, lines, 2)
	assert.True(Te, strings.HasPrefix(lines[0], "R_A A 10 LYS NZ B 20 GLU OE1 2.9"))
	assert.True(Te, strings.HasPrefix(lines[1], "R_A A 10 LYS NZ C 70 ASP OD1 3"))
	for _, name := range []string{"complex", "ard_complex", "packed"} {
		for _, t := range contacts.Types {
			_, err := os.Stat(report.LogPath(out, t, name))
			assert.NoError(Te, err, name+" "+t.String())
		}
		_, err := os.Stat(report.PlotPath(out, name))
		assert.NoError(Te, err)
	}

	//CSV blocks, in any order
	b, err = os.ReadFile(filepath.Join(out, "test.csv"))
	require.NoError(Te, err)
	blocks := strings.Split(strings.TrimSuffix(string(b), "\n\n"), "\n\n")
	sort.Strings(blocks)
	require.Len(Te, blocks, 3)
	assert.Equal(Te, `complex
hbonds,"A,B","{'10K,20E'}"
hbonds,"A,C","{'10K,70D'}"
saltbridges,"A,B","{'10K,20E'}"
saltbridges,"A,C","{'10K,70D'}"
hydrophobic,"A,B","{'30F,40F', '50L,60A'}"`, blocks[1])
	assert.True(Te, strings.HasPrefix(blocks[0], "ard_complex\n"))
	assert.True(Te, strings.HasPrefix(blocks[2], "packed\n"))

	//faces
	b, err = os.ReadFile(filepath.Join(out, "faces", "complex.face1"))
	require.NoError(Te, err)
	assert.Equal(Te, "A 10 _\nA 30 _\nA 50 _\n", string(b))
	b, err = os.ReadFile(filepath.Join(out, "faces", "complex.face2"))
	require.NoError(Te, err)
	assert.Equal(Te, "B 20 _\nB 40 _\nB 60 _\nC 70 _\n", string(b))

	//database
	st, err := report.OpenStore(filepath.Join(out, "contacts.db"))
	require.NoError(Te, err)
	defer st.Close()
	pairs, err := st.ResiduePairs(ctx, S.RunID, "packed", contacts.SaltBridge)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"A,B:10K,20E", "A,C:10K,70D"}, pairs)
	failed, err := st.Failures(ctx, S.RunID)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"broken"}, failed)
}

func TestRunCIF(Te *testing.T) {
	in, out := Te.TempDir(), Te.TempDir()
	cif, err := os.ReadFile("../testdata/complex.cif")
	require.NoError(Te, err)
	require.NoError(Te, os.WriteFile(filepath.Join(in, "complex.cif"), cif, 0644))
	cfg := testConfig(in, out)
	cfg.Marker = ".cif"
	ctx := context.Background()
	D, err := NewDriver(ctx, cfg, nil)
	require.NoError(Te, err)
	defer D.Close()
	S, err := D.Run(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, 1, S.Processed)
	assert.Equal(Te, 0, S.Failed)
	b, err := os.ReadFile(filepath.Join(out, "test.csv"))
	require.NoError(Te, err)
	assert.Equal(Te, `complex
hbonds,"A,B","{'10K,20E'}"
hbonds,"A,C","{'10K,70D'}"
saltbridges,"A,B","{'10K,20E'}"
saltbridges,"A,C","{'10K,70D'}"
hydrophobic,"A,B","{'30F,40F', '50L,60A'}"

`, string(b))
}

func TestRunCancelled(Te *testing.T) {
	cfg := testConfig(testInput(Te), Te.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	D, err := NewDriver(ctx, cfg, nil)
	require.NoError(Te, err)
	defer D.Close()
	cancel()
	S, err := D.Run(ctx)
	assert.True(Te, errors.Is(err, context.Canceled))
	require.NotNil(Te, S)
	assert.Equal(Te, 0, S.Processed)
}

func TestNewDriverErrors(Te *testing.T) {
	cfg := testConfig(testInput(Te), "")
	_, err := NewDriver(context.Background(), cfg, nil)
	assert.Error(Te, err)
	cfg = testConfig(filepath.Join(Te.TempDir(), "nope"), Te.TempDir())
	D, err := NewDriver(context.Background(), cfg, nil)
	require.NoError(Te, err)
	_, err = D.Run(context.Background())
	assert.Error(Te, err)
}

func TestReduceMissing(Te *testing.T) {
	cfg := testConfig(testInput(Te), Te.TempDir())
	cfg.Hydrogens = config.HydrogensReduce
	D, err := NewDriver(context.Background(), cfg, nil)
	require.NoError(Te, err)
	err = D.Process(context.Background(), 0, filepath.Join(cfg.InputDir, "complex.pdb"))
	if err == nil {
		Te.Skip("reduce is installed")
	}
	assert.Error(Te, err)
}
