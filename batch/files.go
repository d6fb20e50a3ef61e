/*
 * files.go, part of ifcontacts.
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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

//compressed extensions, removed from the file name before the structure extension.
var compressedExt = []string{".gz", ".zst", ".zstd"}

//CollisionError is returned by Discover when several files would be written out
//under the same structure name, as x.pdb and x.pdb.gz do.
type CollisionError struct {
	Name  string
	Files []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("batch: files %s share the structure name %s", strings.Join(e.Files, ", "), e.Name)
}

//Discover returns the paths of the regular files in dir whose names contain marker, sorted.
//It fails with one *CollisionError per name if two files have the same structure name.
func Discover(dir, marker string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: reading input directory: %w", err)
	}
	ret := make([]string, 0, len(entries))
	for _, e := range entries {
		if !strings.Contains(e.Name(), marker) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		//Stat follows symlinks.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		ret = append(ret, path)
	}
	sort.Strings(ret)
	if err := collisions(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func collisions(files []string) error {
	byName := make(map[string][]string, len(files))
	names := make([]string, 0, len(files))
	for _, f := range files {
		n := StructureName(f)
		if _, ok := byName[n]; !ok {
			names = append(names, n)
		}
		byName[n] = append(byName[n], filepath.Base(f))
	}
	var err error
	for _, n := range names {
		if len(byName[n]) > 1 {
			err = multierr.Append(err, &CollisionError{Name: n, Files: byName[n]})
		}
	}
	return err
}

//Partition splits files in workers contiguous blocks. The first len(files)%workers
//blocks get one extra file. Blocks can be empty if there are fewer files than workers.
func Partition(files []string, workers int) [][]string {
	if workers < 1 {
		workers = 1
	}
	per := len(files) / workers
	extra := len(files) % workers
	ret := make([][]string, workers)
	offset := 0
	for i := range ret {
		n := per
		if i < extra {
			n++
		}
		ret[i] = files[offset : offset+n]
		offset += n
	}
	return ret
}

//StructureName returns the file name of path without its compression and structure extensions.
func StructureName(path string) string {
	name := filepath.Base(path)
	for _, ext := range compressedExt {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
