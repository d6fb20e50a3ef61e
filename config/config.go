/*
 * config.go, part of ifcontacts.
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

//Package config contains the configuration of an ifcontacts run, which can be read from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rmera/ifcontacts/contacts"
	"github.com/rmera/ifcontacts/geom"
)

//Config is the configuration of a run.
type Config struct {
	InputDir  string     `yaml:"input_dir" json:"input_dir"`
	OutputDir string     `yaml:"output_dir" json:"output_dir"`
	Marker    string     `yaml:"marker" json:"marker"` //substring that identifies structure files
	Workers   int        `yaml:"workers" json:"workers"`
	CSVName   string     `yaml:"csv_name" json:"csv_name"`
	Channel   []string   `yaml:"channel" json:"channel"`
	Partners  []string   `yaml:"partners" json:"partners"`
	Overrides []Override `yaml:"overrides" json:"overrides"`

	HBond       Search `yaml:"hbond" json:"hbond"`
	SaltBridge  Search `yaml:"saltbridge" json:"saltbridge"`
	Hydrophobic Search `yaml:"hydrophobic" json:"hydrophobic"`

	Hydrogens string `yaml:"hydrogens" json:"hydrogens"` // none, reduce
	Faces     bool   `yaml:"faces" json:"faces"`
	Plots     bool   `yaml:"plots" json:"plots"`
	SQLite    string `yaml:"sqlite" json:"sqlite"` //database file, empty for none

	Log LogConfig `yaml:"log" json:"log"`
}

//Override replaces the chain groups for the structures whose file name contains Match.
type Override struct {
	Match    string   `yaml:"match" json:"match"`
	Channel  []string `yaml:"channel" json:"channel"`
	Partners []string `yaml:"partners" json:"partners"`
}

//Search contains the criteria for one contact search.
type Search struct {
	Cutoff float64 `yaml:"cutoff" json:"cutoff"` // A
	Angle  float64 `yaml:"angle" json:"angle"`   // degrees
	Mode   int     `yaml:"mode" json:"mode"`
}

//LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // console, json
}

const (
	HydrogensNone   = "none"
	HydrogensReduce = "reduce"
)

func search(t contacts.ContactType) Search {
	p := contacts.DefaultParams(t)
	return Search{Cutoff: p.Cutoff, Angle: p.Angle, Mode: int(p.Mode)}
}

//Default returns the default configuration. The input and output directories are not set.
func Default() *Config {
	return &Config{
		Marker:   ".pdb",
		Workers:  runtime.NumCPU(),
		CSVName:  "test.csv",
		Channel:  []string{"A", "B", "C", "D"},
		Partners: []string{"E", "F"},
		Overrides: []Override{
			{Match: "ard", Channel: []string{"A"}, Partners: []string{"B", "C", "D"}},
		},
		HBond:       search(contacts.HBond),
		SaltBridge:  search(contacts.SaltBridge),
		Hydrophobic: search(contacts.Hydrophobic),
		Hydrogens:   HydrogensNone,
		Log:         LogConfig{Level: "info", Format: "console"},
	}
}

//Load reads the configuration in path, in YAML or JSON format depending on the extension.
//Fields not present in the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", filepath.Ext(path))
	}
	return cfg, nil
}

//Save writes the configuration to path, in YAML or JSON format depending on the extension.
func (c *Config) Save(path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		return fmt.Errorf("unsupported config file format: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

//String returns the configuration as JSON.
func (c *Config) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

//Filter returns the chain groups for the structure file named file: those of the first
//override whose Match is contained in the file name, or the default ones.
func (c *Config) Filter(file string) contacts.ChainFilter {
	base := filepath.Base(file)
	for _, o := range c.Overrides {
		if o.Match != "" && strings.Contains(base, o.Match) {
			return contacts.ChainFilter{Channel: o.Channel, Partners: o.Partners}
		}
	}
	return contacts.ChainFilter{Channel: c.Channel, Partners: c.Partners}
}

//Params returns the search parameters for contacts of type t.
func (c *Config) Params(t contacts.ContactType) contacts.Params {
	var s Search
	switch t {
	case contacts.HBond:
		s = c.HBond
	case contacts.SaltBridge:
		s = c.SaltBridge
	default:
		s = c.Hydrophobic
	}
	return contacts.Params{Cutoff: s.Cutoff, Angle: s.Angle, Mode: geom.Mode(s.Mode)}
}

//Validate returns an error describing the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CSVName == "" || filepath.Base(c.CSVName) != c.CSVName {
		return fmt.Errorf("invalid CSV file name %q", c.CSVName)
	}
	if err := (contacts.ChainFilter{Channel: c.Channel, Partners: c.Partners}).Validate(); err != nil {
		return err
	}
	for _, o := range c.Overrides {
		if o.Match == "" {
			return fmt.Errorf("override with empty match")
		}
		if err := (contacts.ChainFilter{Channel: o.Channel, Partners: o.Partners}).Validate(); err != nil {
			return fmt.Errorf("override %q: %w", o.Match, err)
		}
	}
	for _, t := range contacts.Types {
		p := c.Params(t)
		if !(p.Cutoff > 0) {
			return fmt.Errorf("%s: cutoff must be positive, got %v", t, p.Cutoff)
		}
		if !(p.Angle >= 0 && p.Angle <= 180) {
			return fmt.Errorf("%s: angle must be in [0,180], got %v", t, p.Angle)
		}
		if p.Mode != geom.ModeAny && p.Mode != geom.ModePolar {
			return fmt.Errorf("%s: mode must be %d or %d, got %d", t, geom.ModeAny, geom.ModePolar, p.Mode)
		}
	}
	switch c.Hydrogens {
	case HydrogensNone, HydrogensReduce:
	default:
		return fmt.Errorf("hydrogens must be %q or %q, got %q", HydrogensNone, HydrogensReduce, c.Hydrogens)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}
