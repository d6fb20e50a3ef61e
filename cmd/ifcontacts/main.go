/*
 * main.go, part of ifcontacts.
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

//ifcontacts finds the hydrogen bonds, salt bridges and hydrophobic contacts across the
//interfaces of the protein complexes in a directory of PDB files.
//
//Usage:
//
//	ifcontacts [-config run.yaml] [-in dir] [-out dir] [-workers n] [-channel A,B] [-partners C,D] ...
//
//Flags override the values in the configuration file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rmera/ifcontacts/batch"
	"github.com/rmera/ifcontacts/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

//options holds the command line flags.
type options struct {
	config    string
	in, out   string
	marker    string
	workers   int
	csv       string
	channel   string
	partners  string
	hydrogens string
	faces     bool
	plots     bool
	sqlite    string
	logLevel  string
	logFormat string
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("ifcontacts", flag.ContinueOnError)
	fs.StringVar(&o.config, "config", "", "YAML or JSON configuration file")
	fs.StringVar(&o.in, "in", "", "directory with the structure files")
	fs.StringVar(&o.out, "out", "", "output directory")
	fs.StringVar(&o.marker, "marker", "", "only files whose name contains this are processed (default .pdb)")
	fs.IntVar(&o.workers, "workers", 0, "number of parallel workers (default: number of CPUs)")
	fs.StringVar(&o.csv, "csv", "", "name of the CSV summary, in the output directory (default test.csv)")
	fs.StringVar(&o.channel, "channel", "", "comma-separated channel chains")
	fs.StringVar(&o.partners, "partners", "", "comma-separated partner chains")
	fs.StringVar(&o.hydrogens, "hydrogens", "", "hydrogen addition: none or reduce")
	fs.BoolVar(&o.faces, "faces", false, "write the interface face files")
	fs.BoolVar(&o.plots, "plots", false, "plot the contact distance distributions")
	fs.StringVar(&o.sqlite, "sqlite", "", "SQLite database to store the results in")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "", "console or json")
	return fs
}

func splitChains(s string) []string {
	ret := make([]string, 0)
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			ret = append(ret, c)
		}
	}
	return ret
}

//configure builds the configuration from the file (if any) and the flags that were set.
func configure(fs *flag.FlagSet, o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.InputDir = o.in
		case "out":
			cfg.OutputDir = o.out
		case "marker":
			cfg.Marker = o.marker
		case "workers":
			cfg.Workers = o.workers
		case "csv":
			cfg.CSVName = o.csv
		case "channel":
			cfg.Channel = splitChains(o.channel)
		case "partners":
			cfg.Partners = splitChains(o.partners)
		case "hydrogens":
			cfg.Hydrogens = o.hydrogens
		case "faces":
			cfg.Faces = o.faces
		case "plots":
			cfg.Plots = o.plots
		case "sqlite":
			cfg.SQLite = o.sqlite
		case "log-level":
			cfg.Log.Level = o.logLevel
		case "log-format":
			cfg.Log.Format = o.logFormat
		}
	})
	return cfg, cfg.Validate()
}

//newLogger returns a logger that writes to w with the configured level and format.
func newLogger(c config.LogConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if c.Format == "json" {
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
}

//run runs the program and returns the exit code: 0 if all went well, 1 if some structures
//failed, 2 for usage or configuration errors and 3 if the run could not be completed.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o := new(options)
	fs := newFlagSet(o)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := configure(fs, o)
	if err != nil {
		fmt.Fprintln(stderr, "ifcontacts:", err)
		return 2
	}
	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "ifcontacts:", err)
		return 2
	}
	defer logger.Sync()
	D, err := batch.NewDriver(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not start", zap.Error(err))
		return 3
	}
	defer D.Close()
	S, err := D.Run(ctx)
	if S != nil {
		fmt.Fprintf(stdout, "run %s: %d structures, %d processed, %d failed\n", S.RunID, S.Files, S.Processed, S.Failed)
		for _, w := range S.Workers {
			fmt.Fprintf(stdout, "worker %d: %d/%d structures, %d failed, took %s\n", w.Worker, w.Processed, w.Files, w.Failed, w.Elapsed)
		}
	}
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return 3
	}
	if S.Failed > 0 {
		return 1
	}
	return 0
}
