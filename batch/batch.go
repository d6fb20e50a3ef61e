/*
 * batch.go, part of ifcontacts.
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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	chem "github.com/rmera/ifcontacts"
	"github.com/rmera/ifcontacts/config"
	"github.com/rmera/ifcontacts/contacts"
	"github.com/rmera/ifcontacts/geom"
	"github.com/rmera/ifcontacts/report"
)

//StructureError is the error for a structure that could not be processed.
type StructureError struct {
	File string
	Err  error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }

//WorkerSummary contains the results of one worker.
type WorkerSummary struct {
	Worker    int
	Files     int
	Processed int
	Failed    int
	Elapsed   time.Duration
}

//Summary contains the results of a run.
type Summary struct {
	RunID     string
	Files     int
	Processed int
	Failed    int
	Workers   []WorkerSummary
	//Errors combines the errors of all the failed structures. Use multierr.Errors to obtain them.
	Errors error
}

//Driver processes structure files with a given configuration.
type Driver struct {
	cfg   *config.Config
	log   *zap.Logger
	runID string
	csv   *report.CSVFile
	store *report.Store
}

//NewDriver returns a driver for cfg, which is validated. If logger is nil, nothing is logged.
//If cfg.SQLite is set, the database is opened (relative paths are taken from the output directory)
//and the run recorded. The driver must be closed after use.
func NewDriver(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("batch: invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, &contacts.IOError{Path: cfg.OutputDir, Err: err}
	}
	runID := uuid.NewString()
	D := &Driver{
		cfg:   cfg,
		log:   logger.With(zap.String("run", runID)),
		runID: runID,
		csv:   report.NewCSVFile(filepath.Join(cfg.OutputDir, cfg.CSVName)),
	}
	if cfg.SQLite != "" {
		path := cfg.SQLite
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.OutputDir, path)
		}
		st, err := report.OpenStore(path)
		if err != nil {
			return nil, err
		}
		err = st.StartRun(ctx, report.Run{ID: runID, InputDir: cfg.InputDir, OutputDir: cfg.OutputDir, Config: cfg.String()})
		if err != nil {
			st.Close()
			return nil, err
		}
		D.store = st
	}
	return D, nil
}

//RunID returns the identifier of the run.
func (D *Driver) RunID() string { return D.runID }

//Close releases the resources of the driver.
func (D *Driver) Close() error {
	if D.store != nil {
		return D.store.Close()
	}
	return nil
}

//Run processes all the structure files in the input directory, in parallel. Errors in single
//structures don't stop the run, they are collected in the summary. An error is returned only
//if the run could not be carried out, or if ctx was cancelled, in which case the summary
//contains the structures processed until then.
func (D *Driver) Run(ctx context.Context) (*Summary, error) {
	files, err := Discover(D.cfg.InputDir, D.cfg.Marker)
	if err != nil {
		return nil, err
	}
	parts := Partition(files, D.cfg.Workers)
	D.log.Info("starting run", zap.Int("files", len(files)), zap.Int("workers", len(parts)), zap.String("input", D.cfg.InputDir))
	sums := make([]WorkerSummary, len(parts))
	errs := make([]error, len(parts))
	var g errgroup.Group
	for w, part := range parts {
		w, part := w, part
		g.Go(func() error {
			sums[w], errs[w] = D.worker(ctx, w, part)
			return nil
		})
	}
	_ = g.Wait()
	S := &Summary{RunID: D.runID, Files: len(files), Workers: sums}
	for w, s := range sums {
		S.Processed += s.Processed
		S.Failed += s.Failed
		S.Errors = multierr.Append(S.Errors, errs[w])
		D.log.Info("worker finished", zap.Int("worker", w), zap.Int("files", s.Files), zap.Int("processed", s.Processed),
			zap.Int("failed", s.Failed), zap.Duration("took", s.Elapsed))
	}
	if err := ctx.Err(); err != nil {
		D.log.Warn("run cancelled", zap.Error(err), zap.Int("processed", S.Processed))
		return S, err
	}
	D.log.Info("all finished", zap.Int("processed", S.Processed), zap.Int("failed", S.Failed))
	return S, nil
}

//worker processes files in order, until they are done or ctx is cancelled.
func (D *Driver) worker(ctx context.Context, w int, files []string) (WorkerSummary, error) {
	start := time.Now()
	sum := WorkerSummary{Worker: w, Files: len(files)}
	var errs error
	log := D.log.With(zap.Int("worker", w))
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		t0 := time.Now()
		log.Info("working on structure", zap.String("file", filepath.Base(file)))
		err := D.Process(ctx, w, file)
		sum.Processed++
		if err != nil {
			sum.Failed++
			err = &StructureError{File: file, Err: err}
			errs = multierr.Append(errs, err)
			log.Error("structure failed", zap.String("file", filepath.Base(file)), zap.Error(err))
			if D.store != nil {
				if serr := D.store.SaveFailure(ctx, D.runID, w, StructureName(file), err); serr != nil {
					log.Warn("could not record failure", zap.Error(serr))
				}
			}
			continue
		}
		log.Info("structure finished", zap.String("file", filepath.Base(file)), zap.Duration("took", time.Since(t0)))
	}
	sum.Elapsed = time.Since(start)
	return sum, errs
}

//Process runs all the contact searches for the structure in file, and writes the results.
//w is the worker running it, used only for bookkeeping.
func (D *Driver) Process(ctx context.Context, w int, file string) error {
	start := time.Now()
	name := StructureName(file)
	f := D.cfg.Filter(file)
	log := D.log.With(zap.Int("worker", w), zap.String("structure", name))
	mol, err := chem.StructureFileRead(file)
	if err != nil {
		return err
	}
	if D.cfg.Hydrogens == config.HydrogensReduce {
		mol, err = chem.Reduce(ctx, mol, 0, 1, nil)
		if err != nil {
			return err
		}
	}
	S, err := geom.NewStructure(name, mol, 0)
	if err != nil {
		return err
	}
	C := contacts.NewClassifier(S)
	sel := geom.Selection{Object: name, Chains: f.Chains()}
	rep := contacts.NewReport(name)
	faces := new(contacts.Faces)
	found := make(map[contacts.ContactType][]contacts.Contact, len(contacts.Types))
	for _, t := range contacts.Types {
		kept, err := D.pass(C, t, sel, f, rep, faces)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
		found[t] = kept
		st := report.Summarize(t, kept)
		log.Info("pass finished", zap.Stringer("type", t), zap.Int("contacts", st.N), zap.Duration("took", time.Since(start)))
		if st.N > 0 {
			log.Debug("distances", zap.Stringer("type", t), zap.Float64("mean", st.Mean), zap.Float64("min", st.Min), zap.Float64("max", st.Max))
		}
	}
	if err := D.csv.Append(rep); err != nil {
		return err
	}
	if D.cfg.Faces {
		if err := report.WriteFaces(filepath.Join(D.cfg.OutputDir, "faces"), name, faces); err != nil {
			return err
		}
	}
	if D.cfg.Plots {
		if err := report.PlotDistances(D.cfg.OutputDir, name, found); err != nil {
			return err
		}
	}
	if D.store != nil {
		if err := D.store.SaveStructure(ctx, D.runID, w, rep, found); err != nil {
			return err
		}
	}
	return nil
}

//pass runs one contact search and aggregates it into rep, writing the contact log.
func (D *Driver) pass(C *contacts.Classifier, t contacts.ContactType, sel geom.Selection, f contacts.ChainFilter, rep *contacts.Report, faces *contacts.Faces) ([]contacts.Contact, error) {
	cs, err := C.Classify(t, sel, f, D.cfg.Params(t))
	if err != nil {
		return nil, err
	}
	out, err := report.CreateLog(D.cfg.OutputDir, t, rep.Name)
	if err != nil {
		return nil, err
	}
	kept, err := contacts.Aggregate(cs, t, f, rep, faces, out)
	cerr := out.Close()
	var ioerr *contacts.IOError
	if errors.As(err, &ioerr) && ioerr.Path == "" {
		ioerr.Path = out.Name()
	}
	if err != nil {
		return nil, err
	}
	if cerr != nil {
		return nil, &contacts.IOError{Path: out.Name(), Err: cerr}
	}
	return kept, nil
}
