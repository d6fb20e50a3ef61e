/*
 * sqlite.go, part of ifcontacts.
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
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rmera/ifcontacts/contacts"
)

//Store keeps the results of the runs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

//Run describes one execution of the program.
type Run struct {
	ID        string
	InputDir  string
	OutputDir string
	Config    string //the configuration used, serialized
	Started   time.Time
}

func mkdirFor(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

//OpenStore opens (creating it if needed) the database in path, and initializes the schema.
func OpenStore(path string) (*Store, error) {
	if err := mkdirFor(path); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	//SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	st := &Store{db: db, path: path}
	if err := st.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return st, nil
}

//Close closes the database.
func (st *Store) Close() error {
	return st.db.Close()
}

func (st *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		input_dir TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		config TEXT,
		started_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS structures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		worker INTEGER NOT NULL,
		error TEXT,
		processed_at TIMESTAMP NOT NULL,
		UNIQUE (run_id, name),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		structure_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		chain_a TEXT NOT NULL,
		resi_a TEXT NOT NULL,
		resn_a TEXT NOT NULL,
		atom_a TEXT NOT NULL,
		chain_b TEXT NOT NULL,
		resi_b TEXT NOT NULL,
		resn_b TEXT NOT NULL,
		atom_b TEXT NOT NULL,
		distance REAL NOT NULL,
		FOREIGN KEY (structure_id) REFERENCES structures(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_contacts_structure ON contacts(structure_id);

	CREATE TABLE IF NOT EXISTS residue_pairs (
		structure_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		chain_pair TEXT NOT NULL,
		pair TEXT NOT NULL,
		PRIMARY KEY (structure_id, type, chain_pair, pair),
		FOREIGN KEY (structure_id) REFERENCES structures(id) ON DELETE CASCADE
	);
	`
	_, err := st.db.Exec(schema)
	return err
}

//StartRun records a new run.
func (st *Store) StartRun(ctx context.Context, r Run) error {
	if r.Started.IsZero() {
		r.Started = time.Now()
	}
	_, err := st.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_dir, output_dir, config, started_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.InputDir, r.OutputDir, r.Config, r.Started)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

//SaveStructure stores, in one transaction, the contacts found and the report for one structure.
func (st *Store) SaveStructure(ctx context.Context, runID string, worker int, rep *contacts.Report, found map[contacts.ContactType][]contacts.Contact) (err error) {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO structures (run_id, name, worker, processed_at) VALUES (?, ?, ?, ?)`,
		runID, rep.Name, worker, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save structure %s: %w", rep.Name, err)
	}
	sid, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, t := range contacts.Types {
		for _, c := range found[t] {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO contacts (structure_id, type, chain_a, resi_a, resn_a, atom_a, chain_b, resi_b, resn_b, atom_b, distance)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				sid, t.String(), c.A.Chain, c.A.ResidueSeq, c.A.ResidueName, c.A.AtomName,
				c.B.Chain, c.B.ResidueSeq, c.B.ResidueName, c.B.AtomName, c.Distance)
			if err != nil {
				return fmt.Errorf("failed to save contact: %w", err)
			}
		}
		for _, cp := range rep.ChainPairs(t) {
			for _, k := range rep.Pairs[t][cp].Sorted() {
				_, err = tx.ExecContext(ctx,
					`INSERT INTO residue_pairs (structure_id, type, chain_pair, pair) VALUES (?, ?, ?, ?)`,
					sid, t.String(), string(cp), string(k))
				if err != nil {
					return fmt.Errorf("failed to save residue pair: %w", err)
				}
			}
		}
	}
	return tx.Commit()
}

//SaveFailure records that the structure name could not be processed.
func (st *Store) SaveFailure(ctx context.Context, runID string, worker int, name string, cause error) error {
	_, err := st.db.ExecContext(ctx,
		`INSERT INTO structures (run_id, name, worker, error, processed_at) VALUES (?, ?, ?, ?, ?)`,
		runID, name, worker, cause.Error(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save failure for %s: %w", name, err)
	}
	return nil
}

//ResiduePairs returns the residue pairs of type t stored for the structure name in the run runID,
//as "chainpair:pair" strings, sorted.
func (st *Store) ResiduePairs(ctx context.Context, runID, name string, t contacts.ContactType) ([]string, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT rp.chain_pair, rp.pair FROM residue_pairs rp
		JOIN structures s ON s.id = rp.structure_id
		WHERE s.run_id = ? AND s.name = ? AND rp.type = ?
		ORDER BY rp.chain_pair, rp.pair`, runID, name, t.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]string, 0)
	for rows.Next() {
		var cp, p string
		if err := rows.Scan(&cp, &p); err != nil {
			return nil, err
		}
		ret = append(ret, cp+":"+p)
	}
	return ret, rows.Err()
}

//CountContacts returns the number of contacts stored for the run runID.
func (st *Store) CountContacts(ctx context.Context, runID string) (int, error) {
	var n int
	err := st.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contacts c JOIN structures s ON s.id = c.structure_id
		WHERE s.run_id = ?`, runID).Scan(&n)
	return n, err
}

//Failures returns the names of the structures that failed in the run runID, sorted.
func (st *Store) Failures(ctx context.Context, runID string) ([]string, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT name FROM structures WHERE run_id = ? AND error IS NOT NULL ORDER BY name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		ret = append(ret, n)
	}
	return ret, rows.Err()
}
