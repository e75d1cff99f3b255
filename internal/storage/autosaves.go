/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// language=SQL
// dialect=SQLite
const insertAutosaveSQL = `INSERT INTO autosaves(ts, blob) VALUES (?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestAutosaveSQL = `SELECT ts, blob FROM autosaves ORDER BY ts DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listAutosavesSQL = `SELECT ts, blob FROM autosaves ORDER BY ts DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneOldAutosavesSQL = `DELETE FROM autosaves WHERE id NOT IN (
	SELECT id FROM autosaves ORDER BY ts DESC LIMIT ?
)`

// AutosaveEntry is one history row.
type AutosaveEntry struct {
	TS   time.Time
	Blob []byte
}

// SaveAutosave persists the handle's screenplay as a timestamped envelope
// blob in the history store.
func SaveAutosave(ctx context.Context, dh *DocumentHandle, ts time.Time) error {
	if dh == nil {
		return errors.New("nil DocumentHandle")
	}
	env := Envelope{Version: EnvelopeVersion, Screenplay: dh.Play, ExportedAt: ts}
	blob, err := json.Marshal(env)
	if err != nil {
		return err
	}
	db, err := InitOrOpenHistory(dh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertAutosaveSQL, ts.UTC().Format(time.RFC3339Nano), blob)
	return err
}

// LatestAutosave returns the newest autosave blob, or a zero entry if none
// exists.
func LatestAutosave(ctx context.Context, dh *DocumentHandle) (AutosaveEntry, error) {
	if dh == nil {
		return AutosaveEntry{}, errors.New("nil DocumentHandle")
	}
	db, err := InitOrOpenHistory(dh.Root)
	if err != nil {
		return AutosaveEntry{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var blob []byte
	err = db.QueryRowContext(ctx, selectLatestAutosaveSQL).Scan(&tsStr, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return AutosaveEntry{}, nil
	}
	if err != nil {
		return AutosaveEntry{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return AutosaveEntry{Blob: blob}, nil
	}
	return AutosaveEntry{TS: ts, Blob: blob}, nil
}

// ListAutosaves returns up to limit most recent autosaves, newest first.
func ListAutosaves(ctx context.Context, dh *DocumentHandle, limit int) ([]AutosaveEntry, error) {
	if dh == nil {
		return nil, errors.New("nil DocumentHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenHistory(dh.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listAutosavesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []AutosaveEntry
	for rows.Next() {
		var tsStr string
		var blob []byte
		if err := rows.Scan(&tsStr, &blob); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, AutosaveEntry{TS: ts, Blob: blob})
	}
	return out, rows.Err()
}

// PruneAutosaves keeps at most keepLast entries and deletes older ones.
func PruneAutosaves(ctx context.Context, dh *DocumentHandle, keepLast int) (int64, error) {
	if dh == nil {
		return 0, errors.New("nil DocumentHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenHistory(dh.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneOldAutosavesSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
