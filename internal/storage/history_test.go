/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"testing"
)

func TestInitOrOpenHistoryCreatesStore(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenHistory(root)
	if err != nil {
		t.Fatalf("InitOrOpenHistory error: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(HistoryPath(root)); err != nil {
		t.Fatalf("history db missing: %v", err)
	}

	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}

	// Fresh stores start at the base schema; the first open must migrate
	// them to current, which adds the ts index.
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_autosaves_ts'`).Scan(&n); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if n != 1 {
		t.Fatalf("idx_autosaves_ts missing on fresh store")
	}
}

func TestInitOrOpenHistoryIdempotent(t *testing.T) {
	root := t.TempDir()
	db1, err := InitOrOpenHistory(root)
	if err != nil {
		t.Fatalf("first open error: %v", err)
	}
	_ = db1.Close()

	db2, err := InitOrOpenHistory(root)
	if err != nil {
		t.Fatalf("second open error: %v", err)
	}
	defer func() { _ = db2.Close() }()

	// Migration to schemaVersion created the ts index.
	var n int
	if err := db2.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_autosaves_ts'`).Scan(&n); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if n != 1 {
		t.Fatalf("idx_autosaves_ts missing after reopen")
	}
}

func TestInitOrOpenHistoryRejectsEmptyRoot(t *testing.T) {
	if _, err := InitOrOpenHistory("  "); err == nil {
		t.Fatalf("expected error for blank root")
	}
}
