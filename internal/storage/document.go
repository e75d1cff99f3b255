/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"screenwriter/internal/domain"
	applog "screenwriter/internal/log"
)

const (
	DocumentFileName = "screenplay.json"
	BackupsDirName   = "backups"

	// EnvelopeVersion is the native persisted format version. Mismatches
	// on load are tolerated with a warning, not an error.
	EnvelopeVersion = 1
)

// Standard subfolders scaffolded next to the document.
var standardSubDirs = []string{
	"exports",
	BackupsDirName,
}

// Envelope is the native persisted format: the screenplay wrapped with a
// format version and export timestamp. Every field round-trips losslessly.
type Envelope struct {
	Version    int                `json:"version"`
	Screenplay *domain.Screenplay `json:"screenplay"`
	ExportedAt time.Time          `json:"exportedAt"`
}

// DocumentHandle tracks the on-disk location of a screenplay document.
// Root is the document directory containing screenplay.json and subfolders.
type DocumentHandle struct {
	Root         string
	DocumentPath string
	Play         *domain.Screenplay
}

// Init creates a new document directory at root (creating it if needed),
// scaffolds the standard subfolders, and writes the screenplay.
func Init(root string, play *domain.Screenplay) (*DocumentHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if play == nil {
		return nil, errors.New("screenplay is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create document root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	dh := &DocumentHandle{
		Root:         root,
		DocumentPath: filepath.Join(root, DocumentFileName),
		Play:         play,
	}
	if err := Save(dh); err != nil {
		return nil, err
	}
	return dh, nil
}

// Open loads an existing document from root. If the current file cannot be
// read or parsed it falls back to the latest backup. A version mismatch in
// the envelope is logged and otherwise ignored.
func Open(root string) (*DocumentHandle, error) {
	dpath := filepath.Join(root, DocumentFileName)
	b, err := os.ReadFile(dpath)
	if err != nil {
		play, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open document: %w; backup attempt: %v", err, berr)
		}
		return &DocumentHandle{Root: root, DocumentPath: dpath, Play: play}, nil
	}
	play, uerr := decodeEnvelope(b)
	if uerr != nil {
		bplay, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse document: %w; backup attempt: %v", uerr, berr)
		}
		return &DocumentHandle{Root: root, DocumentPath: dpath, Play: bplay}, nil
	}
	return &DocumentHandle{Root: root, DocumentPath: dpath, Play: play}, nil
}

func decodeEnvelope(b []byte) (*domain.Screenplay, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	if env.Screenplay == nil {
		return nil, errors.New("envelope has no screenplay")
	}
	if env.Version != EnvelopeVersion {
		applog.WithComponent("storage").Warn("envelope version mismatch",
			slog.Int("have", env.Version), slog.Int("want", EnvelopeVersion))
	}
	if len(env.Screenplay.Elements) == 0 {
		env.Screenplay.Elements = []domain.ScriptElement{domain.NewElement(domain.SceneHeading)}
	}
	return env.Screenplay, nil
}

// Save writes the handle's screenplay to disk with transactional semantics
// and a timestamped backup of the previous file (if present).
func Save(dh *DocumentHandle) error {
	if dh == nil {
		return errors.New("nil DocumentHandle")
	}
	if dh.Root == "" || dh.DocumentPath == "" {
		return errors.New("invalid DocumentHandle: missing paths")
	}
	env := Envelope{Version: EnvelopeVersion, Screenplay: dh.Play, ExportedAt: time.Now()}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')

	bdir := filepath.Join(dh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}
	if _, statErr := os.Stat(dh.DocumentPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bpath := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", DocumentFileName, stamp))
		if cerr := copyFile(dh.DocumentPath, bpath); cerr != nil {
			return fmt.Errorf("backup current document: %w", cerr)
		}
	}

	// Transactional write: temp file in the same directory, then rename.
	dir := filepath.Dir(dh.DocumentPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", DocumentFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp document: %w", werr)
	}
	if _, err := os.Stat(dh.DocumentPath); err == nil {
		_ = os.Remove(dh.DocumentPath)
	}
	if rerr := os.Rename(temp, dh.DocumentPath); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace document: %w", rerr)
	}
	return nil
}

// SaveAs writes the document to a new root folder, scaffolding structure if
// needed, and updates the handle.
func SaveAs(dh *DocumentHandle, newRoot string) error {
	if dh == nil {
		return errors.New("nil DocumentHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	dh.Root = newRoot
	dh.DocumentPath = filepath.Join(newRoot, DocumentFileName)
	return Save(dh)
}

// AutosaveCrashSnapshot writes an emergency copy of the screenplay into the
// backups folder, bypassing the transactional save path. Used by crash
// recovery, where the normal path may be what just failed.
func AutosaveCrashSnapshot(dh *DocumentHandle) (string, error) {
	if dh == nil {
		return "", errors.New("nil DocumentHandle")
	}
	env := Envelope{Version: EnvelopeVersion, Screenplay: dh.Play, ExportedAt: time.Now()}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal crash snapshot: %w", err)
	}
	bdir := filepath.Join(dh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	path := filepath.Join(bdir, fmt.Sprintf("crash-%s.json", time.Now().Format("20060102-150405")))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return path, nil
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	if err := df.Sync(); err != nil {
		return err
	}
	return nil
}

// openFromLatestBackup tries the newest timestamped backup.
func openFromLatestBackup(root string) (*domain.Screenplay, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, DocumentFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	return decodeEnvelope(b)
}
