/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot is a reversible whole-document state blob. The content is opaque
// to the manager; size accounting uses len(Blob).
type Snapshot struct {
	Blob []byte
	TS   time.Time
}

// Config controls memory/depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; the oldest entries are pruned when exceeded.
	MaxBytes int
	// MaxDepth limits the number of undo entries kept (0 means unlimited).
	MaxDepth int
	// MinInterval coalesces snapshots captured within the interval,
	// replacing the previous entry instead of pushing a new one. Keystroke
	// bursts collapse into one undo step.
	MinInterval time.Duration
}

// Manager keeps undo/redo stacks of document snapshots with performance
// safeguards. It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	undo []Snapshot
	redo []Snapshot

	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg}
}

// Push records a pre-mutation snapshot. If within MinInterval of the last
// entry it replaces it. Any push invalidates the redo stack.
func (m *Manager) Push(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.undo); n > 0 {
		last := m.undo[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			m.totalBytes += len(s.Blob) - len(last.Blob)
			m.undo[n-1] = s
			m.redo = nil
			m.enforceCapsLocked()
			return
		}
	}
	m.undo = append(m.undo, s)
	m.totalBytes += len(s.Blob)
	m.redo = nil
	m.enforceCapsLocked()
}

// Undo pops the latest snapshot, parking current on the redo stack so Redo
// can return to it. Returns false when the undo stack is empty.
func (m *Manager) Undo(current Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.totalBytes -= len(s.Blob)
	m.redo = append(m.redo, current)
	return s, true
}

// Redo pops the latest redo snapshot, parking current back on the undo
// stack.
func (m *Manager) Redo(current Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.redo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.undo = append(m.undo, current)
	m.totalBytes += len(current.Blob)
	m.enforceCapsLocked()
	return s, true
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = nil
	m.redo = nil
	m.totalBytes = 0
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes, undoDepth, redoDepth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalBytes, len(m.undo), len(m.redo)
}

func (m *Manager) enforceCapsLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		drop := len(m.undo) - m.cfg.MaxDepth
		for i := 0; i < drop; i++ {
			m.totalBytes -= len(m.undo[i].Blob)
		}
		m.undo = append([]Snapshot{}, m.undo[drop:]...)
	}
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes && len(m.undo) > 0 {
		m.totalBytes -= len(m.undo[0].Blob)
		m.undo = m.undo[1:]
	}
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}
