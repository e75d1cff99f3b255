/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"screenwriter/internal/config"
	"screenwriter/internal/storage"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage the autosave history of a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistorySnapshotCommand())
	cmd.AddCommand(newHistoryPruneCommand())
	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list <dir>",
		Short: "List autosave snapshots, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dh, err := openDocument(args[0])
			if err != nil {
				return err
			}
			entries, err := storage.ListAutosaves(cmd.Context(), dh, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No autosaves recorded.")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.TS.Local().Format(time.RFC3339),
					strconv.Itoa(len(e.Blob)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Saved at", "Bytes"}, rows, 1))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show (default 50)")
	return cmd
}

func newHistorySnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <dir>",
		Short: "Record an autosave snapshot of the current document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dh, err := openDocument(args[0])
			if err != nil {
				return err
			}
			if err := storage.SaveAutosave(cmd.Context(), dh, time.Now()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot recorded.")
			return nil
		},
	}
	return cmd
}

func newHistoryPruneCommand() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune <dir>",
		Short: "Delete old autosaves, keeping the most recent ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dh, err := openDocument(args[0])
			if err != nil {
				return err
			}
			if keep <= 0 {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				keep = cfg.General.KeepAutosaves
			}
			deleted, err := storage.PruneAutosaves(cmd.Context(), dh, keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d snapshot(s), kept at most %d.\n", deleted, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "Snapshots to keep (default from config)")
	return cmd
}

func openDocument(dir string) (*storage.DocumentHandle, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	dh, err := storage.Open(abs)
	if err != nil {
		return nil, err
	}
	activeDoc = dh
	return dh, nil
}
