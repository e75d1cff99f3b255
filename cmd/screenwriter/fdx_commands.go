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
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"screenwriter/internal/editor"
	"screenwriter/internal/fdx"
	applog "screenwriter/internal/log"
	"screenwriter/internal/storage"
)

func newImportFDXCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-fdx <file.fdx> <dir>",
		Short: "Import a Final Draft file into a new document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read fdx: %w", err)
			}
			play, err := fdx.Decode(string(data))
			if err != nil {
				return fmt.Errorf("decode fdx: %w", err)
			}
			// Rebuild derived indices before the first save.
			editor.New(play)

			abs, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}
			dh, err := storage.Init(abs, play)
			if err != nil {
				return err
			}
			activeDoc = dh
			applog.WithComponent("cli").Info("fdx imported",
				slog.String("source", args[0]), slog.String("root", abs),
				slog.Int("elements", len(play.Elements)))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d elements) into %s\n", play.Title, len(play.Elements), abs)
			return nil
		},
	}
	return cmd
}

func newExportFDXCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export-fdx <dir>",
		Short: "Export a document to Final Draft format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dh, err := openDocument(args[0])
			if err != nil {
				return err
			}

			if outPath == "" {
				name := strings.TrimSpace(dh.Play.Title)
				if name == "" {
					name = "screenplay"
				}
				outPath = filepath.Join(dh.Root, "exports", name+".fdx")
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, []byte(fdx.Encode(dh.Play)), 0o644); err != nil {
				return fmt.Errorf("write fdx: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported to", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path (default exports/<title>.fdx)")
	return cmd
}
