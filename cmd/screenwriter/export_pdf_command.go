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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"screenwriter/internal/export"
)

func newExportPDFCommand() *cobra.Command {
	var outPath string
	var titlePage bool
	var pageNumbers bool

	cmd := &cobra.Command{
		Use:   "export-pdf <dir>",
		Short: "Export a document to a print-formatted PDF",
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
				outPath = filepath.Join(dh.Root, "exports", name+".pdf")
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			opt := export.PDFOptions{IncludeTitlePage: titlePage, PageNumbers: pageNumbers}
			if err := export.ExportPDF(dh.Play, outPath, opt); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported to", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path (default exports/<title>.pdf)")
	cmd.Flags().BoolVar(&titlePage, "title-page", true, "Include a title page")
	cmd.Flags().BoolVar(&pageNumbers, "page-numbers", true, "Print page numbers from page 2")
	return cmd
}
