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

	"github.com/spf13/cobra"

	"screenwriter/internal/config"
	"screenwriter/internal/export"
	"screenwriter/internal/layout"
)

func newPaginateCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "paginate <dir>",
		Short: "Estimate the page count of a document",
		Long: "Estimate the page count of a document.\n\n" +
			"Mode \"coarse\" uses the fast character-count heuristic that drives\n" +
			"live page indicators; mode \"export\" wraps real text at print column\n" +
			"widths and matches the PDF output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				mode = cfg.Pagination.Mode
			}
			dh, err := openDocument(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch mode {
			case "coarse":
				breaks := layout.PageBreaks(dh.Play.Elements)
				fmt.Fprintf(out, "Pages: %d (coarse estimate)\n", len(breaks)+1)
				for i, b := range breaks {
					fmt.Fprintf(out, "Page %d starts at element %d\n", i+2, b)
				}
			case "export":
				pages := export.Paginate(dh.Play.Elements, export.CourierMeasure)
				fmt.Fprintf(out, "Pages: %d (export-precision)\n", len(pages))
			default:
				return fmt.Errorf("unknown pagination mode %q (coarse|export)", mode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Pagination mode: coarse or export (default from config)")
	return cmd
}
