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
	"path/filepath"

	"github.com/spf13/cobra"

	"screenwriter/internal/domain"
	applog "screenwriter/internal/log"
	"screenwriter/internal/storage"
)

func newInitCommand() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "init <dir> <title>",
		Short: "Create a new screenplay document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			title := args[1]
			l := applog.WithComponent("cli")
			l.Info("init document", slog.String("root", abs), slog.String("title", title))

			play := domain.NewScreenplay(title)
			play.Author = author
			dh, err := storage.Init(abs, play)
			if err != nil {
				return err
			}
			activeDoc = dh
			fmt.Fprintln(cmd.OutOrStdout(), "Created screenplay at", abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Screenplay author")
	return cmd
}
