/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"github.com/spf13/cobra"

	"screenwriter/internal/storage"
)

// activeDoc is the document handle held for crash recovery. Commands that
// open or create a document set it so a panic can still autosave.
var activeDoc *storage.DocumentHandle

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "screenwriter",
		Short:         "Screenplay authoring and export tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newPaginateCommand())
	rootCmd.AddCommand(newImportFDXCommand())
	rootCmd.AddCommand(newExportFDXCommand())
	rootCmd.AddCommand(newExportPDFCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
