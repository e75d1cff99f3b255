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
	"strconv"

	"github.com/spf13/cobra"

	"screenwriter/internal/editor"
	"screenwriter/internal/layout"
)

func newInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <dir>",
		Short: "Show document summary with scenes, characters and locations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dh, err := openDocument(args[0])
			if err != nil {
				return err
			}
			doc := editor.New(dh.Play)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:    %s\n", dh.Play.Title)
			if dh.Play.Author != "" {
				fmt.Fprintf(out, "Author:   %s\n", dh.Play.Author)
			}
			fmt.Fprintf(out, "Elements: %d\n", len(doc.Elements()))
			fmt.Fprintf(out, "Pages:    %d (estimated)\n", layout.PageCount(doc.Elements()))

			if scenes := doc.Scenes(); len(scenes) > 0 {
				rows := make([][]string, 0, len(scenes))
				for _, s := range scenes {
					inOut := "EXT"
					if s.Interior {
						inOut = "INT"
					}
					rows = append(rows, []string{
						strconv.Itoa(s.Number), s.Location, s.TimeOfDay, inOut,
					})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"#", "Location", "Time", "Int/Ext"}, rows, 0))
			}

			if chars := doc.Characters(); len(chars) > 0 {
				rows := make([][]string, 0, len(chars))
				for _, c := range chars {
					rows = append(rows, []string{c.Name, strconv.Itoa(c.LineCount)})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"Character", "Lines"}, rows, 1))
			}

			if locs := doc.Locations(); len(locs) > 0 {
				rows := make([][]string, 0, len(locs))
				for _, loc := range locs {
					inOut := "EXT"
					if loc.Interior {
						inOut = "INT"
					}
					rows = append(rows, []string{loc.Name, strconv.Itoa(loc.Occurrence), inOut})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"Location", "Scenes", "Int/Ext"}, rows, 1))
			}
			return nil
		},
	}
	return cmd
}
