/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a screenplay to a print-accurate PDF. Unlike the
// coarse estimator in internal/layout, pagination here wraps real text at
// widths measured for the rendering context and applies the print spacing
// policy (two lead lines before a scene heading, one before action,
// character and transition). The two policies are intentionally distinct.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"screenwriter/internal/domain"
	"screenwriter/internal/layout"
)

// Fixed print metrics in points. Courier 12 is the screenplay standard:
// fixed pitch, 10 characters per inch, 6 lines per inch.
const (
	ptPerIn    = 72.0
	fontSize   = 12.0
	lineHeight = 12.0

	pageW   = layout.PageWidthIn * ptPerIn
	pageH   = layout.PageHeightIn * ptPerIn
	marginL = layout.MarginLeftIn * ptPerIn
	marginR = layout.MarginRightIn * ptPerIn
	marginT = layout.MarginTopIn * ptPerIn
	marginB = layout.MarginBottomIn * ptPerIn

	textW = pageW - marginL - marginR

	characterX = marginL + layout.CharacterIndentIn*ptPerIn
	parenX     = marginL + layout.ParentheticalIndentIn*ptPerIn
	dialogueX  = marginL + layout.DialogueIndentIn*ptPerIn
	dialogueW  = layout.DialogueWidthIn * ptPerIn
	parenW     = 3.0 * ptPerIn
)

// linesPerPage is derived from the printable height at 6 lines per inch.
var linesPerPage = int((pageH - marginT - marginB) / lineHeight)

// MeasureFunc returns the rendered width of s in points.
type MeasureFunc func(s string) float64

// CourierMeasure approximates Courier 12 at its fixed pitch of 10
// characters per inch. Used when no rendering context is available.
func CourierMeasure(s string) float64 { return float64(len(s)) * (ptPerIn / 10.0) }

// Line is one laid-out output line with its horizontal placement.
type Line struct {
	Text       string
	X          float64 // left edge in points; ignored when AlignRight
	AlignRight bool
}

// Page is a sequence of laid-out lines.
type Page struct {
	Lines []Line
}

// PDFOptions controls PDF export behavior.
type PDFOptions struct {
	IncludeTitlePage bool
	PageNumbers      bool
}

// leadBlankLines is the print spacing-before policy. Scene headings get two
// blank lines of lead, action/character/transition one, dialogue and
// parenthetical none: they attach to the block above.
func leadBlankLines(t domain.ElementType) int {
	switch t {
	case domain.SceneHeading:
		return 2
	case domain.Action, domain.Character, domain.Transition:
		return 1
	}
	return 0
}

// columnFor maps an element kind to its left offset and wrap width.
func columnFor(t domain.ElementType) (x, width float64, alignRight bool) {
	switch t {
	case domain.Character:
		return characterX, textW - (characterX - marginL), false
	case domain.Parenthetical:
		return parenX, parenW, false
	case domain.Dialogue:
		return dialogueX, dialogueW, false
	case domain.Transition:
		return marginL, textW, true
	default:
		return marginL, textW, false
	}
}

// Paginate lays the element sequence out into pages, wrapping each
// element's content at its column width using measure. Lead blank lines are
// suppressed at the top of a page.
func Paginate(elements []domain.ScriptElement, measure MeasureFunc) []Page {
	pages := []Page{{}}
	cur := &pages[len(pages)-1]
	used := 0

	newPage := func() {
		pages = append(pages, Page{})
		cur = &pages[len(pages)-1]
		used = 0
	}
	emit := func(l Line) {
		if used >= linesPerPage {
			newPage()
		}
		cur.Lines = append(cur.Lines, l)
		used++
	}

	for _, el := range elements {
		if used > 0 {
			for i := 0; i < leadBlankLines(el.Type); i++ {
				if used >= linesPerPage {
					break
				}
				emit(Line{})
			}
		}
		x, width, right := columnFor(el.Type)
		for _, text := range wrapMeasured(el.Content, width, measure) {
			emit(Line{Text: text, X: x, AlignRight: right})
		}
	}
	return pages
}

// wrapMeasured splits text into lines no wider than width points, breaking
// on spaces. A single word wider than the column gets its own line rather
// than being split mid-word.
func wrapMeasured(text string, width float64, measure MeasureFunc) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if measure(cur+" "+w) <= width {
				cur += " " + w
				continue
			}
			out = append(out, cur)
			cur = w
		}
		out = append(out, cur)
	}
	return out
}

// ExportPDF writes the screenplay as a paginated PDF at outPath, creating
// parent directories as needed.
func ExportPDF(play *domain.Screenplay, outPath string, opt PDFOptions) error {
	if play == nil {
		return fmt.Errorf("screenplay is nil")
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetTitle(play.Title, false)
	if play.Author != "" {
		pdf.SetAuthor(play.Author, false)
	}
	pdf.SetFont("Courier", "", fontSize)

	if opt.IncludeTitlePage {
		renderTitlePage(pdf, play)
	}

	measure := func(s string) float64 { return pdf.GetStringWidth(s) }
	pages := Paginate(play.Elements, measure)
	for i, page := range pages {
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})
		if opt.PageNumbers && i > 0 {
			num := fmt.Sprintf("%d.", i+1)
			pdf.Text(pageW-marginR-pdf.GetStringWidth(num), marginT-lineHeight, num)
		}
		y := marginT + lineHeight
		for _, ln := range page.Lines {
			if ln.Text != "" {
				x := ln.X
				if ln.AlignRight {
					x = pageW - marginR - pdf.GetStringWidth(ln.Text)
				}
				pdf.Text(x, y, ln.Text)
			}
			y += lineHeight
		}
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// renderTitlePage draws the optional front matter: centered title block in
// the upper half, contact/copyright lines at the lower left.
func renderTitlePage(pdf *gofpdf.Fpdf, play *domain.Screenplay) {
	tp := play.TitlePage
	if tp == nil {
		tp = &domain.TitlePage{Title: play.Title, Author: play.Author}
	}
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	centered := func(text string, y float64) {
		if text == "" {
			return
		}
		pdf.Text(marginL+(textW-pdf.GetStringWidth(text))/2, y, text)
	}
	y := pageH * 0.35
	centered(strings.ToUpper(tp.Title), y)
	y += 2 * lineHeight
	credit := tp.Credit
	if credit == "" && tp.Author != "" {
		credit = "written by"
	}
	centered(credit, y)
	y += 2 * lineHeight
	centered(tp.Author, y)
	if tp.BasedOn != "" {
		y += 2 * lineHeight
		centered(tp.BasedOn, y)
	}
	if tp.DraftDate != "" {
		y += 2 * lineHeight
		centered(tp.DraftDate, y)
	}

	y = pageH - marginB - 3*lineHeight
	for _, left := range []string{tp.ContactInfo, tp.Copyright} {
		if left == "" {
			continue
		}
		pdf.Text(marginL, y, left)
		y += lineHeight
	}
}
