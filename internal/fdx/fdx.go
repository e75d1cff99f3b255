/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fdx converts between the screenplay model and the FDX screenplay
// interchange format. The round trip is lossy by design: inline format
// ranges, voice annotations folded into character identity, and title-page
// fields outside the mapped set do not survive encode-then-decode. Element
// content and kind tags do.
package fdx

import (
	"encoding/xml"
	"fmt"
	"strings"

	"screenwriter/internal/domain"
)

// kindNames maps element types to FDX paragraph Type attributes.
var kindNames = map[domain.ElementType]string{
	domain.SceneHeading:  "Scene Heading",
	domain.Action:        "Action",
	domain.Character:     "Character",
	domain.Dialogue:      "Dialogue",
	domain.Parenthetical: "Parenthetical",
	domain.Transition:    "Transition",
}

// kindFromName is the inverse table plus aliases some tools emit.
var kindFromName = map[string]domain.ElementType{
	"Scene Heading": domain.SceneHeading,
	"Action":        domain.Action,
	"Character":     domain.Character,
	"Dialogue":      domain.Dialogue,
	"Parenthetical": domain.Parenthetical,
	"Transition":    domain.Transition,
	"General":       domain.Action,
	"Shot":          domain.SceneHeading,
}

const maxTitleLength = 100

// Encode serializes the screenplay as an FDX document.
func Encode(play *domain.Screenplay) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n")
	b.WriteString("<FinalDraft DocumentType=\"Script\" Template=\"No\" Version=\"1\">\n")

	writeTitlePage(&b, play)

	b.WriteString("  <Content>\n")
	for _, el := range play.Elements {
		name, ok := kindNames[el.Type]
		if !ok {
			name = "Action"
		}
		b.WriteString("    <Paragraph Type=\"" + name + "\">\n")
		b.WriteString("      <Text>" + escape(el.Content) + "</Text>\n")
		b.WriteString("    </Paragraph>\n")
	}
	b.WriteString("  </Content>\n")
	b.WriteString("</FinalDraft>\n")
	return b.String()
}

func writeTitlePage(b *strings.Builder, play *domain.Screenplay) {
	tp := play.TitlePage
	if tp == nil {
		if play.Title == "" && play.Author == "" {
			return
		}
		tp = &domain.TitlePage{Title: play.Title, Author: play.Author}
	}
	credit := tp.Credit
	if credit == "" && tp.Author != "" {
		credit = "Written by"
	}
	b.WriteString("  <TitlePage>\n    <Content>\n")
	centered := []string{tp.Title, credit, tp.Author, tp.BasedOn, tp.DraftDate}
	for _, text := range centered {
		if text == "" {
			continue
		}
		writeParagraph(b, "Centered", text)
	}
	for _, text := range []string{tp.ContactInfo, tp.Copyright} {
		if text == "" {
			continue
		}
		writeParagraph(b, "Left", text)
	}
	b.WriteString("    </Content>\n  </TitlePage>\n")
}

func writeParagraph(b *strings.Builder, alignment, text string) {
	b.WriteString("      <Paragraph Alignment=\"" + alignment + "\">\n")
	b.WriteString("        <Text>" + escape(text) + "</Text>\n")
	b.WriteString("      </Paragraph>\n")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string { return escaper.Replace(s) }

// Decode document structure, shared with whatever FDX flavor produced the
// file; unknown elements are ignored by encoding/xml.
type fdxFile struct {
	XMLName   xml.Name      `xml:"FinalDraft"`
	Content   fdxContent    `xml:"Content"`
	TitlePage *fdxTitlePage `xml:"TitlePage"`
	Header    *fdxHeadFoot  `xml:"HeaderAndFooter>Header"`
	Footer    *fdxHeadFoot  `xml:"HeaderAndFooter>Footer"`
}

type fdxContent struct {
	Paragraphs []fdxParagraph `xml:"Paragraph"`
}

type fdxTitlePage struct {
	Content fdxContent `xml:"Content"`
}

type fdxHeadFoot struct {
	Paragraphs []fdxParagraph `xml:"Paragraph"`
}

type fdxParagraph struct {
	Type string   `xml:"Type,attr"`
	Text []string `xml:"Text"`
}

// text concatenates a paragraph's runs, the way consumers see them.
func (p fdxParagraph) text() string { return strings.Join(p.Text, "") }

// Decode parses FDX text into a fresh screenplay. Structural XML errors
// fail the decode and no partial model is returned. Every element gets a
// freshly generated identifier; source identifiers are never preserved.
func Decode(data string) (*domain.Screenplay, error) {
	var f fdxFile
	if err := xml.Unmarshal([]byte(data), &f); err != nil {
		return nil, fmt.Errorf("parse fdx: %w", err)
	}

	play := domain.NewScreenplay("")
	play.Elements = play.Elements[:0]
	for _, p := range f.Content.Paragraphs {
		text := p.text()
		kind, known := kindFromName[p.Type]
		if !known {
			// Unknown paragraph types carry over as action when they
			// have content; blank ones are dropped.
			if strings.TrimSpace(text) == "" {
				continue
			}
			kind = domain.Action
		}
		el := domain.NewElement(kind)
		el.Content = text
		play.Elements = append(play.Elements, el)
	}
	if len(play.Elements) == 0 {
		play.Elements = append(play.Elements, domain.NewElement(domain.SceneHeading))
	}

	play.Title = extractTitle(&f)
	play.Author = extractAuthor(&f)
	return play, nil
}

// extractTitle picks the first title-page paragraph that does not look like
// a "written by" credit, falling back to a header/footer line. Best effort;
// capped at 100 characters.
func extractTitle(f *fdxFile) string {
	if f.TitlePage != nil {
		for _, p := range f.TitlePage.Content.Paragraphs {
			text := strings.TrimSpace(p.text())
			if text == "" || isCreditLine(text) {
				continue
			}
			return truncate(text, maxTitleLength)
		}
	}
	for _, hf := range []*fdxHeadFoot{f.Header, f.Footer} {
		if hf == nil {
			continue
		}
		for _, p := range hf.Paragraphs {
			if text := strings.TrimSpace(p.text()); text != "" {
				return truncate(text, maxTitleLength)
			}
		}
	}
	return ""
}

// extractAuthor looks for the paragraph following a credit line. It may
// come back empty; that fidelity gap is accepted.
func extractAuthor(f *fdxFile) string {
	if f.TitlePage == nil {
		return ""
	}
	ps := f.TitlePage.Content.Paragraphs
	for i, p := range ps {
		if isCreditLine(strings.TrimSpace(p.text())) && i+1 < len(ps) {
			return strings.TrimSpace(ps[i+1].text())
		}
	}
	return ""
}

func isCreditLine(s string) bool {
	l := strings.ToLower(s)
	return strings.Contains(l, "written by") || l == "by"
}

// truncate caps s at n characters, never splitting a rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
