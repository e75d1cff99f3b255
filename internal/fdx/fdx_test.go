/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fdx

import (
	"strings"
	"testing"
	"unicode/utf8"

	"screenwriter/internal/domain"
)

func mkEl(t domain.ElementType, content string) domain.ScriptElement {
	e := domain.NewElement(t)
	e.Content = content
	return e
}

func TestEncodeDecodeContentRoundTrip(t *testing.T) {
	play := domain.NewScreenplay("Round Trip")
	play.Author = "A. Writer"
	play.Elements = []domain.ScriptElement{
		mkEl(domain.SceneHeading, "INT. LAB - NIGHT"),
		mkEl(domain.Action, "Beakers bubble."),
		mkEl(domain.Character, "DOC"),
		mkEl(domain.Parenthetical, "(muttering)"),
		mkEl(domain.Dialogue, "It's alive... & kicking <truly>."),
		mkEl(domain.Transition, "SMASH CUT TO:"),
	}

	decoded, err := Decode(Encode(play))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Elements) != len(play.Elements) {
		t.Fatalf("element count %d, want %d", len(decoded.Elements), len(play.Elements))
	}
	for i := range play.Elements {
		if decoded.Elements[i].Type != play.Elements[i].Type {
			t.Fatalf("element %d type = %q, want %q", i, decoded.Elements[i].Type, play.Elements[i].Type)
		}
		if decoded.Elements[i].Content != play.Elements[i].Content {
			t.Fatalf("element %d content = %q, want %q", i, decoded.Elements[i].Content, play.Elements[i].Content)
		}
		if decoded.Elements[i].ID == play.Elements[i].ID {
			t.Fatalf("element %d kept its source identifier", i)
		}
	}
	if decoded.Title != "Round Trip" {
		t.Fatalf("title = %q", decoded.Title)
	}
	if decoded.Author != "A. Writer" {
		t.Fatalf("author = %q", decoded.Author)
	}
}

func TestDecodeMalformedXML(t *testing.T) {
	if _, err := Decode("<FinalDraft><Content>"); err == nil {
		t.Fatalf("expected error for truncated XML")
	}
	if _, err := Decode("not xml at all <<<"); err == nil {
		t.Fatalf("expected error for junk input")
	}
}

func TestDecodeAliasesAndUnknownTypes(t *testing.T) {
	doc := `<?xml version="1.0"?>
<FinalDraft DocumentType="Script">
  <Content>
    <Paragraph Type="General"><Text>A general note.</Text></Paragraph>
    <Paragraph Type="Shot"><Text>CLOSE ON the door.</Text></Paragraph>
    <Paragraph Type="Singing"><Text>La la la.</Text></Paragraph>
    <Paragraph Type="Singing"><Text>   </Text></Paragraph>
    <Paragraph Type="Action"><Text>Normal action.</Text></Paragraph>
  </Content>
</FinalDraft>`
	play, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(play.Elements) != 4 {
		t.Fatalf("expected 4 elements (blank unknown dropped), got %d", len(play.Elements))
	}
	if play.Elements[0].Type != domain.Action {
		t.Fatalf("General mapped to %q, want action", play.Elements[0].Type)
	}
	if play.Elements[1].Type != domain.SceneHeading {
		t.Fatalf("Shot mapped to %q, want scene heading", play.Elements[1].Type)
	}
	if play.Elements[2].Type != domain.Action || play.Elements[2].Content != "La la la." {
		t.Fatalf("unknown type with text = %+v, want action", play.Elements[2])
	}
}

func TestDecodeConcatenatesTextRuns(t *testing.T) {
	doc := `<FinalDraft>
  <Content>
    <Paragraph Type="Dialogue"><Text>One </Text><Text Style="Bold">two</Text><Text> three.</Text></Paragraph>
  </Content>
</FinalDraft>`
	play, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := play.Elements[0].Content; got != "One two three." {
		t.Fatalf("runs concatenated to %q", got)
	}
}

func TestDecodeTitleBestEffort(t *testing.T) {
	doc := `<FinalDraft>
  <Content><Paragraph Type="Action"><Text>x</Text></Paragraph></Content>
  <TitlePage><Content>
    <Paragraph><Text>  </Text></Paragraph>
    <Paragraph><Text>Written by</Text></Paragraph>
    <Paragraph><Text>Jo Author</Text></Paragraph>
    <Paragraph><Text>My Great Title</Text></Paragraph>
  </Content></TitlePage>
</FinalDraft>`
	play, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Blank and credit lines are skipped; the author line comes first in
	// document order, so best effort picks it. Only the documented
	// behavior is asserted, not perfect extraction.
	if play.Title != "Jo Author" {
		t.Fatalf("title = %q", play.Title)
	}
	if play.Author != "Jo Author" {
		t.Fatalf("author = %q", play.Author)
	}
}

func TestDecodeTitleCap(t *testing.T) {
	long := strings.Repeat("t", 150)
	doc := `<FinalDraft>
  <Content><Paragraph Type="Action"><Text>x</Text></Paragraph></Content>
  <TitlePage><Content><Paragraph><Text>` + long + `</Text></Paragraph></Content></TitlePage>
</FinalDraft>`
	play, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(play.Title) != 100 {
		t.Fatalf("title length = %d, want capped 100", len(play.Title))
	}
}

func TestDecodeTitleCapCountsRunes(t *testing.T) {
	long := strings.Repeat("é", 150) // 2 bytes per rune
	doc := `<FinalDraft>
  <Content><Paragraph Type="Action"><Text>x</Text></Paragraph></Content>
  <TitlePage><Content><Paragraph><Text>` + long + `</Text></Paragraph></Content></TitlePage>
</FinalDraft>`
	play, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := utf8.RuneCountInString(play.Title); got != 100 {
		t.Fatalf("title rune count = %d, want capped 100", got)
	}
	if !utf8.ValidString(play.Title) {
		t.Fatalf("cap split a rune: %q", play.Title)
	}
}

func TestDecodeEmptyContentNeverEmptiesSequence(t *testing.T) {
	play, err := Decode(`<FinalDraft><Content></Content></FinalDraft>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(play.Elements) != 1 {
		t.Fatalf("expected the guard element, got %d elements", len(play.Elements))
	}
}

func TestEncodeEscapesText(t *testing.T) {
	play := domain.NewScreenplay("T")
	play.Elements = []domain.ScriptElement{mkEl(domain.Action, `Tom & Jerry say "hi" <loudly> & don't stop`)}
	out := Encode(play)
	if strings.Contains(out, `say "hi" <loudly>`) {
		t.Fatalf("text not escaped: %s", out)
	}
	for _, want := range []string{"&amp;", "&lt;loudly&gt;", "&quot;hi&quot;", "&apos;t"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing escape %q in output", want)
		}
	}
}

func TestEncodeTitlePagePrecedesContent(t *testing.T) {
	play := domain.NewScreenplay("Ordered")
	play.Author = "Jo Author"
	out := Encode(play)
	tp := strings.Index(out, "<TitlePage>")
	// The document-level content block sits at two-space indent; the title
	// page nests its own <Content> deeper.
	body := strings.Index(out, "\n  <Content>")
	if tp < 0 || body < 0 {
		t.Fatalf("expected both blocks in output:\n%s", out)
	}
	if tp > body {
		t.Fatalf("title page must precede the content block:\n%s", out)
	}
}
