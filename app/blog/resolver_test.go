package blog

import (
	"strings"
	"testing"
)

func TestResolver_StrictParse(t *testing.T) {
	r := NewResolver()

	raw := `{"title": "AI Breakthroughs", "subtitle": "A great week", "content": "<h2>Paper</h2><p>Body text.</p>"}`

	draft := r.Resolve(raw)
	if draft.Title != "AI Breakthroughs" {
		t.Errorf("Expected title 'AI Breakthroughs', got %q", draft.Title)
	}
	if draft.Subtitle != "A great week" {
		t.Errorf("Expected subtitle 'A great week', got %q", draft.Subtitle)
	}
	if !strings.Contains(draft.Content, "<p>Body text.</p>") {
		t.Errorf("Expected content to survive, got %q", draft.Content)
	}
}

func TestResolver_StrictParseWithCodeFences(t *testing.T) {
	r := NewResolver()

	cases := []string{
		"```json\n{\"title\": \"T\", \"subtitle\": \"S\", \"content\": \"<p>C</p>\"}\n```",
		"```\n{\"title\": \"T\", \"subtitle\": \"S\", \"content\": \"<p>C</p>\"}\n```",
	}

	for _, raw := range cases {
		draft := r.Resolve(raw)
		if draft.Title != "T" {
			t.Errorf("Fenced input not resolved strictly: got title %q for %q", draft.Title, raw)
		}
		if !strings.Contains(draft.Content, "<p>C</p>") {
			t.Errorf("Expected fenced content to resolve, got %q", draft.Content)
		}
	}
}

func TestResolver_FieldExtractTier(t *testing.T) {
	r := NewResolver()

	// Trailing prose makes this invalid JSON; the field patterns still match.
	raw := `Here is your blog post!
"title": "Manual Title", "subtitle": "Manual Subtitle",
"content": "<h2>Section</h2><p>Escaped \"quote\" and\nmore.</p>"
Hope you like it.`

	draft := r.Resolve(raw)
	if draft.Title != "Manual Title" {
		t.Errorf("Expected manually extracted title, got %q", draft.Title)
	}
	if draft.Subtitle != "Manual Subtitle" {
		t.Errorf("Expected manually extracted subtitle, got %q", draft.Subtitle)
	}
	if !strings.Contains(draft.Content, `Escaped "quote"`) {
		t.Errorf("Expected unescaped quote in content, got %q", draft.Content)
	}
	if strings.Contains(draft.Content, `\`) {
		t.Errorf("Expected escape sequences removed, got %q", draft.Content)
	}
}

func TestResolver_FallbackOnGarbage(t *testing.T) {
	r := NewResolver()

	inputs := []string{
		"",
		"   ",
		"complete nonsense with no fields at all",
		`{"title": "only a title"}`,
		"\x00\xff binary-ish garbage",
		strings.Repeat("a", 100000),
	}

	want := FallbackDraft()
	for _, raw := range inputs {
		draft := r.Resolve(raw)
		if draft.Title != want.Title {
			t.Errorf("Expected fallback title for input %.30q, got %q", raw, draft.Title)
		}
		if !containsBlockTag(draft.Content) {
			t.Errorf("Fallback content must contain a block tag, got %q", draft.Content)
		}
	}
}

func TestResolver_TierOrder(t *testing.T) {
	r := NewResolver()

	// Valid JSON must resolve strictly even though the field patterns would
	// also match: strict parse preserves the full content value, while the
	// manual pattern would stop at the first unescaped quote.
	raw := `{"title": "Strict", "subtitle": "S", "content": "<p>first</p><p>second</p>"}`

	draft := r.Resolve(raw)
	if !strings.Contains(draft.Content, "second") {
		t.Errorf("Expected strict tier to win, got %q", draft.Content)
	}
}

func TestResolver_BlockTagInvariant(t *testing.T) {
	r := NewResolver()

	inputs := []string{
		`{"title": "T", "subtitle": "S", "content": "<p>wrapped already</p>"}`,
		`{"title": "T", "subtitle": "S", "content": "plain text, no markup"}`,
		`{"title": "T", "subtitle": "S", "content": "<strong>inline only</strong>"}`,
		`{"title": "T", "subtitle": "S", "content": ""}`,
		"absolute garbage",
	}

	for _, raw := range inputs {
		draft := r.Resolve(raw)
		if !containsBlockTag(draft.Content) {
			t.Errorf("Resolved content for %.40q lacks a block-level tag: %q", raw, draft.Content)
		}
	}
}

func TestNormalizeHTML_WrapsBareText(t *testing.T) {
	got := normalizeHTML("just some text")
	if got != "<p>just some text</p>" {
		t.Errorf("Expected bare text wrapped in <p>, got %q", got)
	}
}

func TestNormalizeHTML_EmptyContent(t *testing.T) {
	got := normalizeHTML("   ")
	if got != "<p>No content available</p>" {
		t.Errorf("Expected placeholder for empty content, got %q", got)
	}
}

func TestNormalizeHTML_HeadingLineBreaks(t *testing.T) {
	got := normalizeHTML("<p>intro</p><h2>Section</h2><p>body</p>")

	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("Expected headings and paragraphs on separate lines, got %q", got)
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			t.Errorf("Expected blank lines collapsed, got %q", got)
		}
	}
	if !strings.Contains(got, "<h2>Section</h2>") {
		t.Errorf("Heading lost during normalization: %q", got)
	}
}

func TestNormalizeHTML_Unescapes(t *testing.T) {
	got := normalizeHTML(`<p>He said \"hi\"\n</p>`)
	if !strings.Contains(got, `He said "hi"`) {
		t.Errorf("Expected escapes removed, got %q", got)
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```"
	if got := stripCodeFences(in); got != `{"a": 1}` {
		t.Errorf("stripCodeFences = %q", got)
	}

	plain := `{"a": 1}`
	if got := stripCodeFences(plain); got != plain {
		t.Errorf("Unfenced input altered: %q", got)
	}
}
