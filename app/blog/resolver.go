package blog

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

var (
	fenceOpenRegexp  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceCloseRegexp = regexp.MustCompile("\\s*```$")

	titleFieldRegexp    = regexp.MustCompile(`(?i)"title"\s*:\s*"([^"]+)"`)
	subtitleFieldRegexp = regexp.MustCompile(`(?i)"subtitle"\s*:\s*"([^"]+)"`)
	contentFieldRegexp  = regexp.MustCompile(`(?i)"content"\s*:\s*"((?:[^"\\]|\\.)*)"`)

	blankLineRegexp = regexp.MustCompile(`\n\s*\n`)
)

var blockTags = []string{"<p>", "<h1>", "<h2>", "<h3>", "<h4>", "<h5>", "<h6>"}

// strategy is one tier of the resolution chain. A strategy either produces
// a draft or reports that it does not apply, in which case the next tier
// is tried.
type strategy interface {
	resolve(raw string) (Draft, bool)
}

// Resolver turns arbitrary model output into a valid Draft through an
// ordered chain of strategies: strict JSON parse, tolerant per-field
// extraction, hardcoded fallback. The fallback tier always applies, so
// resolution always terminates and never fails.
type Resolver struct {
	strategies []strategy
}

func NewResolver() *Resolver {
	return &Resolver{
		strategies: []strategy{
			strictParse{},
			fieldExtract{},
			fallback{},
		},
	}
}

func (r *Resolver) Resolve(raw string) (draft Draft) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Resolver panic, returning fallback draft", "reason", rec)
			draft = FallbackDraft()
		}
	}()

	for _, s := range r.strategies {
		if d, ok := s.resolve(raw); ok {
			return d
		}
	}

	return FallbackDraft()
}

// strictParse strips surrounding code fences and decodes the remainder as
// a JSON object with exactly the scalar fields title, subtitle, content.
type strictParse struct{}

func (strictParse) resolve(raw string) (Draft, bool) {
	cleaned := stripCodeFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return Draft{}, false
	}

	title, ok := scalarField(fields, "title")
	if !ok {
		return Draft{}, false
	}
	subtitle, ok := scalarField(fields, "subtitle")
	if !ok {
		return Draft{}, false
	}
	content, ok := scalarField(fields, "content")
	if !ok {
		return Draft{}, false
	}

	return Draft{
		Title:    strings.TrimSpace(title),
		Subtitle: strings.TrimSpace(subtitle),
		Content:  normalizeHTML(content),
	}, true
}

func scalarField(fields map[string]json.RawMessage, key string) (string, bool) {
	value, present := fields[key]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false
	}
	return s, true
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = fenceOpenRegexp.ReplaceAllString(cleaned, "")
	cleaned = fenceCloseRegexp.ReplaceAllString(cleaned, "")
	return cleaned
}

// fieldExtract pulls the three fields out with per-field patterns, tolerant
// of the surrounding text not being valid JSON at all. All three fields
// must match.
type fieldExtract struct{}

func (fieldExtract) resolve(raw string) (Draft, bool) {
	titleMatch := titleFieldRegexp.FindStringSubmatch(raw)
	subtitleMatch := subtitleFieldRegexp.FindStringSubmatch(raw)
	contentMatch := contentFieldRegexp.FindStringSubmatch(raw)

	if titleMatch == nil || subtitleMatch == nil || contentMatch == nil {
		return Draft{}, false
	}

	return Draft{
		Title:    titleMatch[1],
		Subtitle: subtitleMatch[1],
		Content:  normalizeHTML(unescape(contentMatch[1])),
	}, true
}

// fallback is the terminal tier: a fixed draft, always applicable.
type fallback struct{}

func (fallback) resolve(string) (Draft, bool) {
	return FallbackDraft(), true
}

// FallbackDraft is the post stored when generation or resolution fails
// entirely.
func FallbackDraft() Draft {
	return Draft{
		Title:    "Latest AI Research Breakthroughs",
		Subtitle: "Exploring cutting-edge developments in artificial intelligence",
		Content: "<p>We encountered an issue processing the latest AI research papers. " +
			"Please check back later for the latest updates on AI breakthroughs.</p>",
	}
}

func unescape(s string) string {
	replacer := strings.NewReplacer(
		`\"`, `"`,
		`\n`, "",
		`\r`, "",
		`\t`, "",
		`\\`, `\`,
	)
	return replacer.Replace(s)
}

// normalizeHTML cleans resolved content and guarantees the stored value is
// an HTML fragment: headings and paragraph closings get their own lines,
// blank-line runs collapse, and content without any recognized block tag
// is wrapped in a single <p>.
func normalizeHTML(content string) string {
	if strings.TrimSpace(content) == "" {
		return "<p>No content available</p>"
	}

	cleaned := strings.TrimSpace(unescape(content))

	lineBreaks := strings.NewReplacer(
		"</p>", "</p>\n",
		"</h1>", "</h1>\n",
		"</h2>", "</h2>\n",
		"</h3>", "</h3>\n",
		"</h4>", "</h4>\n",
		"</h5>", "</h5>\n",
		"</h6>", "</h6>\n",
		"</div>", "</div>\n",
		"<h1", "\n<h1",
		"<h2", "\n<h2",
		"<h3", "\n<h3",
		"<h4", "\n<h4",
		"<h5", "\n<h5",
		"<h6", "\n<h6",
	)
	cleaned = lineBreaks.Replace(cleaned)

	cleaned = blankLineRegexp.ReplaceAllString(cleaned, "\n")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "<") || !containsBlockTag(cleaned) {
		cleaned = "<p>" + cleaned + "</p>"
	}

	return cleaned
}

func containsBlockTag(content string) bool {
	for _, tag := range blockTags {
		if strings.Contains(content, tag) {
			return true
		}
	}
	return false
}
