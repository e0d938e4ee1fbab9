package api

import (
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

const excerptLimit = 300

var spaceRun = regexp.MustCompile(`\s+`)

// excerpt reduces stored post HTML to a short plain-text teaser for list
// views. Readability handles the markup; anything it cannot process falls
// back to a crude tag strip so listings never show raw HTML.
func excerpt(content string) string {
	text := ""

	article, err := readability.FromReader(strings.NewReader(content), nil)
	if err == nil {
		text = article.TextContent
	}

	if strings.TrimSpace(text) == "" {
		text = stripTags(content)
	}

	text = strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > excerptLimit {
		return string(runes[:excerptLimit]) + "..."
	}
	return text
}

var tagRegexp = regexp.MustCompile(`<[^>]*>`)

func stripTags(content string) string {
	return tagRegexp.ReplaceAllString(content, " ")
}
