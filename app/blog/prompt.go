package blog

import (
	"fmt"
	"strings"
)

const descriptionLimit = 300

// BuildPrompt renders the generation instruction for a request. Pure and
// deterministic: the same request always yields the same prompt. The field
// names and tag vocabulary stated here are a contract the resolver depends
// on, not free text.
func BuildPrompt(req Request) string {
	var papers strings.Builder

	for i, p := range req.Papers {
		fmt.Fprintf(&papers, `
Paper %d:
Title: %s
Authors: %s
Published: %s
Description: %s
Categories: %s
URL: %s

`,
			i+1,
			cleanPromptText(p.Title),
			cleanPromptText(strings.Join(p.Authors, ", ")),
			p.PublishedDate,
			cleanPromptText(truncate(p.Summary, descriptionLimit)),
			cleanPromptText(strings.Join(p.Categories, ", ")),
			p.Link)
	}

	return fmt.Sprintf(`Create a comprehensive blog post about these latest AI research breakthroughs from arXiv published on %s:

%s

IMPORTANT FORMATTING REQUIREMENTS:
1. Generate exactly 3 fields: title, subtitle, and content
2. Title: Create an attention-grabbing title about "Latest AI Research Breakthroughs"
3. Subtitle: Create a compelling subtitle that summarizes the key innovations
4. Content: Write comprehensive content (1200-1500 words) with clean HTML formatting

HTML FORMATTING RULES FOR CONTENT:
- Use <h2>Paper Name</h2> for each paper section
- Use <h3>Subsection</h3> for any subsections
- Use <p>paragraph text</p> for all paragraphs
- Use <strong>text</strong> for important terms
- Use <em>text</em> for emphasis
- NO line breaks outside of HTML tags
- NO special characters that need escaping
- Keep all HTML on single lines where possible

CONTENT STRUCTURE:
1. Introduction paragraph explaining the AI breakthroughs
2. One section per paper with <h2> heading
3. Each paper section should have 2-3 paragraphs explaining the innovation and impact
4. Conclusion paragraph about the future of AI research

Write in an informative yet engaging tone for tech enthusiasts.

Format your response as valid JSON with exactly these fields:
{
  "title": "Your engaging blog post title",
  "subtitle": "Your compelling subtitle",
  "content": "Full blog post content with clean HTML formatting - no line breaks, properly escaped"
}

CRITICAL: Ensure the content field contains clean HTML without line breaks or special characters that could break JSON parsing.`,
		req.SearchDate, papers.String())
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// cleanPromptText flattens whitespace and escapes quoting so paper text
// cannot break the JSON-shaped response format the prompt demands.
func cleanPromptText(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", " ",
		"\r", " ",
		"\t", " ",
	)
	return strings.TrimSpace(replacer.Replace(s))
}
