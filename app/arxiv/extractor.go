package arxiv

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/text/cases"
)

var (
	entryRegexp     = regexp.MustCompile(`(?s)<entry>(.*?)</entry>`)
	titleRegexp     = regexp.MustCompile(`(?s)<title[^>]*?>(.*?)</title>`)
	summaryRegexp   = regexp.MustCompile(`(?s)<summary[^>]*?>(.*?)</summary>`)
	publishedRegexp = regexp.MustCompile(`(?s)<published[^>]*?>(.*?)</published>`)
	idRegexp        = regexp.MustCompile(`(?s)<id[^>]*?>(.*?)</id>`)
	authorRegexp    = regexp.MustCompile(`(?s)<name[^>]*?>(.*?)</name>`)
	categoryRegexp  = regexp.MustCompile(`<category[^>]*?term=['"]([^'"]*?)['"]`)
	whitespaceRun   = regexp.MustCompile(`\n\s+`)
)

const (
	maxAuthors    = 3
	maxCategories = 3
)

// Extractor turns a raw Atom response into relevant papers. It parses in
// two tiers: a structured gofeed pass first, and a tolerant regex pass when
// the document as a whole does not parse. Both tiers skip entries with
// missing mandatory fields silently and bound the number of entries
// examined before relevance filtering.
type Extractor struct {
	parser      *gofeed.Parser
	folder      cases.Caser
	keywords    []string
	maxEntries  int
	maxRelevant int
}

func NewExtractor(keywords []string, maxEntries, maxRelevant int) *Extractor {
	folder := cases.Fold()

	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		folded = append(folded, folder.String(kw))
	}

	return &Extractor{
		parser:      gofeed.NewParser(),
		folder:      folder,
		keywords:    folded,
		maxEntries:  maxEntries,
		maxRelevant: maxRelevant,
	}
}

func (e *Extractor) Run(data []byte) []Paper {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	papers := e.runStructured(data)
	if papers == nil {
		papers = e.runTolerant(string(data))
	}

	relevant := make([]Paper, 0, e.maxRelevant)
	for _, p := range papers {
		if !e.isRelevant(p) {
			continue
		}
		relevant = append(relevant, p)
		if len(relevant) == e.maxRelevant {
			break
		}
	}

	return relevant
}

// runStructured parses the document with gofeed. A document-level parse
// failure returns nil so the tolerant tier gets a chance; a document with
// zero usable entries returns an empty non-nil slice.
func (e *Extractor) runStructured(data []byte) []Paper {
	feed, err := e.parser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Structured feed parse failed, falling back to pattern extraction", "error", err)
		return nil
	}

	papers := make([]Paper, 0, len(feed.Items))
	for i, item := range feed.Items {
		if i == e.maxEntries {
			break
		}
		if p, ok := e.paperFromItem(item); ok {
			papers = append(papers, p)
		}
	}

	return papers
}

func (e *Extractor) paperFromItem(item *gofeed.Item) (Paper, bool) {
	title := cleanText(item.Title)
	summary := cleanText(item.Description)
	published := strings.TrimSpace(item.Published)
	link := strings.TrimSpace(item.GUID)

	if title == "" || summary == "" || published == "" || link == "" {
		return Paper{}, false
	}

	var authors []string
	for _, a := range item.Authors {
		if a == nil || a.Name == "" {
			continue
		}
		authors = append(authors, cleanText(a.Name))
		if len(authors) == maxAuthors {
			break
		}
	}

	categories := item.Categories
	if len(categories) > maxCategories {
		categories = categories[:maxCategories]
	}

	return newPaper(title, summary, published, link, authors, categories), true
}

func (e *Extractor) runTolerant(data string) []Paper {
	blocks := entryRegexp.FindAllStringSubmatch(data, e.maxEntries)

	papers := make([]Paper, 0, len(blocks))
	for _, block := range blocks {
		if p, ok := e.paperFromBlock(block[1]); ok {
			papers = append(papers, p)
		}
	}

	return papers
}

// paperFromBlock extracts one paper from a raw <entry> block. Any panic
// during extraction drops the block instead of propagating.
func (e *Extractor) paperFromBlock(block string) (paper Paper, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Dropping malformed feed entry", "reason", r)
			paper, ok = Paper{}, false
		}
	}()

	titleMatch := titleRegexp.FindStringSubmatch(block)
	summaryMatch := summaryRegexp.FindStringSubmatch(block)
	publishedMatch := publishedRegexp.FindStringSubmatch(block)
	idMatch := idRegexp.FindStringSubmatch(block)

	if titleMatch == nil || summaryMatch == nil || publishedMatch == nil || idMatch == nil {
		return Paper{}, false
	}

	title := cleanText(titleMatch[1])
	summary := cleanText(summaryMatch[1])
	published := strings.TrimSpace(publishedMatch[1])
	link := strings.TrimSpace(idMatch[1])

	if title == "" || summary == "" || published == "" || link == "" {
		return Paper{}, false
	}

	var authors []string
	for _, m := range authorRegexp.FindAllStringSubmatch(block, maxAuthors) {
		authors = append(authors, cleanText(m[1]))
	}

	var categories []string
	for _, m := range categoryRegexp.FindAllStringSubmatch(block, maxCategories) {
		categories = append(categories, m[1])
	}

	return newPaper(title, summary, published, link, authors, categories), true
}

func newPaper(title, summary, published, link string, authors, categories []string) Paper {
	return Paper{
		Title:         title,
		Summary:       summary,
		Authors:       authors,
		PublishedDate: strings.SplitN(published, "T", 2)[0],
		ArxivID:       link[strings.LastIndex(link, "/")+1:],
		Link:          link,
		PDFLink:       strings.Replace(link, "/abs/", "/pdf/", 1) + ".pdf",
		Categories:    categories,
	}
}

func (e *Extractor) isRelevant(p Paper) bool {
	content := e.folder.String(p.Title + " " + p.Summary)
	for _, kw := range e.keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// cleanText collapses newline-led whitespace runs to a single space and
// trims the result, matching how arXiv wraps long titles and abstracts.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
