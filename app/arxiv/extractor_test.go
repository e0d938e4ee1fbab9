package arxiv

import (
	"fmt"
	"strings"
	"testing"
)

func newTestExtractor() *Extractor {
	keywords := []string{"llm", "large language model", "transformer", "neural network",
		"deep learning", "machine learning", "reinforcement learning"}
	return NewExtractor(keywords, 8, 5)
}

func atomFeed(entries ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query Results</title>
  <id>http://arxiv.org/api/test</id>
  <updated>2024-01-05T00:00:00Z</updated>
` + strings.Join(entries, "\n") + `
</feed>`
}

func atomEntry(title, summary, published, id string) string {
	return fmt.Sprintf(`  <entry>
    <id>%s</id>
    <title>%s</title>
    <summary>%s</summary>
    <published>%s</published>
    <author><name>Jane Doe</name></author>
    <author><name>John Smith</name></author>
    <category term="cs.LG"/>
    <category term="cs.AI"/>
  </entry>`, id, title, summary, published)
}

func TestExtractor_WellFormedEntry(t *testing.T) {
	e := newTestExtractor()

	data := atomFeed(atomEntry(
		"Study of Transformers in Vision",
		"We study transformer architectures applied to vision tasks.",
		"2024-01-05T00:00:00Z",
		"http://arxiv.org/abs/1234"))

	papers := e.Run([]byte(data))
	if len(papers) != 1 {
		t.Fatalf("Expected 1 paper, got %d", len(papers))
	}

	p := papers[0]
	if p.Title != "Study of Transformers in Vision" {
		t.Errorf("Unexpected title: %q", p.Title)
	}
	if p.PublishedDate != "2024-01-05" {
		t.Errorf("Expected published date '2024-01-05', got %q", p.PublishedDate)
	}
	if p.PDFLink != "http://arxiv.org/pdf/1234.pdf" {
		t.Errorf("Expected PDF link 'http://arxiv.org/pdf/1234.pdf', got %q", p.PDFLink)
	}
	if p.ArxivID != "1234" {
		t.Errorf("Expected arXiv id '1234', got %q", p.ArxivID)
	}
	if len(p.Authors) != 2 {
		t.Errorf("Expected 2 authors, got %d", len(p.Authors))
	}
	if len(p.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(p.Categories))
	}
}

func TestExtractor_MissingMandatoryFieldSkipsEntry(t *testing.T) {
	e := newTestExtractor()

	// Second entry has no summary and must be dropped silently.
	data := atomFeed(
		atomEntry("Transformer Paper One", "A large language model study.",
			"2024-01-05T00:00:00Z", "http://arxiv.org/abs/1111"),
		`  <entry>
    <id>http://arxiv.org/abs/2222</id>
    <title>Transformer Paper Two</title>
    <published>2024-01-04T00:00:00Z</published>
  </entry>`)

	papers := e.Run([]byte(data))
	if len(papers) != 1 {
		t.Fatalf("Expected 1 paper, got %d", len(papers))
	}
	if papers[0].ArxivID != "1111" {
		t.Errorf("Expected surviving entry 1111, got %q", papers[0].ArxivID)
	}
}

func TestExtractor_EmptyInput(t *testing.T) {
	e := newTestExtractor()

	if papers := e.Run(nil); len(papers) != 0 {
		t.Errorf("Expected no papers for nil input, got %d", len(papers))
	}
	if papers := e.Run([]byte("   \n\t ")); len(papers) != 0 {
		t.Errorf("Expected no papers for blank input, got %d", len(papers))
	}
}

func TestExtractor_ResultCap(t *testing.T) {
	e := newTestExtractor()

	var entries []string
	for i := 0; i < 10; i++ {
		entries = append(entries, atomEntry(
			fmt.Sprintf("Transformer Paper %d", i),
			"A transformer architecture study.",
			"2024-01-05T00:00:00Z",
			fmt.Sprintf("http://arxiv.org/abs/%d", i)))
	}

	papers := e.Run([]byte(atomFeed(entries...)))
	if len(papers) != 5 {
		t.Fatalf("Expected result capped at 5, got %d", len(papers))
	}

	// Order must follow feed order.
	for i, p := range papers {
		want := fmt.Sprintf("%d", i)
		if p.ArxivID != want {
			t.Errorf("Expected paper %s at index %d, got %s", want, i, p.ArxivID)
		}
	}
}

func TestExtractor_EntryExaminationCap(t *testing.T) {
	e := newTestExtractor()

	// Only entries beyond the 8-entry window are relevant; none may be
	// returned because they are never examined.
	var entries []string
	for i := 0; i < 8; i++ {
		entries = append(entries, atomEntry(
			fmt.Sprintf("Unrelated Paper %d", i),
			"A study of celestial mechanics.",
			"2024-01-05T00:00:00Z",
			fmt.Sprintf("http://arxiv.org/abs/%d", i)))
	}
	for i := 8; i < 10; i++ {
		entries = append(entries, atomEntry(
			fmt.Sprintf("Transformer Paper %d", i),
			"A transformer architecture study.",
			"2024-01-05T00:00:00Z",
			fmt.Sprintf("http://arxiv.org/abs/%d", i)))
	}

	papers := e.Run([]byte(atomFeed(entries...)))
	if len(papers) != 0 {
		t.Errorf("Expected 0 papers when relevant entries sit past the examination cap, got %d", len(papers))
	}
}

func TestExtractor_RelevanceFilter(t *testing.T) {
	e := newTestExtractor()

	data := atomFeed(
		atomEntry("A Study of TRANSFORMER Models", "Architectures compared.",
			"2024-01-05T00:00:00Z", "http://arxiv.org/abs/1"),
		atomEntry("Galaxy Cluster Dynamics", "Dark matter halo simulations.",
			"2024-01-05T00:00:00Z", "http://arxiv.org/abs/2"))

	papers := e.Run([]byte(data))
	if len(papers) != 1 {
		t.Fatalf("Expected 1 relevant paper, got %d", len(papers))
	}
	if papers[0].ArxivID != "1" {
		t.Errorf("Expected relevant paper 1, got %q", papers[0].ArxivID)
	}
}

func TestExtractor_TolerantTierOnMalformedDocument(t *testing.T) {
	e := newTestExtractor()

	// Not a parseable feed document, but entry blocks are still present.
	data := `garbage prefix, no xml declaration, unclosed root
<entry>
  <id>http://arxiv.org/abs/5555</id>
  <title>Deep Learning for
    Protein Folding</title>
  <summary>We apply deep learning
    to structure prediction.</summary>
  <published>2024-02-01T12:30:00Z</published>
  <author><name>A. Researcher</name></author>
  <category term="q-bio.BM"/>
</entry>
<entry>
  <id>http://arxiv.org/abs/6666</id>
  <title>Broken entry without summary</title>
  <published>2024-02-01T00:00:00Z</published>
</entry>`

	papers := e.Run([]byte(data))
	if len(papers) != 1 {
		t.Fatalf("Expected 1 paper from tolerant tier, got %d", len(papers))
	}

	p := papers[0]
	if p.Title != "Deep Learning for Protein Folding" {
		t.Errorf("Expected collapsed title, got %q", p.Title)
	}
	if p.Summary != "We apply deep learning to structure prediction." {
		t.Errorf("Expected collapsed summary, got %q", p.Summary)
	}
	if p.PublishedDate != "2024-02-01" {
		t.Errorf("Expected published date '2024-02-01', got %q", p.PublishedDate)
	}
	if p.PDFLink != "http://arxiv.org/pdf/5555.pdf" {
		t.Errorf("Unexpected PDF link %q", p.PDFLink)
	}
}

func TestExtractor_AuthorAndCategoryLimits(t *testing.T) {
	e := newTestExtractor()

	data := atomFeed(`  <entry>
    <id>http://arxiv.org/abs/7777</id>
    <title>Neural Network Ensembles</title>
    <summary>A neural network ensemble survey.</summary>
    <published>2024-03-01T00:00:00Z</published>
    <author><name>A</name></author>
    <author><name>B</name></author>
    <author><name>C</name></author>
    <author><name>D</name></author>
    <author><name>E</name></author>
    <category term="cs.LG"/>
    <category term="cs.AI"/>
    <category term="cs.NE"/>
    <category term="stat.ML"/>
  </entry>`)

	papers := e.Run([]byte(data))
	if len(papers) != 1 {
		t.Fatalf("Expected 1 paper, got %d", len(papers))
	}
	if len(papers[0].Authors) != 3 {
		t.Errorf("Expected authors capped at 3, got %d", len(papers[0].Authors))
	}
	if len(papers[0].Categories) != 3 {
		t.Errorf("Expected categories capped at 3, got %d", len(papers[0].Categories))
	}
}

func TestCleanText(t *testing.T) {
	in := "  Attention Is\n   All You Need  "
	want := "Attention Is All You Need"
	if got := cleanText(in); got != want {
		t.Errorf("cleanText(%q) = %q, want %q", in, got, want)
	}
}
