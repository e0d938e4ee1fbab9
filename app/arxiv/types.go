package arxiv

// Paper is one research paper extracted from the arXiv Atom feed.
// Papers are consumed immediately by the blog prompt builder and are
// never persisted.
type Paper struct {
	Title         string
	Summary       string
	Authors       []string
	PublishedDate string // calendar date, YYYY-MM-DD
	ArxivID       string
	Link          string // canonical abs URI
	PDFLink       string
	Categories    []string
}
