package blog

import (
	"time"

	"github.com/arxivpress/arxivpress/app/arxiv"
)

// Request carries everything one generation run feeds into the prompt.
// Built once per run, never mutated.
type Request struct {
	Papers     []arxiv.Paper
	SearchDate string // day before generation, YYYY-MM-DD
	BlogDate   string // generation day, YYYY-MM-DD
}

func NewRequest(papers []arxiv.Paper, now time.Time) Request {
	return Request{
		Papers:     papers,
		SearchDate: now.AddDate(0, 0, -1).Format("2006-01-02"),
		BlogDate:   now.Format("2006-01-02"),
	}
}

// Draft is a resolved blog post: title is never empty and content always
// holds at least one block-level HTML tag. Raw model text is never carried
// unwrapped.
type Draft struct {
	Title    string
	Subtitle string
	Content  string
}
