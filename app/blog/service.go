package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arxivpress/arxivpress/app/arxiv"
	"github.com/arxivpress/arxivpress/app/database"
)

// ErrNoPapers reports a run that ended without anything to write about:
// the source was unreachable or no fetched paper passed the relevance
// filter. Not a fault; callers skip the run.
var ErrNoPapers = errors.New("no relevant papers available")

type PaperSource interface {
	Fetch(ctx context.Context, query string) ([]byte, error)
}

var _ PaperSource = (*arxiv.Client)(nil)

type PaperExtractor interface {
	Run(data []byte) []arxiv.Paper
}

var _ PaperExtractor = (*arxiv.Extractor)(nil)

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var _ TextGenerator = (*Gateway)(nil)

type PostStore interface {
	Insert(title, subtitle, content string) (*database.Post, error)
}

// Service runs the full generation pipeline: fetch papers, extract and
// filter, build the prompt, call the model, resolve the response, persist
// the post. Strictly sequential; the worst outcome of a run is "no post"
// or "fallback post", never a panic.
type Service struct {
	source    PaperSource
	extractor PaperExtractor
	generator TextGenerator
	resolver  *Resolver
	store     PostStore
	query     string
}

func NewService(source PaperSource, extractor PaperExtractor, generator TextGenerator,
	store PostStore, query string) *Service {
	return &Service{
		source:    source,
		extractor: extractor,
		generator: generator,
		resolver:  NewResolver(),
		store:     store,
		query:     query,
	}
}

// GeneratePost executes one pipeline run. A fetch failure or an empty
// relevant set yields ErrNoPapers; a model failure degrades to the
// fallback draft but the run still produces a post. Only a storage failure
// surfaces as a hard error.
func (s *Service) GeneratePost(ctx context.Context) (*database.Post, error) {
	started := time.Now()

	data, err := s.source.Fetch(ctx, s.query)
	if err != nil {
		slog.Warn("Paper fetch failed", "error", err)
		return nil, ErrNoPapers
	}

	papers := s.extractor.Run(data)
	if len(papers) == 0 {
		slog.Info("No relevant papers in feed, skipping run")
		return nil, ErrNoPapers
	}

	request := NewRequest(papers, time.Now().UTC())
	prompt := BuildPrompt(request)

	var draft Draft
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Error("Generation failed, storing fallback post", "error", err)
		draft = FallbackDraft()
	} else {
		draft = s.resolver.Resolve(raw)
	}

	post, err := s.store.Insert(draft.Title, draft.Subtitle, draft.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store post: %w", err)
	}

	slog.Info("Blog post generated",
		"id", post.ID,
		"title", post.Title,
		"papers", len(papers),
		"duration", time.Since(started))

	return post, nil
}
