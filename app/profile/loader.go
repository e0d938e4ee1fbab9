package profile

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultKeywords is the relevance vocabulary applied to title+summary
// when the profile does not override it.
var DefaultKeywords = []string{
	"llm", "large language model", "transformer", "neural network",
	"deep learning", "machine learning", "artificial intelligence",
	"generative", "reinforcement learning", "computer vision",
	"natural language", "gpt", "bert", "diffusion", "gan",
}

const DefaultQuery = "cat:cs.AI OR cat:cs.LG OR cat:cs.CL"

// Load reads a profile from path. A missing file is not an error: the
// built-in defaults are returned so the service runs unconfigured.
func Load(path string) (*Profile, error) {
	if path == "" {
		return defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Profile file not found, using defaults", "path", path)
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	setDefaults(&p)

	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &p, nil
}

func defaults() *Profile {
	p := &Profile{}
	setDefaults(p)
	return p
}

func setDefaults(p *Profile) {
	if p.Search.Query == "" {
		p.Search.Query = DefaultQuery
	}
	if len(p.Search.Keywords) == 0 {
		p.Search.Keywords = DefaultKeywords
	}
	if p.Search.MaxEntries == 0 {
		p.Search.MaxEntries = 8
	}
	if p.Search.MaxRelevant == 0 {
		p.Search.MaxRelevant = 5
	}
	if p.Sampling.Temperature == 0 {
		p.Sampling.Temperature = 0.7
	}
	if p.Sampling.MaxTokens == 0 {
		p.Sampling.MaxTokens = 4000
	}
	if p.Sampling.TopP == 0 {
		p.Sampling.TopP = 0.9
	}
}

func validate(p *Profile) error {
	if p.Search.MaxEntries < 0 {
		return fmt.Errorf("max_entries must be non-negative")
	}
	if p.Search.MaxRelevant < 0 {
		return fmt.Errorf("max_relevant must be non-negative")
	}
	if p.Search.MaxRelevant > p.Search.MaxEntries {
		return fmt.Errorf("max_relevant cannot exceed max_entries")
	}
	if p.Sampling.Temperature < 0 || p.Sampling.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if p.Sampling.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	if p.Sampling.TopP < 0 || p.Sampling.TopP > 1 {
		return fmt.Errorf("top_p must be between 0 and 1")
	}
	return nil
}
