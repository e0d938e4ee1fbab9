package profile

// Profile tunes a generation run: what to search for on arXiv, which
// papers count as relevant, and how the completion API is sampled.
type Profile struct {
	Search   Search   `yaml:"search"`
	Sampling Sampling `yaml:"sampling"`
}

type Search struct {
	Query       string   `yaml:"query"`
	Keywords    []string `yaml:"keywords"`
	MaxEntries  int      `yaml:"max_entries"`
	MaxRelevant int      `yaml:"max_relevant"`
}

type Sampling struct {
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TopP        float32 `yaml:"top_p"`
}
