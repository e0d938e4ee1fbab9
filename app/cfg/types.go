package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port         string
	APIAccessKey string
	ProfilePath  string

	// Generation configuration
	GroqAPIKey  string
	GroqBaseURL string
	Model       string
	MaxResults  int
	GenerateAt  string
	WorkerCount int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// ParseGenerateAt parses the configured daily run time into hour and
// minute.
func (c *Cfg) ParseGenerateAt() (int, int, error) {
	return ParseClock(c.GenerateAt)
}
