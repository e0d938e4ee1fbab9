package cfg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	// Inline equivalent of cmp.Or(Version, "unknown"); cmp.Or needs Go 1.22+
	// and the build toolchain is Go 1.21.
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./blog.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key protecting mutating endpoints (optional)"`
	ProfilePath  string `long:"profile" env:"PROFILE_PATH" default:"./profile.yaml" description:"Path to the generation profile YAML file (optional)"`

	// Generation configuration
	GroqAPIKey  string `long:"groq-api-key" env:"GROQ_API_KEY" description:"API key for the Groq chat completion endpoint"`
	GroqBaseURL string `long:"groq-base-url" env:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1" description:"Base URL of the OpenAI-compatible completion API"`
	Model       string `long:"model" env:"MODEL" default:"llama-3.1-8b-instant" description:"Model identifier used for blog generation"`
	MaxResults  int    `long:"max-results" env:"ARXIV_MAX_RESULTS" default:"20" description:"Maximum number of results requested from the arXiv API"`
	GenerateAt  string `long:"generate-at" env:"GENERATE_AT" default:"09:00" description:"Wall-clock time (HH:MM) for the daily generation run"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers for task processing"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"arxivpress/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if _, _, err := ParseClock(raw.GenerateAt); err != nil {
		return nil, fmt.Errorf("invalid generate-at value %q: %w", raw.GenerateAt, err)
	}

	cfg := &Cfg{
		DBPath:       raw.DBPath,
		Port:         raw.Port,
		APIAccessKey: raw.APIAccessKey,
		ProfilePath:  raw.ProfilePath,
		GroqAPIKey:   raw.GroqAPIKey,
		GroqBaseURL:  raw.GroqBaseURL,
		Model:        raw.Model,
		MaxResults:   raw.MaxResults,
		GenerateAt:   raw.GenerateAt,
		WorkerCount:  raw.WorkerCount,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// ParseClock parses a HH:MM wall-clock string into hour and minute.
func ParseClock(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM format")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("hour must be between 0 and 23")
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute must be between 0 and 59")
	}

	return hour, minute, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
