package model

import "time"

// Config is the complete tool configuration.
// Hierarchy (highest to lowest priority): CLI flags, TERMSHEET_* env vars,
// config file (~/.termsheet/config.yaml), defaults.
type Config struct {
	Extraction  ExtractionConfig  `yaml:"extraction" mapstructure:"extraction"`
	Normalize   NormalizeConfig   `yaml:"normalize" mapstructure:"normalize"`
	Validate    ValidateConfig    `yaml:"validate" mapstructure:"validate"`
	Entity      EntityConfig      `yaml:"entity" mapstructure:"entity"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Ingest      IngestConfig      `yaml:"ingest" mapstructure:"ingest"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ExtractionConfig tunes the term extraction stages
type ExtractionConfig struct {
	// LineMatchThreshold is the minimum similarity (0-100) for the line
	// heuristic to accept a key as one of the financial vocabulary terms.
	LineMatchThreshold int `yaml:"line_match_threshold" mapstructure:"line_match_threshold"`

	// ContextWindow is how many characters before an entity are searched
	// for disambiguating keywords in the entity fallback stage.
	ContextWindow int `yaml:"context_window" mapstructure:"context_window"`

	// MaxEntityText caps how much text is handed to the entity recognizer.
	MaxEntityText int `yaml:"max_entity_text" mapstructure:"max_entity_text"`
}

// NormalizeConfig tunes canonical-name normalization
type NormalizeConfig struct {
	// FuzzyThreshold: a fuzzy vocabulary match is accepted only when its
	// similarity score is strictly greater than this.
	FuzzyThreshold int `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
}

// ValidateConfig tunes rule validation
type ValidateConfig struct {
	// TextMatchThreshold is the minimum similarity (0-100) for a text
	// value to count as matching the expected value.
	TextMatchThreshold int `yaml:"text_match_threshold" mapstructure:"text_match_threshold"`
}

// EntityConfig selects and configures the entity-recognition capability
type EntityConfig struct {
	// Provider name: "pattern" (built-in regex recognizer) or "openai"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name for the openai provider
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for the openai provider (prefer OPENAI_API_KEY env var)
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL for custom endpoints
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout for recognizer API requests, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// RequestsPerSecond rate-limits recognizer API calls
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst for the rate limiter
	Burst int `yaml:"burst" mapstructure:"burst"`

	// Proxy settings for the recognizer's HTTP client
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls recognizer result caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// IngestConfig controls document reading
type IngestConfig struct {
	// MaxBytes caps how much of a term sheet is read
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			LineMatchThreshold: 65,
			ContextWindow:      40,
			MaxEntityText:      100_000,
		},
		Normalize: NormalizeConfig{
			FuzzyThreshold: 60,
		},
		Validate: ValidateConfig{
			TextMatchThreshold: 90,
		},
		Entity: EntityConfig{
			Provider:          "pattern",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.termsheet/cache at runtime
			TTL:     24 * time.Hour,
		},
		Ingest: IngestConfig{
			MaxBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
