package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"profanity/internal/chunker"
	"profanity/internal/pipeline"
)

// YAMLConfig represents the structure of the config.yaml file.
// Word lists and tuning knobs are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Filter     FilterConfig    `yaml:"filter"`
	Chunking   ChunkingConfig  `yaml:"chunking"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
}

// FilterConfig lists words that are removed before scoring.
type FilterConfig struct {
	AllowedWords []string `yaml:"allowed_words"`
}

// ChunkingConfig sizes the semantic windows, in runes.
type ChunkingConfig struct {
	ChunkSize    int      `yaml:"chunk_size"`
	ChunkOverlap *int     `yaml:"chunk_overlap,omitempty"` // nil means default; 0 is a valid overlap
	Separators   []string `yaml:"separators,omitempty"`
}

// ThresholdConfig holds the exclusive per-kind flagging thresholds.
type ThresholdConfig struct {
	Token    float64 `yaml:"token"`
	Semantic float64 `yaml:"semantic"`
}

// LoadYAMLConfig loads the YAML configuration file at path.
// A missing file is not an error: defaults are returned.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config file is optional
			cfg := &YAMLConfig{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *YAMLConfig) applyDefaults() {
	if c.Chunking.ChunkSize == 0 {
		c.Chunking.ChunkSize = chunker.DefaultChunkSize
	}
	if c.Chunking.ChunkOverlap == nil {
		overlap := chunker.DefaultChunkOverlap
		c.Chunking.ChunkOverlap = &overlap
	}
	if len(c.Chunking.Separators) == 0 {
		c.Chunking.Separators = append([]string(nil), chunker.DefaultSeparators...)
	}
	if c.Thresholds.Token == 0 {
		c.Thresholds.Token = pipeline.DefaultTokenThreshold
	}
	if c.Thresholds.Semantic == 0 {
		c.Thresholds.Semantic = pipeline.DefaultSemanticThreshold
	}
}

// ChunkerConfig returns the semantic chunker settings.
func (c *YAMLConfig) ChunkerConfig() chunker.Config {
	overlap := chunker.DefaultChunkOverlap
	if c.Chunking.ChunkOverlap != nil {
		overlap = *c.Chunking.ChunkOverlap
	}
	return chunker.Config{
		ChunkSize:    c.Chunking.ChunkSize,
		ChunkOverlap: overlap,
		Separators:   append([]string(nil), c.Chunking.Separators...),
	}
}

// Validate rejects chunking that cannot make progress and thresholds outside [0,1].
func (c *YAMLConfig) Validate() error {
	if err := c.ChunkerConfig().Validate(); err != nil {
		return err
	}
	if c.Thresholds.Token < 0 || c.Thresholds.Token > 1 {
		return fmt.Errorf("thresholds.token must be within [0,1], got %v", c.Thresholds.Token)
	}
	if c.Thresholds.Semantic < 0 || c.Thresholds.Semantic > 1 {
		return fmt.Errorf("thresholds.semantic must be within [0,1], got %v", c.Thresholds.Semantic)
	}
	return nil
}

// PipelineOptions combines the YAML overlay with the env scoring settings.
func (c *YAMLConfig) PipelineOptions(env *Config) pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Chunking = c.ChunkerConfig()
	opts.Thresholds = pipeline.Thresholds{Token: c.Thresholds.Token, Semantic: c.Thresholds.Semantic}
	opts.AllowedWords = append([]string(nil), c.Filter.AllowedWords...)
	if env != nil {
		opts.Concurrency = env.ScoreConcurrency
		opts.UnitTimeout = env.ScoreTimeout
	}
	return opts
}
