// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ParserConfig holds settings for the note-to-order extraction engine.
type ParserConfig struct {
	// MatchTimeout bounds each pattern-matching operation so a pathological
	// note cannot stall the caller (default 2s).
	MatchTimeout time.Duration `json:"match_timeout" yaml:"match_timeout"`
}

// SubmitConfig holds settings for the order submission transport.
type SubmitConfig struct {
	// Endpoint is the URL orders are POSTed to.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "dme-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// APIToken authenticates against the submission endpoint. Usually
	// loaded from .secrets/submit-api-token rather than the config file.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// MaxRetries is the number of retry attempts on retryable HTTP
	// statuses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the local order log.
type StoreConfig struct {
	// DataDir is the directory holding the order log database
	// (contains orders.db).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of listed orders (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the CLI.
type PipelineConfig struct {
	Parser ParserConfig `json:"parser" yaml:"parser"`
	Submit SubmitConfig `json:"submit" yaml:"submit"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
