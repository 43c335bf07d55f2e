package config

import (
	"github.com/pulpitworks/lectern/internal/commentary"
	"github.com/pulpitworks/lectern/internal/providers"
)

// DefaultConfig returns the default configuration. API keys default to
// ${ENV_VAR} references so a written config file never carries secrets.
func DefaultConfig() *Config {
	return &Config{
		ESV: ESVSettings{
			APIKey:         "${ESV_API_KEY}",
			BaseURL:        providers.ESVDefaultBaseURL,
			TimeoutSeconds: 15,
			RateLimit:      2.0,
		},
		NET: NETSettings{
			BaseURL:        providers.NETDefaultBaseURL,
			TimeoutSeconds: 30,
			RateLimit:      2.0,
		},
		Analysis: AnalysisSettings{
			APIKey:         "${OPENAI_API_KEY}",
			Model:          "gpt-4o",
			TimeoutSeconds: 30,
			Enabled:        false,
		},
		Commentary: CommentarySettings{
			BaseURL:        commentary.DefaultBaseURL,
			TimeoutSeconds: 30,
			Sources:        []string{commentary.SourceMHC, commentary.SourceCalvin},
		},
		Resolve: ResolveSettings{
			MaxConcurrentFetches: 4,
			MainFile:             "main.tex",
		},
	}
}

// Entry is one default configuration value under its dotted key.
type Entry struct {
	Key   string
	Value any
}

// DefaultEntries flattens DefaultConfig into per-leaf viper defaults.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{"esv.api_key", d.ESV.APIKey},
		{"esv.base_url", d.ESV.BaseURL},
		{"esv.timeout_seconds", d.ESV.TimeoutSeconds},
		{"esv.rate_limit", d.ESV.RateLimit},

		{"net.base_url", d.NET.BaseURL},
		{"net.timeout_seconds", d.NET.TimeoutSeconds},
		{"net.rate_limit", d.NET.RateLimit},

		{"analysis.api_key", d.Analysis.APIKey},
		{"analysis.base_url", d.Analysis.BaseURL},
		{"analysis.model", d.Analysis.Model},
		{"analysis.timeout_seconds", d.Analysis.TimeoutSeconds},
		{"analysis.enabled", d.Analysis.Enabled},

		{"commentary.base_url", d.Commentary.BaseURL},
		{"commentary.db_path", d.Commentary.DBPath},
		{"commentary.timeout_seconds", d.Commentary.TimeoutSeconds},
		{"commentary.sources", d.Commentary.Sources},

		{"resolve.max_concurrent_fetches", d.Resolve.MaxConcurrentFetches},
		{"resolve.main_file", d.Resolve.MainFile},
	}
}
