package config

import (
	"fmt"
	"strings"
)

// maxSearchLimit mirrors the hard cap of the catalog search.
const maxSearchLimit = 50

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Source.validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if c.Source.Kind == SourcePostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required for source kind %q", SourcePostgres)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (s *SourceConfig) validate() error {
	switch s.Kind {
	case SourceDir:
		if strings.TrimSpace(s.Dir) == "" {
			return fmt.Errorf("dir is required for kind %q", SourceDir)
		}
	case SourceHTTP:
		if !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
			return fmt.Errorf("base_url must be an http(s) URL (got %q)", s.BaseURL)
		}
		if s.RetryInitial <= 0 {
			return fmt.Errorf("retry_initial must be > 0 (got %s)", s.RetryInitial)
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("kind must be one of dir, http, postgres (got %q)", s.Kind)
	}

	files := map[string]string{
		"dictionary_file": s.DictionaryFile,
		"morphology_file": s.MorphologyFile,
		"sentences_file":  s.SentencesFile,
		"links_file":      s.LinksFile,
		"classes_file":    s.ClassesFile,
	}
	for key, name := range files {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if s.LoadTimeout <= 0 {
		return fmt.Errorf("load_timeout must be > 0 (got %s)", s.LoadTimeout)
	}
	if s.ReloadInterval < 0 {
		return fmt.Errorf("reload_interval must be >= 0 (got %s)", s.ReloadInterval)
	}

	return nil
}

func (s *SearchConfig) validate() error {
	if s.DefaultLimit < 1 || s.DefaultLimit > maxSearchLimit {
		return fmt.Errorf("default_limit must be in 1..%d (got %d)", maxSearchLimit, s.DefaultLimit)
	}
	if s.MinQueryLen < 0 {
		return fmt.Errorf("min_query_len must be >= 0 (got %d)", s.MinQueryLen)
	}
	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", s.CacheSize)
	}
	return nil
}
