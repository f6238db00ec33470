package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxHeaderBytes <= 0 {
		return fmt.Errorf("server.max_header_bytes must be > 0 (got %d)", c.Server.MaxHeaderBytes)
	}
	if c.App.Name == "" {
		return fmt.Errorf("app.name must not be empty")
	}
	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Pagination.validate(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	return nil
}

func (s *SearchConfig) validate() error {
	switch s.Backend {
	case SearchBackendSQLite, SearchBackendBleve:
		if s.Path == "" {
			return fmt.Errorf("path is required for the %s backend", s.Backend)
		}
	case SearchBackendMemory:
	default:
		return fmt.Errorf("backend must be one of %q, %q, %q (got %q)",
			SearchBackendSQLite, SearchBackendBleve, SearchBackendMemory, s.Backend)
	}
	if s.MaxResults < 0 {
		return fmt.Errorf("max_results must be >= 0 (got %d)", s.MaxResults)
	}
	return nil
}

func (p *PaginationConfig) validate() error {
	if p.DefaultSize <= 0 {
		return fmt.Errorf("default_size must be > 0 (got %d)", p.DefaultSize)
	}
	if p.MaxSize < p.DefaultSize {
		return fmt.Errorf("max_size must be >= default_size (got %d < %d)", p.MaxSize, p.DefaultSize)
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be > 0 (got %v)", r.RequestsPerSecond)
	}
	if r.Burst <= 0 {
		return fmt.Errorf("burst must be > 0 (got %d)", r.Burst)
	}
	if r.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup_interval must be > 0 (got %s)", r.CleanupInterval)
	}
	return nil
}
