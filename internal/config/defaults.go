package config

import "time"

const (
	DefaultWeatherBaseURL = "https://api.openweathermap.org"
	DefaultCatalogBaseURL = "https://fakestoreapi.com"
	DefaultHTTPTimeout    = 10 * time.Second

	DefaultModel       = "claude-3-7-sonnet-latest"
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.7
	// Heuristic units (runes plus per-block overhead), see internal/windowing.
	DefaultTokenBudget = 60_000
	DefaultMaxSteps    = 8

	DefaultMaxResults = 10

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultEventsDir = ".agent"
)
