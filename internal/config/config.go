package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Upstreams
	WeatherAPIKey  string        `yaml:"weather_api_key"`
	WeatherBaseURL string        `yaml:"weather_base_url"`
	CatalogBaseURL string        `yaml:"catalog_base_url"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`

	// LLM
	AnthropicAPIKey  string  `yaml:"anthropic_api_key"`
	AnthropicBaseURL string  `yaml:"anthropic_base_url"`
	Model            string  `yaml:"model"`
	MaxTokens        int64   `yaml:"max_tokens"`
	Temperature      float64 `yaml:"temperature"`
	TokenBudget      int     `yaml:"token_budget"`
	MaxSteps         int     `yaml:"max_steps"`

	// Tools
	DefaultMaxResults int `yaml:"default_max_results"`

	// Observability
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	EventsDir     string `yaml:"events_dir"`
	ObserveEvents bool   `yaml:"observe_events"`
}

// Load builds a Config from defaults, then the YAML file named by
// WARDROBE_CONFIG (if any), then environment overrides.
func Load() (*Config, error) {
	cfg := &Config{
		WeatherBaseURL:    DefaultWeatherBaseURL,
		CatalogBaseURL:    DefaultCatalogBaseURL,
		HTTPTimeout:       DefaultHTTPTimeout,
		Model:             DefaultModel,
		MaxTokens:         DefaultMaxTokens,
		Temperature:       DefaultTemperature,
		TokenBudget:       DefaultTokenBudget,
		MaxSteps:          DefaultMaxSteps,
		DefaultMaxResults: DefaultMaxResults,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		EventsDir:         DefaultEventsDir,
	}

	if path := getEnv("WARDROBE_CONFIG", ""); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.WeatherAPIKey == "" {
		errs = append(errs, errors.New("OPENWEATHER_API_KEY is not set"))
	}
	if c.AnthropicAPIKey == "" {
		errs = append(errs, errors.New("ANTHROPIC_API_KEY is not set"))
	}
	if c.TokenBudget <= 0 {
		errs = append(errs, fmt.Errorf("token_budget must be positive, got %d", c.TokenBudget))
	}
	if c.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens))
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		errs = append(errs, fmt.Errorf("temperature must be within [0, 1], got %g", c.Temperature))
	}
	if c.DefaultMaxResults <= 0 {
		errs = append(errs, fmt.Errorf("default_max_results must be positive, got %d", c.DefaultMaxResults))
	}
	return errors.Join(errs...)
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) error {
	if v := getEnv("OPENWEATHER_API_KEY", ""); v != "" {
		cfg.WeatherAPIKey = v
	}
	if v := getEnv("WARDROBE_WEATHER_BASE_URL", ""); v != "" {
		cfg.WeatherBaseURL = v
	}
	if v := getEnv("WARDROBE_CATALOG_BASE_URL", ""); v != "" {
		cfg.CatalogBaseURL = v
	}
	if v := getEnv("WARDROBE_HTTP_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WARDROBE_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("WARDROBE_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("WARDROBE_MAX_TOKENS", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid WARDROBE_MAX_TOKENS %q: %w", v, err)
		}
		cfg.MaxTokens = n
	}
	if v := getEnv("WARDROBE_TEMPERATURE", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid WARDROBE_TEMPERATURE %q: %w", v, err)
		}
		cfg.Temperature = f
	}
	if v := getEnv("WARDROBE_TOKEN_BUDGET", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WARDROBE_TOKEN_BUDGET %q: %w", v, err)
		}
		cfg.TokenBudget = n
	}
	if v := getEnv("WARDROBE_MAX_STEPS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WARDROBE_MAX_STEPS %q: %w", v, err)
		}
		cfg.MaxSteps = n
	}
	if v := getEnv("WARDROBE_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("WARDROBE_LOG_FORMAT", ""); v != "" {
		cfg.LogFormat = v
	}
	if v := getEnv("WARDROBE_EVENTS_DIR", ""); v != "" {
		cfg.EventsDir = v
	}
	if v := getEnv("WARDROBE_OBSERVE_JSON", ""); v != "" {
		cfg.ObserveEvents = v == "1" || v == "true"
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
