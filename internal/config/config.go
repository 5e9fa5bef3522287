// Package config loads release radar configuration from command-line overrides,
// environment variables and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Resolver policies accepted by Pipeline.ResolvePolicy.
const (
	PolicyFirstStrong = "first-strong"
	PolicyExhaustive  = "exhaustive"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Spotify    SpotifyConfig
	AppleMusic AppleMusicConfig
	Pipeline   PipelineConfig
	Paths      PathsConfig
	Server     ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // pretty or json; empty picks by environment
}

// SpotifyConfig holds primary catalog credentials. Both credentials empty means
// the fetch run falls back to demo data.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
	BaseURL      string // API override, mostly for tests
	TokenURL     string // token endpoint override
}

// AppleMusicConfig holds secondary catalog settings.
type AppleMusicConfig struct {
	Storefront    string
	SearchURL     string
	SearchTimeout time.Duration
	SearchLimit   int
}

// PipelineConfig holds filtering, news and resolver tuning.
type PipelineConfig struct {
	WindowDays      int
	MinPopularity   int
	BrowseLimit     int
	SearchLimit     int
	NewsWindowDays  int
	NewsPerFeed     int
	NewsLimit       int
	ResolvePolicy   string
	RequestInterval time.Duration
}

// PathsConfig holds file locations.
type PathsConfig struct {
	RosterPath string // optional; missing roster means empty curated contribution
	OutputPath string
	CachePath  string // optional badger directory for genre cache and snapshot history
}

// ServerConfig holds snapshot API server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	// RequestsPerMinute is the per-IP limit; zero disables it.
	RequestsPerMinute int
}

// Overrides carries explicit command-line values. Empty fields fall through to
// the environment and then to defaults.
type Overrides struct {
	EnvFile       string
	Env           string
	LogLevel      string
	LogFormat     string
	RosterPath    string
	OutputPath    string
	CachePath     string
	Port          string
	WindowDays    string
	MinPopularity string
	ResolvePolicy string
}

// HasCredentials reports whether client credentials for the primary catalog are set.
func (c *Config) HasCredentials() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != ""
}

// Load builds configuration with precedence:
// 1. Command-line overrides (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env is normal.
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(o.Env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(o.LogLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(o.LogFormat, "LOG_FORMAT", ""),
		},
		Spotify: SpotifyConfig{
			ClientID:     getConfigValue("", "SPOTIFY_CLIENT_ID", ""),
			ClientSecret: getConfigValue("", "SPOTIFY_CLIENT_SECRET", ""),
			Market:       getConfigValue("", "SPOTIFY_MARKET", "US"),
			BaseURL:      getConfigValue("", "SPOTIFY_BASE_URL", ""),
			TokenURL:     getConfigValue("", "SPOTIFY_TOKEN_URL", ""),
		},
		AppleMusic: AppleMusicConfig{
			Storefront:  getConfigValue("", "APPLE_MUSIC_STOREFRONT", "us"),
			SearchURL:   getConfigValue("", "APPLE_MUSIC_SEARCH_URL", "https://itunes.apple.com/search"),
			SearchLimit: getIntConfigValue("", "APPLE_MUSIC_SEARCH_LIMIT", 5),
		},
		Pipeline: PipelineConfig{
			WindowDays:     getIntConfigValue(o.WindowDays, "WINDOW_DAYS", 30),
			MinPopularity:  getIntConfigValue(o.MinPopularity, "MIN_POPULARITY", 0),
			BrowseLimit:    getIntConfigValue("", "BROWSE_LIMIT", 50),
			SearchLimit:    getIntConfigValue("", "SEARCH_LIMIT", 50),
			NewsWindowDays: getIntConfigValue("", "NEWS_WINDOW_DAYS", 3),
			NewsPerFeed:    getIntConfigValue("", "NEWS_PER_FEED", 5),
			NewsLimit:      getIntConfigValue("", "NEWS_LIMIT", 20),
			ResolvePolicy:  getConfigValue(o.ResolvePolicy, "RESOLVE_POLICY", PolicyFirstStrong),
		},
		Paths: PathsConfig{
			RosterPath: getConfigValue(o.RosterPath, "ROSTER_PATH", ""),
			OutputPath: getConfigValue(o.OutputPath, "OUTPUT_PATH", "music_data.json"),
			CachePath:  getConfigValue(o.CachePath, "CACHE_PATH", ""),
		},
		Server: ServerConfig{
			Port:              getConfigValue(o.Port, "SERVER_PORT", "8080"),
			AllowedOrigins:    getListConfigValue("", "SERVER_ALLOWED_ORIGINS", []string{"*"}),
			RequestsPerMinute: getIntConfigValue("", "SERVER_RATE_LIMIT", 120),
		},
	}

	durations := []struct {
		target *time.Duration
		envKey string
		def    string
	}{
		{&cfg.AppleMusic.SearchTimeout, "APPLE_MUSIC_SEARCH_TIMEOUT", "10s"},
		{&cfg.Pipeline.RequestInterval, "REQUEST_INTERVAL", "100ms"},
		{&cfg.Server.ReadTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
	}
	for _, d := range durations {
		raw := getConfigValue("", d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.target = parsed
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that config values are present and in range.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "" && c.Logger.Format != "pretty" && c.Logger.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be pretty or json)", c.Logger.Format)
	}

	if c.Pipeline.WindowDays <= 0 {
		return errors.New("window days must be positive")
	}
	if c.Pipeline.NewsWindowDays <= 0 {
		return errors.New("news window days must be positive")
	}
	if c.Pipeline.MinPopularity < 0 || c.Pipeline.MinPopularity > 100 {
		return fmt.Errorf("min popularity %d out of range 0-100", c.Pipeline.MinPopularity)
	}
	if c.Pipeline.ResolvePolicy != PolicyFirstStrong && c.Pipeline.ResolvePolicy != PolicyExhaustive {
		return fmt.Errorf("invalid resolve policy: %s (must be %s or %s)", c.Pipeline.ResolvePolicy, PolicyFirstStrong, PolicyExhaustive)
	}
	if c.AppleMusic.SearchLimit <= 0 {
		return errors.New("apple music search limit must be positive")
	}
	if c.AppleMusic.Storefront == "" {
		return errors.New("apple music storefront cannot be empty")
	}

	if c.Server.RequestsPerMinute < 0 {
		return errors.New("server rate limit cannot be negative")
	}

	if c.Paths.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Paths.RosterPath, &c.Paths.OutputPath, &c.Paths.CachePath} {
		expanded, err := expandPath(*p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getListConfigValue splits a comma-separated value.
func getListConfigValue(flagValue, envKey string, defaultValue []string) []string {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var out []string
	for part := range strings.SplitSeq(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments). Variables already set win.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
