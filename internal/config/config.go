// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Catalog   CatalogConfig
	Recommend RecommendConfig
	Metadata  MetadataConfig
	Server    ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// CatalogConfig holds the source files and load policy.
type CatalogConfig struct {
	GeneralPath  string // CSV or XLSX (default: movie_data/imdb_movies.csv)
	RegionalPath string // CSV or XLSX (default: movie_data/bollywood_movies.csv)

	// ScorePolicy is zero, uniform or none (default: zero).
	ScorePolicy string
	FallbackMin float64 // Uniform policy lower bound (default: 5)
	FallbackMax float64 // Uniform policy upper bound (default: 9)

	// FallbackSample serves the four-title sample catalog when a source is missing.
	FallbackSample bool
	// Watch reloads the catalog when a source file changes (default: false).
	Watch bool

	GeneralTitleColumns  []string
	GeneralGenreColumns  []string
	GeneralScoreColumns  []string
	RegionalTitleColumns []string
	RegionalGenreColumns []string
	RegionalScoreColumns []string
}

// RecommendConfig holds recommender settings.
type RecommendConfig struct {
	DefaultCount int     // Results when n is omitted (default: 6)
	MaxCount     int     // Upper bound on n (default: 50)
	Seed         uint64  // Mood shuffle seed (default: 42)
	BackfillMin  float64 // Lower bound for unset scores (default: 1)
	BackfillMax  float64 // Upper bound for unset scores (default: 10)
}

// MetadataConfig holds OMDb and cache configuration.
type MetadataConfig struct {
	OMDbAPIKey        string        // Optional; enrichment is skipped without it
	OMDbBaseURL       string        // Default: https://www.omdbapi.com/
	CachePath         string        // Badger directory; empty keeps the cache in memory
	CacheTTL          time.Duration // Default: 168h
	RequestsPerSecond float64       // Default: 5
	Timeout           time.Duration // Default: 5s
	Concurrency       int           // Parallel lookups per request (default: 4)
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Default: *
	RateLimitRPS float64       // Per-client requests per second (default: 20)
	RateBurst    int           // Per-client burst (default: 40)
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("cinemood", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	generalPath := fs.String("general-path", "", "General catalog file (default: movie_data/imdb_movies.csv)")
	regionalPath := fs.String("regional-path", "", "Regional catalog file (default: movie_data/bollywood_movies.csv)")
	scorePolicy := fs.String("score-policy", "", "Missing score policy: zero, uniform, none (default: zero)")
	fallbackSample := fs.String("fallback-sample", "", "Serve the sample catalog when sources are missing (default: false)")
	watch := fs.String("watch", "", "Reload catalog when source files change (default: false)")

	defaultCount := fs.String("default-count", "", "Default number of recommendations (default: 6)")
	maxCount := fs.String("max-count", "", "Maximum number of recommendations (default: 50)")

	omdbKey := fs.String("omdb-api-key", "", "OMDb API key")
	cachePath := fs.String("cache-path", "", "Metadata cache directory (default: in-memory)")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			GeneralPath:    getConfigValue(*generalPath, "CATALOG_GENERAL_PATH", filepath.Join("movie_data", "imdb_movies.csv")),
			RegionalPath:   getConfigValue(*regionalPath, "CATALOG_REGIONAL_PATH", filepath.Join("movie_data", "bollywood_movies.csv")),
			ScorePolicy:    strings.ToLower(getConfigValue(*scorePolicy, "CATALOG_SCORE_POLICY", "zero")),
			FallbackMin:    getFloatConfigValue("", "CATALOG_FALLBACK_MIN", 5),
			FallbackMax:    getFloatConfigValue("", "CATALOG_FALLBACK_MAX", 9),
			FallbackSample: getBoolConfigValue(*fallbackSample, "CATALOG_FALLBACK_SAMPLE", false),
			Watch:          getBoolConfigValue(*watch, "CATALOG_WATCH", false),

			GeneralTitleColumns:  getListConfigValue("", "CATALOG_GENERAL_TITLE_COLUMNS"),
			GeneralGenreColumns:  getListConfigValue("", "CATALOG_GENERAL_GENRE_COLUMNS"),
			GeneralScoreColumns:  getListConfigValue("", "CATALOG_GENERAL_SCORE_COLUMNS"),
			RegionalTitleColumns: getListConfigValue("", "CATALOG_REGIONAL_TITLE_COLUMNS"),
			RegionalGenreColumns: getListConfigValue("", "CATALOG_REGIONAL_GENRE_COLUMNS"),
			RegionalScoreColumns: getListConfigValue("", "CATALOG_REGIONAL_SCORE_COLUMNS"),
		},
		Recommend: RecommendConfig{
			DefaultCount: getIntConfigValue(*defaultCount, "RECOMMEND_DEFAULT_COUNT", 6),
			MaxCount:     getIntConfigValue(*maxCount, "RECOMMEND_MAX_COUNT", 50),
			Seed:         uint64(getIntConfigValue("", "RECOMMEND_SEED", 42)),
			BackfillMin:  getFloatConfigValue("", "RECOMMEND_BACKFILL_MIN", 1),
			BackfillMax:  getFloatConfigValue("", "RECOMMEND_BACKFILL_MAX", 10),
		},
		Metadata: MetadataConfig{
			OMDbAPIKey:        getConfigValue(*omdbKey, "OMDB_API_KEY", ""),
			OMDbBaseURL:       getConfigValue("", "OMDB_BASE_URL", "https://www.omdbapi.com/"),
			CachePath:         getConfigValue(*cachePath, "METADATA_CACHE_PATH", ""),
			RequestsPerSecond: getFloatConfigValue("", "OMDB_REQUESTS_PER_SECOND", 5),
			Concurrency:       getIntConfigValue("", "METADATA_CONCURRENCY", 4),
		},
		Server: ServerConfig{
			Port:         getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins:  getListConfigValue("", "SERVER_CORS_ORIGINS"),
			RateLimitRPS: getFloatConfigValue("", "SERVER_RATE_LIMIT_RPS", 20),
			RateBurst:    getIntConfigValue("", "SERVER_RATE_LIMIT_BURST", 40),
		},
	}

	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}

	durations := []struct {
		flagValue string
		envKey    string
		def       string
		dest      *time.Duration
	}{
		{"", "METADATA_CACHE_TTL", "168h", &cfg.Metadata.CacheTTL},
		{"", "OMDB_TIMEOUT", "5s", &cfg.Metadata.Timeout},
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dest = parsed
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
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

	if c.Catalog.GeneralPath == "" || c.Catalog.RegionalPath == "" {
		return errors.New("catalog source paths cannot be empty")
	}

	switch c.Catalog.ScorePolicy {
	case "zero", "uniform", "none":
	default:
		return fmt.Errorf("invalid score policy: %s (must be zero, uniform, or none)", c.Catalog.ScorePolicy)
	}
	if c.Catalog.ScorePolicy == "uniform" && c.Catalog.FallbackMax <= c.Catalog.FallbackMin {
		return fmt.Errorf("invalid fallback range [%g, %g]", c.Catalog.FallbackMin, c.Catalog.FallbackMax)
	}

	if c.Recommend.MaxCount < 1 {
		return fmt.Errorf("invalid max count: %d (must be at least 1)", c.Recommend.MaxCount)
	}
	if c.Recommend.DefaultCount < 1 || c.Recommend.DefaultCount > c.Recommend.MaxCount {
		return fmt.Errorf("invalid default count: %d (must be between 1 and %d)", c.Recommend.DefaultCount, c.Recommend.MaxCount)
	}
	if c.Recommend.BackfillMax <= c.Recommend.BackfillMin {
		return fmt.Errorf("invalid backfill range [%g, %g]", c.Recommend.BackfillMin, c.Recommend.BackfillMax)
	}

	if c.Metadata.Concurrency < 1 {
		return fmt.Errorf("invalid metadata concurrency: %d", c.Metadata.Concurrency)
	}

	return nil
}

// expandPaths makes the source and cache paths absolute.
func (c *Config) expandPaths() error {
	var err error
	if c.Catalog.GeneralPath, err = expandPath(c.Catalog.GeneralPath, ""); err != nil {
		return err
	}
	if c.Catalog.RegionalPath, err = expandPath(c.Catalog.RegionalPath, ""); err != nil {
		return err
	}
	// Empty cache path stays empty: the cache runs in memory.
	if c.Metadata.CachePath, err = expandPath(c.Metadata.CachePath, ""); err != nil {
		return err
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, returns defaultPath unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
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

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// getListConfigValue splits a comma-separated value, dropping blanks.
// Returns nil when unset so callers can apply their own defaults.
func getListConfigValue(flagValue, envKey string) []string {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
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

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Env vars already set take precedence over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
