package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/search"
)

const (
	DefaultBoardSize    = 8
	DefaultSearchDepth  = 4
	DefaultMaxDepth     = 8
	DefaultMaxFullDepth = 5
	DefaultEvaluator    = "weighted"
	DefaultSearchPolicy = "alphabeta"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost  string
	ServerPort  string
	RedisURL    string
	PostgresURL string
	Token       string
	Prefork     bool
	Search      SearchConfig
}

// SearchConfig holds the engine and search settings shared by all requests.
type SearchConfig struct {
	BoardRows    int
	BoardCols    int
	DefaultDepth int
	MaxDepth     int
	Evaluator    string
	Policy       string

	// MaxFullDepth limits the depth of policies that do not prune.
	MaxFullDepth int
}

// Validate checks that the search settings are consistent.
func (c SearchConfig) Validate() error {
	if c.DefaultDepth < 1 {
		return fmt.Errorf("default depth must be at least 1, got %d", c.DefaultDepth)
	}

	if c.MaxDepth < c.DefaultDepth {
		return fmt.Errorf("max depth %d is below default depth %d", c.MaxDepth, c.DefaultDepth)
	}

	if c.MaxFullDepth < 1 || c.MaxFullDepth > c.MaxDepth {
		return fmt.Errorf("max full depth must be between 1 and max depth %d, got %d", c.MaxDepth, c.MaxFullDepth)
	}

	policy, err := search.ParsePolicy(c.Policy)
	if err != nil {
		return err
	}

	if !slices.Contains(evaluate.Names, c.Evaluator) {
		return fmt.Errorf("%w: %q, expected one of %v", evaluate.ErrUnknownEvaluator, c.Evaluator, evaluate.Names)
	}

	if c.DepthLimit(policy) < c.DefaultDepth {
		return fmt.Errorf("default depth %d exceeds the limit %d of policy %s", c.DefaultDepth, c.DepthLimit(policy), policy)
	}

	return nil
}

// DepthLimit returns the maximum search depth allowed for policy.
func (c SearchConfig) DepthLimit(policy search.Policy) int {
	if policy == search.AlphaBeta {
		return c.MaxDepth
	}
	return min(c.MaxDepth, c.MaxFullDepth)
}

// DefaultSearchConfig returns the settings used when nothing is configured.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		BoardRows:    DefaultBoardSize,
		BoardCols:    DefaultBoardSize,
		DefaultDepth: DefaultSearchDepth,
		MaxDepth:     DefaultMaxDepth,
		Evaluator:    DefaultEvaluator,
		Policy:       DefaultSearchPolicy,
		MaxFullDepth: DefaultMaxFullDepth,
	}
}

// LoadDotEnv loads variables from a .env file in the working directory, if present.
// Variables that are already set take precedence.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Could not load .env file", "error", err)
	}
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:  getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:  getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:    os.Getenv("REVERSI_REDIS_URL"),
		PostgresURL: os.Getenv("REVERSI_POSTGRES_URL"),
		Token:       os.Getenv("REVERSI_TOKEN"),
		Prefork:     getEnvMustBool("REVERSI_PREFORK", false),
		Search:      LoadSearchConfig(),
	}
}

// LoadSearchConfig loads the search settings, falling back to defaults.
func LoadSearchConfig() SearchConfig {
	defaults := DefaultSearchConfig()

	cfg := SearchConfig{
		BoardRows:    getEnvMustInt("REVERSI_BOARD_ROWS", defaults.BoardRows),
		BoardCols:    getEnvMustInt("REVERSI_BOARD_COLS", defaults.BoardCols),
		DefaultDepth: getEnvMustInt("REVERSI_DEFAULT_DEPTH", defaults.DefaultDepth),
		MaxDepth:     getEnvMustInt("REVERSI_MAX_DEPTH", defaults.MaxDepth),
		Evaluator:    getEnvDefault("REVERSI_EVALUATOR", defaults.Evaluator),
		Policy:       getEnvDefault("REVERSI_POLICY", defaults.Policy),
		MaxFullDepth: getEnvMustInt("REVERSI_MAX_FULL_DEPTH", defaults.MaxFullDepth),
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid search configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

// getEnvDefault returns the environment variable or fallback if it is not set.
func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvMustBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getEnvMustInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be an integer", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}
