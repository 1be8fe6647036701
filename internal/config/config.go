// Package config loads settings from an optional lexforge.yaml plus
// LEXFORGE_* environment variables. The environment always wins, and the
// API key is environment-only so it never lands in a committed file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file Load looks for when no path is given.
const DefaultFile = "lexforge.yaml"

// Config holds all configuration for the application
type Config struct {
	Debug bool `yaml:"debug"`

	// Storage
	StoreBackend  string `yaml:"store_backend"` // sqlite, postgres, mongo
	SQLitePath    string `yaml:"sqlite_path"`
	PostgresURL   string `yaml:"postgres_url"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	// RabbitMQ; empty disables event publishing
	RabbitMQURL string `yaml:"rabbitmq_url"`

	// LLM
	LLMProvider string `yaml:"llm_provider"` // gemini, claude, openai, ollama, seed
	LLMModel    string `yaml:"llm_model"`
	LLMBaseURL  string `yaml:"llm_base_url"`
	LLMAPIKey   string `yaml:"-"` // environment only

	// Generation
	QuestionCount  int    `yaml:"question_count"`
	ChoiceCount    int    `yaml:"choice_count"`
	WordTarget     int    `yaml:"word_target"`
	ParagraphCount int    `yaml:"paragraph_count"`
	Level          string `yaml:"level"` // difficulty level name, en or zh_tw
}

// Load reads configuration from the given YAML file (optional) and the
// environment. path may be empty to use DefaultFile; a missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		StoreBackend:   "sqlite",
		SQLitePath:     "lexforge.db",
		MongoDatabase:  "lexforge",
		LLMProvider:    "gemini",
		QuestionCount:  3,
		ChoiceCount:    3,
		WordTarget:     150,
		ParagraphCount: 3,
	}

	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// No file is fine, the environment and defaults carry it.
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Debug = getEnvBool("LEXFORGE_DEBUG", cfg.Debug)
	cfg.StoreBackend = getEnv("LEXFORGE_STORE", cfg.StoreBackend)
	cfg.SQLitePath = getEnv("LEXFORGE_SQLITE_PATH", cfg.SQLitePath)
	cfg.PostgresURL = getEnv("LEXFORGE_POSTGRES_URL", cfg.PostgresURL)
	cfg.MongoURI = getEnv("LEXFORGE_MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("LEXFORGE_MONGO_DATABASE", cfg.MongoDatabase)
	cfg.RabbitMQURL = getEnv("LEXFORGE_RABBITMQ_URL", cfg.RabbitMQURL)
	cfg.LLMProvider = getEnv("LEXFORGE_LLM_PROVIDER", cfg.LLMProvider)
	cfg.LLMModel = getEnv("LEXFORGE_LLM_MODEL", cfg.LLMModel)
	cfg.LLMBaseURL = getEnv("LEXFORGE_LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.LLMAPIKey = getEnv("LEXFORGE_LLM_API_KEY", "")
	cfg.QuestionCount = getEnvInt("LEXFORGE_QUESTION_COUNT", cfg.QuestionCount)
	cfg.ChoiceCount = getEnvInt("LEXFORGE_CHOICE_COUNT", cfg.ChoiceCount)
	cfg.WordTarget = getEnvInt("LEXFORGE_WORD_TARGET", cfg.WordTarget)
	cfg.ParagraphCount = getEnvInt("LEXFORGE_PARAGRAPH_COUNT", cfg.ParagraphCount)
	cfg.Level = getEnv("LEXFORGE_LEVEL", cfg.Level)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case "sqlite", "postgres", "mongo":
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.StoreBackend == "postgres" && c.PostgresURL == "" {
		return fmt.Errorf("postgres backend requires LEXFORGE_POSTGRES_URL")
	}
	if c.StoreBackend == "mongo" && c.MongoURI == "" {
		return fmt.Errorf("mongo backend requires LEXFORGE_MONGO_URI")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
