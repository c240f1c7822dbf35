// Package config loads the application's configuration from the environment
// and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/codemaster-gdg/codementor/internal/logger"
)

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config holds the application's configuration values.
type Config struct {
	ServerPort         string
	AllowedOrigins     []string
	LLMProvider        string
	GeminiAPIKey       string
	OllamaHost         string
	GeneratorModelName string
	GenerationTimeout  time.Duration
	AuthJWTSecret      string
	CloneDir           string
	Logger             logger.Config
	Database           *DBConfig
}

// LoadConfig reads the full configuration from environment variables and a
// .env file, sets sensible defaults, and validates required fields, including
// the model provider's credentials. It uses the Viper library to handle
// configuration loading and precedence.
func LoadConfig() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.AuthJWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set")
	}

	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
		}
	case "ollama":
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return cfg, nil
}

// LoadStoreConfig loads the same configuration but validates nothing beyond
// the database and logging settings. Commands that only read or write the
// store use it so they run without model or auth credentials.
func LoadStoreConfig() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("LLM_PROVIDER", "gemini")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("GENERATION_TIMEOUT", "5m")
	viper.SetDefault("CLONE_DIR", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "codementor")
	viper.SetDefault("DB_NAME", "codementor")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", "error", err)
		}
	}

	provider := viper.GetString("LLM_PROVIDER")

	// Each provider carries its own default generator model.
	model := viper.GetString("GENERATOR_MODEL_NAME")
	if model == "" {
		if provider == "gemini" {
			model = "gemini-2.0-flash"
		} else {
			model = "gemma3:latest"
		}
	}

	return &Config{
		ServerPort:         viper.GetString("SERVER_PORT"),
		AllowedOrigins:     viper.GetStringSlice("ALLOWED_ORIGINS"),
		LLMProvider:        provider,
		GeminiAPIKey:       viper.GetString("GEMINI_API_KEY"),
		OllamaHost:         viper.GetString("OLLAMA_HOST"),
		GeneratorModelName: model,
		GenerationTimeout:  viper.GetDuration("GENERATION_TIMEOUT"),
		AuthJWTSecret:      viper.GetString("AUTH_JWT_SECRET"),
		CloneDir:           viper.GetString("CLONE_DIR"),
		Logger: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Database: &DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
	}, nil
}
