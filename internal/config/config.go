// Package config содержит логику чтения конфигурации маркетплейс-бота.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultDataDir    = "data"
	defaultDBTimeout  = 10 * time.Second
)

var (
	// ErrMissingToken возвращается, если не задан токен бота.
	ErrMissingToken = errors.New("TOKEN is required")
	// ErrMissingVouchChannel возвращается, если не задан канал для отзывов.
	ErrMissingVouchChannel = errors.New("VOUCH_CHANNEL_ID is required")
)

// Config содержит параметры конфигурации маркетплейс-бота.
type Config struct {
	Token          string `env:"TOKEN"`
	VouchChannelID string `env:"VOUCH_CHANNEL_ID"`
	GuildID        string `env:"GUILD_ID"`
	DataDir        string `env:"DATA_DIR"`
	DatabaseURI    string `env:"DATABASE_URI"`
	RunAddress     string `env:"RUN_ADDRESS"`

	// DatabaseTimeout ограничивает подключение к БД и применение миграций при старте.
	DatabaseTimeout time.Duration `env:"DATABASE_TIMEOUT"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fromEnv := *cfg

	flag.StringVar(&cfg.Token, "t", "", "bot token")
	flag.StringVar(&cfg.VouchChannelID, "c", "", "vouch channel ID")
	flag.StringVar(&cfg.GuildID, "g", "", "guild ID for command registration")
	flag.StringVar(&cfg.DataDir, "f", defaultDataDir, "directory for JSON collections")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.DurationVar(&cfg.DatabaseTimeout, "db-timeout", defaultDBTimeout, "database connect and migration timeout")

	flag.Parse()

	override(&cfg.Token, fromEnv.Token)
	override(&cfg.VouchChannelID, fromEnv.VouchChannelID)
	override(&cfg.GuildID, fromEnv.GuildID)
	override(&cfg.DataDir, fromEnv.DataDir)
	override(&cfg.DatabaseURI, fromEnv.DatabaseURI)
	override(&cfg.RunAddress, fromEnv.RunAddress)

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if fromEnv.DatabaseTimeout > 0 {
		cfg.DatabaseTimeout = fromEnv.DatabaseTimeout
	}
	if cfg.DatabaseTimeout <= 0 {
		cfg.DatabaseTimeout = defaultDBTimeout
	}

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.VouchChannelID == "" {
		return nil, ErrMissingVouchChannel
	}

	return cfg, nil
}

func override(dst *string, envValue string) {
	if envValue != "" {
		*dst = envValue
	}
}
