package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken         string        `env:"BOT_TOKEN,notEmpty"`
	AdminIDs         []int64       `env:"ADMIN_IDS" envSeparator:","`
	Channels         []string      `env:"CHANNELS" envSeparator:","`
	PollTimeout      time.Duration `env:"POLL_TIMEOUT" envDefault:"10s"`
	BroadcastPace    time.Duration `env:"BROADCAST_PACE" envDefault:"100ms"`
	BroadcastWorkers int64         `env:"BROADCAST_WORKERS" envDefault:"4"`
	OpsAddr          string        `env:"OPS_ADDR" envDefault:":8080"`
	Debug            bool          `env:"DEBUG" envDefault:"false"`
}

// Load reads configuration from the environment, with an optional .env file
// filling in what the process environment does not set.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.AdminIDs) == 0 {
		return Config{}, errors.New("ADMIN_IDS must list at least one admin")
	}
	return cfg, nil
}
