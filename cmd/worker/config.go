package main

import (
	"log"

	"framecanvas-backend/internal/shared/utils"
)

// Config holds the worker-level configuration.
type Config struct {
	RedisAddr   string
	Concurrency int
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:   utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		Concurrency: 10,
	}

	log.Printf("[Config] Redis: %s, Concurrency: %d", cfg.RedisAddr, cfg.Concurrency)

	return cfg
}
