// Package config содержит конфигурацию сервиса управления событиями.
package config

import (
	"context"
	"fmt"

	"eventmanager/pkg/config"
)

// ServiceName - имя сервиса для логирования загрузки конфигурации.
const ServiceName = "eventmanager"

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из .env файла и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("load service config: %w", err)
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("validate storage config: %w", err)
	}
	return cfg, nil
}
