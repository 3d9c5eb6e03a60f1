package config

import (
	"time"

	redisdb "eventmanager/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"EVENTS_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"EVENTS_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"EVENTS_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"EVENTS_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"EVENTS_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"EVENTS_REDIS_TIMEOUT" env-default:"5s"`
}

// ToClientConfig собирает конфигурацию клиента Redis.
func (c *RedisConfig) ToClientConfig() *redisdb.Config {
	return &redisdb.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
