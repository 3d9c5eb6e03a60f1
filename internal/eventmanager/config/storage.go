package config

import "fmt"

// Поддерживаемые драйверы хранилища состояния.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StorageConfig выбирает бэкенд для персистентного состояния приложения.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"EVENTS_STORAGE_DRIVER" env-default:"file"`
	Dir    string `yaml:"dir" env:"EVENTS_STORAGE_DIR" env-default:"./data"`
}

// Validate проверяет, что выбран известный драйвер.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverFile, DriverRedis, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unknown storage driver: %q", s.Driver)
	}
}
