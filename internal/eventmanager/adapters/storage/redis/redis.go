// Package redis реализует хранилище состояния поверх Redis.
package redis

import (
	"context"
	"fmt"

	"eventmanager/internal/eventmanager/ports/storage"
	redisdb "eventmanager/pkg/db/redis"
)

// Префикс ключей приложения в Redis.
const keyPrefix = "event_manager:"

// Store хранит каждое значение в отдельном ключе Redis без TTL.
type Store struct {
	client *redisdb.Client
}

// NewStore создает хранилище поверх подключенного клиента Redis.
func NewStore(client *redisdb.Client) *Store {
	return &Store{client: client}
}

// Load читает значение ключа. Отсутствие ключа - не ошибка.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.GetBytes(ctx, keyPrefix+key)
	if err != nil {
		return nil, fmt.Errorf("failed to load state from redis: %w", err)
	}
	return data, nil
}

// Save перезаписывает значение ключа целиком.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0); err != nil {
		return fmt.Errorf("failed to save state to redis: %w", err)
	}
	return nil
}

// Delete удаляет значение ключа; отсутствие ключа - не ошибка.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Delete(ctx, keyPrefix+key); err != nil {
		return fmt.Errorf("failed to delete state from redis: %w", err)
	}
	return nil
}

// Close закрывает подключение к Redis.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ storage.Store = (*Store)(nil)
