// Package postgres реализует хранилище состояния поверх Postgres:
// одна таблица app_state с JSON-значением на каждый логический ключ.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/ports/storage"
	"eventmanager/pkg/logger"
)

// PgxPool - минимальный интерфейс пула соединений, который нужен хранилищу.
// Ему удовлетворяют *pgxpool.Pool и pgxmock.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store хранит значения в таблице app_state (key, value, updated_at).
type Store struct {
	pool PgxPool
}

// NewStore создает хранилище поверх пула соединений.
func NewStore(pool PgxPool) *Store {
	return &Store{pool: pool}
}

// Load читает значение ключа. Отсутствие строки - не ошибка.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", "Store.Load"))

	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM app_state WHERE key = $1`,
		key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "failed to load state", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return value, nil
}

// Save перезаписывает значение ключа целиком (upsert).
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	log := logger.Log(ctx).With(zap.String("method", "Store.Save"))

	_, err := s.pool.Exec(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES ($1, $2, now())
         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		log.Error(ctx, "failed to save state", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Delete удаляет значение ключа; отсутствие строки - не ошибка.
func (s *Store) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", "Store.Delete"))

	_, err := s.pool.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, key)
	if err != nil {
		log.Error(ctx, "failed to delete state", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

// Close реализует storage.Store; пулом владеет вызывающая сторона.
func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
