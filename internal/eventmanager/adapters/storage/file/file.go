// Package file реализует файловое хранилище: один JSON-файл на ключ.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/ports/storage"
	"eventmanager/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateStateDir = "failed to create state directory"
	ErrReadStateFile  = "failed to read state file"
	ErrWriteStateFile = "failed to write state file"
)

const fileMode = 0o600

// Store хранит каждое значение в отдельном файле <key>.json внутри dir.
// Запись выполняется во временный файл с последующим переименованием,
// поэтому читатели никогда не видят частично записанное значение.
type Store struct {
	dir string
}

// New создает хранилище в каталоге dir, создавая его при необходимости.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateStateDir, err)
	}
	return &Store{dir: dir}, nil
}

// Load читает значение ключа. Отсутствующий файл означает отсутствие данных.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		logger.Log(ctx).Error(ctx, ErrReadStateFile, zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrReadStateFile, err)
	}
	return data, nil
}

// Save атомарно перезаписывает значение ключа целиком.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.dir, "."+s.fileName(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteStateFile, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrWriteStateFile, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrWriteStateFile, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrWriteStateFile, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		logger.Log(ctx).Error(ctx, ErrWriteStateFile, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrWriteStateFile, err)
	}
	return nil
}

// Delete удаляет значение ключа; отсутствие файла - не ошибка.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}

// Close реализует storage.Store; файловому хранилищу закрывать нечего.
func (s *Store) Close() error {
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, s.fileName(key))
}

// fileName превращает ключ в безопасное имя файла.
func (s *Store) fileName(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, key)
	return sanitized + ".json"
}

var _ storage.Store = (*Store)(nil)
