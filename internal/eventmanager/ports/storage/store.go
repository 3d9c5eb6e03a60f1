// Package storage defines the persistent store port for the event manager.
package storage

import "context"

// Store - порт хранилища "ключ - JSON-блоб". Каждое значение перезаписывается
// целиком; частично записанное состояние не должно быть видно читателям.
//
// Отсутствие ключа при Load - не ошибка: возвращается (nil, nil). Обработка
// поврежденных данных - обязанность вызывающего (tolerant load: подмена пустой
// коллекцией). Блокировок нет: два процесса над одним хранилищем работают
// по принципу last-write-wins.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
