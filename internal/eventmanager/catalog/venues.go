// Package catalog содержит статический каталог площадок для выбора места
// проведения события. Ядро по-прежнему трактует location как произвольную
// строку; каталог - только справочные данные.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed venues.json
var venuesJSON []byte

// Venue описывает площадку из каталога.
type Venue struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}

var (
	loadOnce sync.Once
	venues   []Venue
	loadErr  error
)

// Venues возвращает каталог площадок. Данные декодируются один раз.
func Venues() ([]Venue, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(venuesJSON, &venues); err != nil {
			loadErr = fmt.Errorf("decoding embedded venue catalog: %w", err)
		}
	})
	return venues, loadErr
}
