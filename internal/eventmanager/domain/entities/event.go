package entities

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Ошибки домена событий.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEmptyEventName   = errors.New("event name cannot be empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime      = errors.New("time must be in HH:MM format")
	ErrInvalidDuration  = errors.New("duration must be one of the presets or <N>h/<N>d")
	ErrEmptyEventFields = errors.New("event fields cannot be empty")
)

// Форматы даты и времени события.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Duration - продолжительность события: предустановленное значение
// или произвольное в форме "<N>h"/"<N>d".
type Duration string

// Предустановленные значения продолжительности.
const (
	DurationOneHour    Duration = "1h"
	DurationTwoHours   Duration = "2h"
	DurationFiveHours  Duration = "5h"
	DurationEightHours Duration = "8h"
	DurationOneDay     Duration = "1d"
)

var customDurationPattern = regexp.MustCompile(`^[1-9][0-9]*[hd]$`)

// ParseDuration проверяет и нормализует строку продолжительности.
func ParseDuration(s string) (Duration, error) {
	switch Duration(s) {
	case DurationOneHour, DurationTwoHours, DurationFiveHours, DurationEightHours, DurationOneDay:
		return Duration(s), nil
	}
	if customDurationPattern.MatchString(s) {
		return Duration(s), nil
	}
	return "", ErrInvalidDuration
}

// IsPreset сообщает, является ли продолжительность предустановленной.
func (d Duration) IsPreset() bool {
	switch d {
	case DurationOneHour, DurationTwoHours, DurationFiveHours, DurationEightHours, DurationOneDay:
		return true
	}
	return false
}

// Event представляет событие пользователя. Date и Time хранятся строками
// в форматах DateLayout и TimeLayout; Location - произвольный текст либо
// название площадки из каталога.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Duration    Duration  `json:"duration"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent creates a new event owned by userID with a fresh id;
// CreatedAt and UpdatedAt are both set to the current moment.
func NewEvent(userID, name, date, timeOfDay string, duration Duration, location, description string) *Event {
	now := time.Now()
	return &Event{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Date:        date,
		Time:        timeOfDay,
		Duration:    duration,
		Location:    location,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateDate проверяет строку даты события.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateTime проверяет строку времени события.
func ValidateTime(timeOfDay string) error {
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return ErrInvalidTime
	}
	return nil
}
