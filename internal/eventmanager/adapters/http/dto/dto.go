// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"time"

	"eventmanager/internal/eventmanager/domain/entities"
)

// LoginRequest содержит данные для входа. Пароль принимается, но не
// проверяется.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// RegisterRequest содержит данные для регистрации.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// User представляет пользователя в ответах API; пароль не сериализуется.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse описывает текущую сессию.
type SessionResponse struct {
	State string `json:"state"`
	User  *User  `json:"user,omitempty"`
}

// EventRequest содержит изменяемые поля события.
type EventRequest struct {
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description"`
}

// Event представляет событие в ответах API.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Duration    string    `json:"duration"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventsResponse содержит список событий.
type EventsResponse struct {
	Events []*Event `json:"events"`
}

// Venue представляет площадку каталога.
type Venue struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}

// VenuesResponse содержит каталог площадок.
type VenuesResponse struct {
	Venues []Venue `json:"venues"`
}

// FromUser преобразует доменного пользователя в DTO.
func FromUser(user *entities.User) *User {
	if user == nil {
		return nil
	}
	return &User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// FromEvent преобразует доменное событие в DTO.
func FromEvent(event *entities.Event) *Event {
	return &Event{
		ID:          event.ID,
		UserID:      event.UserID,
		Name:        event.Name,
		Date:        event.Date,
		Time:        event.Time,
		Duration:    string(event.Duration),
		Location:    event.Location,
		Description: event.Description,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// FromEvents преобразует список доменных событий в DTO.
func FromEvents(events []*entities.Event) *EventsResponse {
	out := make([]*Event, 0, len(events))
	for _, event := range events {
		out = append(out, FromEvent(event))
	}
	return &EventsResponse{Events: out}
}
