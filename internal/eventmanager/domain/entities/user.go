// Package entities defines the domain entities for the event manager.
package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ошибки домена пользователя и сессии.
var (
	ErrEmailAlreadyRegistered = errors.New("user with this email already exists")
	ErrNoActiveSession        = errors.New("no active session")
)

// User представляет основную сущность домена пользователя.
// Password заполняется только в записи реестра; в активной сессии поле пустое.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new user with a fresh id and creation timestamp.
func NewUser(email, name, username, password string) *User {
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
}

// WithoutPassword возвращает копию пользователя без пароля.
func (u *User) WithoutPassword() *User {
	clone := *u
	clone.Password = ""
	return &clone
}
