// Package app implements application business logic for the event manager.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/domain/entities"
	"eventmanager/internal/eventmanager/ports/storage"
	"eventmanager/pkg/logger"
)

// Ключи хранилища.
const (
	storageKeyUsers   = "event_manager_users"
	storageKeySession = "event_manager_session"
	storageKeyEvents  = "event_manager_events"
)

// SessionState - состояние сессии. Loading действует только до завершения
// RestoreSession; обратного перехода в Loading нет.
type SessionState string

// Состояния сессии.
const (
	SessionLoading         SessionState = "loading"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

const (
	methodLogin          = "Login"
	methodRegister       = "Register"
	methodLogout         = "Logout"
	methodRestoreSession = "RestoreSession"

	msgLoginAttempt       = "login attempt"
	msgUserLoggedIn       = "user logged in"
	msgStartRegistration  = "starting user registration"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "user registered successfully"
	msgUserLoggedOut      = "user logged out"
	msgSessionRestored    = "session restored from store"
	msgNoPersistedSession = "no persisted session found"
	msgCorruptState       = "stored state is corrupt, substituting empty collection"

	msgErrSaveSession  = "failed to persist session record"
	msgErrClearSession = "failed to clear session record"
	msgErrLoadRegistry = "failed to load user registry"
	msgErrSaveRegistry = "failed to persist user registry"

	errCtxCheckingEmail     = "checking registered emails"
	errCtxPersistingSession = "persisting session"
	errCtxPersistingUsers   = "persisting user registry"
	errCtxClearingSession   = "clearing session"
	errCtxRestoringSession  = "restoring session"
)

// SessionListener вызывается после каждой смены активной сессии.
// nil означает переход в Unauthenticated.
type SessionListener func(ctx context.Context, user *entities.User)

// RegisterInput - данные регистрации нового пользователя.
type RegisterInput struct {
	Email    string
	Name     string
	Username string
	Password string
}

// AuthUseCase владеет реестром пользователей и единственной активной сессией.
//
// Демо-семантика аутентификации сохранена намеренно: Login принимает любые
// учетные данные, не сверяясь с реестром, и каждый раз создает новую
// личность; пароль нигде не проверяется и хранится в реестре открытым
// текстом.
type AuthUseCase struct {
	store storage.Store

	mu        sync.RWMutex
	state     SessionState
	user      *entities.User
	listeners []SessionListener
}

// NewAuthUseCase создает сервис аутентификации в состоянии Loading.
func NewAuthUseCase(store storage.Store) *AuthUseCase {
	return &AuthUseCase{
		store: store,
		state: SessionLoading,
	}
}

// OnSessionChange регистрирует слушателя смены сессии. Слушатели вызываются
// синхронно после фиксации нового состояния.
func (a *AuthUseCase) OnSessionChange(fn SessionListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// State возвращает текущее состояние сессии.
func (a *AuthUseCase) State() SessionState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// CurrentUser возвращает активного пользователя, если сессия установлена.
func (a *AuthUseCase) CurrentUser() (*entities.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state != SessionAuthenticated || a.user == nil {
		return nil, false
	}
	return a.user, true
}

// Login устанавливает активную сессию для любой пары email/пароль.
// Пароль игнорируется; имя и username выводятся из локальной части email.
// Каждый вызов создает новую личность с новым id, реестр не используется.
func (a *AuthUseCase) Login(ctx context.Context, email, _ string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	local := emailLocalPart(email)
	user := entities.NewUser(email, local, local, "")

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPersistingSession, err)
	}
	if err := a.store.Save(ctx, storageKeySession, raw); err != nil {
		log.Error(ctx, msgErrSaveSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingSession, err)
	}

	a.activate(ctx, user)

	log.Info(ctx, msgUserLoggedIn, zap.String("user_id", user.ID))
	return user, nil
}

// Register добавляет пользователя в реестр и активирует сессию.
// Возвращает entities.ErrEmailAlreadyRegistered при точном совпадении email
// с уже зарегистрированным.
func (a *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", input.Email))
	log.Debug(ctx, msgStartRegistration)

	users, err := a.loadUsers(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadRegistry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}

	for _, existing := range users {
		if existing.Email == input.Email {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, entities.ErrEmailAlreadyRegistered)
		}
	}

	user := entities.NewUser(input.Email, input.Name, input.Username, input.Password)
	users = append(users, user)

	rawUsers, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPersistingUsers, err)
	}
	if err := a.store.Save(ctx, storageKeyUsers, rawUsers); err != nil {
		log.Error(ctx, msgErrSaveRegistry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingUsers, err)
	}

	// Пароль остается в записи реестра, но никогда - в активной сессии.
	session := user.WithoutPassword()
	rawSession, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPersistingSession, err)
	}
	if err := a.store.Save(ctx, storageKeySession, rawSession); err != nil {
		log.Error(ctx, msgErrSaveSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingSession, err)
	}

	a.activate(ctx, session)

	log.Info(ctx, msgUserRegistered, zap.String("user_id", user.ID))
	return session, nil
}

// Logout очищает запись сессии; реестр не затрагивается.
func (a *AuthUseCase) Logout(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if err := a.store.Delete(ctx, storageKeySession); err != nil {
		log.Error(ctx, msgErrClearSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxClearingSession, err)
	}

	a.activate(ctx, nil)

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// RestoreSession однократно читает сохраненную сессию при старте процесса.
// Запись доверяется как есть, без сверки с реестром. Отсутствующая или
// поврежденная запись переводит сессию в Unauthenticated.
func (a *AuthUseCase) RestoreSession(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodRestoreSession))

	raw, err := a.store.Load(ctx, storageKeySession)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxRestoringSession, err)
	}

	if raw == nil {
		log.Debug(ctx, msgNoPersistedSession)
		a.activate(ctx, nil)
		return nil
	}

	var user entities.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		log.Warn(ctx, msgCorruptState, zap.String("key", storageKeySession))
		a.activate(ctx, nil)
		return nil
	}

	a.activate(ctx, &user)
	log.Info(ctx, msgSessionRestored, zap.String("user_id", user.ID))
	return nil
}

// RegisteredUsers возвращает реестр пользователей (для диагностики и тестов).
func (a *AuthUseCase) RegisteredUsers(ctx context.Context) ([]*entities.User, error) {
	return a.loadUsers(ctx)
}

// activate фиксирует новое состояние сессии и уведомляет слушателей.
// Слушатели вызываются вне мьютекса.
func (a *AuthUseCase) activate(ctx context.Context, user *entities.User) {
	a.mu.Lock()
	if user != nil {
		a.state = SessionAuthenticated
	} else {
		a.state = SessionUnauthenticated
	}
	a.user = user
	listeners := make([]SessionListener, len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, user)
	}
}

// loadUsers читает реестр; отсутствующие или поврежденные данные заменяются
// пустой коллекцией.
func (a *AuthUseCase) loadUsers(ctx context.Context) ([]*entities.User, error) {
	raw, err := a.store.Load(ctx, storageKeyUsers)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []*entities.User{}, nil
	}

	var users []*entities.User
	if err := json.Unmarshal(raw, &users); err != nil {
		logger.Log(ctx).Warn(ctx, msgCorruptState, zap.String("key", storageKeyUsers))
		return []*entities.User{}, nil
	}
	return users, nil
}

// emailLocalPart возвращает часть email до '@'.
func emailLocalPart(email string) string {
	if idx := strings.Index(email, "@"); idx >= 0 {
		return email[:idx]
	}
	return email
}
