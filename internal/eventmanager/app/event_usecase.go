package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/domain/entities"
	"eventmanager/internal/eventmanager/ports/storage"
	"eventmanager/pkg/logger"
)

const (
	methodCreateEvent = "CreateEvent"
	methodUpdateEvent = "UpdateEvent"
	methodDeleteEvent = "DeleteEvent"

	msgEventCreated  = "event created"
	msgEventUpdated  = "event updated"
	msgEventDeleted  = "event deleted"
	msgEventNotFound = "event not found"
	msgMirrorReset   = "session changed, event mirror recomputed"

	msgErrLoadEvents = "failed to load event collection"
	msgErrSaveEvents = "failed to persist event collection"

	errCtxLoadingEvents    = "loading events"
	errCtxPersistingEvents = "persisting events"
)

// SessionSource - источник активной сессии для репозитория событий.
type SessionSource interface {
	CurrentUser() (*entities.User, bool)
	OnSessionChange(SessionListener)
}

// EventInput - изменяемые поля события.
type EventInput struct {
	Name        string
	Date        string
	Time        string
	Duration    entities.Duration
	Location    string
	Description string
}

// EventUseCase владеет полной коллекцией событий всех пользователей и
// зеркалом событий активного пользователя. Каждая мутация синхронно
// сохраняет всю коллекцию и обновляет зеркало (write-through); полная
// перезагрузка из хранилища происходит только при смене сессии.
type EventUseCase struct {
	store   storage.Store
	session SessionSource

	mu     sync.RWMutex
	mirror []*entities.Event
}

// NewEventUseCase создает репозиторий событий и подписывает его на смену
// активной сессии.
func NewEventUseCase(store storage.Store, session SessionSource) *EventUseCase {
	uc := &EventUseCase{
		store:   store,
		session: session,
		mirror:  []*entities.Event{},
	}
	session.OnSessionChange(uc.handleSessionChange)
	return uc
}

// Create добавляет событие активного пользователя в коллекцию и сохраняет ее.
func (uc *EventUseCase) Create(ctx context.Context, input EventInput) (*entities.Event, error) {
	user, ok := uc.session.CurrentUser()
	if !ok {
		return nil, entities.ErrNoActiveSession
	}
	log := logger.Log(ctx).With(zap.String("method", methodCreateEvent), zap.String("user_id", user.ID))

	event := entities.NewEvent(user.ID, input.Name, input.Date, input.Time,
		input.Duration, input.Location, input.Description)

	all, err := uc.loadAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadEvents, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingEvents, err)
	}
	all = append(all, event)

	if err := uc.saveAll(ctx, all); err != nil {
		log.Error(ctx, msgErrSaveEvents, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingEvents, err)
	}

	uc.mu.Lock()
	uc.mirror = append(uc.mirror, event)
	uc.mu.Unlock()

	log.Info(ctx, msgEventCreated, zap.String("event_id", event.ID))
	return event, nil
}

// Update заменяет все изменяемые поля события с данным id. Принадлежность
// существующей записи не проверяется: userId принудительно становится id
// активного пользователя, updatedAt обновляется, createdAt сохраняется.
// Возвращает entities.ErrEventNotFound, если события нет в коллекции.
func (uc *EventUseCase) Update(ctx context.Context, eventID string, input EventInput) (*entities.Event, error) {
	user, ok := uc.session.CurrentUser()
	if !ok {
		return nil, entities.ErrNoActiveSession
	}
	log := logger.Log(ctx).With(zap.String("method", methodUpdateEvent),
		zap.String("user_id", user.ID), zap.String("event_id", eventID))

	all, err := uc.loadAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadEvents, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingEvents, err)
	}

	idx := -1
	for i, event := range all {
		if event.ID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Debug(ctx, msgEventNotFound)
		return nil, entities.ErrEventNotFound
	}

	updated := &entities.Event{
		ID:          eventID,
		UserID:      user.ID,
		Name:        input.Name,
		Date:        input.Date,
		Time:        input.Time,
		Duration:    input.Duration,
		Location:    input.Location,
		Description: input.Description,
		CreatedAt:   all[idx].CreatedAt,
		UpdatedAt:   time.Now(),
	}
	all[idx] = updated

	if err := uc.saveAll(ctx, all); err != nil {
		log.Error(ctx, msgErrSaveEvents, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingEvents, err)
	}

	uc.mu.Lock()
	for i, event := range uc.mirror {
		if event.ID == eventID {
			uc.mirror[i] = updated
			break
		}
	}
	uc.mu.Unlock()

	log.Info(ctx, msgEventUpdated)
	return updated, nil
}

// Delete удаляет событие из коллекции. Отсутствие события - не ошибка.
func (uc *EventUseCase) Delete(ctx context.Context, eventID string) error {
	user, ok := uc.session.CurrentUser()
	if !ok {
		return entities.ErrNoActiveSession
	}
	log := logger.Log(ctx).With(zap.String("method", methodDeleteEvent),
		zap.String("user_id", user.ID), zap.String("event_id", eventID))

	all, err := uc.loadAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadEvents, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxLoadingEvents, err)
	}

	filtered := all[:0]
	for _, event := range all {
		if event.ID != eventID {
			filtered = append(filtered, event)
		}
	}

	if err := uc.saveAll(ctx, filtered); err != nil {
		log.Error(ctx, msgErrSaveEvents, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxPersistingEvents, err)
	}

	uc.mu.Lock()
	mirror := uc.mirror[:0]
	for _, event := range uc.mirror {
		if event.ID != eventID {
			mirror = append(mirror, event)
		}
	}
	uc.mirror = mirror
	uc.mu.Unlock()

	log.Info(ctx, msgEventDeleted)
	return nil
}

// Get ищет событие в зеркале активного пользователя. События других
// пользователей здесь невидимы, даже если присутствуют в общей коллекции.
func (uc *EventUseCase) Get(eventID string) (*entities.Event, error) {
	if _, ok := uc.session.CurrentUser(); !ok {
		return nil, entities.ErrNoActiveSession
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, event := range uc.mirror {
		if event.ID == eventID {
			return event, nil
		}
	}
	return nil, entities.ErrEventNotFound
}

// Events возвращает снимок зеркала в порядке добавления.
func (uc *EventUseCase) Events() []*entities.Event {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return append([]*entities.Event{}, uc.mirror...)
}

// Upcoming возвращает события с датой не раньше сегодняшней, по возрастанию
// даты. Сравнивается только дата: событие сегодняшнего дня остается
// предстоящим независимо от времени. Сортировка стабильна, порядок
// добавления разрешает равенство дат.
func (uc *EventUseCase) Upcoming() []*entities.Event {
	today := time.Now().Format(entities.DateLayout)

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	result := make([]*entities.Event, 0, len(uc.mirror))
	for _, event := range uc.mirror {
		if event.Date >= today {
			result = append(result, event)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// Past возвращает события с датой раньше сегодняшней, по убыванию даты.
func (uc *EventUseCase) Past() []*entities.Event {
	today := time.Now().Format(entities.DateLayout)

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	result := make([]*entities.Event, 0, len(uc.mirror))
	for _, event := range uc.mirror {
		if event.Date < today {
			result = append(result, event)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}

// handleSessionChange пересчитывает зеркало из хранилища при каждой смене
// активной сессии. Без сессии зеркало пусто, а ошибки загрузки заменяются
// пустой коллекцией.
func (uc *EventUseCase) handleSessionChange(ctx context.Context, user *entities.User) {
	log := logger.Log(ctx)

	if user == nil {
		uc.mu.Lock()
		uc.mirror = []*entities.Event{}
		uc.mu.Unlock()
		log.Debug(ctx, msgMirrorReset, zap.Int("events", 0))
		return
	}

	all, err := uc.loadAll(ctx)
	if err != nil {
		log.Warn(ctx, msgErrLoadEvents, zap.Error(err))
		all = []*entities.Event{}
	}

	mirror := make([]*entities.Event, 0, len(all))
	for _, event := range all {
		if event.UserID == user.ID {
			mirror = append(mirror, event)
		}
	}

	uc.mu.Lock()
	uc.mirror = mirror
	uc.mu.Unlock()

	log.Debug(ctx, msgMirrorReset, zap.String("user_id", user.ID), zap.Int("events", len(mirror)))
}

// loadAll читает полную коллекцию событий; отсутствующие или поврежденные
// данные заменяются пустой коллекцией.
func (uc *EventUseCase) loadAll(ctx context.Context) ([]*entities.Event, error) {
	raw, err := uc.store.Load(ctx, storageKeyEvents)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []*entities.Event{}, nil
	}

	var events []*entities.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		logger.Log(ctx).Warn(ctx, msgCorruptState, zap.String("key", storageKeyEvents))
		return []*entities.Event{}, nil
	}
	return events, nil
}

func (uc *EventUseCase) saveAll(ctx context.Context, events []*entities.Event) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return uc.store.Save(ctx, storageKeyEvents, raw)
}
