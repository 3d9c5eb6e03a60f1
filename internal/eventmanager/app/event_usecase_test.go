package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"eventmanager/internal/eventmanager/adapters/storage/file"
	"eventmanager/internal/eventmanager/app"
	"eventmanager/internal/eventmanager/domain/entities"
)

func newTestUseCases(t *testing.T) (*app.AuthUseCase, *app.EventUseCase, *file.Store) {
	t.Helper()

	store, err := file.New(t.TempDir())
	require.NoError(t, err)

	auth := app.NewAuthUseCase(store)
	events := app.NewEventUseCase(store, auth)
	return auth, events, store
}

// pinNow замораживает time.Now на время теста.
func pinNow(t *testing.T, fixed time.Time) {
	t.Helper()

	patch, err := mpatch.PatchMethod(time.Now, func() time.Time { return fixed })
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, patch.Unpatch())
	})
}

func sampleInput(name, date string) app.EventInput {
	return app.EventInput{
		Name:     name,
		Date:     date,
		Time:     "10:00",
		Duration: entities.DurationTwoHours,
		Location: "Grand Hall",
	}
}

func TestCreateRequiresSession(t *testing.T) {
	ctx := context.Background()
	_, events, _ := newTestUseCases(t)

	_, err := events.Create(ctx, sampleInput("Orphan", "2026-01-01"))
	require.ErrorIs(t, err, entities.ErrNoActiveSession)

	assert.Empty(t, events.Upcoming())
	assert.Empty(t, events.Past())
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "ivan@example.com", "pw")
	require.NoError(t, err)

	first, err := events.Create(ctx, sampleInput("First", "2026-03-01"))
	require.NoError(t, err)
	second, err := events.Create(ctx, sampleInput("Second", "2026-03-01"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)

	_, err := auth.Login(ctx, "usera@example.com", "pw")
	require.NoError(t, err)
	created, err := events.Create(ctx, sampleInput("A's event", "2099-01-01"))
	require.NoError(t, err)

	// Смена сессии пересчитывает зеркало; события A невидимы для B.
	_, err = auth.Login(ctx, "userb@example.com", "pw")
	require.NoError(t, err)

	assert.Empty(t, events.Events(), "user B must not see user A's events")
	_, err = events.Get(created.ID)
	require.ErrorIs(t, err, entities.ErrEventNotFound,
		"a foreign id is invisible in the session-scoped view")

	// Возврат к A восстанавливает его события из хранилища.
	_, err = auth.Login(ctx, "usera2@example.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, events.Events(), "a fresh login is a fresh identity with no events")
}

func TestMirrorSurvivesSessionReload(t *testing.T) {
	ctx := context.Background()
	store, err := file.New(t.TempDir())
	require.NoError(t, err)

	auth := app.NewAuthUseCase(store)
	events := app.NewEventUseCase(store, auth)

	user, err := auth.Login(ctx, "judy@example.com", "pw")
	require.NoError(t, err)
	created, err := events.Create(ctx, sampleInput("Persisted", "2099-05-01"))
	require.NoError(t, err)

	// Новый процесс: восстановление сессии подхватывает события владельца.
	auth2 := app.NewAuthUseCase(store)
	events2 := app.NewEventUseCase(store, auth2)
	require.NoError(t, auth2.RestoreSession(ctx))

	current, ok := auth2.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)

	got, err := events2.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
}

func TestPartitionByDate(t *testing.T) {
	pinNow(t, time.Date(2025, 6, 15, 13, 45, 0, 0, time.Local))

	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "kate@example.com", "pw")
	require.NoError(t, err)

	dates := []string{"2025-01-01", "2025-06-01", "2025-12-01"}
	for _, d := range dates {
		_, err := events.Create(ctx, sampleInput("evt "+d, d))
		require.NoError(t, err)
	}

	upcoming := events.Upcoming()
	past := events.Past()

	require.Len(t, upcoming, 1)
	assert.Equal(t, "2025-12-01", upcoming[0].Date)

	require.Len(t, past, 2)
	assert.Equal(t, "2025-06-01", past[0].Date, "past is ordered most recent first")
	assert.Equal(t, "2025-01-01", past[1].Date)

	// Полнота и непересекаемость разбиения.
	assert.Equal(t, len(dates), len(upcoming)+len(past))
	seen := map[string]bool{}
	for _, event := range append(append([]*entities.Event{}, upcoming...), past...) {
		assert.False(t, seen[event.ID], "an event may appear in exactly one partition")
		seen[event.ID] = true
	}
}

func TestTodayIsUpcoming(t *testing.T) {
	// Сравнивается только дата: событие сегодняшнего дня с уже прошедшим
	// временем остается предстоящим.
	pinNow(t, time.Date(2025, 6, 15, 23, 50, 0, 0, time.Local))

	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "leo@example.com", "pw")
	require.NoError(t, err)

	input := sampleInput("Late today", "2025-06-15")
	input.Time = "08:00"
	_, err = events.Create(ctx, input)
	require.NoError(t, err)

	require.Len(t, events.Upcoming(), 1)
	assert.Empty(t, events.Past())
}

func TestUpcomingAscendingStable(t *testing.T) {
	pinNow(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local))

	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "mia@example.com", "pw")
	require.NoError(t, err)

	// Два события с одной датой: стабильная сортировка сохраняет порядок
	// добавления.
	firstSame, err := events.Create(ctx, sampleInput("first same-day", "2025-07-01"))
	require.NoError(t, err)
	_, err = events.Create(ctx, sampleInput("later", "2025-09-01"))
	require.NoError(t, err)
	secondSame, err := events.Create(ctx, sampleInput("second same-day", "2025-07-01"))
	require.NoError(t, err)

	upcoming := events.Upcoming()
	require.Len(t, upcoming, 3)
	assert.Equal(t, firstSame.ID, upcoming[0].ID)
	assert.Equal(t, secondSame.ID, upcoming[1].ID)
	assert.Equal(t, "2025-09-01", upcoming[2].Date)
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "nina@example.com", "pw")
	require.NoError(t, err)

	existing, err := events.Create(ctx, sampleInput("Existing", "2026-01-01"))
	require.NoError(t, err)

	_, err = events.Update(ctx, "no-such-id", sampleInput("Phantom", "2026-02-02"))
	require.ErrorIs(t, err, entities.ErrEventNotFound)

	all := events.Events()
	require.Len(t, all, 1, "failed update must not create a phantom entry")
	assert.Equal(t, existing.Name, all[0].Name)
}

func TestUpdateReplacesFieldsAndKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "olga@example.com", "pw")
	require.NoError(t, err)

	created, err := events.Create(ctx, sampleInput("Before", "2026-01-01"))
	require.NoError(t, err)

	input := app.EventInput{
		Name:        "After",
		Date:        "2026-02-02",
		Time:        "18:30",
		Duration:    entities.Duration("3d"),
		Location:    "Rooftop",
		Description: "changed",
	}
	updated, err := events.Update(ctx, created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "2026-02-02", updated.Date)
	assert.Equal(t, entities.Duration("3d"), updated.Duration)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "creation timestamp is immutable")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	got, err := events.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name, "mirror must reflect the update without a reload")
}

func TestUpdateAllowsCrossUserTakeover(t *testing.T) {
	// Сохраненное поведение: Update не проверяет владельца существующей
	// записи, поэтому другой пользователь, знающий id, перехватывает событие.
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)

	_, err := auth.Login(ctx, "owner@example.com", "pw")
	require.NoError(t, err)
	created, err := events.Create(ctx, sampleInput("Owned", "2099-01-01"))
	require.NoError(t, err)

	attacker, err := auth.Login(ctx, "intruder@example.com", "pw")
	require.NoError(t, err)

	taken, err := events.Update(ctx, created.ID, sampleInput("Taken over", "2099-02-02"))
	require.NoError(t, err)
	assert.Equal(t, attacker.ID, taken.UserID, "ownership is reassigned to the caller")

	// Зеркало захватчика не пополняется до пересчета: запись не была в нем.
	_, err = events.Get(created.ID)
	require.ErrorIs(t, err, entities.ErrEventNotFound)
}

func TestDeleteIsNoOpOnAbsentID(t *testing.T) {
	ctx := context.Background()
	auth, events, store := newTestUseCases(t)
	_, err := auth.Login(ctx, "pete@example.com", "pw")
	require.NoError(t, err)

	_, err = events.Create(ctx, sampleInput("Keep me", "2026-01-01"))
	require.NoError(t, err)

	before, err := store.Load(ctx, "event_manager_events")
	require.NoError(t, err)

	require.NoError(t, events.Delete(ctx, "no-such-id"))

	after, err := store.Load(ctx, "event_manager_events")
	require.NoError(t, err)
	assert.Equal(t, before, after, "deleting an absent id must leave the collection identical")
}

func TestDeleteRemovesEvent(t *testing.T) {
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)
	_, err := auth.Login(ctx, "rita@example.com", "pw")
	require.NoError(t, err)

	created, err := events.Create(ctx, sampleInput("Doomed", "2026-01-01"))
	require.NoError(t, err)

	require.NoError(t, events.Delete(ctx, created.ID))

	_, err = events.Get(created.ID)
	require.ErrorIs(t, err, entities.ErrEventNotFound)
	assert.Empty(t, events.Events())
}

func TestCorruptEventCollectionIsTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	store, err := file.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "event_manager_events", []byte("[oops")))

	auth := app.NewAuthUseCase(store)
	events := app.NewEventUseCase(store, auth)
	_, err = auth.Login(ctx, "sam@example.com", "pw")
	require.NoError(t, err)

	assert.Empty(t, events.Events())

	_, err = events.Create(ctx, sampleInput("Fresh start", "2026-01-01"))
	require.NoError(t, err)
	assert.Len(t, events.Events(), 1)
}

func TestLogoutEmptiesView(t *testing.T) {
	ctx := context.Background()
	auth, events, _ := newTestUseCases(t)

	_, err := auth.Login(ctx, "tina@example.com", "pw")
	require.NoError(t, err)
	_, err = events.Create(ctx, sampleInput("Visible", "2099-01-01"))
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))

	assert.Empty(t, events.Events())
	assert.Empty(t, events.Upcoming())
	_, err = events.Create(ctx, sampleInput("Denied", "2099-01-01"))
	require.ErrorIs(t, err, entities.ErrNoActiveSession)
}
