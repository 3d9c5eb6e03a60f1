package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/internal/eventmanager/domain/entities"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    entities.Duration
		wantErr bool
	}{
		{name: "preset one hour", input: "1h", want: entities.DurationOneHour},
		{name: "preset one day", input: "1d", want: entities.DurationOneDay},
		{name: "custom hours", input: "12h", want: entities.Duration("12h")},
		{name: "custom days", input: "3d", want: entities.Duration("3d")},
		{name: "zero value", input: "0h", wantErr: true},
		{name: "missing unit", input: "5", wantErr: true},
		{name: "unknown unit", input: "5w", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-2h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entities.ParseDuration(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, entities.ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationIsPreset(t *testing.T) {
	assert.True(t, entities.DurationFiveHours.IsPreset())
	assert.False(t, entities.Duration("12h").IsPreset())
}

func TestNewEvent(t *testing.T) {
	event := entities.NewEvent("user-1", "Team standup", "2026-09-01", "09:30",
		entities.DurationOneHour, "Main Hall", "weekly sync")

	require.NotEmpty(t, event.ID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "Team standup", event.Name)
	assert.Equal(t, event.CreatedAt, event.UpdatedAt, "creation and update timestamps must match for a new event")

	other := entities.NewEvent("user-1", "Another", "2026-09-01", "10:00",
		entities.DurationOneHour, "Main Hall", "")
	assert.NotEqual(t, event.ID, other.ID, "consecutive events must get distinct ids")
}

func TestValidateDateAndTime(t *testing.T) {
	require.NoError(t, entities.ValidateDate("2026-02-28"))
	require.ErrorIs(t, entities.ValidateDate("28-02-2026"), entities.ErrInvalidDate)
	require.NoError(t, entities.ValidateTime("23:59"))
	require.ErrorIs(t, entities.ValidateTime("9:99"), entities.ErrInvalidTime)
}

func TestUserWithoutPassword(t *testing.T) {
	user := entities.NewUser("alice@example.com", "alice", "alice", "secret")

	stripped := user.WithoutPassword()

	assert.Empty(t, stripped.Password)
	assert.Equal(t, user.ID, stripped.ID)
	assert.Equal(t, "secret", user.Password, "original registry record keeps the password")
}
