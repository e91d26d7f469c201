package preferences

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashiroii/tiyin-server/internal/logger"
)

func newTestService() *Service {
	return NewService(nil, logger.New(logger.Config{Level: slog.LevelError}))
}

func TestDefaults(t *testing.T) {
	prefs := Defaults()

	assert.Equal(t, "System", prefs.Theme)
	assert.Equal(t, "", prefs.Language)
	assert.Equal(t, "KZT", prefs.Currency)
	assert.Equal(t, "Default", prefs.CardView)
	assert.True(t, prefs.ShowSpendingCard)
	assert.True(t, prefs.NotificationsEnabled)
	assert.True(t, prefs.PushRemindersEnabled)
}

func TestGetWithoutStoreReturnsDefaults(t *testing.T) {
	s := newTestService()

	prefs := s.Get(context.Background(), "user-1")
	assert.Equal(t, Defaults(), prefs)
}

func TestPatchAppliesPartialUpdate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	currency := "USD"
	enabled := false
	patched, err := s.Patch(ctx, "user-1", PatchRequest{
		Currency:             &currency,
		NotificationsEnabled: &enabled,
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", patched.Currency)
	assert.False(t, patched.NotificationsEnabled)
	// Untouched fields keep their defaults
	assert.Equal(t, "System", patched.Theme)
	assert.True(t, patched.PushRemindersEnabled)

	// The patch sticks for later reads
	assert.Equal(t, patched, s.Get(ctx, "user-1"))
}

func TestPatchEmptyIsNoop(t *testing.T) {
	s := newTestService()

	patched, err := s.Patch(context.Background(), "user-1", PatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), patched)
}
