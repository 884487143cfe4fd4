package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormatService_UpdateTab(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "1.20.4", domain.Group{Name: "vip", Prefix: "[VIP]", Suffix: "*", Priority: 10})
	sessions := NewSessions()
	alice := sessions.Add(*member("Alice", "vip"))
	require.NoError(t, f.synchronizer.Synchronize(ctx, alice))
	formats := NewFormatService(f.settings, sessions, f.synchronizer, zap.NewNop())

	layout := "{prefix} | {player} | {suffix}"
	tab, err := formats.UpdateTab(ctx, FormatUpdate{Format: &layout})

	require.NoError(t, err)
	assert.Equal(t, layout, tab.Format)
	assert.True(t, tab.Enabled)
	team, _ := f.board.Team(teamName(10, alice))
	assert.Equal(t, "[VIP] | ", team.Prefix)
	assert.Equal(t, " | *", team.Suffix)
}

func TestFormatService_UpdateChat(t *testing.T) {
	ctx := context.Background()

	t.Run("выключение чата", func(t *testing.T) {
		settings := newStaticSettings()
		formats := NewFormatService(settings, NewSessions(), nil, zap.NewNop())
		disabled := false

		chat, err := formats.UpdateChat(ctx, FormatUpdate{Enabled: &disabled})

		require.NoError(t, err)
		assert.False(t, chat.Enabled)
		assert.Equal(t, "{prefix}{player}{suffix}: {message}", chat.Format)
		assert.Equal(t, 1, settings.updates)
	})

	t.Run("ошибка записи", func(t *testing.T) {
		settings := newStaticSettings()
		settings.updateErr = errors.New("read-only file system")
		formats := NewFormatService(settings, NewSessions(), nil, zap.NewNop())
		layout := "{player} > {message}"

		_, err := formats.UpdateChat(ctx, FormatUpdate{Format: &layout})

		assert.True(t, errors.Is(err, domain.ErrIOFailure))
	})
}
