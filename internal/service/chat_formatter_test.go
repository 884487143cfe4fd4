package service

import (
	"context"
	"testing"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/format"
	"github.com/stretchr/testify/assert"
)

func newChatFormatter(t *testing.T, groups ...domain.Group) (ChatFormatter, *staticSettings) {
	settings := newStaticSettings()
	registry, _ := newLocalRegistry(t, newMemoryStore(groups...))
	return NewChatFormatter(NewLocalResolver(registry, settings), registry, format.NewLegacyRenderer(false), settings), settings
}

func TestChatFormatter_FormatChat(t *testing.T) {
	ctx := context.Background()

	t.Run("строка чата с префиксом и цветом ника", func(t *testing.T) {
		chat, _ := newChatFormatter(t, domain.Group{Name: "admin", Prefix: "<red>[Admin] ", Priority: 1, NameColor: "gold"})

		line, ok := chat.FormatChat(ctx, member("Alice", "admin"), "hi")

		assert.True(t, ok)
		assert.Equal(t, "§c[Admin] §6Alice: hi", line)
	})

	t.Run("разметка в сообщении не рендерится", func(t *testing.T) {
		chat, _ := newChatFormatter(t)

		line, _ := chat.FormatChat(ctx, member("Bob"), "<red>{prefix} &a")

		assert.Equal(t, "Bob: <red>{prefix} &a", line)
	})

	t.Run("плейсхолдер в имени и префиксе остается текстом", func(t *testing.T) {
		chat, _ := newChatFormatter(t, domain.Group{Name: "vip", Prefix: "[{message}] ", Priority: 10})
		user := member("Alice", "vip")
		user.DisplayName = "{message}"

		line, ok := chat.FormatChat(ctx, user, "hi")

		assert.True(t, ok)
		assert.Equal(t, "[{message}] Alice: hi", line)
	})

	t.Run("сообщение вставляется в каждое место шаблона", func(t *testing.T) {
		chat, settings := newChatFormatter(t)
		settings.current.Formats.Chat.Format = "<gray>{displayname}<white> > {message} ({message})"
		user := member("Bob")
		user.DisplayName = "x{message}"

		line, _ := chat.FormatChat(ctx, user, "<red>hi")

		assert.Equal(t, "§7x{message}§f > <red>hi (<red>hi)", line)
	})

	t.Run("формат выключен", func(t *testing.T) {
		chat, settings := newChatFormatter(t)
		settings.current.Formats.Chat.Enabled = false

		_, ok := chat.FormatChat(ctx, member("Bob"), "hi")

		assert.False(t, ok)
	})
}

func TestChatFormatter_FormatListName(t *testing.T) {
	ctx := context.Background()
	chat, settings := newChatFormatter(t, domain.Group{Name: "vip", Prefix: "[VIP] ", Suffix: " *", Priority: 10})
	alice := member("Alice", "vip")
	alice.DisplayName = "Ally"

	assert.Equal(t, "[VIP] Alice *", chat.FormatListName(ctx, alice))

	settings.current.Formats.Tab.Format = "{prefix}{displayname}"
	assert.Equal(t, "[VIP] Ally", chat.FormatListName(ctx, alice))

	settings.current.Formats.Tab.Enabled = false
	assert.Equal(t, "[VIP] Alice *", chat.FormatListName(ctx, alice))
}
