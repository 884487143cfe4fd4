package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/format"
)

type ChatFormatter interface {
	// FormatChat возвращает готовую строку чата; ok=false, если формат чата выключен
	FormatChat(ctx context.Context, user *domain.User, message string) (line string, ok bool)
	FormatListName(ctx context.Context, user *domain.User) string
}

type chatFormatter struct {
	resolver GroupResolver
	registry GroupRegistry
	renderer format.Renderer
	settings SettingsProvider
}

func NewChatFormatter(resolver GroupResolver, registry GroupRegistry, renderer format.Renderer, settings SettingsProvider) ChatFormatter {
	return &chatFormatter{
		resolver: resolver,
		registry: registry,
		renderer: renderer,
		settings: settings,
	}
}

// FormatChat делит шаблон по {message} до подстановки: части рендерятся
// отдельно, а сообщение вставляется между ними как есть. Текст из префикса
// или имени никогда не становится местом для сообщения.
func (f *chatFormatter) FormatChat(ctx context.Context, user *domain.User, message string) (string, bool) {
	chat := f.settings.Current().Formats.Chat
	if !chat.Enabled {
		return "", false
	}

	values := f.values(ctx, user)
	segments := strings.Split(chat.Format, format.PlaceholderMessage)
	for i, segment := range segments {
		segments[i] = f.renderer.Render(format.Substitute(segment, values))
	}
	return strings.Join(segments, message), true
}

// FormatListName - имя в списке игроков по формату tab без ограничения длины
func (f *chatFormatter) FormatListName(ctx context.Context, user *domain.User) string {
	tab := f.settings.Current().Formats.Tab
	template := format.PlaceholderPrefix + format.PlaceholderPlayer + format.PlaceholderSuffix
	if tab.Enabled {
		template = tab.Format
	}
	return f.renderer.Render(format.Substitute(template, f.values(ctx, user)))
}

func (f *chatFormatter) values(ctx context.Context, user *domain.User) format.Values {
	group, ok := f.registry.Get(f.resolver.ResolveGroup(ctx, user))
	if !ok {
		group, _ = f.registry.Get(domain.DefaultGroupName)
	}

	values := templateValues(group, user)
	color := format.ColorTag(group.NameColor)
	values[format.PlaceholderPlayer] = color + values[format.PlaceholderPlayer]
	values[format.PlaceholderDisplayName] = color + values[format.PlaceholderDisplayName]
	return values
}
