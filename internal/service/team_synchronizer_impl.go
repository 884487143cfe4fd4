package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/format"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type teamSynchronizer struct {
	resolver GroupResolver
	registry GroupRegistry
	board    Board
	limits   config.Limits
	renderer format.Renderer
	settings SettingsProvider
	logger   *zap.Logger

	mu       sync.RWMutex
	bindings map[uuid.UUID]domain.Binding
}

func NewTeamSynchronizer(
	resolver GroupResolver,
	registry GroupRegistry,
	board Board,
	limits config.Limits,
	renderer format.Renderer,
	settings SettingsProvider,
	logger *zap.Logger,
) TeamSynchronizer {
	return &teamSynchronizer{
		resolver: resolver,
		registry: registry,
		board:    board,
		limits:   limits,
		renderer: renderer,
		settings: settings,
		logger:   logger,
		bindings: make(map[uuid.UUID]domain.Binding),
	}
}

func (s *teamSynchronizer) Synchronize(ctx context.Context, user *domain.User) error {
	group, ok := s.groupFor(ctx, user)
	if !ok {
		return nil
	}

	next := domain.Binding{
		UserID:     user.ID,
		Entry:      entryName(user),
		Group:      group.Name,
		Identifier: format.TeamIdentifier(group.Priority, user.IDTail(), s.limits.Identifier),
	}
	next.Prefix, next.Suffix = s.decorate(group, user)

	s.mu.RLock()
	prev, had := s.bindings[user.ID]
	s.mu.RUnlock()

	if had && prev == next {
		if _, exists := s.board.Team(next.Identifier); exists {
			return nil
		}
	}

	if had && (prev.Identifier != next.Identifier || prev.Entry != next.Entry) {
		s.leave(prev.Identifier, prev.Entry)
	}

	if _, exists := s.board.Team(next.Identifier); !exists {
		if err := s.board.Register(next.Identifier); err != nil {
			return err
		}
	}
	if err := s.board.SetText(next.Identifier, next.Prefix, next.Suffix); err != nil {
		return err
	}
	if err := s.board.AddEntry(next.Identifier, next.Entry); err != nil {
		return err
	}

	s.mu.Lock()
	s.bindings[user.ID] = next
	s.mu.Unlock()

	s.logger.Debug("user synchronized",
		zap.String("user", next.Entry),
		zap.String("group", next.Group),
		zap.String("team", next.Identifier))
	return nil
}

// RemoveBinding идемпотентен: неизвестный пользователь не является ошибкой
func (s *teamSynchronizer) RemoveBinding(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	prev, had := s.bindings[user.ID]
	delete(s.bindings, user.ID)
	s.mu.Unlock()

	if !had {
		return nil
	}
	s.leave(prev.Identifier, prev.Entry)
	return nil
}

func (s *teamSynchronizer) SynchronizeAll(ctx context.Context, users []*domain.User) error {
	var errs []error
	for _, u := range users {
		if err := s.Synchronize(ctx, u); err != nil {
			s.logger.Error("failed to synchronize user", zap.String("user", u.Name), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Cleanup удаляет все привязки перед остановкой, чтобы команды не пережили рестарт
func (s *teamSynchronizer) Cleanup(ctx context.Context) {
	for _, b := range s.Bindings() {
		_ = s.RemoveBinding(ctx, &domain.User{ID: b.UserID})
	}
	s.logger.Info("team bindings cleaned up")
}

func (s *teamSynchronizer) Bindings() []domain.Binding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Binding, 0, len(s.bindings))
	for _, b := range s.bindings {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Identifier < result[j].Identifier
	})
	return result
}

func (s *teamSynchronizer) groupFor(ctx context.Context, user *domain.User) (domain.Group, bool) {
	name := s.resolver.ResolveGroup(ctx, user)
	if group, ok := s.registry.Get(name); ok {
		return group, true
	}
	return s.registry.Get(domain.DefaultGroupName)
}

// leave убирает запись из команды и удаляет опустевшую команду
func (s *teamSynchronizer) leave(identifier, entry string) {
	remaining, err := s.board.RemoveEntry(identifier, entry)
	if err != nil {
		return
	}
	if remaining == 0 {
		s.board.Unregister(identifier)
	}
}

// decorate считает текст префикса и суффикса команды в пределах лимитов протокола.
// Цвет ника добавляется после пробела, чтобы он касался самого имени.
func (s *teamSynchronizer) decorate(group domain.Group, user *domain.User) (string, string) {
	tab := s.settings.Current().Formats.Tab

	values := templateValues(group, user)
	before, after := group.Prefix, group.Suffix
	if tab.Enabled {
		var ok bool
		before, after, ok = format.SplitAtName(tab.Format)
		if !ok {
			after = ""
		}
		before = format.Substitute(before, values)
		after = format.Substitute(after, values)
	}

	color := s.renderer.Render(format.ColorTag(group.NameColor))
	budget := s.limits.Prefix - format.Length(color)
	if budget < 0 {
		budget = 0
		color = format.Truncate(color, s.limits.Prefix)
	}

	body := s.renderer.Render(before)
	var prefix string
	if tab.SpaceBeforeName && strings.TrimSpace(body) != "" {
		prefix = format.WithTrailingSpace(body, budget)
	} else {
		prefix = format.Truncate(body, budget)
	}
	s.reportLoss(user, "prefix", body, prefix)
	prefix += color

	renderedSuffix := s.renderer.Render(after)
	suffix := format.Truncate(renderedSuffix, s.limits.Suffix)
	s.reportLoss(user, "suffix", renderedSuffix, suffix)

	return prefix, suffix
}

func (s *teamSynchronizer) reportLoss(user *domain.User, field, full, fitted string) {
	if format.Length(strings.TrimRight(full, " ")) <= format.Length(strings.TrimRight(fitted, " ")) {
		return
	}
	s.logger.Debug("team text truncated",
		zap.String("user", user.Name),
		zap.String("field", field),
		zap.String("text", full),
		zap.Error(domain.ErrTruncationLoss))
}

func templateValues(group domain.Group, user *domain.User) format.Values {
	display := user.DisplayName
	if display == "" {
		display = user.Name
	}
	return format.Values{
		format.PlaceholderPrefix:      group.Prefix,
		format.PlaceholderSuffix:      group.Suffix,
		format.PlaceholderPlayer:      user.Name,
		format.PlaceholderDisplayName: display,
	}
}

func entryName(user *domain.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.ID.String()
}
