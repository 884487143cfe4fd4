package service

import (
	"context"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"go.uber.org/zap"
)

// FormatUpdate - изменение формата; nil поля не трогаются
type FormatUpdate struct {
	Enabled         *bool
	Format          *string
	SpaceBeforeName *bool
}

// FormatService меняет форматы чата и tab во время работы и сохраняет config.yml
type FormatService interface {
	UpdateChat(ctx context.Context, update FormatUpdate) (config.ChatFormat, error)
	UpdateTab(ctx context.Context, update FormatUpdate) (config.TabFormat, error)
}

// SettingsEditor - хранилище config.yml с записью на диск
type SettingsEditor interface {
	SettingsProvider
	Update(fn func(*config.Settings)) error
}

type formatService struct {
	settings     SettingsEditor
	sessions     *Sessions
	synchronizer TeamSynchronizer
	logger       *zap.Logger
}

func NewFormatService(settings SettingsEditor, sessions *Sessions, synchronizer TeamSynchronizer, logger *zap.Logger) FormatService {
	return &formatService{
		settings:     settings,
		sessions:     sessions,
		synchronizer: synchronizer,
		logger:       logger,
	}
}

func (s *formatService) UpdateChat(_ context.Context, update FormatUpdate) (config.ChatFormat, error) {
	err := s.settings.Update(func(st *config.Settings) {
		if update.Enabled != nil {
			st.Formats.Chat.Enabled = *update.Enabled
		}
		if update.Format != nil {
			st.Formats.Chat.Format = *update.Format
		}
	})
	if err != nil {
		s.logger.Error("failed to save chat format", zap.Error(err))
		return config.ChatFormat{}, domain.NewIOFailure("save settings", err)
	}
	return s.settings.Current().Formats.Chat, nil
}

// UpdateTab сохраняет формат и сразу пересинхронизирует всех онлайн.
// Вызывается из контекста executor.
func (s *formatService) UpdateTab(ctx context.Context, update FormatUpdate) (config.TabFormat, error) {
	err := s.settings.Update(func(st *config.Settings) {
		if update.Enabled != nil {
			st.Formats.Tab.Enabled = *update.Enabled
		}
		if update.Format != nil {
			st.Formats.Tab.Format = *update.Format
		}
		if update.SpaceBeforeName != nil {
			st.Formats.Tab.SpaceBeforeName = *update.SpaceBeforeName
		}
	})
	if err != nil {
		s.logger.Error("failed to save tab format", zap.Error(err))
		return config.TabFormat{}, domain.NewIOFailure("save settings", err)
	}

	if err := s.synchronizer.SynchronizeAll(ctx, s.sessions.Online()); err != nil {
		s.logger.Warn("resync after tab format change failed", zap.Error(err))
	}
	return s.settings.Current().Formats.Tab, nil
}
