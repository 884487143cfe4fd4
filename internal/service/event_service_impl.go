package service

import (
	"context"
	"errors"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSchedulerStopped - executor уже остановлен, событие не будет обработано
var ErrSchedulerStopped = errors.New("scheduler stopped")

type eventService struct {
	sessions     *Sessions
	registry     GroupRegistry
	resolver     GroupResolver
	synchronizer TeamSynchronizer
	scheduler    Scheduler
	settings     SettingsProvider
	logger       *zap.Logger
}

func NewEventService(
	sessions *Sessions,
	registry GroupRegistry,
	resolver GroupResolver,
	synchronizer TeamSynchronizer,
	scheduler Scheduler,
	settings SettingsProvider,
	logger *zap.Logger,
) EventService {
	return &eventService{
		sessions:     sessions,
		registry:     registry,
		resolver:     resolver,
		synchronizer: synchronizer,
		scheduler:    scheduler,
		settings:     settings,
		logger:       logger,
	}
}

// Join регистрирует сессию и откладывает синхронизацию на join-delay
func (s *eventService) Join(ctx context.Context, user domain.User) error {
	if user.ID == uuid.Nil {
		return domain.NewBadRequestError("user id is required")
	}

	s.sessions.Add(user)
	s.scheduler.SubmitAfter(s.settings.Current().General.JoinDelay, func() {
		s.syncOnline(context.WithoutCancel(ctx), user.ID)
	})
	return nil
}

func (s *eventService) Quit(ctx context.Context, userID uuid.UUID) error {
	user, ok := s.sessions.Remove(userID)
	if !ok {
		user = &domain.User{ID: userID}
	}

	bg := context.WithoutCancel(ctx)
	if !s.scheduler.Submit(func() {
		_ = s.synchronizer.RemoveBinding(bg, user)
	}) {
		return ErrSchedulerStopped
	}
	return nil
}

func (s *eventService) PermissionsChanged(ctx context.Context, userID uuid.UUID, permissions []string) error {
	if !s.sessions.SetPermissions(userID, permissions) {
		return domain.NewNotFoundError("online user " + userID.String())
	}

	s.scheduler.SubmitAfter(s.settings.Current().General.PermissionDelay, func() {
		s.syncOnline(context.WithoutCancel(ctx), userID)
	})
	return nil
}

// BackendGroupChanged переносит группу из бэкенда в файл и обновляет ее участников
func (s *eventService) BackendGroupChanged(ctx context.Context, group string) error {
	key := domain.GroupKey(group)
	if key == "" {
		return domain.NewBadRequestError("group name is required")
	}

	bg := context.WithoutCancel(ctx)
	s.scheduler.SubmitAfter(s.settings.Current().General.GroupDelay, func() {
		if err := s.registry.SyncFromBackend(bg, key); err != nil {
			s.logger.Warn("failed to sync group from backend", zap.String("group", key), zap.Error(err))
		}

		bound := make(map[uuid.UUID]string)
		for _, b := range s.synchronizer.Bindings() {
			bound[b.UserID] = b.Group
		}

		for _, u := range s.sessions.Online() {
			if bound[u.ID] != key && s.resolver.ResolveGroup(bg, u) != key {
				continue
			}
			if err := s.synchronizer.Synchronize(bg, u); err != nil {
				s.logger.Error("failed to synchronize user", zap.String("user", u.Name), zap.Error(err))
			}
		}
	})
	return nil
}

func (s *eventService) ResyncAll(ctx context.Context) error {
	bg := context.WithoutCancel(ctx)
	if !s.scheduler.Submit(func() {
		_ = s.synchronizer.SynchronizeAll(bg, s.sessions.Online())
	}) {
		return ErrSchedulerStopped
	}
	return nil
}

// syncOnline синхронизирует пользователя, если он все еще онлайн
func (s *eventService) syncOnline(ctx context.Context, userID uuid.UUID) {
	user, ok := s.sessions.Get(userID)
	if !ok {
		return
	}
	if err := s.synchronizer.Synchronize(ctx, user); err != nil {
		s.logger.Error("failed to synchronize user", zap.String("user", user.Name), zap.Error(err))
	}
}
