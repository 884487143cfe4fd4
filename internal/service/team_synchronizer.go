package service

import (
	"context"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/scoreboard"
)

// TeamSynchronizer превращает группу пользователя в состояние команды на табло.
// Все методы вызываются из контекста executor.
type TeamSynchronizer interface {
	Synchronize(ctx context.Context, user *domain.User) error
	RemoveBinding(ctx context.Context, user *domain.User) error
	SynchronizeAll(ctx context.Context, users []*domain.User) error
	Cleanup(ctx context.Context)
	Bindings() []domain.Binding
}

// Board - общее пространство команд, не потокобезопасно
type Board interface {
	Team(name string) (scoreboard.Team, bool)
	Register(name string) error
	Unregister(name string)
	SetText(name, prefix, suffix string) error
	AddEntry(name, entry string) error
	RemoveEntry(name, entry string) (int, error)
}
