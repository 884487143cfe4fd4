package service

import (
	"context"

	"github.com/bagdasarian/simpleprefix/internal/domain"
)

// GroupRegistry владеет записями групп. Мутации выполняются только в контексте executor.
type GroupRegistry interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	Get(name string) (domain.Group, bool)
	All() []domain.Group
	Upsert(ctx context.Context, group domain.Group) error
	Create(ctx context.Context, group domain.Group) error
	Remove(ctx context.Context, name string) error
	SyncFromBackend(ctx context.Context, name string) error
	CheckAndReload(ctx context.Context) (bool, error)
}
