package repository

import (
	"context"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
)

// PermissionBackend - внешний бэкенд прав. Все операции идемпотентны;
// отсутствие группы возвращается как false или nil, а не как ошибка.
type PermissionBackend interface {
	GetPrimaryGroup(ctx context.Context, userID uuid.UUID) (string, error)
	SetPrimaryGroup(ctx context.Context, userID uuid.UUID, group string) error
	SetPrefix(ctx context.Context, group string, text string, priority int) (bool, error)
	SetSuffix(ctx context.Context, group string, text string, priority int) (bool, error)
	GroupExists(ctx context.Context, group string) (bool, error)
	CreateGroup(ctx context.Context, group string) (bool, error)
	DeleteGroup(ctx context.Context, group string) (bool, error)
	GetGroup(ctx context.Context, group string) (*domain.BackendGroup, error)
	ListGroups(ctx context.Context) ([]string, error)
}
