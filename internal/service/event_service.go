package service

import (
	"context"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
)

// EventService принимает события хоста и планирует пересинхронизацию в контексте executor
type EventService interface {
	Join(ctx context.Context, user domain.User) error
	Quit(ctx context.Context, userID uuid.UUID) error
	PermissionsChanged(ctx context.Context, userID uuid.UUID, permissions []string) error
	BackendGroupChanged(ctx context.Context, group string) error
	ResyncAll(ctx context.Context) error
}

// Scheduler - очередь единственного контекста исполнения
type Scheduler interface {
	Submit(fn func()) bool
	SubmitAfter(d time.Duration, fn func())
}
