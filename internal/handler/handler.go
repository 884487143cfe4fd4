package handler

import (
	"context"

	"github.com/bagdasarian/simpleprefix/internal/scoreboard"
	"github.com/bagdasarian/simpleprefix/internal/service"
)

// Executor выполняет функцию в едином контексте, которому принадлежит табло
type Executor interface {
	Call(ctx context.Context, fn func() error) error
}

type TeamLister interface {
	Teams() []scoreboard.Team
}

type Services struct {
	Registry     service.GroupRegistry
	Resolver     service.GroupResolver
	Synchronizer service.TeamSynchronizer
	Events       service.EventService
	Chat         service.ChatFormatter
	Formats      service.FormatService
	Migration    service.MigrationService
	Sessions     *service.Sessions
	Board        TeamLister
}

type Handler struct {
	registry     service.GroupRegistry
	resolver     service.GroupResolver
	synchronizer service.TeamSynchronizer
	events       service.EventService
	chat         service.ChatFormatter
	formats      service.FormatService
	migration    service.MigrationService
	sessions     *service.Sessions
	board        TeamLister
	executor     Executor
}

func NewHandler(services Services, executor Executor) *Handler {
	return &Handler{
		registry:     services.Registry,
		resolver:     services.Resolver,
		synchronizer: services.Synchronizer,
		events:       services.Events,
		chat:         services.Chat,
		formats:      services.Formats,
		migration:    services.Migration,
		sessions:     services.Sessions,
		board:        services.Board,
		executor:     executor,
	}
}

// resyncOnline вызывается внутри executor после изменения реестра
func (h *Handler) resyncOnline(ctx context.Context) {
	_ = h.synchronizer.SynchronizeAll(ctx, h.sessions.Online())
}
