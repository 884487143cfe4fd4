package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/repository"
	"go.uber.org/zap"
)

type GroupResolver interface {
	ResolveGroup(ctx context.Context, user *domain.User) string
}

// NewGroupResolver выбирает стратегию один раз: при наличии бэкенда группа берется из него,
// иначе по правам пользователя.
func NewGroupResolver(
	backend repository.PermissionBackend,
	registry GroupRegistry,
	settings SettingsProvider,
	logger *zap.Logger,
) GroupResolver {
	if backend != nil {
		return NewBackendResolver(backend, logger)
	}
	return NewLocalResolver(registry, settings)
}

type backendResolver struct {
	backend repository.PermissionBackend
	logger  *zap.Logger
}

func NewBackendResolver(backend repository.PermissionBackend, logger *zap.Logger) GroupResolver {
	return &backendResolver{backend: backend, logger: logger}
}

func (r *backendResolver) ResolveGroup(ctx context.Context, user *domain.User) string {
	group, err := r.backend.GetPrimaryGroup(ctx, user.ID)
	if err != nil {
		r.logger.Warn("primary group lookup failed, using default",
			zap.String("user", user.ID.String()),
			zap.Error(domain.NewBackendUnavailable("get primary group", err)))
		return domain.DefaultGroupName
	}
	group = domain.GroupKey(group)
	if group == "" {
		r.logger.Warn("user has no primary group, using default", zap.String("user", user.ID.String()))
		return domain.DefaultGroupName
	}
	return group
}

type localResolver struct {
	registry GroupRegistry
	settings SettingsProvider
}

func NewLocalResolver(registry GroupRegistry, settings SettingsProvider) GroupResolver {
	return &localResolver{registry: registry, settings: settings}
}

// ResolveGroup выбирает группу с наименьшим приоритетом среди тех, на которые у пользователя есть право.
// При равном приоритете побеждает имя, меньшее лексикографически.
func (r *localResolver) ResolveGroup(_ context.Context, user *domain.User) string {
	namespace := r.settings.Current().General.Namespace

	var best *domain.Group
	for _, g := range r.registry.All() {
		if !user.HasPermission(PermissionNode(namespace, g.Name)) {
			continue
		}
		if best == nil || g.Priority < best.Priority ||
			(g.Priority == best.Priority && strings.ToLower(g.Name) < strings.ToLower(best.Name)) {
			candidate := g
			best = &candidate
		}
	}

	if best == nil {
		return domain.DefaultGroupName
	}
	return best.Name
}

// PermissionNode - право, дающее членство в группе при локальной стратегии
func PermissionNode(namespace, group string) string {
	return namespace + ".group." + domain.GroupKey(group)
}
