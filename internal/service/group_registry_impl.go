package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/repository"
	"go.uber.org/zap"
)

// SettingsProvider отдает текущий снимок config.yml
type SettingsProvider interface {
	Current() config.Settings
}

type groupRegistry struct {
	store    repository.GroupStore
	backend  repository.PermissionBackend
	marker   config.WriteMarker
	settings SettingsProvider
	logger   *zap.Logger

	mu       sync.RWMutex
	groups   map[string]domain.Group
	loadedAt time.Time
}

// NewGroupRegistry создает реестр групп. backend может быть nil: тогда реестр работает только с файлом.
func NewGroupRegistry(
	store repository.GroupStore,
	backend repository.PermissionBackend,
	marker config.WriteMarker,
	settings SettingsProvider,
	logger *zap.Logger,
) GroupRegistry {
	return &groupRegistry{
		store:    store,
		backend:  backend,
		marker:   marker,
		settings: settings,
		logger:   logger,
		groups:   make(map[string]domain.Group),
	}
}

func (r *groupRegistry) Load(ctx context.Context) error {
	loaded, err := r.store.Load()
	if err != nil {
		r.logger.Error("failed to load groups", zap.String("path", r.store.Path()), zap.Error(err))
		return domain.NewIOFailure("load groups", err)
	}

	groups := make(map[string]domain.Group, len(loaded))
	for _, g := range loaded {
		g.Name = domain.GroupKey(g.Name)
		if g.Name == "" {
			continue
		}
		groups[g.Name] = g
	}

	if r.backend != nil {
		// локальные значения заново отправляются в бэкенд, потом бэкенд переопределяет
		for _, g := range groups {
			if err := r.pushToBackend(ctx, g); err != nil {
				r.logger.Warn("failed to push group to backend", zap.String("group", g.Name), zap.Error(err))
			}
		}
		r.pullFromBackend(ctx, groups)
	}

	if _, ok := groups[domain.DefaultGroupName]; !ok {
		groups[domain.DefaultGroupName] = domain.NewDefaultGroup()
	}

	r.mu.Lock()
	r.groups = groups
	r.loadedAt = r.modTime()
	r.mu.Unlock()

	r.logger.Info("groups loaded", zap.Int("count", len(groups)))
	return nil
}

func (r *groupRegistry) Reload(ctx context.Context) error {
	if err := r.Load(ctx); err != nil {
		return err
	}
	r.logger.Info("groups reloaded", zap.String("path", r.store.Path()))
	return nil
}

func (r *groupRegistry) Get(name string) (domain.Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[domain.GroupKey(name)]
	return g, ok
}

func (r *groupRegistry) All() []domain.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *groupRegistry) Upsert(ctx context.Context, group domain.Group) error {
	group.Name = domain.GroupKey(group.Name)
	if group.Name == "" {
		return domain.NewBadRequestError("group name is required")
	}

	r.mu.Lock()
	r.groups[group.Name] = group
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if r.backend != nil {
		if err := r.pushToBackend(ctx, group); err != nil {
			r.logger.Warn("group saved locally only",
				zap.String("group", group.Name),
				zap.Error(domain.NewBackendUnavailable("mirror group", err)))
		}
	}

	return r.persist(snapshot)
}

func (r *groupRegistry) Create(ctx context.Context, group domain.Group) error {
	if _, ok := r.Get(group.Name); ok {
		return domain.ErrGroupExists
	}
	return r.Upsert(ctx, group)
}

func (r *groupRegistry) Remove(ctx context.Context, name string) error {
	key := domain.GroupKey(name)
	if key == domain.DefaultGroupName {
		return domain.ErrDefaultGroupReserved
	}

	r.mu.Lock()
	if _, ok := r.groups[key]; !ok {
		r.mu.Unlock()
		return domain.NewNotFoundError("group " + key)
	}
	delete(r.groups, key)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if r.backend != nil {
		if err := r.removeFromBackend(ctx, key); err != nil {
			r.logger.Warn("group removed locally only",
				zap.String("group", key),
				zap.Error(domain.NewBackendUnavailable("remove group", err)))
		}
	}

	return r.persist(snapshot)
}

// SyncFromBackend переносит префикс, суффикс и приоритет из бэкенда в локальный файл.
// Цвет ника остается локальным.
func (r *groupRegistry) SyncFromBackend(ctx context.Context, name string) error {
	if r.backend == nil {
		return nil
	}

	key := domain.GroupKey(name)
	remote, err := r.backend.GetGroup(ctx, key)
	if err != nil {
		return domain.NewBackendUnavailable("get group", err)
	}
	if remote == nil {
		return domain.NewNotFoundError("backend group " + key)
	}

	r.mu.Lock()
	group, ok := r.groups[key]
	if !ok {
		group = domain.Group{Name: key}
	}
	group.Prefix = remote.Prefix
	group.Suffix = remote.Suffix
	group.Priority = remote.Priority
	r.groups[key] = group
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	return r.persist(snapshot)
}

// CheckAndReload перечитывает файл, если он изменился после последней загрузки или записи
func (r *groupRegistry) CheckAndReload(ctx context.Context) (bool, error) {
	modified, err := r.store.ModTime()
	if err != nil {
		return false, domain.NewIOFailure("stat groups", err)
	}

	r.mu.RLock()
	loadedAt := r.loadedAt
	r.mu.RUnlock()

	if !modified.After(loadedAt) {
		return false, nil
	}
	if err := r.Reload(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *groupRegistry) persist(groups []domain.Group) error {
	if r.marker != nil {
		r.marker.Mark()
		defer r.marker.ReleaseAfter(r.settings.Current().General.SaveLock)
	}

	if err := r.store.Save(groups); err != nil {
		r.logger.Error("failed to save groups", zap.String("path", r.store.Path()), zap.Error(err))
		return domain.NewIOFailure("save groups", err)
	}

	r.mu.Lock()
	r.loadedAt = r.modTime()
	r.mu.Unlock()
	return nil
}

func (r *groupRegistry) modTime() time.Time {
	modified, err := r.store.ModTime()
	if err != nil {
		return time.Now()
	}
	return modified
}

func (r *groupRegistry) pushToBackend(ctx context.Context, g domain.Group) error {
	exists, err := r.backend.GroupExists(ctx, g.Name)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := r.backend.CreateGroup(ctx, g.Name); err != nil {
			return err
		}
	}
	if _, err := r.backend.SetPrefix(ctx, g.Name, g.Prefix, g.Priority); err != nil {
		return err
	}
	if _, err := r.backend.SetSuffix(ctx, g.Name, g.Suffix, g.Priority); err != nil {
		return err
	}
	return nil
}

func (r *groupRegistry) removeFromBackend(ctx context.Context, name string) error {
	if r.settings.Current().General.Backend.DeleteOnRemove {
		_, err := r.backend.DeleteGroup(ctx, name)
		return err
	}
	if _, err := r.backend.SetPrefix(ctx, name, "", 0); err != nil {
		return err
	}
	_, err := r.backend.SetSuffix(ctx, name, "", 0)
	return err
}

// pullFromBackend переопределяет локальные значения значениями бэкенда.
// Группы без префикса и суффикса в бэкенде не меняют локальный приоритет.
func (r *groupRegistry) pullFromBackend(ctx context.Context, groups map[string]domain.Group) {
	names, err := r.backend.ListGroups(ctx)
	if err != nil {
		r.logger.Warn("failed to list backend groups", zap.Error(domain.NewBackendUnavailable("list groups", err)))
		return
	}

	for _, name := range names {
		remote, err := r.backend.GetGroup(ctx, name)
		if err != nil {
			r.logger.Warn("failed to read backend group", zap.String("group", name), zap.Error(err))
			continue
		}
		if remote == nil {
			continue
		}

		key := domain.GroupKey(remote.Name)
		local, ok := groups[key]
		if !ok {
			local = domain.Group{Name: key}
			if key == domain.DefaultGroupName {
				local.Priority = domain.DefaultGroupPriority
			}
		}
		if remote.Prefix != "" || remote.Suffix != "" {
			local.Prefix = remote.Prefix
			local.Suffix = remote.Suffix
			local.Priority = remote.Priority
		}
		groups[key] = local
	}
}

func (r *groupRegistry) snapshotLocked() []domain.Group {
	result := make([]domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
