package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLocalResolver_ResolveGroup(t *testing.T) {
	ctx := context.Background()
	registry, _ := newLocalRegistry(t, newMemoryStore(
		adminGroup(),
		domain.Group{Name: "vip", Priority: 5},
		domain.Group{Name: "mod", Priority: 5},
	))
	resolver := NewLocalResolver(registry, newStaticSettings())

	t.Run("без прав - default", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Name: "Alice"}

		assert.Equal(t, "default", resolver.ResolveGroup(ctx, user))
	})

	t.Run("побеждает наименьший приоритет", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Name: "Alice", Permissions: []string{
			"simpleprefix.group.vip",
			"SimplePrefix.Group.Admin",
		}}

		assert.Equal(t, "admin", resolver.ResolveGroup(ctx, user))
	})

	t.Run("равный приоритет решается по имени", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Name: "Bob", Permissions: []string{
			"simpleprefix.group.vip",
			"simpleprefix.group.mod",
		}}

		for i := 0; i < 20; i++ {
			assert.Equal(t, "mod", resolver.ResolveGroup(ctx, user))
		}
	})

	t.Run("право на неизвестную группу игнорируется", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Permissions: []string{"simpleprefix.group.ghost"}}

		assert.Equal(t, "default", resolver.ResolveGroup(ctx, user))
	})
}

func TestBackendResolver_ResolveGroup(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Name: "Alice"}

	t.Run("основная группа из бэкенда", func(t *testing.T) {
		backend := new(MockPermissionBackend)
		backend.On("GetPrimaryGroup", mock.Anything, user.ID).Return("Admin", nil)

		assert.Equal(t, "admin", NewBackendResolver(backend, zap.NewNop()).ResolveGroup(ctx, user))
	})

	t.Run("ошибка бэкенда - default с предупреждением", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		backend := new(MockPermissionBackend)
		backend.On("GetPrimaryGroup", mock.Anything, user.ID).Return("", errors.New("timeout"))

		group := NewBackendResolver(backend, zap.New(core)).ResolveGroup(ctx, user)

		assert.Equal(t, "default", group)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("пустая группа - default", func(t *testing.T) {
		backend := new(MockPermissionBackend)
		backend.On("GetPrimaryGroup", mock.Anything, user.ID).Return("", nil)

		assert.Equal(t, "default", NewBackendResolver(backend, zap.NewNop()).ResolveGroup(ctx, user))
	})
}

func TestNewGroupResolver(t *testing.T) {
	registry, _ := newLocalRegistry(t, newMemoryStore())

	_, local := NewGroupResolver(nil, registry, newStaticSettings(), zap.NewNop()).(*localResolver)
	assert.True(t, local)

	_, remote := NewGroupResolver(new(MockPermissionBackend), registry, newStaticSettings(), zap.NewNop()).(*backendResolver)
	assert.True(t, remote)
}
