package service

import (
	"context"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockGroupStore struct {
	mock.Mock
}

func (m *MockGroupStore) Load() ([]domain.Group, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupStore) Save(groups []domain.Group) error {
	args := m.Called(groups)
	return args.Error(0)
}

func (m *MockGroupStore) ModTime() (time.Time, error) {
	args := m.Called()
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockGroupStore) Path() string {
	return "groups.yml"
}

type MockPermissionBackend struct {
	mock.Mock
}

func (m *MockPermissionBackend) GetPrimaryGroup(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockPermissionBackend) SetPrimaryGroup(ctx context.Context, userID uuid.UUID, group string) error {
	args := m.Called(ctx, userID, group)
	return args.Error(0)
}

func (m *MockPermissionBackend) SetPrefix(ctx context.Context, group string, text string, priority int) (bool, error) {
	args := m.Called(ctx, group, text, priority)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionBackend) SetSuffix(ctx context.Context, group string, text string, priority int) (bool, error) {
	args := m.Called(ctx, group, text, priority)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionBackend) GroupExists(ctx context.Context, group string) (bool, error) {
	args := m.Called(ctx, group)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionBackend) CreateGroup(ctx context.Context, group string) (bool, error) {
	args := m.Called(ctx, group)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionBackend) DeleteGroup(ctx context.Context, group string) (bool, error) {
	args := m.Called(ctx, group)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionBackend) GetGroup(ctx context.Context, group string) (*domain.BackendGroup, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackendGroup), args.Error(1)
}

func (m *MockPermissionBackend) ListGroups(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockGroupResolver struct {
	mock.Mock
}

func (m *MockGroupResolver) ResolveGroup(ctx context.Context, user *domain.User) string {
	args := m.Called(ctx, user)
	return args.String(0)
}
