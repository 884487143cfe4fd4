package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
)

const (
	metaPrefix = "prefix"
	metaSuffix = "suffix"
)

type permissionBackend struct {
	db       *sql.DB
	executor DBExecutor
}

func NewPermissionBackend(db *sql.DB) *permissionBackend {
	return &permissionBackend{db: db, executor: db}
}

// GetPrimaryGroup возвращает основную группу пользователя; неизвестный пользователь состоит в default
func (r *permissionBackend) GetPrimaryGroup(ctx context.Context, userID uuid.UUID) (string, error) {
	query := `
		SELECT primary_group
		FROM user_groups
		WHERE user_id = $1
	`

	var group string
	err := r.executor.QueryRowContext(ctx, query, userID).Scan(&group)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultGroupName, nil
		}
		return "", fmt.Errorf("get primary group: %w", err)
	}

	return group, nil
}

func (r *permissionBackend) SetPrimaryGroup(ctx context.Context, userID uuid.UUID, group string) error {
	query := `
		INSERT INTO user_groups (user_id, primary_group, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET primary_group = EXCLUDED.primary_group, updated_at = EXCLUDED.updated_at
	`

	_, err := r.executor.ExecContext(ctx, query, userID, domain.GroupKey(group), time.Now())
	if err != nil {
		return fmt.Errorf("set primary group: %w", err)
	}
	return nil
}

func (r *permissionBackend) GroupExists(ctx context.Context, group string) (bool, error) {
	return groupExists(ctx, r.executor, domain.GroupKey(group))
}

func groupExists(ctx context.Context, executor DBExecutor, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM permission_groups WHERE name = $1)`

	var exists bool
	if err := executor.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check group: %w", err)
	}
	return exists, nil
}

// CreateGroup возвращает false, если группа уже есть
func (r *permissionBackend) CreateGroup(ctx context.Context, group string) (bool, error) {
	query := `
		INSERT INTO permission_groups (name, created_at)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`

	result, err := r.executor.ExecContext(ctx, query, domain.GroupKey(group), time.Now())
	if err != nil {
		return false, fmt.Errorf("create group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// DeleteGroup не трогает default; мета группы удаляется каскадно
func (r *permissionBackend) DeleteGroup(ctx context.Context, group string) (bool, error) {
	if domain.IsDefaultGroup(group) {
		return false, nil
	}

	query := `DELETE FROM permission_groups WHERE name = $1`

	result, err := r.executor.ExecContext(ctx, query, domain.GroupKey(group))
	if err != nil {
		return false, fmt.Errorf("delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *permissionBackend) SetPrefix(ctx context.Context, group string, text string, priority int) (bool, error) {
	return r.setMeta(ctx, group, metaPrefix, text, priority)
}

func (r *permissionBackend) SetSuffix(ctx context.Context, group string, text string, priority int) (bool, error) {
	return r.setMeta(ctx, group, metaSuffix, text, priority)
}

// setMeta заменяет префикс или суффикс группы; пустой текст только очищает значение
func (r *permissionBackend) setMeta(ctx context.Context, group, kind, text string, priority int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	name := domain.GroupKey(group)

	exists, err := groupExists(ctx, tx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	deleteQuery := `
		DELETE FROM group_meta
		WHERE group_name = $1 AND kind = $2
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, name, kind); err != nil {
		return false, fmt.Errorf("clear %s: %w", kind, err)
	}

	if text != "" {
		insertQuery := `
			INSERT INTO group_meta (group_name, kind, value, priority)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, insertQuery, name, kind, text, priority); err != nil {
			return false, fmt.Errorf("set %s: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetGroup возвращает nil, если группы нет. Приоритет берется из префикса,
// при его отсутствии из суффикса.
func (r *permissionBackend) GetGroup(ctx context.Context, group string) (*domain.BackendGroup, error) {
	name := domain.GroupKey(group)

	var stored string
	err := r.executor.QueryRowContext(ctx, `SELECT name FROM permission_groups WHERE name = $1`, name).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	query := `
		SELECT kind, value, priority
		FROM group_meta
		WHERE group_name = $1
	`
	rows, err := r.executor.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get group meta: %w", err)
	}
	defer rows.Close()

	result := &domain.BackendGroup{Name: stored}
	hasPrefix := false
	for rows.Next() {
		var kind, value string
		var priority int
		if err := rows.Scan(&kind, &value, &priority); err != nil {
			return nil, fmt.Errorf("scan group meta: %w", err)
		}
		switch kind {
		case metaPrefix:
			result.Prefix = value
			result.Priority = priority
			hasPrefix = true
		case metaSuffix:
			result.Suffix = value
			if !hasPrefix {
				result.Priority = priority
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *permissionBackend) ListGroups(ctx context.Context) ([]string, error) {
	rows, err := r.executor.QueryContext(ctx, `SELECT name FROM permission_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
