package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bagdasarian/simpleprefix/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgres открывает пул к бэкенду прав и проверяет соединение.
// Ошибка здесь не фатальна: вызывающий переходит на локальное разрешение групп.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open permission backend: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping permission backend: %w", err)
	}

	return db, nil
}
