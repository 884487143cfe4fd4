//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	// Контейнер Postgres для бэкенда прав
	postgresContainer, err := postgres.Run(ctx,
		"postgres:17.7",
		postgres.WithDatabase("permissions"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	applyMigrations(t, db)

	t.Cleanup(func() {
		db.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	return db
}

// applyMigrations накатывает все *.up.sql по порядку имен
func applyMigrations(t *testing.T, db *sql.DB) {
	var files []string
	for _, dir := range []string{
		filepath.Join("..", "..", "migrations"),
		"migrations",
	} {
		found, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
		require.NoError(t, err)
		if len(found) > 0 {
			files = found
			break
		}
	}
	require.NotEmpty(t, files, "не найдены файлы миграций в migrations/")
	sort.Strings(files)

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		require.NoError(t, err)

		_, err = db.Exec(string(migrationSQL))
		require.NoError(t, err, "не удалось применить миграцию %s", filepath.Base(file))
	}
}
