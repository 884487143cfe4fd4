package repository

import (
	"time"

	"github.com/bagdasarian/simpleprefix/internal/domain"
)

// GroupStore - документ с группами (groups.yml)
type GroupStore interface {
	// Load читает документ; при отсутствии файла создает документ по умолчанию
	Load() ([]domain.Group, error)
	// Save переписывает документ целиком
	Save(groups []domain.Group) error
	ModTime() (time.Time, error)
	Path() string
}
