package domain

import (
	"strings"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID
	Name        string
	DisplayName string
	Permissions []string
}

// HasPermission проверяет право без учета регистра
func (u *User) HasPermission(node string) bool {
	for _, p := range u.Permissions {
		if strings.EqualFold(p, node) {
			return true
		}
	}
	return false
}

// IDTail - id без дефисов; его конец идет в имя команды
func (u *User) IDTail() string {
	return strings.ReplaceAll(u.ID.String(), "-", "")
}

// Binding - состояние отображения пользователя, которым владеет TeamSynchronizer
type Binding struct {
	UserID     uuid.UUID
	Entry      string
	Group      string
	Identifier string
	Prefix     string
	Suffix     string
}
