package domain

import "strings"

const (
	// DefaultGroupName - зарезервированная группа, существует всегда
	DefaultGroupName = "default"

	// DefaultGroupPriority - приоритет группы default при автосоздании
	DefaultGroupPriority = 999
)

type Group struct {
	Name      string
	Prefix    string
	Suffix    string
	Priority  int
	NameColor string
}

// BackendGroup - представление группы во внешнем бэкенде прав.
// NameColor там не хранится.
type BackendGroup struct {
	Name     string
	Prefix   string
	Suffix   string
	Priority int
}

// GroupKey нормализует имя группы: все сравнения имен регистронезависимые
func GroupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func IsDefaultGroup(name string) bool {
	return GroupKey(name) == DefaultGroupName
}

func NewDefaultGroup() Group {
	return Group{
		Name:     DefaultGroupName,
		Priority: DefaultGroupPriority,
	}
}

// IsEmpty - у группы нет ни префикса, ни суффикса
func (g Group) IsEmpty() bool {
	return strings.TrimSpace(g.Prefix) == "" && strings.TrimSpace(g.Suffix) == ""
}
