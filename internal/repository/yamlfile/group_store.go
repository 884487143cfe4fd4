// Package yamlfile stores group records in a human-editable YAML document.
package yamlfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"gopkg.in/yaml.v3"
)

type document struct {
	Groups map[string]groupEntry `yaml:"groups"`
}

type groupEntry struct {
	Prefix    string `yaml:"prefix"`
	Suffix    string `yaml:"suffix"`
	Priority  int    `yaml:"priority"`
	NameColor string `yaml:"nameColor,omitempty"`
}

// DefaultGroups записываются, когда groups.yml еще не существует
var DefaultGroups = []domain.Group{
	{Name: "admin", Prefix: "<red>[Admin] ", Priority: 1, NameColor: "red"},
	domain.NewDefaultGroup(),
}

type groupStore struct {
	path string
}

func NewGroupStore(path string) *groupStore {
	return &groupStore{path: path}
}

func (s *groupStore) Path() string {
	return s.path
}

func (s *groupStore) Load() ([]domain.Group, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.Save(DefaultGroups); err != nil {
			return nil, err
		}
		return append([]domain.Group(nil), DefaultGroups...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.path), err)
	}

	groups := make([]domain.Group, 0, len(doc.Groups))
	for name, entry := range doc.Groups {
		groups = append(groups, domain.Group{
			Name:      name,
			Prefix:    entry.Prefix,
			Suffix:    entry.Suffix,
			Priority:  entry.Priority,
			NameColor: entry.NameColor,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	return groups, nil
}

// Save пишет во временный файл рядом и переименовывает его поверх документа
func (s *groupStore) Save(groups []domain.Group) error {
	doc := document{Groups: make(map[string]groupEntry, len(groups))}
	for _, g := range groups {
		doc.Groups[g.Name] = groupEntry{
			Prefix:    g.Prefix,
			Suffix:    g.Suffix,
			Priority:  g.Priority,
			NameColor: g.NameColor,
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

func (s *groupStore) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
