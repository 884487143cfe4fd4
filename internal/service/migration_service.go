package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// MigrationReport - итог импорта или очистки
type MigrationReport struct {
	Migrated   []string
	Skipped    []string
	Removed    []string
	ChatFormat string
	TabFormat  string
}

type MigrationService interface {
	MigrateLuckPrefix(ctx context.Context, path string) (*MigrationReport, error)
	CleanupEmptyGroups(ctx context.Context) (*MigrationReport, error)
}

// luckPrefixGroup - секция группы в groups.yml LuckPrefix
type luckPrefixGroup struct {
	Prefix     string `yaml:"Prefix"`
	Suffix     string `yaml:"Suffix"`
	SortID     *int   `yaml:"SortID"`
	NameColor  string `yaml:"NameColor"`
	Chatformat string `yaml:"Chatformat"`
	Tabformat  string `yaml:"Tabformat"`
}

const luckPrefixDefaultSortID = 999

var legacyPlaceholders = strings.NewReplacer(
	"<prefix>", "{prefix}",
	"<suffix>", "{suffix}",
	"<player>", "{player}",
	"<displayname>", "{displayname}",
	"<message>", "{message}",
)

type migrationService struct {
	registry GroupRegistry
	settings SettingsEditor
	logger   *zap.Logger
}

func NewMigrationService(registry GroupRegistry, settings SettingsEditor, logger *zap.Logger) MigrationService {
	return &migrationService{
		registry: registry,
		settings: settings,
		logger:   logger,
	}
}

// MigrateLuckPrefix импортирует группы с непустым префиксом или суффиксом.
// Форматы чата и tab берутся из первой группы, где они заданы.
func (s *migrationService) MigrateLuckPrefix(ctx context.Context, path string) (*MigrationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewNotFoundError("LuckPrefix groups file " + path)
		}
		return nil, domain.NewIOFailure("read LuckPrefix groups", err)
	}

	var doc map[string]*luckPrefixGroup
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewBadRequestError(fmt.Sprintf("invalid LuckPrefix groups file: %v", err))
	}
	if len(doc) == 0 {
		return nil, domain.NewBadRequestError("no groups found in LuckPrefix file")
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &MigrationReport{}
	for _, name := range names {
		section := doc[name]
		if section == nil {
			report.Skipped = append(report.Skipped, name)
			continue
		}

		if report.ChatFormat == "" && strings.TrimSpace(section.Chatformat) != "" {
			report.ChatFormat = legacyPlaceholders.Replace(section.Chatformat)
		}
		if report.TabFormat == "" && strings.TrimSpace(section.Tabformat) != "" {
			report.TabFormat = legacyPlaceholders.Replace(section.Tabformat)
		}

		if strings.TrimSpace(section.Prefix) == "" && strings.TrimSpace(section.Suffix) == "" {
			s.logger.Info("skipping empty LuckPrefix group", zap.String("group", name))
			report.Skipped = append(report.Skipped, name)
			continue
		}

		priority := luckPrefixDefaultSortID
		if section.SortID != nil {
			priority = *section.SortID
		}

		group := domain.Group{
			Name:      name,
			Prefix:    section.Prefix,
			Suffix:    section.Suffix,
			Priority:  priority,
			NameColor: section.NameColor,
		}
		if err := s.registry.Upsert(ctx, group); err != nil {
			return report, err
		}
		s.logger.Info("LuckPrefix group migrated", zap.String("group", name), zap.Int("priority", priority))
		report.Migrated = append(report.Migrated, domain.GroupKey(name))
	}

	if report.ChatFormat != "" || report.TabFormat != "" {
		err := s.settings.Update(func(st *config.Settings) {
			if report.ChatFormat != "" {
				st.Formats.Chat.Format = report.ChatFormat
			}
			if report.TabFormat != "" {
				st.Formats.Tab.Format = report.TabFormat
			}
		})
		if err != nil {
			return report, domain.NewIOFailure("save migrated formats", err)
		}
	}

	return report, nil
}

// CleanupEmptyGroups удаляет группы без префикса и суффикса, кроме default
func (s *migrationService) CleanupEmptyGroups(ctx context.Context) (*MigrationReport, error) {
	report := &MigrationReport{}
	for _, g := range s.registry.All() {
		if domain.IsDefaultGroup(g.Name) || !g.IsEmpty() {
			continue
		}
		if err := s.registry.Remove(ctx, g.Name); err != nil {
			return report, err
		}
		s.logger.Info("removed empty group", zap.String("group", g.Name))
		report.Removed = append(report.Removed, g.Name)
	}
	return report, nil
}
