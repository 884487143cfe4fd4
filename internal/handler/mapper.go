package handler

import (
	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/scoreboard"
	"github.com/bagdasarian/simpleprefix/internal/service"
	"github.com/google/uuid"
)

func domainGroupToHTTP(group domain.Group) GroupResponse {
	return GroupResponse{
		Name:      group.Name,
		Prefix:    group.Prefix,
		Suffix:    group.Suffix,
		Priority:  group.Priority,
		NameColor: group.NameColor,
	}
}

func httpGroupToDomain(req GroupRequest) domain.Group {
	return domain.Group{
		Name:      req.Name,
		Prefix:    req.Prefix,
		Suffix:    req.Suffix,
		Priority:  req.Priority,
		NameColor: req.NameColor,
	}
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewBadRequestError("user_id must be a UUID")
	}
	return id, nil
}

func httpUserToDomain(req UserRequest) (domain.User, error) {
	id, err := parseUserID(req.UserID)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:          id,
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Permissions: req.Permissions,
	}, nil
}

func domainBindingToHTTP(b domain.Binding) BindingResponse {
	return BindingResponse{
		UserID:     b.UserID.String(),
		Entry:      b.Entry,
		Group:      b.Group,
		Identifier: b.Identifier,
		Prefix:     b.Prefix,
		Suffix:     b.Suffix,
	}
}

func reportToHTTP(report *service.MigrationReport) MigrationResponse {
	return MigrationResponse{
		Migrated:   nonNil(report.Migrated),
		Skipped:    nonNil(report.Skipped),
		Removed:    nonNil(report.Removed),
		ChatFormat: report.ChatFormat,
		TabFormat:  report.TabFormat,
	}
}

func chatFormatToHTTP(f config.ChatFormat) ChatFormatResponse {
	return ChatFormatResponse{Enabled: f.Enabled, Format: f.Format}
}

func tabFormatToHTTP(f config.TabFormat) TabFormatResponse {
	return TabFormatResponse{Enabled: f.Enabled, Format: f.Format, SpaceBeforeName: f.SpaceBeforeName}
}

func teamToHTTP(t scoreboard.Team) TeamResponse {
	return TeamResponse{
		Name:              t.Name,
		Prefix:            t.Prefix,
		Suffix:            t.Suffix,
		NameTagVisibility: string(t.NameTagVisibility),
		CollisionRule:     string(t.CollisionRule),
		Entries:           t.Entries,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
