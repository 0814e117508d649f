package tools

import (
	"context"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type UserRepository interface {
	SearchByName(ctx context.Context, name string) ([]domain.User, error)
	ListAttendees(ctx context.Context, limit int) ([]domain.User, error)
}

type BusinessSearchRepository interface {
	Search(ctx context.Context, query, sector, location string) ([]domain.Business, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Business, error)
}

type BusinessSaveRepository interface {
	Add(ctx context.Context, userID string, details domain.BusinessDetails) error
}

type ScheduleRepository interface {
	Find(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleSession, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
