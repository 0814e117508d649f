package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type getUserBusinesses struct {
	businessRepo BusinessSearchRepository
	userRepo     UserRepository
}

func NewGetUserBusinesses(businessRepo BusinessSearchRepository, userRepo UserRepository) *getUserBusinesses {
	return &getUserBusinesses{
		businessRepo: businessRepo,
		userRepo:     userRepo,
	}
}

func (g *getUserBusinesses) Name() string {
	return "get_user_businesses"
}

func (g *getUserBusinesses) Description() string {
	return "Get all businesses for a specific user."
}

func (g *getUserBusinesses) Parameters() domain.Definition {
	return domain.Definition{
		Type: "object",
		Properties: map[string]domain.Definition{
			"user_name": {Type: "string", Description: "User name to look up; defaults to the current user"},
		},
	}
}

func (g *getUserBusinesses) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		slog.DebugContext(ctx, "Tool invoked with args", "tool", g.Name(), "args", args)

		userName := stringArg(args, "user_name")

		var userID string
		if userName == "" {
			userID = conv.Context.CustomerID
			if userID == "" {
				return "No user specified and no current user context available.", nil
			}
		} else {
			users, err := g.userRepo.SearchByName(ctx, userName)
			if err != nil {
				return "", fmt.Errorf("looking up user '%s': %w", userName, err)
			}
			if len(users) == 0 {
				return fmt.Sprintf("No user found with name '%s'.", userName), nil
			}
			userID = users[0].ID
		}

		businesses, err := g.businessRepo.GetByUserID(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("fetching businesses for user: %w", err)
		}

		owner := userName
		if owner == "" {
			owner = "the current user"
		}

		if len(businesses) == 0 {
			return fmt.Sprintf("No businesses found for %s.", owner), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d business(es) for %s:\n\n", len(businesses), owner)
		for _, biz := range businesses {
			writeBusinessDetails(&b, biz.Details, true)
		}

		return b.String(), nil
	}
}
