package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type getOrganizationInfo struct {
	repo OrganizationRepository
}

func NewGetOrganizationInfo(repo OrganizationRepository) *getOrganizationInfo {
	return &getOrganizationInfo{repo: repo}
}

func (g *getOrganizationInfo) Name() string {
	return "get_organization_info"
}

func (g *getOrganizationInfo) Description() string {
	return "Get information about an organization."
}

func (g *getOrganizationInfo) Parameters() domain.Definition {
	return domain.Definition{
		Type: "object",
		Properties: map[string]domain.Definition{
			"organization_id": {Type: "string", Description: "Organization ID; defaults to the current user's organization"},
		},
	}
}

func (g *getOrganizationInfo) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		slog.DebugContext(ctx, "Tool invoked with args", "tool", g.Name(), "args", args)

		orgID := stringArg(args, "organization_id")
		if orgID == "" {
			orgID = conv.Context.OrganizationID
			if orgID == "" {
				return "No organization specified and no current organization context available.", nil
			}
		}

		org, err := g.repo.GetByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Sprintf("No organization found with ID '%s'.", orgID), nil
			}
			return "", fmt.Errorf("fetching organization '%s': %w", orgID, err)
		}

		var b strings.Builder
		b.WriteString("**Organization Information**\n\n")
		fmt.Fprintf(&b, "Name: %s\n", org.Name)

		keys := make([]string, 0, len(org.Details))
		for key := range org.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if value := org.Details[key]; value != "" {
				fmt.Fprintf(&b, "%s: %s\n", titleCase(key), value)
			}
		}

		return b.String(), nil
	}
}

func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
