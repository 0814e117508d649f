package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type searchBusinesses struct {
	repo BusinessSearchRepository
}

func NewSearchBusinesses(repo BusinessSearchRepository) *searchBusinesses {
	return &searchBusinesses{repo: repo}
}

func (s *searchBusinesses) Name() string {
	return "search_businesses"
}

func (s *searchBusinesses) Description() string {
	return "Search for businesses by company name, sector, or location."
}

func (s *searchBusinesses) Parameters() domain.Definition {
	return domain.Definition{
		Type: "object",
		Properties: map[string]domain.Definition{
			"query":    {Type: "string", Description: "Free-text query matched against company name and description"},
			"sector":   {Type: "string", Description: "Industry sector to filter by"},
			"location": {Type: "string", Description: "Location to filter by"},
		},
	}
}

func (s *searchBusinesses) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		slog.DebugContext(ctx, "Tool invoked with args", "tool", s.Name(), "args", args)

		query := stringArg(args, "query")
		sector := stringArg(args, "sector")
		location := stringArg(args, "location")

		businesses, err := s.repo.Search(ctx, query, sector, location)
		if err != nil {
			return "", fmt.Errorf("searching businesses: %w", err)
		}

		if len(businesses) == 0 {
			var filters []string
			if query != "" {
				filters = append(filters, fmt.Sprintf("query '%s'", query))
			}
			if sector != "" {
				filters = append(filters, fmt.Sprintf("sector '%s'", sector))
			}
			if location != "" {
				filters = append(filters, fmt.Sprintf("location '%s'", location))
			}
			filterText := "your criteria"
			if len(filters) > 0 {
				filterText = strings.Join(filters, " and ")
			}
			return fmt.Sprintf("No businesses found for %s.", filterText), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d business(es):\n\n", len(businesses))
		for _, biz := range businesses {
			writeBusinessDetails(&b, biz.Details, false)
		}

		return b.String(), nil
	}
}

func writeBusinessDetails(b *strings.Builder, d domain.BusinessDetails, withPosition bool) {
	fmt.Fprintf(b, "**%s**\n", d.CompanyName)
	if d.IndustrySector != "" {
		fmt.Fprintf(b, "Industry: %s\n", d.IndustrySector)
	}
	if d.SubSector != "" {
		fmt.Fprintf(b, "Sub-sector: %s\n", d.SubSector)
	}
	if d.Location != "" {
		fmt.Fprintf(b, "Location: %s\n", d.Location)
	}
	if withPosition && d.PositionTitle != "" {
		fmt.Fprintf(b, "Position: %s\n", d.PositionTitle)
	}
	if d.BriefDescription != "" {
		fmt.Fprintf(b, "Description: %s\n", d.BriefDescription)
	}
	if d.ProductsOrServices != "" {
		fmt.Fprintf(b, "Products/Services: %s\n", d.ProductsOrServices)
	}
	if d.Website != "" {
		fmt.Fprintf(b, "Website: %s\n", d.Website)
	}
	b.WriteString("\n")
}
