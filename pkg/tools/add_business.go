package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type addBusiness struct {
	repo BusinessSaveRepository
}

func NewAddBusiness(repo BusinessSaveRepository) *addBusiness {
	return &addBusiness{repo: repo}
}

func (a *addBusiness) Name() string {
	return "add_business"
}

func (a *addBusiness) Description() string {
	return "Add a new business for the current user."
}

func (a *addBusiness) Parameters() domain.Definition {
	return domain.Definition{
		Type: "object",
		Properties: map[string]domain.Definition{
			"company_name":         {Type: "string", Description: "Company name"},
			"industry_sector":      {Type: "string", Description: "Industry sector"},
			"sub_sector":           {Type: "string", Description: "Industry sub-sector"},
			"location":             {Type: "string", Description: "Business location"},
			"position_title":       {Type: "string", Description: "User's position in the company"},
			"legal_structure":      {Type: "string", Description: "Legal structure"},
			"establishment_year":   {Type: "string", Description: "Year the business was established"},
			"products_or_services": {Type: "string", Description: "Products or services offered"},
			"brief_description":    {Type: "string", Description: "Brief company description"},
			"website":              {Type: "string", Description: "Company website"},
		},
		Required: []string{
			"company_name", "industry_sector", "sub_sector", "location",
			"position_title", "legal_structure", "establishment_year",
			"products_or_services", "brief_description",
		},
	}
}

func (a *addBusiness) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		slog.DebugContext(ctx, "Tool invoked with args", "tool", a.Name(), "args", args)

		userID := conv.Context.CustomerID
		if userID == "" {
			return "Unable to add business: No user context available.", nil
		}

		details := domain.BusinessDetails{
			CompanyName:        stringArg(args, "company_name"),
			IndustrySector:     stringArg(args, "industry_sector"),
			SubSector:          stringArg(args, "sub_sector"),
			Location:           stringArg(args, "location"),
			PositionTitle:      stringArg(args, "position_title"),
			LegalStructure:     stringArg(args, "legal_structure"),
			EstablishmentYear:  stringArg(args, "establishment_year"),
			ProductsOrServices: stringArg(args, "products_or_services"),
			BriefDescription:   stringArg(args, "brief_description"),
			Website:            stringArg(args, "website"),
		}

		if err := a.repo.Add(ctx, userID, details); err != nil {
			return "", fmt.Errorf("adding business '%s': %w", details.CompanyName, err)
		}

		return fmt.Sprintf("Successfully added business '%s' to your profile. "+
			"The business is now listed in the business directory and available for networking.",
			details.CompanyName), nil
	}
}
