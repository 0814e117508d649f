package tools

import (
	"context"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

// BusinessFormMarker tells the web client to render its business
// registration form instead of a chat bubble.
const BusinessFormMarker = "DISPLAY_BUSINESS_FORM"

type displayBusinessForm struct{}

func NewDisplayBusinessForm() *displayBusinessForm {
	return &displayBusinessForm{}
}

func (d *displayBusinessForm) Name() string {
	return "display_business_form"
}

func (d *displayBusinessForm) Description() string {
	return "Display a business registration form for the user to fill out."
}

func (d *displayBusinessForm) Parameters() domain.Definition {
	return domain.Definition{Type: "object"}
}

func (d *displayBusinessForm) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		return BusinessFormMarker, nil
	}
}
