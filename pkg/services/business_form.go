package services

import "strings"

// businessFormPrefix marks a submission from the web client's business
// registration form. The lines after it are "Label: value" pairs.
const businessFormPrefix = "I want to add my business with the following details:"

var businessFormFields = map[string]string{
	"Company Name":       "company_name",
	"Industry Sector":    "industry_sector",
	"Sub-Sector":         "sub_sector",
	"Location":           "location",
	"Position Title":     "position_title",
	"Legal Structure":    "legal_structure",
	"Establishment Year": "establishment_year",
	"Products/Services":  "products_or_services",
	"Brief Description":  "brief_description",
	"Website":            "website",
}

// parseBusinessForm extracts add_business arguments from a form submission
// message. It returns false when the message is not a form submission.
func parseBusinessForm(message string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, businessFormPrefix) {
		return nil, false
	}

	args := map[string]any{}
	for _, line := range strings.Split(trimmed, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		field, known := businessFormFields[strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(label), "-"))]
		if !known {
			continue
		}

		value = strings.TrimSpace(value)
		if value != "" {
			args[field] = value
		}
	}

	if len(args) == 0 {
		return nil, false
	}
	return args, true
}
