package agents

import (
	"strings"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

func domainContext(name, conference string) domain.Context {
	return domain.Context{
		AttendeeName:   name,
		ConferenceName: conference,
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
