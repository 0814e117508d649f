package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

const defaultAttendeeLimit = 10

type searchAttendees struct {
	repo UserRepository
}

func NewSearchAttendees(repo UserRepository) *searchAttendees {
	return &searchAttendees{repo: repo}
}

func (s *searchAttendees) Name() string {
	return "search_attendees"
}

func (s *searchAttendees) Description() string {
	return "Search for conference attendees by name or get all attendees."
}

func (s *searchAttendees) Parameters() domain.Definition {
	return domain.Definition{
		Type: "object",
		Properties: map[string]domain.Definition{
			"name":  {Type: "string", Description: "Attendee name to search for"},
			"limit": {Type: "integer", Description: "Maximum number of attendees to return"},
		},
	}
}

func (s *searchAttendees) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		slog.DebugContext(ctx, "Tool invoked with args", "tool", s.Name(), "args", args)

		name := stringArg(args, "name")

		var (
			attendees []domain.User
			err       error
		)
		if name != "" {
			attendees, err = s.repo.SearchByName(ctx, name)
		} else {
			attendees, err = s.repo.ListAttendees(ctx, intArg(args, "limit", defaultAttendeeLimit))
		}
		if err != nil {
			return "", fmt.Errorf("searching attendees: %w", err)
		}

		if len(attendees) == 0 {
			if name != "" {
				return fmt.Sprintf("No attendees found named '%s'.", name), nil
			}
			return "No attendees found in the conference.", nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d attendee(s):\n\n", len(attendees))
		for _, a := range attendees {
			fmt.Fprintf(&b, "**%s**\n", a.Name)
			if a.Company != "" {
				fmt.Fprintf(&b, "Company: %s\n", a.Company)
			}
			if a.Location != "" {
				fmt.Fprintf(&b, "Location: %s\n", a.Location)
			}
			if a.PrimaryStream != "" {
				fmt.Fprintf(&b, "Primary Stream: %s\n", a.PrimaryStream)
			}
			if a.SecondaryStream != "" {
				fmt.Fprintf(&b, "Secondary Stream: %s\n", a.SecondaryStream)
			}
			if a.ConferencePackage != "" {
				fmt.Fprintf(&b, "Conference Package: %s\n", a.ConferencePackage)
			}
			b.WriteString("\n")
		}

		return b.String(), nil
	}
}
