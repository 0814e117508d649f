package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type getConferenceSchedule struct {
	repo ScheduleRepository
}

func NewGetConferenceSchedule(repo ScheduleRepository) *getConferenceSchedule {
	return &getConferenceSchedule{repo: repo}
}

func (g *getConferenceSchedule) Name() string {
	return "get_conference_schedule"
}

func (g *getConferenceSchedule) Description() string {
	return "Get conference schedule information by speaker, topic, room, track, or date."
}

func (g *getConferenceSchedule) Parameters() domain.Definition {
	return domain.Definition{
		Type: "object",
		Properties: map[string]domain.Definition{
			"speaker_name":         {Type: "string", Description: "Speaker name to filter by"},
			"topic":                {Type: "string", Description: "Session topic to filter by"},
			"conference_room_name": {Type: "string", Description: "Conference room name to filter by"},
			"track_name":           {Type: "string", Description: "Track name to filter by"},
			"conference_date":      {Type: "string", Description: "Conference date in YYYY-MM-DD format"},
		},
	}
}

func (g *getConferenceSchedule) Function() any {
	return func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
		slog.DebugContext(ctx, "Tool invoked with args", "tool", g.Name(), "args", args)

		filter := domain.ScheduleFilter{
			SpeakerName: stringArg(args, "speaker_name"),
			Topic:       stringArg(args, "topic"),
			RoomName:    stringArg(args, "conference_room_name"),
			TrackName:   stringArg(args, "track_name"),
		}

		dateRaw := stringArg(args, "conference_date")
		if dateRaw != "" {
			date, err := time.Parse("2006-01-02", dateRaw)
			if err != nil {
				return fmt.Sprintf("Invalid date format: %s. Please use YYYY-MM-DD format.", dateRaw), nil
			}
			filter.Date = &date
		}

		sessions, err := g.repo.Find(ctx, filter)
		if err != nil {
			return "", fmt.Errorf("searching schedule: %w", err)
		}

		if len(sessions) == 0 {
			return fmt.Sprintf("No conference sessions found for %s.", describeScheduleFilter(filter, dateRaw)), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d conference session(s):\n\n", len(sessions))
		for _, s := range sessions {
			fmt.Fprintf(&b, "**%s**\n", s.Topic)
			fmt.Fprintf(&b, "Speaker: %s\n", s.SpeakerName)
			fmt.Fprintf(&b, "Time: %s - %s\n", s.StartTime.Format("03:04 PM"), s.EndTime.Format("03:04 PM"))
			fmt.Fprintf(&b, "Room: %s\n", s.RoomName)
			fmt.Fprintf(&b, "Track: %s\n", s.TrackName)
			fmt.Fprintf(&b, "Date: %s\n", s.Date.Format("2006-01-02"))
			if s.Description != "" {
				fmt.Fprintf(&b, "Description: %s\n", s.Description)
			}
			b.WriteString("\n")
		}

		return b.String(), nil
	}
}

func describeScheduleFilter(filter domain.ScheduleFilter, dateRaw string) string {
	var filters []string
	if filter.SpeakerName != "" {
		filters = append(filters, fmt.Sprintf("speaker '%s'", filter.SpeakerName))
	}
	if filter.Topic != "" {
		filters = append(filters, fmt.Sprintf("topic '%s'", filter.Topic))
	}
	if filter.RoomName != "" {
		filters = append(filters, fmt.Sprintf("room '%s'", filter.RoomName))
	}
	if filter.TrackName != "" {
		filters = append(filters, fmt.Sprintf("track '%s'", filter.TrackName))
	}
	if dateRaw != "" {
		filters = append(filters, fmt.Sprintf("date '%s'", dateRaw))
	}
	if len(filters) == 0 {
		return "your criteria"
	}
	return strings.Join(filters, " and ")
}
