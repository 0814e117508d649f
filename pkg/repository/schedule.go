package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (s *scheduleRepository) Find(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleSession, error) {
	const query = `
		SELECT id, topic, speaker_name, room_name, track_name,
		       conference_date, start_time, end_time, description
		FROM schedule_sessions
		WHERE ($1 = '' OR speaker_name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR topic ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR room_name ILIKE $3)
		  AND ($4 = '' OR track_name ILIKE $4)
		  AND ($5::date IS NULL OR conference_date = $5::date)
		ORDER BY start_time
	`

	var date any
	if filter.Date != nil {
		date = filter.Date.Format("2006-01-02")
	}

	rows, err := s.db.QueryContext(ctx, query,
		filter.SpeakerName, filter.Topic, filter.RoomName, filter.TrackName, date)
	if err != nil {
		return nil, fmt.Errorf("searching schedule: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ScheduleSession
	for rows.Next() {
		var session domain.ScheduleSession
		if err := rows.Scan(
			&session.ID, &session.Topic, &session.SpeakerName, &session.RoomName,
			&session.TrackName, &session.Date, &session.StartTime, &session.EndTime,
			&session.Description,
		); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule rows: %w", err)
	}

	return sessions, nil
}
