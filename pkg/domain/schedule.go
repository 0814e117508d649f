package domain

import "time"

type ScheduleSession struct {
	ID          string
	Topic       string
	SpeakerName string
	RoomName    string
	TrackName   string
	Date        time.Time
	StartTime   time.Time
	EndTime     time.Time
	Description string
}

// ScheduleFilter narrows a schedule search; zero-value fields are ignored.
type ScheduleFilter struct {
	SpeakerName string
	Topic       string
	RoomName    string
	TrackName   string
	Date        *time.Time
}
