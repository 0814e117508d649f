package agents

import "strings"

var scheduleTerms = []string{
	"schedule", "session", "speaker", "time", "room", "track", "when",
}

var networkingTerms = []string{
	"network", "business", "attendee", "connect", "company", "find people",
}

// Route picks the agent responsible for a message. Schedule terms win over
// networking terms; anything else stays with triage.
func Route(message string) string {
	lower := strings.ToLower(message)

	for _, term := range scheduleTerms {
		if strings.Contains(lower, term) {
			return ScheduleAgentName
		}
	}
	for _, term := range networkingTerms {
		if strings.Contains(lower, term) {
			return NetworkingAgentName
		}
	}
	return TriageAgentName
}
