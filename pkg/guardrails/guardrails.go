package guardrails

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

const (
	RelevanceName = "relevance_guardrail"
	JailbreakName = "jailbreak_guardrail"
)

// RefusalMessage is returned when an input guardrail trips.
const RefusalMessage = "Sorry, I can only answer questions related to the conference. " +
	"Ask me about the schedule, speakers, networking, or other attendees!"

var conferenceKeywords = []string{
	"conference", "schedule", "session", "speaker", "networking", "business",
	"attendee", "meeting", "presentation", "workshop", "track", "room",
	"registration", "event", "agenda", "program", "participant",
}

var greetings = []string{
	"hello", "hi", "help", "what", "how", "when", "where", "who", "can you",
}

var jailbreakPatterns = []string{
	"ignore", "forget", "system", "prompt", "instruction", "override",
	"bypass", "pretend", "roleplay", "act as", "you are now",
}

// CheckRelevance passes input that mentions the conference domain or reads
// like a greeting or a basic question.
func CheckRelevance(input string) domain.GuardrailCheck {
	lower := strings.ToLower(input)

	relevant := containsAny(lower, conferenceKeywords)
	if !relevant {
		relevant = containsAny(lower, greetings)
	}

	return domain.GuardrailCheck{
		ID:        uuid.NewString(),
		Name:      RelevanceName,
		Input:     input,
		Reasoning: fmt.Sprintf("Input contains conference-related keywords: %t", relevant),
		Passed:    relevant,
	}
}

// CheckJailbreak rejects input matching known prompt-injection patterns.
func CheckJailbreak(input string) domain.GuardrailCheck {
	lower := strings.ToLower(input)

	safe := !containsAny(lower, jailbreakPatterns)

	return domain.GuardrailCheck{
		ID:        uuid.NewString(),
		Name:      JailbreakName,
		Input:     input,
		Reasoning: fmt.Sprintf("No jailbreak patterns detected: %t", safe),
		Passed:    safe,
	}
}

// CheckInput runs all input guardrails in order.
func CheckInput(input string) []domain.GuardrailCheck {
	return []domain.GuardrailCheck{
		CheckRelevance(input),
		CheckJailbreak(input),
	}
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
