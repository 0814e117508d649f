package agents

import "testing"

func TestRoute(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"show me the schedule for July 15", ScheduleAgentName},
		{"who is the speaker in the Grand Ballroom?", ScheduleAgentName},
		{"when does the AI track start", ScheduleAgentName},
		{"find attendees from Mumbai", NetworkingAgentName},
		{"I want to add my business", NetworkingAgentName},
		{"help me connect with healthcare companies", NetworkingAgentName},
		{"hello!", TriageAgentName},
		{"", TriageAgentName},
	}

	for _, test := range tests {
		if got := Route(test.message); got != test.expected {
			t.Errorf("Route(%q) = %q, want %q", test.message, got, test.expected)
		}
	}
}

func TestDescriptors(t *testing.T) {
	descriptors := Descriptors("Business Conference 2025")
	if len(descriptors) != 3 {
		t.Fatalf("got %d descriptors, want 3", len(descriptors))
	}
	if descriptors[0].Name != TriageAgentName {
		t.Errorf("first descriptor = %q, want triage", descriptors[0].Name)
	}
	if len(descriptors[0].InputGuardrails) != 2 {
		t.Errorf("triage guardrails = %v, want 2 entries", descriptors[0].InputGuardrails)
	}
	if len(descriptors[2].Tools) == 0 {
		t.Error("networking agent should expose tools")
	}
}

func TestInstructionsUseContext(t *testing.T) {
	agent := Triage("Business Conference 2025")

	got := agent.Instructions(domainContext("Alice", "GopherCon"))
	if !contains(got, "Alice") || !contains(got, "GopherCon") {
		t.Errorf("instructions missing context values: %q", got)
	}

	got = agent.Instructions(domainContext("", ""))
	if !contains(got, "Attendee") || !contains(got, "Business Conference 2025") {
		t.Errorf("instructions missing defaults: %q", got)
	}
}
