package domain

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Message struct {
	Role       string     `json:"-"`
	Agent      string     `json:"agent"`
	Content    string     `json:"content"`
	HTML       string     `json:"html,omitempty"`
	ToolCallID string     `json:"-"`
	ToolName   string     `json:"-"`
	ToolCalls  []ToolCall `json:"-"`
	Timestamp  time.Time  `json:"-"`
}

type Conversation struct {
	ID            string
	AccountNumber string
	CurrentAgent  string
	Context       Context
	Messages      []Message
	Events        []AgentEvent
	LastUpdate    time.Time
}

// Context is the attendee state shared by all agents in a conversation.
type Context struct {
	AttendeeName         string `json:"passenger_name,omitempty"`
	AccountNumber        string `json:"account_number,omitempty"`
	CustomerID           string `json:"customer_id,omitempty"`
	CustomerEmail        string `json:"customer_email,omitempty"`
	IsConferenceAttendee bool   `json:"is_conference_attendee"`
	ConferenceName       string `json:"conference_name,omitempty"`
	CompanyName          string `json:"user_company_name,omitempty"`
	Location             string `json:"user_location,omitempty"`
	RegistrationID       string `json:"user_registration_id,omitempty"`
	ConferencePackage    string `json:"user_conference_package,omitempty"`
	PrimaryStream        string `json:"user_primary_stream,omitempty"`
	SecondaryStream      string `json:"user_secondary_stream,omitempty"`
	OrganizationID       string `json:"organization_id,omitempty"`
}

type CustomerInfo struct {
	Customer Customer `json:"customer"`
	Bookings []any    `json:"bookings"`
}

type Customer struct {
	Name                 string `json:"name"`
	AccountNumber        string `json:"account_number"`
	Email                string `json:"email"`
	IsConferenceAttendee bool   `json:"is_conference_attendee"`
	ConferenceName       string `json:"conference_name"`
}
