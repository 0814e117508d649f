package domain

type User struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	AccountNumber        string `json:"account_number"`
	RegistrationID       string `json:"registration_id"`
	Company              string `json:"company,omitempty"`
	Location             string `json:"location,omitempty"`
	PrimaryStream        string `json:"primary_stream,omitempty"`
	SecondaryStream      string `json:"secondary_stream,omitempty"`
	ConferencePackage    string `json:"conference_package,omitempty"`
	IsConferenceAttendee bool   `json:"is_conference_attendee"`
	ConferenceName       string `json:"conference_name,omitempty"`
}
