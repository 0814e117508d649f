package agents

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
	"github.com/dkovchenko/conference-assistant/pkg/guardrails"
)

const (
	TriageAgentName     = "Triage Agent"
	ScheduleAgentName   = "Schedule Agent"
	NetworkingAgentName = "Networking Agent"
)

// Agent is a static agent definition: its instructions depend only on the
// conversation context, its tools are resolved by name at dispatch time.
type Agent struct {
	Name               string
	HandoffDescription string
	ToolNames          []string
	Handoffs           []string
	InputGuardrails    []string
	Instructions       func(ctx domain.Context) string
}

func Triage(conferenceName string) Agent {
	return Agent{
		Name:               TriageAgentName,
		HandoffDescription: "Main conference assistant that routes requests to specialized agents.",
		Handoffs:           []string{ScheduleAgentName, NetworkingAgentName},
		InputGuardrails:    []string{guardrails.RelevanceName, guardrails.JailbreakName},
		Instructions: func(ctx domain.Context) string {
			userName, _ := lo.Coalesce(ctx.AttendeeName, "Attendee")
			confName, _ := lo.Coalesce(ctx.ConferenceName, conferenceName)

			return fmt.Sprintf(
				"You are a Conference Assistant for %s. Welcome %s!\n\n"+
					"You help conference attendees with:\n"+
					"1. **Conference Schedule**: Finding sessions, speakers, timings, rooms, and tracks\n"+
					"2. **Networking**: Connecting with other attendees and exploring business opportunities\n"+
					"3. **General Information**: Basic conference details and assistance\n\n"+
					"Keep responses concise and friendly. "+
					"If users ask about non-conference topics, politely redirect them back to conference-related assistance. "+
					"**Do not describe tool usage or agent transfers in your responses.**",
				confName, userName)
		},
	}
}

func Schedule() Agent {
	return Agent{
		Name:               ScheduleAgentName,
		HandoffDescription: "An agent to provide conference schedule information and help find sessions.",
		ToolNames:          []string{"get_conference_schedule"},
		Handoffs:           []string{TriageAgentName},
		Instructions: func(ctx domain.Context) string {
			userName, _ := lo.Coalesce(ctx.AttendeeName, "[unknown]")

			return fmt.Sprintf(
				"You are a Conference Schedule Agent. Help attendees find information about "+
					"conference sessions, speakers, and schedules.\n"+
					"Current user: %s\n"+
					"You can help with:\n"+
					"1. Finding sessions by speaker name, topic, room, track, or date\n"+
					"2. Getting schedule information for specific time periods\n"+
					"3. Providing details about conference rooms and tracks\n"+
					"4. Answering questions about session timings and descriptions\n\n"+
					"Use the get_conference_schedule tool to search for sessions. "+
					"**Do not describe tool usage in your responses.**",
				userName)
		},
	}
}

func Networking() Agent {
	return Agent{
		Name:               NetworkingAgentName,
		HandoffDescription: "An agent to help with networking, finding attendees, and business connections.",
		ToolNames: []string{
			"search_attendees",
			"search_businesses",
			"get_user_businesses",
			"display_business_form",
			"add_business",
			"get_organization_info",
		},
		Handoffs: []string{TriageAgentName},
		Instructions: func(ctx domain.Context) string {
			userName, _ := lo.Coalesce(ctx.AttendeeName, "[unknown]")

			return fmt.Sprintf(
				"You are a Networking Agent. Help attendees connect with other participants "+
					"and explore business opportunities.\n"+
					"Current user: %s\n"+
					"You can help with:\n"+
					"1. Finding other conference attendees by name or interests\n"+
					"2. Searching for businesses by company name, industry sector, or location\n"+
					"3. Getting information about specific users' businesses\n"+
					"4. Helping users register their own businesses\n"+
					"5. Providing organization information\n\n"+
					"If the user wants to add a business, use display_business_form to show them "+
					"the registration form. **Do not describe tool usage in your responses.**",
				userName)
		},
	}
}

// Descriptors exposes the agent graph the client renders alongside each
// chat response.
func Descriptors(conferenceName string) []domain.AgentDescriptor {
	res := make([]domain.AgentDescriptor, 0, 3)
	for _, a := range []Agent{Triage(conferenceName), Schedule(), Networking()} {
		res = append(res, domain.AgentDescriptor{
			Name:            a.Name,
			Description:     a.HandoffDescription,
			Handoffs:        a.Handoffs,
			Tools:           append([]string{}, a.ToolNames...),
			InputGuardrails: append([]string{}, a.InputGuardrails...),
		})
	}
	return res
}
