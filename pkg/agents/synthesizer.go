package agents

import (
	"fmt"
	"strings"
)

const maxFollowUps = 6

// Synthesizer merges the primary response with any secondary responses
// into one final answer.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize writes the combined text and merged follow-ups onto the
// state. The primary's text always leads; secondary texts follow in a
// delimited block labeled per agent.
func (s *Synthesizer) Synthesize(state *TurnState) {
	primaryText := ""
	var primaryFollowUps []string
	if state.PrimaryResponse != nil {
		primaryText = state.PrimaryResponse.Text
		primaryFollowUps = state.PrimaryResponse.FollowUpOptions
	}

	var b strings.Builder
	b.WriteString(primaryText)

	if len(state.SecondaryResponses) > 0 {
		b.WriteString("\n\n---\n\n**Additional Information:**\n\n")
		for _, sec := range state.SecondaryResponses {
			b.WriteString(fmt.Sprintf("**From %s:**\n%s\n\n", sec.Response.AgentName, sec.Response.Text))
		}
	}

	followUps := primaryFollowUps
	for _, sec := range state.SecondaryResponses {
		followUps = append(followUps, sec.Response.FollowUpOptions...)
	}

	state.FinalResponse = strings.TrimRight(b.String(), "\n")
	state.FollowUpOptions = MergeFollowUps(followUps)
}

// MergeFollowUps de-duplicates by exact match, keeps first occurrence
// order, and caps the list at six suggestions.
func MergeFollowUps(options []string) []string {
	seen := map[string]bool{}
	var unique []string
	for _, opt := range options {
		if seen[opt] {
			continue
		}
		seen[opt] = true
		unique = append(unique, opt)
		if len(unique) == maxFollowUps {
			break
		}
	}
	return unique
}
