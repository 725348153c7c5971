package agents

import "testing"

func TestNewTurnStateQueryExtraction(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		want     string
	}{
		{
			name: "latest user message wins",
			messages: []Message{
				{Text: "first question", IsUser: true},
				{Text: "an answer", IsUser: false},
				{Text: "second question", IsUser: true},
			},
			want: "second question",
		},
		{
			name: "assistant tail skipped",
			messages: []Message{
				{Text: "the question", IsUser: true},
				{Text: "an answer", IsUser: false},
			},
			want: "the question",
		},
		{
			name:     "no user message",
			messages: []Message{{Text: "greeting", IsUser: false}},
			want:     "",
		},
		{
			name:     "empty history",
			messages: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if state := NewTurnState(tt.messages, nil); state.Query != tt.want {
				t.Errorf("Query = %q, want %q", state.Query, tt.want)
			}
		})
	}
}

func TestMergeContextDoesNotTouchInput(t *testing.T) {
	original := map[string]interface{}{"a": "1"}
	state := NewTurnState(nil, original)

	state.MergeContext(map[string]interface{}{"a": "2", "b": "3"})

	if original["a"] != "1" {
		t.Errorf("input context mutated: %v", original)
	}
	if state.UpdatedContext["a"] != "2" || state.UpdatedContext["b"] != "3" {
		t.Errorf("UpdatedContext = %v, want merged values", state.UpdatedContext)
	}
	if state.ContextString("b") != "3" {
		t.Errorf("ContextString(b) = %q, want %q", state.ContextString("b"), "3")
	}
}

func TestAddConsultedKeepsOrderAndUniqueness(t *testing.T) {
	state := NewTurnState(nil, nil)
	state.AddConsulted("policy")
	state.AddConsulted("account")
	state.AddConsulted("policy")

	if len(state.ConsultedAgents) != 2 {
		t.Fatalf("ConsultedAgents = %v, want two entries", state.ConsultedAgents)
	}
	if state.ConsultedAgents[0] != "policy" || state.ConsultedAgents[1] != "account" {
		t.Errorf("ConsultedAgents = %v, want insertion order", state.ConsultedAgents)
	}
}

func TestPhaseRoundTrip(t *testing.T) {
	state := NewTurnState(nil, nil)
	if state.Phase() != PhaseInitial {
		t.Errorf("Phase = %q, want %q", state.Phase(), PhaseInitial)
	}

	state.SetPhase(PhaseGatheringInfo)
	if state.Phase() != PhaseGatheringInfo {
		t.Errorf("Phase = %q, want %q", state.Phase(), PhaseGatheringInfo)
	}

	state.SetPhase(PhaseCompleted)
	if state.Phase() != PhaseCompleted {
		t.Errorf("Phase = %q, want %q", state.Phase(), PhaseCompleted)
	}
}

func TestPhaseUnknownValueDefaultsToInitial(t *testing.T) {
	state := NewTurnState(nil, map[string]interface{}{"escalation_phase": "bogus"})
	if state.Phase() != PhaseInitial {
		t.Errorf("Phase = %q, want %q", state.Phase(), PhaseInitial)
	}
}
