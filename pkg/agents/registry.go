package agents

// Registry holds the closed set of agents in stable registration order.
// Order matters: routing ties resolve to the earliest registered agent.
type Registry struct {
	order        []string
	agents       map[string]Agent
	defaultID    string
	escalationID string
}

func NewRegistry(defaultID, escalationID string) *Registry {
	return &Registry{
		agents:       map[string]Agent{},
		defaultID:    defaultID,
		escalationID: escalationID,
	}
}

func (r *Registry) Register(a Agent) {
	if _, exists := r.agents[a.ID()]; exists {
		return
	}
	r.order = append(r.order, a.ID())
	r.agents[a.ID()] = a
}

func (r *Registry) Get(id string) (Agent, bool) {
	a, ok := r.agents[id]
	return a, ok
}

func (r *Registry) IDs() []string {
	return r.order
}

func (r *Registry) EscalationID() string {
	return r.escalationID
}

// Route selects the primary agent for a turn and records the decision
// on the state.
//
// An already-set escalation flag bypasses capability polling entirely:
// this is the re-entry path of the escalation loop and must be
// deterministic. Otherwise every agent is polled and the strictly
// highest confidence wins; ties keep the first-registered agent. With
// no claimant the default agent takes the turn at 0.5.
func (r *Registry) Route(state *TurnState) string {
	if state.EscalationRequired {
		state.PrimaryAgent = r.escalationID
		state.ActiveAgent = r.escalationID
		state.ConfidenceScore = 1.0
		return r.escalationID
	}

	bestID := ""
	bestConfidence := 0.0
	for _, id := range r.order {
		canHandle, confidence := r.agents[id].CanHandle(state)
		if canHandle && confidence > bestConfidence {
			bestID = id
			bestConfidence = confidence
		}
	}

	if bestID == "" {
		bestID = r.defaultID
		bestConfidence = 0.5
	}

	state.PrimaryAgent = bestID
	state.ActiveAgent = bestID
	state.ConfidenceScore = bestConfidence
	return bestID
}

// Secondaries returns the collaborating agents for a multi-domain turn:
// everyone except the primary and the escalation agent that claims the
// query above 0.5 confidence, in registration order.
func (r *Registry) Secondaries(state *TurnState) []string {
	var secondaries []string
	for _, id := range r.order {
		if id == state.PrimaryAgent || id == r.escalationID {
			continue
		}
		canHandle, confidence := r.agents[id].CanHandle(state)
		if canHandle && confidence > 0.5 {
			secondaries = append(secondaries, id)
		}
	}
	return secondaries
}
