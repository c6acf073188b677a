package types

// State is the shared pipeline state. Each stage receives a snapshot by
// value and hands back an Update; upstream fields are never edited in place.
type State struct {
	Location   Location
	RadiusKm   float64
	Priorities Priorities
	UserPrompt string

	Climate       *ClimateSignal
	Meteorologist *StageOutput
	Agronomist    *StageOutput
	Economist     *StageOutput
	Planner       *StageOutput
	Strategy      *Strategy
	Impact        *ImpactDelta
}

// NewState seeds pipeline state from a validated request.
func NewState(req AnalyzeRequest) State {
	return State{
		Location:   req.Location,
		RadiusKm:   req.RadiusKm,
		Priorities: req.Priorities,
		UserPrompt: req.UserPrompt,
	}
}

// Update is the partial result a single stage returns to the sequencer.
// Output lands in the slot named by its Agent field.
type Update struct {
	Climate  *ClimateSignal
	Output   *StageOutput
	Strategy *Strategy
	Impact   *ImpactDelta
}

// Apply merges a stage update into a copy of the state and returns it.
func (s State) Apply(u Update) State {
	if u.Climate != nil {
		s.Climate = u.Climate
	}
	if u.Output != nil {
		switch u.Output.Agent {
		case AgentMeteorologist:
			s.Meteorologist = u.Output
		case AgentAgronomist:
			s.Agronomist = u.Output
		case AgentEconomist:
			s.Economist = u.Output
		case AgentPlanner:
			s.Planner = u.Output
		}
	}
	if u.Strategy != nil {
		s.Strategy = u.Strategy
	}
	if u.Impact != nil {
		s.Impact = u.Impact
	}
	return s
}
