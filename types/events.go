package types

// RoleSystem marks stream frames emitted by the service itself rather than
// by one of the agents.
const RoleSystem = "system"

// StreamEvent is one data frame of the /analyze SSE stream.
type StreamEvent struct {
	Role            string       `json:"role"`
	Content         string       `json:"content"`
	Claims          []Claim      `json:"claims,omitempty"`
	Recommendations []string     `json:"recommendations,omitempty"`
	Strategy        *Strategy    `json:"strategy,omitempty"`
	Impact          *ImpactDelta `json:"impact,omitempty"`
	RunID           string       `json:"run_id,omitempty"`
	Error           bool         `json:"error,omitempty"`
}

// Event converts a stage output into its stream frame.
func (s *StageOutput) Event() StreamEvent {
	return StreamEvent{
		Role:            s.Agent,
		Content:         s.Message,
		Claims:          s.Claims,
		Recommendations: s.Recommendations,
	}
}
