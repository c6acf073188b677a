package types

// Request bounds checked before any agent runs.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinRadiusKm  = 10.0
	MaxRadiusKm  = 200.0
	MinPriority  = 0.0
	MaxPriority  = 100.0
)

// Location is the point the analysis is centered on.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// Priorities weight the strategy toward economic, environmental or social
// outcomes. Each value is 0-100; they do not need to sum to 100.
type Priorities struct {
	Economic      float64 `json:"economic"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
}

// Sum returns the combined weight across the three axes.
func (p Priorities) Sum() float64 {
	return p.Economic + p.Environmental + p.Social
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Location   Location   `json:"location"`
	RadiusKm   float64    `json:"radius"`
	Priorities Priorities `json:"priorities"`
	UserPrompt string     `json:"userPrompt,omitempty"`
}

// Validate checks request bounds and names the first offending field.
func (r AnalyzeRequest) Validate() error {
	if r.Location.Lat < MinLatitude || r.Location.Lat > MaxLatitude {
		return &ValidationError{Field: "location.lat", Reason: "must be between -90 and 90"}
	}
	if r.Location.Lng < MinLongitude || r.Location.Lng > MaxLongitude {
		return &ValidationError{Field: "location.lng", Reason: "must be between -180 and 180"}
	}
	if r.RadiusKm < MinRadiusKm || r.RadiusKm > MaxRadiusKm {
		return &ValidationError{Field: "radius", Reason: "must be between 10 and 200 km"}
	}
	if !priorityInRange(r.Priorities.Economic) {
		return &ValidationError{Field: "priorities.economic", Reason: "must be between 0 and 100"}
	}
	if !priorityInRange(r.Priorities.Environmental) {
		return &ValidationError{Field: "priorities.environmental", Reason: "must be between 0 and 100"}
	}
	if !priorityInRange(r.Priorities.Social) {
		return &ValidationError{Field: "priorities.social", Reason: "must be between 0 and 100"}
	}
	return nil
}

func priorityInRange(v float64) bool {
	return v >= MinPriority && v <= MaxPriority
}
