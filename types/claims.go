package types

import "time"

// Agent names double as SSE roles, so they stay lowercase.
const (
	AgentMeteorologist = "meteorologist"
	AgentAgronomist    = "agronomist"
	AgentEconomist     = "economist"
	AgentPlanner       = "planner"
)

// Metric names claims are looked up by. Lookup is exact-match.
const (
	MetricTemperatureAvg       = "temperature_avg"
	MetricPrecipitationSum     = "precipitation_sum"
	MetricPrecipitationAnomaly = "precipitation_anomaly"
	MetricCropYieldChange      = "crop_yield_change"
	MetricWaterStressIndex     = "water_stress_index"
	MetricSoilHealthIndex      = "soil_health_index"
	MetricIncomeChange         = "income_change"
	MetricAdaptationCost       = "adaptation_cost"
	MetricEconomicResilience   = "economic_resilience"
	MetricEmploymentImpact     = "employment_impact"
	MetricStrategyScore        = "strategy_score"
	MetricFoodSecurityGain     = "food_security_gain"
	MetricIncomeGain           = "income_gain"
	MetricEmissionsDelta       = "emissions_delta"
	MetricResilienceGain       = "climate_resilience_gain"
)

// Claim is a single quantitative finding an agent stands behind.
type Claim struct {
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// StageOutput is the record one agent appends to the shared state. Once
// appended it is never mutated.
type StageOutput struct {
	Agent           string   `json:"agent"`
	Message         string   `json:"message"`
	Claims          []Claim  `json:"claims"`
	Recommendations []string `json:"recommendations"`
	Timestamp       string   `json:"timestamp"`
}

// Claim returns the value of the first claim matching metric. Nil-safe so
// callers can look up metrics on outputs that may not exist yet.
func (s *StageOutput) Claim(metric string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	for _, c := range s.Claims {
		if c.Metric == metric {
			return c.Value, true
		}
	}
	return 0, false
}

// NowUTC is the timestamp format stages stamp their outputs with.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
