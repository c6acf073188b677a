package types

type Timeline string

const (
	TimelineImmediate Timeline = "immediate"
	TimelineShortTerm Timeline = "short-term"
	TimelineMultiYear Timeline = "2-3 years"
)

type Financing string

const (
	FinancingBalanced  Financing = "balanced"
	FinancingStabilize Financing = "stabilize incomes"
	FinancingPhased    Financing = "phase investments"
	FinancingExisting  Financing = "leverage existing budgets"
)

// Strategy is the planner's synthesized adaptation plan.
type Strategy struct {
	CropMix            map[string]float64 `json:"crop_mix"` // shares, sum to 1.0
	Irrigation         bool               `json:"irrigation"`
	WaterHarvesting    bool               `json:"water_harvesting"`
	SoilImprovements   bool               `json:"soil_improvements"`
	AdaptationTimeline Timeline           `json:"adaptation_timeline"`
	FinancingFocus     Financing          `json:"financing_focus"`
}

// ImpactDelta estimates how the strategy moves four outcomes, as signed
// fractions of the baseline.
type ImpactDelta struct {
	Food      float64 `json:"food"`      // 0 to 0.35
	Income    float64 `json:"income"`    // 0 to 0.25
	Emissions float64 `json:"emissions"` // -0.15 to 0.1
	Risk      float64 `json:"risk"`      // -0.35 to 0, negative is safer
}
