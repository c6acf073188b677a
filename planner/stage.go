package planner

import (
	"context"

	"github.com/rs/zerolog/log"

	"go-scds/types"
)

const (
	confScore          = 0.85
	confFoodGain       = 0.80
	confIncomeGain     = 0.78
	confEmissionsDelta = 0.75
	confResilienceGain = 0.82
)

// claimDefaults are the fallbacks when an upstream claim is absent. Partial
// upstream data degrades the plan, it does not abort it.
var claimDefaults = map[string]float64{
	types.MetricCropYieldChange:    0.0,
	types.MetricWaterStressIndex:   0.25,
	types.MetricSoilHealthIndex:    0.5,
	types.MetricIncomeChange:       0.0,
	types.MetricAdaptationCost:     0.0,
	types.MetricEconomicResilience: 0.5,
}

// Stage is the final pipeline agent. It owns no text generator: strategy,
// impact, score and message are all deterministic functions of upstream
// output, so identical runs produce identical plans.
type Stage struct{}

func NewStage() *Stage { return &Stage{} }

func (s *Stage) Name() string { return types.AgentPlanner }

func (s *Stage) Analyze(_ context.Context, st types.State) (types.Update, error) {
	if st.Climate == nil {
		return types.Update{}, &types.MissingDependencyError{Stage: types.AgentPlanner, Missing: "climate signal"}
	}
	if st.Meteorologist == nil {
		return types.Update{}, &types.MissingDependencyError{Stage: types.AgentPlanner, Missing: "meteorologist output"}
	}
	if st.Agronomist == nil {
		return types.Update{}, &types.MissingDependencyError{Stage: types.AgentPlanner, Missing: "agronomist output"}
	}
	if st.Economist == nil {
		return types.Update{}, &types.MissingDependencyError{Stage: types.AgentPlanner, Missing: "economist output"}
	}

	in := Inputs{
		Location:       st.Location,
		Priorities:     st.Priorities,
		Climate:        *st.Climate,
		YieldChange:    claimOrDefault(st.Agronomist, types.MetricCropYieldChange),
		WaterStress:    claimOrDefault(st.Agronomist, types.MetricWaterStressIndex),
		SoilHealth:     claimOrDefault(st.Agronomist, types.MetricSoilHealthIndex),
		IncomeChange:   claimOrDefault(st.Economist, types.MetricIncomeChange),
		AdaptationCost: claimOrDefault(st.Economist, types.MetricAdaptationCost),
		Resilience:     claimOrDefault(st.Economist, types.MetricEconomicResilience),
		Upstream: [][]string{
			st.Meteorologist.Recommendations,
			st.Agronomist.Recommendations,
			st.Economist.Recommendations,
		},
	}

	res := Synthesize(in)

	output := &types.StageOutput{
		Agent:   types.AgentPlanner,
		Message: res.Message,
		Claims: []types.Claim{
			{Metric: types.MetricStrategyScore, Value: res.Score, Unit: "score", Confidence: confScore},
			{Metric: types.MetricFoodSecurityGain, Value: res.Impact.Food, Unit: "index", Confidence: confFoodGain},
			{Metric: types.MetricIncomeGain, Value: res.Impact.Income, Unit: "index", Confidence: confIncomeGain},
			{Metric: types.MetricEmissionsDelta, Value: res.Impact.Emissions, Unit: "index", Confidence: confEmissionsDelta},
			{Metric: types.MetricResilienceGain, Value: -res.Impact.Risk, Unit: "index", Confidence: confResilienceGain},
		},
		Recommendations: res.Recommendations,
		Timestamp:       types.NowUTC(),
	}

	strategy := res.Strategy
	impact := res.Impact
	return types.Update{Output: output, Strategy: &strategy, Impact: &impact}, nil
}

// claimOrDefault resolves a metric from an upstream output, falling back to
// the documented default when the claim was never made.
func claimOrDefault(out *types.StageOutput, metric string) float64 {
	if v, ok := out.Claim(metric); ok {
		return v
	}
	fallback := claimDefaults[metric]
	log.Debug().
		Str("stage", types.AgentPlanner).
		Str("metric", metric).
		Float64("default", fallback).
		Msg("claim missing, using default")
	return fallback
}
