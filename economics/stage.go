package economics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-scds/llm"
	"go-scds/types"
)

const (
	confIncome     = 0.75
	confCost       = 0.72
	confResilience = 0.65
	confEmployment = 0.70
)

// Stage is the third pipeline agent. It prices the agronomic outlook:
// income, adaptation cost, resilience and employment.
type Stage struct {
	generator llm.Generator
}

func NewStage(generator llm.Generator) *Stage {
	return &Stage{generator: generator}
}

func (s *Stage) Name() string { return types.AgentEconomist }

func (s *Stage) Analyze(ctx context.Context, st types.State) (types.Update, error) {
	if st.Climate == nil {
		return types.Update{}, &types.MissingDependencyError{
			Stage:   types.AgentEconomist,
			Missing: "climate signal",
		}
	}
	if st.Agronomist == nil {
		return types.Update{}, &types.MissingDependencyError{
			Stage:   types.AgentEconomist,
			Missing: "agronomist output",
		}
	}

	yield, ok := st.Agronomist.Claim(types.MetricCropYieldChange)
	if !ok {
		log.Debug().
			Str("stage", types.AgentEconomist).
			Str("metric", types.MetricCropYieldChange).
			Msg("claim missing, defaulting to 0")
		yield = 0
	}

	income := IncomeChange(yield)
	cost := AdaptationCost(st.RadiusKm, st.Climate.ExtremeWeatherRisk)
	resilience := Resilience(income, cost)
	employment := EmploymentImpact(income, st.Priorities.Economic)

	message, err := s.generator.Generate(ctx, narrativeRequest(st, income, cost, resilience, employment))
	if err != nil {
		return types.Update{}, err
	}

	output := &types.StageOutput{
		Agent:   types.AgentEconomist,
		Message: message,
		Claims: []types.Claim{
			{Metric: types.MetricIncomeChange, Value: income, Unit: "%", Confidence: confIncome},
			{Metric: types.MetricAdaptationCost, Value: cost, Unit: "USD", Confidence: confCost},
			{Metric: types.MetricEconomicResilience, Value: resilience, Unit: "index", Confidence: confResilience},
			{Metric: types.MetricEmploymentImpact, Value: employment, Unit: "%", Confidence: confEmployment},
		},
		Recommendations: Recommendations(income, cost, resilience, employment, st.Priorities.Economic),
		Timestamp:       types.NowUTC(),
	}

	return types.Update{Output: output}, nil
}

func narrativeRequest(st types.State, income, cost, resilience, employment float64) llm.Request {
	user := fmt.Sprintf(
		"Region: %s, radius %.0f km, economic priority weight %.0f/100.\n"+
			"Computed economics: income change %.2f%%, adaptation cost %.0f USD, "+
			"economic resilience %.2f, employment impact %.2f%%.\n",
		st.Location.Name, st.RadiusKm, st.Priorities.Economic,
		income, cost, resilience, employment,
	)
	if st.UserPrompt != "" {
		user += fmt.Sprintf("Context from the requester: %s\n", st.UserPrompt)
	}
	user += "In 2-3 sentences, explain what these figures mean for household budgets and county financing."

	return llm.Request{
		System: "You are an agricultural economist on a climate adaptation team. Speak to budget owners in plain terms.",
		User:   user,
		Summary: fmt.Sprintf(
			"Household incomes in %s are projected to shift %.2f%% against an adaptation bill near %.0f USD; resilience sits at %.2f.",
			st.Location.Name, income, cost, resilience,
		),
	}
}
