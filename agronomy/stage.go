package agronomy

import (
	"context"
	"fmt"

	"go-scds/llm"
	"go-scds/types"
)

const (
	confYield  = 0.80
	confStress = 0.75
	confSoil   = 0.70
)

// Stage is the second pipeline agent. It reads the climate signal and
// projects what the season does to crops, water and soil.
type Stage struct {
	generator llm.Generator
}

func NewStage(generator llm.Generator) *Stage {
	return &Stage{generator: generator}
}

func (s *Stage) Name() string { return types.AgentAgronomist }

func (s *Stage) Analyze(ctx context.Context, st types.State) (types.Update, error) {
	if st.Climate == nil {
		return types.Update{}, &types.MissingDependencyError{
			Stage:   types.AgentAgronomist,
			Missing: "climate signal",
		}
	}
	climate := *st.Climate

	yield := YieldImpact(climate.PrecipitationAnomaly, climate.TemperatureAvg)
	stress := WaterStress(climate.PrecipitationAnomaly)
	soil := SoilHealth(climate.PrecipitationAnomaly, stress, climate.ExtremeWeatherRisk)

	message, err := s.generator.Generate(ctx, narrativeRequest(st, climate, yield, stress, soil))
	if err != nil {
		return types.Update{}, err
	}

	output := &types.StageOutput{
		Agent:   types.AgentAgronomist,
		Message: message,
		Claims: []types.Claim{
			{Metric: types.MetricCropYieldChange, Value: yield, Unit: "%", Confidence: confYield},
			{Metric: types.MetricWaterStressIndex, Value: stress, Unit: "index", Confidence: confStress},
			{Metric: types.MetricSoilHealthIndex, Value: soil, Unit: "index", Confidence: confSoil},
		},
		Recommendations: Recommendations(climate.PrecipitationAnomaly, climate.ExtremeWeatherRisk),
		Timestamp:       types.NowUTC(),
	}

	return types.Update{Output: output}, nil
}

func narrativeRequest(st types.State, climate types.ClimateSignal, yield, stress, soil float64) llm.Request {
	user := fmt.Sprintf(
		"Region: %s, radius %.0f km.\n"+
			"Climate: %.1f C average, precipitation anomaly %.1f%%, extreme weather risk %s.\n"+
			"Computed impacts: crop yield change %.1f%%, Water Stress Index %.2f, Soil Health Index %.2f.\n",
		st.Location.Name, st.RadiusKm,
		climate.TemperatureAvg, climate.PrecipitationAnomaly, climate.ExtremeWeatherRisk,
		yield, stress, soil,
	)
	if st.UserPrompt != "" {
		user += fmt.Sprintf("Context from the requester: %s\n", st.UserPrompt)
	}
	user += "In 2-3 sentences, explain what these numbers mean for planting decisions this season."

	return llm.Request{
		System: "You are an agronomist on a climate adaptation team advising smallholder farming regions. Ground every statement in the numbers you are given.",
		User:   user,
		Summary: fmt.Sprintf(
			"Yields in %s are projected to move %.1f%% with water stress at %.2f and soil health at %.2f.",
			st.Location.Name, yield, stress, soil,
		),
	}
}
