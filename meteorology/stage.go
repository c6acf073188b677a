package meteorology

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-scds/llm"
	"go-scds/types"
	"go-scds/weather"
)

// confidence attached to each derived metric
const (
	confTemperature = 0.95
	confPrecipSum   = 0.93
	confAnomaly     = 0.72
)

// Stage is the first pipeline agent. It turns raw daily history into the
// shared climate signal and narrates what the numbers mean.
type Stage struct {
	history   weather.HistoryProvider
	generator llm.Generator
}

func NewStage(history weather.HistoryProvider, generator llm.Generator) *Stage {
	return &Stage{history: history, generator: generator}
}

func (s *Stage) Name() string { return types.AgentMeteorologist }

// Analyze derives the climate signal. A failed history fetch degrades to the
// fixed fallback signal; a failed narration fails the stage.
func (s *Stage) Analyze(ctx context.Context, st types.State) (types.Update, error) {
	var signal types.ClimateSignal

	series, err := s.history.FetchDailyHistory(ctx, st.Location.Lat, st.Location.Lng)
	if err != nil {
		log.Warn().
			Err(err).
			Str("location", st.Location.Name).
			Msg("daily history unavailable, using fallback signal")
		signal = FallbackSignal()
	} else {
		signal = DeriveSignal(series)
	}

	message, err := s.generator.Generate(ctx, narrativeRequest(st, signal))
	if err != nil {
		return types.Update{}, err
	}

	output := &types.StageOutput{
		Agent:   types.AgentMeteorologist,
		Message: message,
		Claims: []types.Claim{
			{Metric: types.MetricTemperatureAvg, Value: signal.TemperatureAvg, Unit: "C", Confidence: confTemperature},
			{Metric: types.MetricPrecipitationSum, Value: signal.PrecipitationSum, Unit: "mm", Confidence: confPrecipSum},
			{Metric: types.MetricPrecipitationAnomaly, Value: signal.PrecipitationAnomaly, Unit: "%", Confidence: confAnomaly},
		},
		Recommendations: weatherRecommendations(signal),
		Timestamp:       types.NowUTC(),
	}

	return types.Update{Climate: &signal, Output: output}, nil
}

// weatherRecommendations gives the planner one weather-facing action to
// merge into the final list.
func weatherRecommendations(signal types.ClimateSignal) []string {
	switch {
	case signal.ExtremeWeatherRisk == types.RiskHigh && signal.PrecipitationAnomaly < 0:
		return []string{"Prepare for prolonged dry spell conditions across the growing season"}
	case signal.ExtremeWeatherRisk == types.RiskHigh:
		return []string{"Prepare for intense rainfall events; check field drainage before the peak weeks"}
	case signal.ExtremeWeatherRisk == types.RiskMedium:
		return []string{"Monitor weekly forecasts and keep contingency plans staged"}
	default:
		return []string{"Conditions track seasonal norms; follow the regular planting calendar"}
	}
}

func narrativeRequest(st types.State, signal types.ClimateSignal) llm.Request {
	user := fmt.Sprintf(
		"Region: %s (lat %.2f, lng %.2f), radius %.0f km.\n"+
			"Last 90 days: average temperature %.1f C, total rainfall %.1f mm, "+
			"precipitation anomaly %.1f%% versus the seasonal baseline, extreme weather risk %s.\n",
		st.Location.Name, st.Location.Lat, st.Location.Lng, st.RadiusKm,
		signal.TemperatureAvg, signal.PrecipitationSum, signal.PrecipitationAnomaly,
		signal.ExtremeWeatherRisk,
	)
	if st.UserPrompt != "" {
		user += fmt.Sprintf("Context from the requester: %s\n", st.UserPrompt)
	}
	user += "Explain in 2-3 sentences what this weather picture means for smallholder farms in the region."

	return llm.Request{
		System: "You are a meteorologist on a climate adaptation team advising smallholder farming regions. Be concrete and avoid hedging.",
		User:   user,
		Summary: fmt.Sprintf(
			"Over the last 90 days %s averaged %.1f C with %.1f mm of rain, %.1f%% versus the seasonal baseline; extreme weather risk is %s.",
			st.Location.Name, signal.TemperatureAvg, signal.PrecipitationSum,
			signal.PrecipitationAnomaly, signal.ExtremeWeatherRisk,
		),
	}
}
