package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-scds/types"
)

func droughtInputs() Inputs {
	return Inputs{
		Location:   types.Location{Lat: -1.366, Lng: 38.016, Name: "Kitui County"},
		Priorities: types.Priorities{Economic: 40, Environmental: 35, Social: 25},
		Climate: types.ClimateSignal{
			TemperatureAvg:       29.0,
			PrecipitationSum:     120.0,
			PrecipitationAnomaly: -30.0,
			ExtremeWeatherRisk:   types.RiskHigh,
		},
		YieldChange:    -20.0,
		WaterStress:    0.6,
		SoilHealth:     0.35,
		IncomeChange:   -12.0,
		AdaptationCost: 120000.0,
		Resilience:     0.32,
		Upstream: [][]string{
			{"Prepare for prolonged dry spell conditions across the growing season"},
			{"Switch 30% of maize area to sorghum", "Adopt water harvesting structures"},
			{"Expand access to seasonal credit"},
		},
	}
}

func moderateInputs() Inputs {
	return Inputs{
		Location:   types.Location{Lat: -1.286, Lng: 36.817, Name: "Nairobi Fringe"},
		Priorities: types.Priorities{Economic: 30, Environmental: 50, Social: 20},
		Climate: types.ClimateSignal{
			TemperatureAvg:       24.0,
			PrecipitationSum:     180.0,
			PrecipitationAnomaly: -5.0,
			ExtremeWeatherRisk:   types.RiskMedium,
		},
		YieldChange:    -5.0,
		WaterStress:    0.25,
		SoilHealth:     0.6,
		IncomeChange:   4.0,
		AdaptationCost: 25000.0,
		Resilience:     0.68,
		Upstream: [][]string{
			{"Monitor weekly forecasts and stage planting across two windows"},
			{"Maintain current rotation with cover crops"},
			{"Hold a small contingency fund"},
		},
	}
}

func mixSum(mix map[string]float64) float64 {
	sum := 0.0
	for _, share := range mix {
		sum += share
	}
	return sum
}

func TestSynthesizeDroughtScenario(t *testing.T) {
	res := Synthesize(droughtInputs())

	mix := res.Strategy.CropMix
	assert.InDelta(t, 0.225, mix[CropMaize], 1e-9)
	assert.InDelta(t, 0.405, mix[CropSorghum], 1e-9)
	assert.InDelta(t, 0.27, mix[CropLegumes], 1e-9)
	assert.InDelta(t, 0.1, mix[CropCashCrops], 1e-9)
	assert.InDelta(t, 1.0, mixSum(mix), 1e-9)

	assert.True(t, res.Strategy.Irrigation)
	assert.True(t, res.Strategy.WaterHarvesting)
	assert.True(t, res.Strategy.SoilImprovements)
	assert.Equal(t, types.TimelineImmediate, res.Strategy.AdaptationTimeline)
	assert.Equal(t, types.FinancingPhased, res.Strategy.FinancingFocus)

	assert.InDelta(t, 0.254, res.Impact.Food, 1e-9)
	assert.InDelta(t, 0.25, res.Impact.Income, 1e-9)
	assert.InDelta(t, -0.031, res.Impact.Emissions, 1e-9)
	assert.InDelta(t, -0.28, res.Impact.Risk, 1e-9)
	assert.InDelta(t, 84.7, res.Score, 1e-9)
}

func TestSynthesizeModerateScenario(t *testing.T) {
	res := Synthesize(moderateInputs())

	mix := res.Strategy.CropMix
	assert.InDelta(t, 0.428, mix[CropMaize], 1e-9)
	assert.InDelta(t, 0.332, mix[CropSorghum], 1e-9)
	assert.InDelta(t, 0.19, mix[CropLegumes], 1e-9)
	assert.InDelta(t, 0.05, mix[CropCashCrops], 1e-9)
	assert.InDelta(t, 1.0, mixSum(mix), 1e-9)

	assert.False(t, res.Strategy.Irrigation)
	// environmental weight 0.5 forces both conservation flags on
	assert.True(t, res.Strategy.WaterHarvesting)
	assert.True(t, res.Strategy.SoilImprovements)
	assert.Equal(t, types.TimelineShortTerm, res.Strategy.AdaptationTimeline)
	assert.Equal(t, types.FinancingExisting, res.Strategy.FinancingFocus)

	assert.InDelta(t, 0.08, res.Impact.Food, 1e-9)
	assert.InDelta(t, 0.12, res.Impact.Income, 1e-9)
	assert.InDelta(t, -0.068, res.Impact.Emissions, 1e-9)
	assert.InDelta(t, -0.12, res.Impact.Risk, 1e-9)
	assert.LessOrEqual(t, res.Impact.Emissions, 0.0)
	assert.InDelta(t, 69.1, res.Score, 1e-9)
}

func TestSynthesizeCostOverridesIncomeFinancing(t *testing.T) {
	// negative income normally asks to stabilize incomes, but a heavy
	// adaptation bill wins
	in := droughtInputs()
	require.Negative(t, in.IncomeChange)
	require.Greater(t, in.AdaptationCost, 90000.0)
	res := Synthesize(in)
	assert.Equal(t, types.FinancingPhased, res.Strategy.FinancingFocus)

	in.AdaptationCost = 60000.0
	res = Synthesize(in)
	assert.Equal(t, types.FinancingStabilize, res.Strategy.FinancingFocus)

	in.AdaptationCost = 30000.0
	res = Synthesize(in)
	assert.Equal(t, types.FinancingExisting, res.Strategy.FinancingFocus)
}

func TestSynthesizeZeroPrioritiesScoresBaseline(t *testing.T) {
	in := droughtInputs()
	in.Priorities = types.Priorities{}
	res := Synthesize(in)

	assert.InDelta(t, 55.0, res.Score, 1e-9)
	assert.InDelta(t, 1.0, mixSum(res.Strategy.CropMix), 1e-9)
}

func TestSynthesizeBoundsHoldAcrossInputs(t *testing.T) {
	risks := []types.RiskLevel{types.RiskLow, types.RiskMedium, types.RiskHigh}
	anomalies := []float64{-35, 0, 40}
	stresses := []float64{0.2, 0.5, 0.7}
	soils := []float64{0.3, 0.6}
	incomes := []float64{-10, 5}
	costs := []float64{20000, 60000, 120000}

	for _, risk := range risks {
		for _, anomaly := range anomalies {
			for _, stress := range stresses {
				for _, soil := range soils {
					for _, income := range incomes {
						for _, cost := range costs {
							in := droughtInputs()
							in.Climate.ExtremeWeatherRisk = risk
							in.Climate.PrecipitationAnomaly = anomaly
							in.WaterStress = stress
							in.SoilHealth = soil
							in.IncomeChange = income
							in.AdaptationCost = cost

							res := Synthesize(in)

							assert.InDelta(t, 1.0, mixSum(res.Strategy.CropMix), 1e-9)
							for crop, share := range res.Strategy.CropMix {
								assert.GreaterOrEqual(t, share, 0.0, "share for %s", crop)
							}
							assert.GreaterOrEqual(t, res.Impact.Food, 0.0)
							assert.LessOrEqual(t, res.Impact.Food, 0.35)
							assert.GreaterOrEqual(t, res.Impact.Income, 0.0)
							assert.LessOrEqual(t, res.Impact.Income, 0.25)
							assert.GreaterOrEqual(t, res.Impact.Emissions, -0.15)
							assert.LessOrEqual(t, res.Impact.Emissions, 0.1)
							assert.GreaterOrEqual(t, res.Impact.Risk, -0.35)
							assert.LessOrEqual(t, res.Impact.Risk, 0.0)
							assert.GreaterOrEqual(t, res.Score, 0.0)
							assert.LessOrEqual(t, res.Score, 100.0)
						}
					}
				}
			}
		}
	}
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	first := Synthesize(droughtInputs())
	second := Synthesize(droughtInputs())

	require.Equal(t, first.Strategy, second.Strategy)
	require.Equal(t, first.Impact, second.Impact)
	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.Recommendations, second.Recommendations)
	require.Equal(t, first.Message, second.Message)
}

func TestRecommendationsKeepOrderAndMention(t *testing.T) {
	res := Synthesize(droughtInputs())

	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, "Prepare for prolonged dry spell conditions across the growing season", res.Recommendations[0])

	var mentionsMix bool
	for _, rec := range res.Recommendations {
		if strings.Contains(rec, "crop mix") {
			mentionsMix = true
		}
	}
	assert.True(t, mentionsMix, "expected a synthesized crop mix recommendation")
}

func TestMergeRecommendationsDedupesAndCaps(t *testing.T) {
	upstream := [][]string{
		{"a", "b", ""},
		{"b", "c", "d"},
		{"e", "f", "g"},
	}
	merged := mergeRecommendations(upstream, "crop mix summary")

	// seven unique upstream entries would overflow; the cap cuts at six
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, merged)

	short := mergeRecommendations([][]string{{"a"}, {"a"}, {"b"}}, "crop mix summary")
	assert.Equal(t, []string{"a", "b", "crop mix summary"}, short)
}

func TestLeadCropPrefersEarlierOnTies(t *testing.T) {
	mix := []cropShare{
		{CropMaize, 0.4},
		{CropSorghum, 0.4},
		{CropLegumes, 0.15},
		{CropCashCrops, 0.05},
	}
	assert.Equal(t, CropMaize, leadCrop(mix).name)
}

func TestYieldPhraseThresholds(t *testing.T) {
	assert.Equal(t, "stable yields", yieldPhrase(0.0))
	assert.Equal(t, "stable yields", yieldPhrase(-0.5))
	assert.Equal(t, "stable yields", yieldPhrase(0.5))
	assert.Contains(t, yieldPhrase(-12.0), "yield loss")
	assert.Contains(t, yieldPhrase(3.2), "yield gain")
}

func TestMessageNamesLocationAndLeadCrop(t *testing.T) {
	res := Synthesize(droughtInputs())
	assert.Contains(t, res.Message, "Kitui County")
	assert.Contains(t, res.Message, CropSorghum)
	assert.Contains(t, res.Message, "yield loss")

	stable := moderateInputs()
	stable.YieldChange = 0.2
	res = Synthesize(stable)
	assert.Contains(t, res.Message, "Nairobi Fringe")
	assert.Contains(t, res.Message, "stable yields")
}
