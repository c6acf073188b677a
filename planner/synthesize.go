package planner

import (
	"fmt"
	"math"

	"go-scds/types"
)

// Crop names in the strategy mix. Slice order matters: normalization rounds
// every share except the last and hands the last the residual, which is what
// keeps the mix summing to exactly 1.0.
const (
	CropMaize     = "maize"
	CropSorghum   = "sorghum"
	CropLegumes   = "legumes"
	CropCashCrops = "cash_crops"
)

const (
	baseScore = 55.0

	foodGainCap   = 0.35
	incomeGainCap = 0.25
	emissionsMin  = -0.15
	emissionsMax  = 0.10
	riskReliefCap = 0.35

	maxRecommendations = 6
)

type cropShare struct {
	name  string
	share float64
}

// Inputs carries everything the synthesizer reads. Numeric fields must
// already be resolved; the stage defaults missing upstream claims before
// building this.
type Inputs struct {
	Location   types.Location
	Priorities types.Priorities
	Climate    types.ClimateSignal

	YieldChange    float64
	WaterStress    float64
	SoilHealth     float64
	IncomeChange   float64
	AdaptationCost float64
	Resilience     float64

	Upstream [][]string // recommendation lists in pipeline order
}

// Result is the full synthesis product.
type Result struct {
	Strategy        types.Strategy
	Impact          types.ImpactDelta
	Score           float64
	Recommendations []string
	Message         string
}

// Synthesize turns upstream findings and priority weights into an adaptation
// strategy. It is a pure function: identical inputs yield identical output,
// message included.
func Synthesize(in Inputs) Result {
	w := weights(in.Priorities)
	severity := math.Max(0, -in.Climate.PrecipitationAnomaly)

	mix := []cropShare{
		{CropMaize, 0.45},
		{CropSorghum, 0.35},
		{CropLegumes, 0.20},
	}
	strategy := types.Strategy{FinancingFocus: types.FinancingBalanced}

	if severity > 20 || in.WaterStress >= 0.45 {
		mix[0].share -= 0.15
		mix[1].share += 0.10
		mix[2].share += 0.05
		strategy.WaterHarvesting = true
	}
	if in.SoilHealth < 0.4 {
		mix[2].share += 0.05
		mix[0].share -= 0.05
		strategy.SoilImprovements = true
	}

	scale, cashShare := 0.95, 0.05
	if in.IncomeChange < 0 {
		scale, cashShare = 0.90, 0.10
		strategy.FinancingFocus = types.FinancingStabilize
	}
	for i := range mix {
		mix[i].share *= scale
	}
	mix = append(mix, cropShare{CropCashCrops, cashShare})

	switch {
	case in.Climate.ExtremeWeatherRisk == types.RiskHigh || in.WaterStress > 0.6 || in.Resilience < 0.35:
		strategy.Irrigation = true
		strategy.AdaptationTimeline = types.TimelineImmediate
	case in.Climate.ExtremeWeatherRisk == types.RiskMedium:
		strategy.AdaptationTimeline = types.TimelineShortTerm
	default:
		strategy.AdaptationTimeline = types.TimelineMultiYear
	}

	if w.environmental > 0.45 {
		strategy.SoilImprovements = true
		strategy.WaterHarvesting = true
	}
	if w.economic > 0.45 && in.IncomeChange < 0 {
		strategy.Irrigation = true
	}
	switch {
	case in.AdaptationCost > 90000:
		strategy.FinancingFocus = types.FinancingPhased
	case in.AdaptationCost < 40000:
		strategy.FinancingFocus = types.FinancingExisting
	}

	normalizeShares(mix)
	strategy.CropMix = make(map[string]float64, len(mix))
	for _, c := range mix {
		strategy.CropMix[c.name] = c.share
	}

	impact := impactDelta(in, strategy, mix, severity)

	return Result{
		Strategy:        strategy,
		Impact:          impact,
		Score:           strategyScore(impact, w),
		Recommendations: mergeRecommendations(in.Upstream, synthesisSummary(mix)),
		Message:         composeMessage(in, strategy, impact, mix),
	}
}

type weightSet struct {
	economic      float64
	environmental float64
	social        float64
	food          float64
}

func weights(p types.Priorities) weightSet {
	total := math.Max(1, p.Sum())
	return weightSet{
		economic:      p.Economic / total,
		environmental: p.Environmental / total,
		social:        p.Social / total,
		food:          (p.Environmental*0.6 + p.Social*0.4) / total,
	}
}

// normalizeShares rescales the mix to proportions, rounds all but the last
// entry to three decimals and assigns the last the residual so the shares
// sum to exactly 1.0.
func normalizeShares(mix []cropShare) {
	total := 0.0
	for _, c := range mix {
		total += c.share
	}
	for i := range mix {
		mix[i].share /= total
	}
	rounded := 0.0
	for i := 0; i < len(mix)-1; i++ {
		mix[i].share = round3(mix[i].share)
		rounded += mix[i].share
	}
	mix[len(mix)-1].share = 1 - rounded
}

func impactDelta(in Inputs, s types.Strategy, mix []cropShare, severity float64) types.ImpactDelta {
	sorghum := mix[1].share
	legumes := mix[2].share
	cash := mix[3].share

	food := 0.0
	if s.Irrigation {
		food += 0.12
	}
	if sorghum >= 0.35 {
		food += 0.05
	}
	if s.SoilImprovements {
		food += 0.04
	}
	if s.WaterHarvesting {
		food += 0.03
	}
	food += legumes * 0.05

	var income float64
	if in.IncomeChange < 0 {
		income = math.Min(0.18, math.Abs(in.IncomeChange)*0.6)
	} else {
		income = math.Min(0.10, in.IncomeChange*0.3)
	}
	income += math.Min(0.05, cash*0.4)
	if s.Irrigation {
		income += 0.05
	}

	emissions := 0.0
	if s.Irrigation {
		emissions += 0.04
	}
	if s.SoilImprovements {
		emissions -= 0.05
	}
	emissions += legumes * -0.04
	if s.WaterHarvesting {
		emissions -= 0.01
	}

	relief := 0.0
	if severity > 20 {
		relief += 0.05
	}
	if sorghum > 0.3 {
		relief += 0.08
	}
	if s.Irrigation {
		relief += 0.06
	}
	if in.SoilHealth < 0.4 && s.SoilImprovements {
		relief += 0.05
	}
	if s.WaterHarvesting {
		relief += 0.04
	}

	return types.ImpactDelta{
		Food:      round3(math.Min(food, foodGainCap)),
		Income:    round3(math.Min(income, incomeGainCap)),
		Emissions: round3(clamp(emissions, emissionsMin, emissionsMax)),
		Risk:      round3(-math.Min(relief, riskReliefCap)),
	}
}

// strategyScore grades the plan 0-100. Food security leans on environmental
// and social weight, income on economic, emissions on environmental, risk
// relief on social.
func strategyScore(impact types.ImpactDelta, w weightSet) float64 {
	score := baseScore +
		impact.Food*100*w.food*1.2 +
		impact.Income*100*w.economic*1.0 +
		-impact.Emissions*100*w.environmental*1.1 +
		-impact.Risk*100*w.social*1.3
	return round1(clamp(score, 0, 100))
}

// mergeRecommendations folds the upstream lists into one deduplicated list,
// first occurrence wins, capped at maxRecommendations.
func mergeRecommendations(upstream [][]string, synthesized string) []string {
	merged := make([]string, 0, maxRecommendations)
	seen := make(map[string]bool)
	for _, list := range upstream {
		for _, rec := range list {
			if rec == "" || seen[rec] {
				continue
			}
			seen[rec] = true
			merged = append(merged, rec)
		}
	}
	if synthesized != "" && !seen[synthesized] {
		merged = append(merged, synthesized)
	}
	if len(merged) > maxRecommendations {
		merged = merged[:maxRecommendations]
	}
	return merged
}

func synthesisSummary(mix []cropShare) string {
	lead := leadCrop(mix)
	return fmt.Sprintf("Rebalance the crop mix toward %s (%.0f%% of planted area).",
		lead.name, lead.share*100)
}

// leadCrop is the largest share; ties keep the earlier entry.
func leadCrop(mix []cropShare) cropShare {
	lead := mix[0]
	for _, c := range mix[1:] {
		if c.share > lead.share {
			lead = c
		}
	}
	return lead
}

// composeMessage renders the closing paragraph. Strategy and impact are
// final by the time it runs, so it only formats.
func composeMessage(in Inputs, s types.Strategy, impact types.ImpactDelta, mix []cropShare) string {
	lead := leadCrop(mix)
	return fmt.Sprintf(
		"Adaptation plan for %s: lead with %s at %.0f%% of the mix given %s. "+
			"Expected shifts: food security %+.0f%%, incomes %+.0f%%, climate risk %.0f%% lower. "+
			"Priority weights applied: economic %.0f, environmental %.0f, social %.0f. "+
			"Timeline %s, financing focus %s.",
		in.Location.Name, lead.name, lead.share*100, yieldPhrase(in.YieldChange),
		impact.Food*100, impact.Income*100, -impact.Risk*100,
		in.Priorities.Economic, in.Priorities.Environmental, in.Priorities.Social,
		s.AdaptationTimeline, s.FinancingFocus,
	)
}

func yieldPhrase(yieldChange float64) string {
	switch {
	case yieldChange < -0.5:
		return fmt.Sprintf("a projected %.1f%% yield loss", -yieldChange)
	case yieldChange > 0.5:
		return fmt.Sprintf("a projected %.1f%% yield gain", yieldChange)
	default:
		return "stable yields"
	}
}

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
