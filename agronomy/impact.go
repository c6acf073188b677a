package agronomy

import (
	"fmt"
	"math"

	"go-scds/types"
)

const (
	baseStress       = 0.2
	surplusStressCap = 0.3 // flooding stresses crops far less than drought
	baseSoilHealth   = 0.7
	stressSoilFactor = 0.35

	// recommendation tiers fire on drought severity = max(0, -anomaly)
	aggressiveSwitchSeverity = 40.0
	moderateSwitchSeverity   = 20.0
	preventativeSeverity     = 10.0
	dripIrrigationSeverity   = 30.0
	waterHarvestingSeverity  = 15.0
	surplusAnomaly           = 30.0

	maxRecommendations = 5
)

// YieldImpact maps the precipitation anomaly to an expected yield change in
// percent, then adjusts for the temperature band.
func YieldImpact(anomaly, tempAvg float64) float64 {
	var change float64
	switch {
	case anomaly <= -45:
		change = -25.0
	case anomaly <= -30:
		change = -22.5
	case anomaly <= -15:
		change = -12.5
	case anomaly <= 10:
		change = -2.5
	default:
		change = math.Min(8.0, anomaly*0.2)
	}

	// heat depresses yields; a mild window helps them
	if tempAvg > 30 {
		change -= 5.0
	} else if tempAvg >= 15 && tempAvg <= 25 {
		change += 5.0
	}

	return round1(change)
}

// WaterStress is 0 (none) to 1 (severe). It deepens with drought and
// saturates; surplus rain adds only mild stress.
func WaterStress(anomaly float64) float64 {
	if anomaly < 0 {
		return round2(math.Min(1.0, baseStress+(-anomaly)/100))
	}
	return round2(math.Min(surplusStressCap, baseStress+anomaly/200))
}

// SoilHealth is 0 (degraded) to 1 (healthy) for the season.
func SoilHealth(anomaly, waterStress float64, risk types.RiskLevel) float64 {
	health := baseSoilHealth
	if anomaly < 0 {
		health -= math.Min(0.4, math.Abs(anomaly)/150)
	} else {
		health += math.Min(0.15, anomaly/250)
	}
	health -= waterStress * stressSoilFactor
	health -= riskSoilPenalty(risk)
	return round2(clamp(health, 0, 1))
}

func riskSoilPenalty(risk types.RiskLevel) float64 {
	switch risk {
	case types.RiskHigh:
		return 0.15
	case types.RiskMedium:
		return 0.07
	default:
		return 0
	}
}

// Recommendations builds the field-level advice list. Tiers fire on drought
// severity = max(0, -anomaly); insertion order is what farmers see, so the
// list is never re-sorted.
func Recommendations(anomaly float64, risk types.RiskLevel) []string {
	var recs []string
	severity := math.Max(0, -anomaly)

	// crop switching tier
	if severity > aggressiveSwitchSeverity {
		pct := int(severity * 0.8)
		if pct > 50 {
			pct = 50
		}
		recs = append(recs, fmt.Sprintf("Switch %d%% of maize area to drought-tolerant sorghum and millet this season", pct))
	} else if severity > moderateSwitchSeverity {
		pct := int(severity)
		if pct > 30 {
			pct = 30
		}
		recs = append(recs, fmt.Sprintf("Switch %d%% of maize area to drought-tolerant sorghum", pct))
	} else if severity > preventativeSeverity {
		recs = append(recs, "Favor shorter-maturity maize varieties as a precaution")
	}

	// water management tier, independent of crop switching
	if severity > dripIrrigationSeverity {
		recs = append(recs, "Install drip irrigation on the highest-value plots")
	} else if severity > waterHarvestingSeverity {
		recs = append(recs, "Install water harvesting pits at field edges")
	}

	if anomaly > surplusAnomaly {
		recs = append(recs, "Improve field drainage and plan fungicide applications for the wet spell")
	}

	if risk == types.RiskHigh {
		recs = append(recs, "Diversify into at least three crops to spread climate risk")
		if len(recs) < maxRecommendations {
			recs = append(recs, "Adopt soil conservation practices such as mulching and terracing")
		}
	} else if risk == types.RiskMedium && len(recs) < maxRecommendations {
		recs = append(recs, "Review crop insurance options before the planting window")
	}

	if severity > 10 && severity < 30 && len(recs) < maxRecommendations {
		recs = append(recs, "Shift planting dates to track the delayed rainfall onset")
	}

	if len(recs) < 2 {
		recs = append(recs,
			"Maintain current crop rotation and monitor soil moisture",
			"Keep certified seed reserves for replanting contingencies",
		)
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
