package economics

import (
	"math"

	"go-scds/types"
)

const (
	incomeRatioLoss = 0.75 // losses pass through to income harder than gains
	incomeRatioGain = 0.65
	priceVolatility = 0.15 // split 40/60 between cushioning losses and dampening gains

	hectaresPerSqKm   = 100.0
	contingencyFactor = 1.1

	costResilienceScale = 250_000_000.0

	// financing advice fires when an index crosses these lines
	creditLineIncome    = -5.0
	phasedInvestCost    = 50_000_000.0
	subsidyResilience   = 0.4
	publicWorksJobs     = -2.0
	budgetFirstPriority = 70.0
)

// IncomeChange maps a yield change (%) to a household income change (%).
func IncomeChange(yieldChange float64) float64 {
	base := incomeRatioGain
	if yieldChange < 0 {
		base = incomeRatioLoss
	}
	income := base * yieldChange

	// market prices move against volume: shortage prices cushion a loss,
	// glut prices dampen a gain
	if income < 0 {
		income *= 1 + priceVolatility*0.4
	} else {
		income *= 1 - priceVolatility*0.6
	}

	diversification := 1 - math.Min(0.35, math.Max(0.1, math.Abs(yieldChange)/200))
	return round2(income * diversification)
}

// AdaptationCost estimates the USD cost of adapting the circle around the
// analysis point. Cost scales with area, so radius enters squared.
func AdaptationCost(radiusKm float64, risk types.RiskLevel) float64 {
	areaHa := math.Pi * radiusKm * radiusKm * hectaresPerSqKm
	cost := areaHa * costPerHectare(risk) * droughtBuffer(risk) * contingencyFactor
	return math.Round(cost/100) * 100
}

func costPerHectare(risk types.RiskLevel) float64 {
	switch risk {
	case types.RiskLow:
		return 120
	case types.RiskHigh:
		return 650
	default:
		return 320
	}
}

func droughtBuffer(risk types.RiskLevel) float64 {
	switch risk {
	case types.RiskLow:
		return 1.0
	case types.RiskHigh:
		return 1.35
	default:
		return 1.15
	}
}

// Resilience blends income stability and cost burden into a 0-1 index.
func Resilience(incomeChange, adaptationCost float64) float64 {
	incomeTerm := 0.6 * math.Max(0, 1-math.Abs(incomeChange)/30)
	costTerm := 0.4 * math.Max(0, 1-adaptationCost/costResilienceScale)
	return round2(clamp(incomeTerm+costTerm, 0, 1))
}

// EmploymentImpact estimates farm labor demand change (%). A high economic
// priority weight assumes off-farm absorption and damps the swing.
func EmploymentImpact(incomeChange, economicPriority float64) float64 {
	return round2(incomeChange * 0.5 * math.Max(0.5, 1-economicPriority/200))
}

// Recommendations builds the financing advice list from the computed
// indices. A strong economic priority pushes budget advice to the front.
func Recommendations(income, cost, resilience, employment, economicPriority float64) []string {
	var recs []string
	if income < creditLineIncome {
		recs = append(recs, "Open seasonal credit lines so households can bridge the income gap")
	}
	if cost > phasedInvestCost {
		recs = append(recs, "Phase adaptation investments across several budget cycles")
	}
	if resilience < subsidyResilience {
		recs = append(recs, "Pair input subsidies with guaranteed off-take agreements to shore up resilience")
	}
	if employment < publicWorksJobs {
		recs = append(recs, "Stand up public works programs to absorb lost farm labor")
	}
	if len(recs) == 0 {
		recs = append(recs, "Maintain the current investment cadence and review quarterly")
	}
	if economicPriority > budgetFirstPriority {
		recs = append([]string{"Prioritize the adaptation budget ahead of discretionary spending"}, recs...)
	}
	return recs
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
