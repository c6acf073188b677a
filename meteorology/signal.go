package meteorology

import (
	"math"

	"go-scds/types"
	"go-scds/weather"
)

const (
	// seasonal baseline: 75 mm/month across the 90-day window
	baselinePrecipMM = 75.0 * 3

	// drought and heat grade high before surplus is considered
	droughtHighAnomaly   = -30.0
	heatHighTempC        = 34.0
	surplusMediumAnomaly = 40.0
	droughtMediumAnomaly = -15.0
)

// DeriveSignal reduces a daily history to the compact signal every later
// stage consumes. Values are rounded before the risk grade so the grade
// matches what callers see.
func DeriveSignal(series weather.DailySeries) types.ClimateSignal {
	if len(series.TemperatureMean) == 0 {
		return FallbackSignal()
	}

	var tempTotal, precipTotal float64
	for _, v := range series.TemperatureMean {
		tempTotal += v
	}
	for _, v := range series.PrecipitationSum {
		precipTotal += v
	}

	tempAvg := round1(tempTotal / float64(len(series.TemperatureMean)))
	precipSum := round1(precipTotal)
	anomaly := round1((precipTotal - baselinePrecipMM) / baselinePrecipMM * 100)

	return types.ClimateSignal{
		TemperatureAvg:       tempAvg,
		PrecipitationSum:     precipSum,
		PrecipitationAnomaly: anomaly,
		ExtremeWeatherRisk:   AssessRisk(tempAvg, anomaly),
	}
}

// AssessRisk grades the window. Drought and heat take priority over surplus:
// a parched window is high risk even when temperatures look mild.
func AssessRisk(tempAvg, anomaly float64) types.RiskLevel {
	if anomaly <= droughtHighAnomaly || tempAvg >= heatHighTempC {
		return types.RiskHigh
	}
	if anomaly >= surplusMediumAnomaly || anomaly <= droughtMediumAnomaly {
		return types.RiskMedium
	}
	return types.RiskLow
}

// FallbackSignal is served when the archive API cannot be reached. The
// values sit near regional norms so downstream math stays plausible.
func FallbackSignal() types.ClimateSignal {
	return types.ClimateSignal{
		TemperatureAvg:       28.0,
		PrecipitationSum:     180.0,
		PrecipitationAnomaly: -20.0,
		ExtremeWeatherRisk:   types.RiskMedium,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
