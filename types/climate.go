package types

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ClimateSignal is the compact summary derived from 90 days of daily
// history. The meteorologist writes it once; every later stage reads it.
type ClimateSignal struct {
	TemperatureAvg       float64   `json:"temperature_avg"`       // degrees C, mean of daily means
	PrecipitationSum     float64   `json:"precipitation_sum"`     // mm over the window
	PrecipitationAnomaly float64   `json:"precipitation_anomaly"` // percent vs seasonal baseline
	ExtremeWeatherRisk   RiskLevel `json:"extreme_weather_risk"`
}
