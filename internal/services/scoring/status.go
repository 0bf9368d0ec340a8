package scoring

import "math"

// Z-Score zone thresholds
const (
	ZScoreSafeThreshold = 2.99
	ZScoreGreyThreshold = 1.81
)

// Default probability bands
const (
	ProbabilityLowRisk      = 0.3
	ProbabilityModerateRisk = 0.7

	MertonVeryLowRisk = 0.05
	MertonLowRisk     = 0.15
)

// Band colors
const (
	ColorGreen = "rgba(76, 175, 80, 0.2)"
	ColorAmber = "rgba(255, 193, 7, 0.2)"
	ColorRed   = "rgba(255, 82, 82, 0.2)"
)

// ZoneForZScore maps a Z-Score to the Safe, Grey or Distress zone.
func ZoneForZScore(z float64) Status {
	switch {
	case z > ZScoreSafeThreshold:
		return Status{Label: "Safe Zone", Color: ColorGreen, Description: "Strong financial position with low bankruptcy risk."}
	case z > ZScoreGreyThreshold:
		return Status{Label: "Grey Zone", Color: ColorAmber, Description: "Some financial concerns present. Monitor closely."}
	default:
		return Status{Label: "Distress Zone", Color: ColorRed, Description: "High risk of financial distress. Immediate action recommended."}
	}
}

// RiskForProbability maps a default probability to Low, Moderate or High risk.
func RiskForProbability(p float64) Status {
	switch {
	case p < ProbabilityLowRisk:
		return Status{Label: "Low Risk", Color: ColorGreen, Description: "Strong financial position with low default probability."}
	case p < ProbabilityModerateRisk:
		return Status{Label: "Moderate Risk", Color: ColorAmber, Description: "Some default risk present. Careful monitoring advised."}
	default:
		return Status{Label: "High Risk", Color: ColorRed, Description: "Significant default risk. Immediate attention required."}
	}
}

// MertonColor returns the card color for a Merton default probability.
func MertonColor(p float64) string {
	switch {
	case p < MertonVeryLowRisk:
		return ColorGreen
	case p < MertonLowRisk:
		return ColorAmber
	default:
		return ColorRed
	}
}

// MertonStatus labels a Merton probability with the shared risk bands and
// colors it with the Merton scale.
func MertonStatus(p float64) Status {
	status := RiskForProbability(p)
	status.Color = MertonColor(p)
	status.Description = "Based on market-based structural model of credit risk."
	return status
}

// ZScoreGaugeMax is the upper bound of the Z-Score display scale.
func ZScoreGaugeMax(z *float64) float64 {
	if z == nil {
		return 5
	}
	return math.Max(5, math.Ceil(*z))
}
