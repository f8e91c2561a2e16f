package scoring

import "strings"

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Risk thresholds on the final sustainability score. Lower bounds are inclusive.
const (
	LowRiskMinScore    = 75
	MediumRiskMinScore = 50
)

// ClassifyRisk maps a sustainability score to its risk level.
//
//	score >= 75      -> Low
//	50 <= score < 75 -> Medium
//	score < 50       -> High
func ClassifyRisk(score int) RiskLevel {
	switch {
	case score >= LowRiskMinScore:
		return RiskLow
	case score >= MediumRiskMinScore:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ParseRiskLevel accepts the canonical spelling in any case.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch {
	case strings.EqualFold(s, string(RiskLow)):
		return RiskLow, true
	case strings.EqualFold(s, string(RiskMedium)):
		return RiskMedium, true
	case strings.EqualFold(s, string(RiskHigh)):
		return RiskHigh, true
	}
	return "", false
}
