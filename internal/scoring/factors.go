package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// Caps above which an inverse metric earns no points.
const (
	CarbonCap = 4000.0 // tons/year
	WaterCap  = 2500.0 // liters
)

// FactorResult captures one metric's contribution to the total score.
// Score is the 0–100 sub-score; Weighted is the points earned under Weight.
type FactorResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Reason   string  `json:"reason"`
}

// --- Individual factor calculators ---

// inverseScore maps a lower-is-better value onto 0–100 against cap.
func inverseScore(value, cap float64) float64 {
	return 100 - math.Min(value, cap)/cap*100
}

// CarbonFactor scores the carbon footprint, clamped at CarbonCap.
func CarbonFactor(s *store.Supplier) FactorResult {
	score := inverseScore(s.CarbonFootprint, CarbonCap)
	reason := fmt.Sprintf("%g t against a %g t cap", s.CarbonFootprint, CarbonCap)
	if s.CarbonFootprint >= CarbonCap {
		reason = "at or above cap"
	}
	return FactorResult{Name: "carbon_footprint", Score: score, Reason: reason}
}

// WaterFactor scores water usage, clamped at WaterCap.
func WaterFactor(s *store.Supplier) FactorResult {
	score := inverseScore(s.WaterUsage, WaterCap)
	reason := fmt.Sprintf("%g L against a %g L cap", s.WaterUsage, WaterCap)
	if s.WaterUsage >= WaterCap {
		reason = "at or above cap"
	}
	return FactorResult{Name: "water_usage", Score: score, Reason: reason}
}

// WasteReductionFactor is a passthrough of the reduction percentage.
func WasteReductionFactor(s *store.Supplier) FactorResult {
	return FactorResult{Name: "waste_reduction", Score: s.WasteReduction, Reason: "reported percentage"}
}

// EnergyEfficiencyFactor is a passthrough of the efficiency percentage.
func EnergyEfficiencyFactor(s *store.Supplier) FactorResult {
	return FactorResult{Name: "energy_efficiency", Score: s.EnergyEfficiency, Reason: "reported percentage"}
}

// policyFactor awards all or nothing.
func policyFactor(name string, held bool) FactorResult {
	if held {
		return FactorResult{Name: name, Score: 100, Reason: "in place"}
	}
	return FactorResult{Name: name, Score: 0, Reason: "missing"}
}

func ISO14001Factor(s *store.Supplier) FactorResult {
	return policyFactor("iso14001", s.ISO14001)
}

func RecyclingPolicyFactor(s *store.Supplier) FactorResult {
	return policyFactor("recycling_policy", s.RecyclingPolicy)
}

func WaterPolicyFactor(s *store.Supplier) FactorResult {
	return policyFactor("water_policy", s.WaterPolicy)
}

func SustainabilityReportFactor(s *store.Supplier) FactorResult {
	return policyFactor("sustainability_report", s.SustainabilityReport)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
