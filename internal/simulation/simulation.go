// Package simulation projects the effect of switching from one supplier to
// another over a contract horizon.
package simulation

import (
	"fmt"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
)

type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// Multiplier scales every projection. Unknown tolerances return 0.
func (r RiskTolerance) Multiplier() float64 {
	switch r {
	case RiskToleranceLow:
		return 0.7
	case RiskToleranceMedium:
		return 1.0
	case RiskToleranceHigh:
		return 1.3
	}
	return 0
}

// ParseRiskTolerance accepts low, medium, or high in any case.
func ParseRiskTolerance(s string) (RiskTolerance, bool) {
	switch r := RiskTolerance(strings.ToLower(strings.TrimSpace(s))); r {
	case RiskToleranceLow, RiskToleranceMedium, RiskToleranceHigh:
		return r, true
	}
	return "", false
}

// Contract terms above these bounds are rejected.
const (
	MaxQuantity = 1_000_000_000
	MaxYears    = 100
)

// maxProjection is the largest magnitude a float64 holds as an exact integer.
const maxProjection = 1 << 53

// Params are the contract terms of a simulation.
type Params struct {
	Quantity      int           `json:"quantity"`
	Years         int           `json:"years"`
	RiskTolerance RiskTolerance `json:"riskTolerance"`
}

func (p Params) Validate() error {
	if p.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", p.Quantity)
	}
	if p.Quantity > MaxQuantity {
		return fmt.Errorf("quantity must be at most %d, got %d", MaxQuantity, p.Quantity)
	}
	if p.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", p.Years)
	}
	if p.Years > MaxYears {
		return fmt.Errorf("years must be at most %d, got %d", MaxYears, p.Years)
	}
	if p.RiskTolerance.Multiplier() == 0 {
		return fmt.Errorf("unknown risk tolerance %q", p.RiskTolerance)
	}
	return nil
}

// Result is a projection. Positive savings favour the prospective supplier;
// a positive cost impact means the switch costs more.
type Result struct {
	CurrentSupplier     *scoring.SupplierWithCalculated `json:"currentSupplier"`
	ProspectiveSupplier *scoring.SupplierWithCalculated `json:"prospectiveSupplier"`
	CarbonSavings       int                             `json:"carbonSavings"`
	WaterSavings        int                             `json:"waterSavings"`
	CostImpact          int                             `json:"costImpact"`
	Years               int                             `json:"years"`
	RiskTolerance       RiskTolerance                   `json:"riskTolerance"`
}

// Simulate projects a switch from current to prospective. It returns nil when
// the projection is not computable: a supplier is missing, p is invalid, or a
// figure does not fit an exact integer.
func Simulate(current, prospective *scoring.SupplierWithCalculated, p Params) *Result {
	if current == nil || prospective == nil || p.Validate() != nil {
		return nil
	}

	volume := float64(p.Quantity) * float64(p.Years) * p.RiskTolerance.Multiplier()

	carbon := (current.CarbonFootprint - prospective.CarbonFootprint) * volume / 1000
	water := (current.WaterUsage - prospective.WaterUsage) * volume / 100
	cost := (prospective.TransportCostPerUnit - current.TransportCostPerUnit) * volume
	for _, v := range []float64{carbon, water, cost} {
		if math.IsNaN(v) || math.Abs(v) > maxProjection {
			return nil
		}
	}

	// math.Round is half away from zero, so swapping the suppliers negates
	// every figure exactly.
	return &Result{
		CurrentSupplier:     current,
		ProspectiveSupplier: prospective,
		CarbonSavings:       int(math.Round(carbon)),
		WaterSavings:        int(math.Round(water)),
		CostImpact:          int(math.Round(cost)),
		Years:               p.Years,
		RiskTolerance:       p.RiskTolerance,
	}
}
