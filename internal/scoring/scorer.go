package scoring

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// SupplierWithCalculated is a supplier plus the fields derived from the
// weights in effect when it was read.
type SupplierWithCalculated struct {
	store.Supplier
	SustainabilityScore int       `json:"sustainabilityScore"`
	RiskLevel           RiskLevel `json:"riskLevel"`
}

// Breakdown captures the complete scoring output for a single supplier.
type Breakdown struct {
	SupplierID          string         `json:"supplierId"`
	Factors             []FactorResult `json:"factors"`
	RawTotal            float64        `json:"rawTotal"`
	MaxPossible         float64        `json:"maxPossible"`
	SustainabilityScore int            `json:"sustainabilityScore"`
	RiskLevel           RiskLevel      `json:"riskLevel"`
	Weights             store.Weights  `json:"weights"`
}

// Scorer scores suppliers against one immutable weights snapshot.
type Scorer struct {
	weights store.Weights
	logger  *slog.Logger
}

// NewScorer binds a weights snapshot. It fails with a ConfigurationError when
// the weights cannot normalize a score.
func NewScorer(weights store.Weights, logger *slog.Logger) (*Scorer, error) {
	if err := checkUsable(weights); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{weights: weights, logger: logger}, nil
}

// Weights returns the snapshot this scorer was built with.
func (s *Scorer) Weights() store.Weights {
	return s.weights
}

// Explain computes the per-factor breakdown for one supplier.
func (s *Scorer) Explain(sp *store.Supplier) (*Breakdown, error) {
	if err := CheckSupplier(sp); err != nil {
		return nil, err
	}

	factors := []FactorResult{
		CarbonFactor(sp),
		WaterFactor(sp),
		WasteReductionFactor(sp),
		EnergyEfficiencyFactor(sp),
		ISO14001Factor(sp),
		RecyclingPolicyFactor(sp),
		WaterPolicyFactor(sp),
		SustainabilityReportFactor(sp),
	}

	weights := []float64{
		s.weights.CarbonFootprint,
		s.weights.WaterUsage,
		s.weights.WasteReduction,
		s.weights.EnergyEfficiency,
		s.weights.ISO14001,
		s.weights.RecyclingPolicy,
		s.weights.WaterPolicy,
		s.weights.SustainabilityReport,
	}

	var total float64
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Score / 100 * weights[i]
		total += factors[i].Weighted
	}

	// Normalize against the weight total so a configuration that does not
	// sum to exactly 100 still yields a proportion-correct score.
	maxPossible := Sum(s.weights)
	final := int(clamp(math.Round(total/maxPossible*100), 0, 100))

	return &Breakdown{
		SupplierID:          sp.ID.String(),
		Factors:             factors,
		RawTotal:            total,
		MaxPossible:         maxPossible,
		SustainabilityScore: final,
		RiskLevel:           ClassifyRisk(final),
		Weights:             s.weights,
	}, nil
}

// Score derives the sustainability score and risk level for one supplier.
func (s *Scorer) Score(sp *store.Supplier) (*SupplierWithCalculated, error) {
	b, err := s.Explain(sp)
	if err != nil {
		return nil, err
	}
	return &SupplierWithCalculated{
		Supplier:            *sp,
		SustainabilityScore: b.SustainabilityScore,
		RiskLevel:           b.RiskLevel,
	}, nil
}

// ScoreAll scores a batch against the scorer's single snapshot.
func (s *Scorer) ScoreAll(suppliers []*store.Supplier) ([]*SupplierWithCalculated, error) {
	out := make([]*SupplierWithCalculated, 0, len(suppliers))
	for i, sp := range suppliers {
		scored, err := s.Score(sp)
		if err != nil {
			if sp == nil {
				return nil, fmt.Errorf("score supplier at %d: %w", i, err)
			}
			return nil, fmt.Errorf("score supplier %s: %w", sp.ID, err)
		}
		out = append(out, scored)
	}
	s.logger.Debug("scored suppliers", "count", len(out))
	return out, nil
}

// ScoreSupplier scores one supplier with an explicit weights value.
func ScoreSupplier(sp *store.Supplier, weights store.Weights) (*SupplierWithCalculated, error) {
	s, err := NewScorer(weights, nil)
	if err != nil {
		return nil, err
	}
	return s.Score(sp)
}

// ScoreAll scores every supplier with the same weights value.
func ScoreAll(suppliers []*store.Supplier, weights store.Weights) ([]*SupplierWithCalculated, error) {
	s, err := NewScorer(weights, nil)
	if err != nil {
		return nil, err
	}
	return s.ScoreAll(suppliers)
}

// CheckSupplier enforces the metric preconditions the engine relies on.
// Storage validates records on write; this catches anything that slipped by.
func CheckSupplier(sp *store.Supplier) error {
	if sp == nil {
		return &DataError{Field: "supplier", Reason: "is missing"}
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"carbonFootprint", sp.CarbonFootprint},
		{"waterUsage", sp.WaterUsage},
		{"wasteGeneration", sp.WasteGeneration},
		{"transportCostPerUnit", sp.TransportCostPerUnit},
	}
	for _, m := range nonNegative {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return &DataError{Field: m.name, Reason: "is not a finite number"}
		}
		if m.value < 0 {
			return &DataError{Field: m.name, Reason: "must be non-negative"}
		}
	}
	percents := []struct {
		name  string
		value float64
	}{
		{"wasteReduction", sp.WasteReduction},
		{"energyEfficiency", sp.EnergyEfficiency},
		{"laborPractices", sp.LaborPractices},
		{"onTimeDelivery", sp.OnTimeDelivery},
	}
	for _, m := range percents {
		if math.IsNaN(m.value) || m.value < 0 || m.value > 100 {
			return &DataError{Field: m.name, Reason: "must be a percentage between 0 and 100"}
		}
	}
	if sp.RegulatoryFlags < 0 {
		return &DataError{Field: "regulatoryFlags", Reason: "must be non-negative"}
	}
	if sp.LeadTimeDays < 0 {
		return &DataError{Field: "leadTimeDays", Reason: "must be non-negative"}
	}
	return nil
}
