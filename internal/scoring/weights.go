package scoring

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// DefaultSumTolerance is how far the weight total may drift from 100 before
// a save carries an advisory warning.
const DefaultSumTolerance = 5.0

// DefaultWeights returns the weight distribution used until an admin saves one.
// The values sum to 100.
func DefaultWeights() store.Weights {
	return store.Weights{
		CarbonFootprint:      25,
		WaterUsage:           17,
		WasteReduction:       10,
		EnergyEfficiency:     10,
		ISO14001:             15,
		RecyclingPolicy:      8,
		WaterPolicy:          6,
		SustainabilityReport: 9,
	}
}

type weightField struct {
	name string
	get  func(w *store.Weights) *float64
}

// weightFields lists the eight weights by their wire names.
var weightFields = []weightField{
	{"carbonFootprint", func(w *store.Weights) *float64 { return &w.CarbonFootprint }},
	{"waterUsage", func(w *store.Weights) *float64 { return &w.WaterUsage }},
	{"wasteReduction", func(w *store.Weights) *float64 { return &w.WasteReduction }},
	{"energyEfficiency", func(w *store.Weights) *float64 { return &w.EnergyEfficiency }},
	{"iso14001", func(w *store.Weights) *float64 { return &w.ISO14001 }},
	{"recyclingPolicy", func(w *store.Weights) *float64 { return &w.RecyclingPolicy }},
	{"waterPolicy", func(w *store.Weights) *float64 { return &w.WaterPolicy }},
	{"sustainabilityReport", func(w *store.Weights) *float64 { return &w.SustainabilityReport }},
}

// Sum returns the total of all eight weights.
func Sum(w store.Weights) float64 {
	var total float64
	for _, f := range weightFields {
		total += *f.get(&w)
	}
	return total
}

// WeightMap returns w keyed by wire name.
func WeightMap(w store.Weights) map[string]float64 {
	m := make(map[string]float64, len(weightFields))
	for _, f := range weightFields {
		m[f.name] = *f.get(&w)
	}
	return m
}

// Scale multiplies every weight by k.
func Scale(w store.Weights, k float64) store.Weights {
	for _, f := range weightFields {
		*f.get(&w) *= k
	}
	return w
}

// checkUsable returns a ConfigurationError when w cannot normalize a score.
func checkUsable(w store.Weights) error {
	for _, f := range weightFields {
		v := *f.get(&w)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigurationError{Reason: fmt.Sprintf("weight %s is not finite", f.name)}
		}
		if v < 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("weight %s is negative (%g)", f.name, v)}
		}
	}
	if Sum(w) == 0 {
		return &ConfigurationError{Reason: "weights sum to zero"}
	}
	return nil
}

// Validate checks a weight set before it is persisted. Every weight must be
// finite and non-negative, and at least one must be positive.
func Validate(w store.Weights) error {
	verr := &ValidationError{}
	for _, f := range weightFields {
		v := *f.get(&w)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			verr.Add(f.name, "must be a finite number")
		case v < 0:
			verr.Add(f.name, "must be non-negative")
		}
	}
	if len(verr.Fields) == 0 && Sum(w) == 0 {
		verr.Add("total", "weights must not all be zero")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// SumWarning returns an advisory message when the total deviates from 100 by
// more than tolerance. It never blocks a save.
func SumWarning(w store.Weights, tolerance float64) string {
	total := Sum(w)
	if math.Abs(total-100) > tolerance {
		return fmt.Sprintf("weights total %g points; a total of about 100 is recommended", total)
	}
	return ""
}

// DecodeWeights parses a raw JSON object into weights. Each of the eight
// fields must be present and a JSON number; every failing field is reported.
func DecodeWeights(raw map[string]json.RawMessage) (store.Weights, error) {
	var w store.Weights
	verr := &ValidationError{}
	for _, f := range weightFields {
		msg, ok := raw[f.name]
		if !ok || string(msg) == "null" {
			verr.Add(f.name, "is required")
			continue
		}
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			verr.Add(f.name, "must be a number")
			continue
		}
		*f.get(&w) = v
	}
	if len(verr.Fields) > 0 {
		return store.Weights{}, verr
	}
	if err := Validate(w); err != nil {
		return store.Weights{}, err
	}
	return w, nil
}
