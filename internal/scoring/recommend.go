package scoring

import (
	"fmt"
	"strconv"
)

// MaxRecommendations caps the number of suggestions per supplier.
const MaxRecommendations = 3

// Thresholds that trigger an improvement suggestion.
const (
	HighCarbonThreshold  = 2000.0 // tons
	HighWaterThreshold   = 1500.0 // liters
	HighWasteThreshold   = 15.0   // tons
	ExcellenceScoreFloor = 80
)

type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Recommend returns up to three suggestions for a scored supplier. Rules are
// evaluated in a fixed order and the list is truncated after the third match.
func Recommend(sp *SupplierWithCalculated) []Recommendation {
	var recs []Recommendation

	if sp.CarbonFootprint > HighCarbonThreshold {
		recs = append(recs, Recommendation{
			Type:  "Carbon Reduction Strategy",
			Title: "High Carbon Footprint Detected",
			Description: fmt.Sprintf("Your carbon footprint of %s tons is above industry standards. "+
				"Consider renewable energy sources and efficiency measures to reduce emissions by 20-30%%.",
				formatAmount(sp.CarbonFootprint)),
		})
	}

	if sp.WaterUsage > HighWaterThreshold {
		recs = append(recs, Recommendation{
			Type:  "Water Conservation Initiative",
			Title: "Water Usage Optimization",
			Description: fmt.Sprintf("With %sL water usage, water recycling systems and monitoring "+
				"could reduce consumption by 15-25%%.", formatAmount(sp.WaterUsage)),
		})
	}

	if sp.WasteGeneration > HighWasteThreshold {
		recs = append(recs, Recommendation{
			Type:  "Waste Management Enhancement",
			Title: "Waste Reduction Opportunity",
			Description: fmt.Sprintf("Generating %s tons of waste. Reducing waste generation below %s tons "+
				"could significantly boost your sustainability score.",
				formatAmount(sp.WasteGeneration), formatAmount(HighWasteThreshold)),
		})
	}

	if !sp.ISO14001 {
		recs = append(recs, Recommendation{
			Type:  "Certification Opportunity",
			Title: "ISO 14001 Certification",
			Description: "Obtaining ISO 14001 certification would demonstrate environmental management " +
				"commitment and could boost your sustainability score significantly.",
		})
	}

	if sp.RiskLevel == RiskHigh {
		recs = append(recs, Recommendation{
			Type:  "Risk Management",
			Title: "Risk Mitigation Required",
			Description: "Your risk level indicates potential supply chain vulnerabilities. " +
				"Consider diversifying suppliers and implementing risk monitoring systems.",
		})
	}

	if len(recs) == 0 || sp.SustainabilityScore > ExcellenceScoreFloor {
		recs = append(recs, Recommendation{
			Type:  "Sustainability Leadership",
			Title: "Maintain Excellence",
			Description: "Your sustainability performance is excellent. Consider sharing best practices " +
				"with other suppliers and exploring additional green initiatives to lead by example.",
		})
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
