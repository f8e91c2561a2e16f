package scoring

import (
	"math"
	"sort"
)

// RiskDistribution counts suppliers per risk level.
type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// DashboardMetrics summarizes a scored supplier portfolio.
type DashboardMetrics struct {
	TotalSuppliers     int              `json:"totalSuppliers"`
	AvgScore           float64          `json:"avgScore"`
	CertifiedSuppliers int              `json:"certifiedSuppliers"`
	RiskDistribution   RiskDistribution `json:"riskDistribution"`
}

// Summarize computes dashboard metrics. An empty portfolio averages to 0.
func Summarize(suppliers []*SupplierWithCalculated) DashboardMetrics {
	m := DashboardMetrics{TotalSuppliers: len(suppliers)}
	var total float64
	for _, s := range suppliers {
		total += float64(s.SustainabilityScore)
		if s.ISO14001 {
			m.CertifiedSuppliers++
		}
		switch s.RiskLevel {
		case RiskLow:
			m.RiskDistribution.Low++
		case RiskMedium:
			m.RiskDistribution.Medium++
		case RiskHigh:
			m.RiskDistribution.High++
		}
	}
	if len(suppliers) > 0 {
		m.AvgScore = math.Round(total/float64(len(suppliers))*10) / 10
	}
	return m
}

// regionByCategory places product categories on the regional risk map.
var regionByCategory = map[string]string{
	"Electronics":     "Asia-Pacific",
	"Pharmaceuticals": "Asia-Pacific",
	"Textiles":        "Europe",
	"Chemicals":       "Europe",
	"Food":            "North America",
	"Automotive":      "North America",
}

const OtherRegion = "Other"

// RegionFor returns the map region for a product category.
func RegionFor(category string) string {
	if r, ok := regionByCategory[category]; ok {
		return r
	}
	return OtherRegion
}

// RegionSummary is one tile of the regional risk map.
type RegionSummary struct {
	Name           string  `json:"name"`
	TotalSuppliers int     `json:"totalSuppliers"`
	AvgScore       float64 `json:"avgScore"`
	HighRiskShare  float64 `json:"highRiskShare"`
	RiskLevel      string  `json:"riskLevel"`
}

// SummarizeRegions groups suppliers by region, sorted by region name.
//
// A region is high risk when more than 40% of its suppliers are high risk or
// its average score is below 70, medium when more than 20% are high risk or
// the average is below 85, and low otherwise.
func SummarizeRegions(suppliers []*SupplierWithCalculated) []RegionSummary {
	groups := make(map[string][]*SupplierWithCalculated)
	for _, s := range suppliers {
		r := RegionFor(s.ProductCategory)
		groups[r] = append(groups[r], s)
	}

	out := make([]RegionSummary, 0, len(groups))
	for name, members := range groups {
		var total float64
		var high int
		for _, s := range members {
			total += float64(s.SustainabilityScore)
			if s.RiskLevel == RiskHigh {
				high++
			}
		}
		avg := total / float64(len(members))
		share := float64(high) / float64(len(members))

		level := "low"
		switch {
		case share > 0.4 || avg < 70:
			level = "high"
		case share > 0.2 || avg < 85:
			level = "medium"
		}

		out = append(out, RegionSummary{
			Name:           name,
			TotalSuppliers: len(members),
			AvgScore:       math.Round(avg*10) / 10,
			HighRiskShare:  share,
			RiskLevel:      level,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
