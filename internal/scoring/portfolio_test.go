package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

func scored(category string, score int, iso bool) *SupplierWithCalculated {
	return &SupplierWithCalculated{
		Supplier:            store.Supplier{ProductCategory: category, ISO14001: iso},
		SustainabilityScore: score,
		RiskLevel:           ClassifyRisk(score),
	}
}

func TestSummarizeEmptyPortfolio(t *testing.T) {
	m := Summarize(nil)
	assert.Equal(t, 0, m.TotalSuppliers)
	assert.Equal(t, 0.0, m.AvgScore)
	assert.Equal(t, RiskDistribution{}, m.RiskDistribution)
}

func TestSummarize(t *testing.T) {
	m := Summarize([]*SupplierWithCalculated{
		scored("Electronics", 80, true),
		scored("Textiles", 60, false),
		scored("Food", 31, true),
	})
	assert.Equal(t, 3, m.TotalSuppliers)
	assert.Equal(t, 57.0, m.AvgScore)
	assert.Equal(t, 2, m.CertifiedSuppliers)
	assert.Equal(t, RiskDistribution{Low: 1, Medium: 1, High: 1}, m.RiskDistribution)
}

func TestSummarizeRoundsAverageToOneDecimal(t *testing.T) {
	m := Summarize([]*SupplierWithCalculated{
		scored("Food", 70, false),
		scored("Food", 71, false),
		scored("Food", 71, false),
	})
	assert.Equal(t, 70.7, m.AvgScore)
}

func TestRegionFor(t *testing.T) {
	assert.Equal(t, "Asia-Pacific", RegionFor("Electronics"))
	assert.Equal(t, "Europe", RegionFor("Chemicals"))
	assert.Equal(t, "North America", RegionFor("Automotive"))
	assert.Equal(t, OtherRegion, RegionFor("Furniture"))
	assert.Equal(t, OtherRegion, RegionFor(""))
}

func TestSummarizeRegions(t *testing.T) {
	regions := SummarizeRegions([]*SupplierWithCalculated{
		scored("Electronics", 90, true),
		scored("Pharmaceuticals", 88, true),
		scored("Textiles", 75, false),
		scored("Chemicals", 90, false),
		scored("Food", 40, false),
		scored("Automotive", 95, true),
	})
	require.Len(t, regions, 3)

	assert.Equal(t, "Asia-Pacific", regions[0].Name)
	assert.Equal(t, "low", regions[0].RiskLevel)
	assert.Equal(t, 89.0, regions[0].AvgScore)

	assert.Equal(t, "Europe", regions[1].Name)
	assert.Equal(t, "medium", regions[1].RiskLevel)

	// One of two high risk is a 50% share.
	assert.Equal(t, "North America", regions[2].Name)
	assert.Equal(t, 0.5, regions[2].HighRiskShare)
	assert.Equal(t, "high", regions[2].RiskLevel)
}
