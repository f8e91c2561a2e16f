package scoring

// Frontier returns the scored suppliers no other supplier beats outright:
// nobody else has a score at least as high with carbon and transport cost at
// least as low, while being strictly better on one of the three. Input order
// is preserved.
//
// O(n^2) dominance check; portfolios are small.
func Frontier(suppliers []*SupplierWithCalculated) []*SupplierWithCalculated {
	if len(suppliers) <= 1 {
		return suppliers
	}

	frontier := make([]*SupplierWithCalculated, 0, len(suppliers))
	for i := range suppliers {
		dominated := false
		for j := range suppliers {
			if i == j {
				continue
			}
			if dominates(suppliers[j], suppliers[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, suppliers[i])
		}
	}
	return frontier
}

// dominates reports whether a dominates b. Score is higher-is-better; carbon
// and transport cost are lower-is-better.
func dominates(a, b *SupplierWithCalculated) bool {
	if a.SustainabilityScore < b.SustainabilityScore ||
		a.CarbonFootprint > b.CarbonFootprint ||
		a.TransportCostPerUnit > b.TransportCostPerUnit {
		return false
	}
	return a.SustainabilityScore > b.SustainabilityScore ||
		a.CarbonFootprint < b.CarbonFootprint ||
		a.TransportCostPerUnit < b.TransportCostPerUnit
}
