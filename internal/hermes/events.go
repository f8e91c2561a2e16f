package hermes

import (
	"encoding/json"
	"fmt"
	"time"
)

type SupplierEvent struct {
	SupplierID          string    `json:"supplier_id"`
	Name                string    `json:"name,omitempty"`
	ProductCategory     string    `json:"product_category,omitempty"`
	SustainabilityScore int       `json:"sustainability_score,omitempty"`
	RiskLevel           string    `json:"risk_level,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// WeightsUpdatedEvent carries the full saved configuration so subscribers
// never need to read it back.
type WeightsUpdatedEvent struct {
	Weights   map[string]float64 `json:"weights"`
	Total     float64            `json:"total"`
	Warning   string             `json:"warning,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// ParseWeightsUpdated decodes a verdant.weights.updated payload.
func ParseWeightsUpdated(data []byte) (*WeightsUpdatedEvent, error) {
	var evt WeightsUpdatedEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("decode weights event: %w", err)
	}
	return &evt, nil
}
