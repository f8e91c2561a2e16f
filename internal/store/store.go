package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by writes that target a supplier which no longer
// exists.
var ErrNotFound = errors.New("supplier not found")

// GlobalWeightsID is the fixed key of the single app_settings row.
const GlobalWeightsID = "global"

// Supplier is the persisted supplier record. Sustainability score and risk
// level are not part of it; they are derived on every read.
type Supplier struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ProductCategory string    `json:"productCategory"`
	Location        string    `json:"location"`
	EmployeeCount   int       `json:"employeeCount"`

	// Environmental metrics
	CarbonFootprint  float64 `json:"carbonFootprint"`  // tons/year
	WaterUsage       float64 `json:"waterUsage"`       // liters
	WasteGeneration  float64 `json:"wasteGeneration"`  // tons
	WasteReduction   float64 `json:"wasteReduction"`   // percent
	EnergyEfficiency float64 `json:"energyEfficiency"` // percent

	// Operational metrics
	LaborPractices       float64 `json:"laborPractices"`
	TransportCostPerUnit float64 `json:"transportCostPerUnit"`
	OnTimeDelivery       float64 `json:"onTimeDelivery"`
	RegulatoryFlags      int     `json:"regulatoryFlags"`
	LeadTimeDays         int     `json:"leadTimeDays"`

	// Policies and certifications
	ISO14001             bool `json:"ISO14001"`
	RecyclingPolicy      bool `json:"recyclingPolicy"`
	WaterPolicy          bool `json:"waterPolicy"`
	SustainabilityReport bool `json:"sustainabilityReport"`

	HistoricalCarbon []float64 `json:"historicalCarbon"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SupplierFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Weights is the global point allocation per scoring metric.
type Weights struct {
	CarbonFootprint      float64 `json:"carbonFootprint" yaml:"carbon_footprint"`
	WaterUsage           float64 `json:"waterUsage" yaml:"water_usage"`
	WasteReduction       float64 `json:"wasteReduction" yaml:"waste_reduction"`
	EnergyEfficiency     float64 `json:"energyEfficiency" yaml:"energy_efficiency"`
	ISO14001             float64 `json:"iso14001" yaml:"iso14001"`
	RecyclingPolicy      float64 `json:"recyclingPolicy" yaml:"recycling_policy"`
	WaterPolicy          float64 `json:"waterPolicy" yaml:"water_policy"`
	SustainabilityReport float64 `json:"sustainabilityReport" yaml:"sustainability_report"`
}

type Store interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	ListSuppliers(ctx context.Context, filter SupplierFilter) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) (bool, error)

	// GetWeights returns nil when no configuration has ever been saved.
	GetWeights(ctx context.Context) (*Weights, error)
	SaveWeights(ctx context.Context, w Weights) (*Weights, error)

	Close() error
}
