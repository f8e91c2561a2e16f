// seed_suppliers.go: standalone script to load supplier fixtures from YAML and
// seed them via the Verdant API.
//
// Usage:
//
//	go run scripts/seed_suppliers.go -fixture scripts/suppliers.yaml -api http://localhost:8700 -token $VERDANT_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

type seedSupplier struct {
	Name                 string    `yaml:"name" json:"name"`
	ProductCategory      string    `yaml:"product_category" json:"productCategory"`
	Location             string    `yaml:"location" json:"location"`
	EmployeeCount        int       `yaml:"employee_count" json:"employeeCount"`
	CarbonFootprint      float64   `yaml:"carbon_footprint" json:"carbonFootprint"`
	WaterUsage           float64   `yaml:"water_usage" json:"waterUsage"`
	WasteGeneration      float64   `yaml:"waste_generation" json:"wasteGeneration"`
	WasteReduction       float64   `yaml:"waste_reduction" json:"wasteReduction"`
	EnergyEfficiency     float64   `yaml:"energy_efficiency" json:"energyEfficiency"`
	LaborPractices       float64   `yaml:"labor_practices" json:"laborPractices"`
	TransportCostPerUnit float64   `yaml:"transport_cost_per_unit" json:"transportCostPerUnit"`
	OnTimeDelivery       float64   `yaml:"on_time_delivery" json:"onTimeDelivery"`
	RegulatoryFlags      int       `yaml:"regulatory_flags" json:"regulatoryFlags"`
	LeadTimeDays         int       `yaml:"lead_time_days" json:"leadTimeDays"`
	ISO14001             bool      `yaml:"iso14001" json:"ISO14001"`
	RecyclingPolicy      bool      `yaml:"recycling_policy" json:"recyclingPolicy"`
	WaterPolicy          bool      `yaml:"water_policy" json:"waterPolicy"`
	SustainabilityReport bool      `yaml:"sustainability_report" json:"sustainabilityReport"`
	HistoricalCarbon     []float64 `yaml:"historical_carbon" json:"historicalCarbon,omitempty"`
}

type fixture struct {
	Weights   *store.Weights `yaml:"weights"`
	Suppliers []seedSupplier `yaml:"suppliers"`
}

func main() {
	fixturePath := flag.String("fixture", "scripts/suppliers.yaml", "path to supplier fixture file")
	apiURL := flag.String("api", "http://localhost:8700", "Verdant API base URL")
	token := flag.String("token", os.Getenv("VERDANT_ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print payloads without posting")
	flag.Parse()

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}
	weights := scoring.DefaultWeights()
	if fx.Weights != nil {
		weights = *fx.Weights
	}

	if *dryRun {
		out, _ := json.MarshalIndent(map[string]interface{}{"weights": weights, "suppliers": fx.Suppliers}, "", "  ")
		fmt.Println(string(out))
		return
	}

	client := &http.Client{}
	if err := send(client, http.MethodPut, *apiURL+"/api/v1/weights", *token, weights); err != nil {
		log.Fatalf("save weights: %v", err)
	}
	fmt.Println("Saved weights")

	created, failed := 0, 0
	for _, s := range fx.Suppliers {
		if err := send(client, http.MethodPost, *apiURL+"/api/v1/suppliers", *token, s); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR %s: %v\n", s.Name, err)
			failed++
			continue
		}
		fmt.Printf("Created: %s\n", s.Name)
		created++
	}

	fmt.Printf("\nDone: %d created, %d failed\n", created, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func send(client *http.Client, method, url, token string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	if w := resp.Header.Get("X-Weights-Warning"); w != "" {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	return nil
}
