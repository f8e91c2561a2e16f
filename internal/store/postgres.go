package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const supplierColumns = `id, name, product_category, location, employee_count,
	carbon_footprint, water_usage, waste_generation, waste_reduction, energy_efficiency,
	labor_practices, transport_cost_per_unit, on_time_delivery, regulatory_flags, lead_time_days,
	iso14001, recycling_policy, water_policy, sustainability_report,
	historical_carbon, created_at, updated_at`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	sp := &Supplier{}
	var history []byte
	err := row.Scan(
		&sp.ID, &sp.Name, &sp.ProductCategory, &sp.Location, &sp.EmployeeCount,
		&sp.CarbonFootprint, &sp.WaterUsage, &sp.WasteGeneration, &sp.WasteReduction, &sp.EnergyEfficiency,
		&sp.LaborPractices, &sp.TransportCostPerUnit, &sp.OnTimeDelivery, &sp.RegulatoryFlags, &sp.LeadTimeDays,
		&sp.ISO14001, &sp.RecyclingPolicy, &sp.WaterPolicy, &sp.SustainabilityReport,
		&history, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if history != nil {
		if err := json.Unmarshal(history, &sp.HistoricalCarbon); err != nil {
			return nil, fmt.Errorf("decode historical_carbon for %s: %w", sp.ID, err)
		}
	}
	return sp, nil
}

func scanSuppliers(rows pgx.Rows) ([]*Supplier, error) {
	var suppliers []*Supplier
	for rows.Next() {
		sp, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, sp)
	}
	return suppliers, rows.Err()
}

func historyJSON(values []float64) []byte {
	if values == nil {
		values = []float64{}
	}
	data, _ := json.Marshal(values)
	return data
}

func (s *PostgresStore) CreateSupplier(ctx context.Context, sp *Supplier) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, product_category, location, employee_count,
			carbon_footprint, water_usage, waste_generation, waste_reduction, energy_efficiency,
			labor_practices, transport_cost_per_unit, on_time_delivery, regulatory_flags, lead_time_days,
			iso14001, recycling_policy, water_policy, sustainability_report, historical_carbon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`,
		sp.Name, sp.ProductCategory, sp.Location, sp.EmployeeCount,
		sp.CarbonFootprint, sp.WaterUsage, sp.WasteGeneration, sp.WasteReduction, sp.EnergyEfficiency,
		sp.LaborPractices, sp.TransportCostPerUnit, sp.OnTimeDelivery, sp.RegulatoryFlags, sp.LeadTimeDays,
		sp.ISO14001, sp.RecyclingPolicy, sp.WaterPolicy, sp.SustainabilityReport, historyJSON(sp.HistoricalCarbon),
	).Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
}

func (s *PostgresStore) GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	sp, err := scanSupplier(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return sp, err
}

// listOrder is a total order, so offset paging neither skips nor repeats rows.
const listOrder = " ORDER BY name ASC, created_at ASC, id ASC"

func (s *PostgresStore) ListSuppliers(ctx context.Context, filter SupplierFilter) ([]*Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Category != "" {
		n++
		query += fmt.Sprintf(" AND product_category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		n++
		query += fmt.Sprintf(" AND name ILIKE $%d", n)
		args = append(args, "%"+filter.Search+"%")
	}

	query += listOrder

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSuppliers(rows)
}

// UpdateSupplier returns ErrNotFound when no row has sp.ID.
func (s *PostgresStore) UpdateSupplier(ctx context.Context, sp *Supplier) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE suppliers SET
			name = $2, product_category = $3, location = $4, employee_count = $5,
			carbon_footprint = $6, water_usage = $7, waste_generation = $8,
			waste_reduction = $9, energy_efficiency = $10,
			labor_practices = $11, transport_cost_per_unit = $12, on_time_delivery = $13,
			regulatory_flags = $14, lead_time_days = $15,
			iso14001 = $16, recycling_policy = $17, water_policy = $18, sustainability_report = $19,
			historical_carbon = $20, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		sp.ID, sp.Name, sp.ProductCategory, sp.Location, sp.EmployeeCount,
		sp.CarbonFootprint, sp.WaterUsage, sp.WasteGeneration,
		sp.WasteReduction, sp.EnergyEfficiency,
		sp.LaborPractices, sp.TransportCostPerUnit, sp.OnTimeDelivery,
		sp.RegulatoryFlags, sp.LeadTimeDays,
		sp.ISO14001, sp.RecyclingPolicy, sp.WaterPolicy, sp.SustainabilityReport,
		historyJSON(sp.HistoricalCarbon),
	).Scan(&sp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *PostgresStore) DeleteSupplier(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const weightsColumns = `carbon_footprint, water_usage, waste_reduction, energy_efficiency,
	iso14001, recycling_policy, water_policy, sustainability_report`

func (s *PostgresStore) GetWeights(ctx context.Context) (*Weights, error) {
	w := &Weights{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+weightsColumns+`
		FROM app_settings WHERE id = $1`, GlobalWeightsID,
	).Scan(
		&w.CarbonFootprint, &w.WaterUsage, &w.WasteReduction, &w.EnergyEfficiency,
		&w.ISO14001, &w.RecyclingPolicy, &w.WaterPolicy, &w.SustainabilityReport,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// SaveWeights replaces the singleton row in a single upsert statement, so
// concurrent saves resolve as last writer wins.
func (s *PostgresStore) SaveWeights(ctx context.Context, w Weights) (*Weights, error) {
	saved := &Weights{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO app_settings (id, `+weightsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			carbon_footprint = EXCLUDED.carbon_footprint,
			water_usage = EXCLUDED.water_usage,
			waste_reduction = EXCLUDED.waste_reduction,
			energy_efficiency = EXCLUDED.energy_efficiency,
			iso14001 = EXCLUDED.iso14001,
			recycling_policy = EXCLUDED.recycling_policy,
			water_policy = EXCLUDED.water_policy,
			sustainability_report = EXCLUDED.sustainability_report
		RETURNING `+weightsColumns,
		GlobalWeightsID,
		w.CarbonFootprint, w.WaterUsage, w.WasteReduction, w.EnergyEfficiency,
		w.ISO14001, w.RecyclingPolicy, w.WaterPolicy, w.SustainabilityReport,
	).Scan(
		&saved.CarbonFootprint, &saved.WaterUsage, &saved.WasteReduction, &saved.EnergyEfficiency,
		&saved.ISO14001, &saved.RecyclingPolicy, &saved.WaterPolicy, &saved.SustainabilityReport,
	)
	if err != nil {
		return nil, fmt.Errorf("save weights: %w", err)
	}
	return saved, nil
}
