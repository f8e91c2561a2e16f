package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// MockStore implements store.Store interface for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateSupplier(ctx context.Context, sp *store.Supplier) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *MockStore) GetSupplier(ctx context.Context, id uuid.UUID) (*store.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Supplier), args.Error(1)
}

func (m *MockStore) ListSuppliers(ctx context.Context, filter store.SupplierFilter) ([]*store.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Supplier), args.Error(1)
}

func (m *MockStore) UpdateSupplier(ctx context.Context, sp *store.Supplier) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *MockStore) DeleteSupplier(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetWeights(ctx context.Context) (*store.Weights, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Weights), args.Error(1)
}

func (m *MockStore) SaveWeights(ctx context.Context, w store.Weights) (*store.Weights, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Weights), args.Error(1)
}

func (m *MockStore) Close() error { return nil }

// recordingHermes keeps every published subject and payload.
type recordingHermes struct {
	mu       sync.Mutex
	subjects []string
	payloads []interface{}
}

func (h *recordingHermes) Publish(subject string, data interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subjects = append(h.subjects, subject)
	h.payloads = append(h.payloads, data)
	return nil
}
func (h *recordingHermes) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (h *recordingHermes) Close()                                           {}

func (h *recordingHermes) published() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.subjects...)
}

const testAdminToken = "test-token"

func setupTestRouter() (http.Handler, *MockStore, *recordingHermes) {
	ms := &MockStore{}
	rh := &recordingHermes{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ws := scoring.NewWeightStore(ms, scoring.DefaultSumTolerance, logger)
	return NewRouter(ms, rh, ws, testAdminToken, 0, false, logger), ms, rh
}

func greenSupply() *store.Supplier {
	return &store.Supplier{
		ID:                   uuid.MustParse("6f1c1f0e-58c4-4a3e-8e0a-2b1d0c9a7e11"),
		Name:                 "GreenSupply Co.",
		ProductCategory:      "Electronics",
		CarbonFootprint:      1245,
		WaterUsage:           780,
		WasteReduction:       60,
		EnergyEfficiency:     72,
		TransportCostPerUnit: 45.20,
		ISO14001:             true,
		RecyclingPolicy:      true,
	}
}

func ecoTech() *store.Supplier {
	return &store.Supplier{
		ID:                   uuid.MustParse("0b9d7c3a-2f4e-4c61-9f7e-5a8b3c2d1e00"),
		Name:                 "EcoTech Industries",
		ProductCategory:      "Textiles",
		CarbonFootprint:      3890,
		WaterUsage:           2100,
		WasteGeneration:      22,
		TransportCostPerUnit: 78.90,
	}
}
