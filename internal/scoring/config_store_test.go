package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// memStore keeps weights in memory; supplier methods are unused here.
type memStore struct {
	mu      sync.Mutex
	weights *store.Weights
	saves   int
}

func (m *memStore) CreateSupplier(context.Context, *store.Supplier) error { return nil }
func (m *memStore) GetSupplier(context.Context, uuid.UUID) (*store.Supplier, error) {
	return nil, nil
}
func (m *memStore) ListSuppliers(context.Context, store.SupplierFilter) ([]*store.Supplier, error) {
	return nil, nil
}
func (m *memStore) UpdateSupplier(context.Context, *store.Supplier) error   { return nil }
func (m *memStore) DeleteSupplier(context.Context, uuid.UUID) (bool, error) { return false, nil }
func (m *memStore) Close() error                                            { return nil }

func (m *memStore) GetWeights(context.Context) (*store.Weights, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.weights == nil {
		return nil, nil
	}
	w := *m.weights
	return &w, nil
}

func (m *memStore) SaveWeights(_ context.Context, w store.Weights) (*store.Weights, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.weights = &w
	out := w
	return &out, nil
}

func TestWeightStoreGetDefaultsWhenUnsaved(t *testing.T) {
	ws := NewWeightStore(&memStore{}, 0, discardLogger())
	w, err := ws.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)
}

func TestWeightStoreSaveReplacesConfiguration(t *testing.T) {
	ms := &memStore{}
	ws := NewWeightStore(ms, DefaultSumTolerance, discardLogger())
	ctx := context.Background()

	want := store.Weights{
		CarbonFootprint: 30, WaterUsage: 20, WasteReduction: 10, EnergyEfficiency: 10,
		ISO14001: 10, RecyclingPolicy: 10, WaterPolicy: 5, SustainabilityReport: 5,
	}
	res, err := ws.Save(ctx, want)
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Equal(t, want, res.Weights)

	got, err := ws.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWeightStoreSaveWarnsButPersists(t *testing.T) {
	ms := &memStore{}
	ws := NewWeightStore(ms, DefaultSumTolerance, discardLogger())

	res, err := ws.Save(context.Background(), Scale(DefaultWeights(), 1.5))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warning)
	assert.Equal(t, 1, ms.saves)
}

func TestWeightStoreSaveRejectsInvalid(t *testing.T) {
	ms := &memStore{}
	ws := NewWeightStore(ms, DefaultSumTolerance, discardLogger())

	_, err := ws.Save(context.Background(), store.Weights{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, ms.saves)
}

func TestWeightStoreScorerSnapshot(t *testing.T) {
	ms := &memStore{}
	ws := NewWeightStore(ms, DefaultSumTolerance, discardLogger())
	ctx := context.Background()

	s, err := ws.Scorer(ctx)
	require.NoError(t, err)

	// A save landing mid-batch does not change the batch's weights.
	_, err = ws.Save(ctx, store.Weights{WaterUsage: 100})
	require.NoError(t, err)

	batch, err := s.ScoreAll([]*store.Supplier{greenSupply(), ecoTech(), midMarket()})
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), s.Weights())
	assert.Equal(t, []int{65, 3, 56}, []int{
		batch[0].SustainabilityScore, batch[1].SustainabilityScore, batch[2].SustainabilityScore,
	})

	next, err := ws.Scorer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, next.Weights().WaterUsage)
}
