package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/renewhub/internal/testutil"
	"github.com/HerbHall/renewhub/pkg/models"
)

type countingLoader struct {
	calls    atomic.Int32
	products []models.Product
	err      error
}

func (l *countingLoader) LoadCatalog(context.Context) ([]models.Product, error) {
	l.calls.Add(1)
	return l.products, l.err
}

func TestStore_LoadsOnce(t *testing.T) {
	loader := &countingLoader{products: testutil.SampleProducts()}
	s := NewStore(loader, testutil.Logger())

	for range 3 {
		got, err := s.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 10)
	}
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestStore_FailureIsSticky(t *testing.T) {
	boom := errors.New("backend down")
	loader := &countingLoader{err: boom}
	s := NewStore(loader, nil)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, boom)

	products, err := s.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, int32(1), loader.calls.Load(), "failed load must not be retried")
	assert.ErrorIs(t, s.Err(), boom)
}

func TestStore_NewVisitRefetches(t *testing.T) {
	loader := &countingLoader{products: testutil.SampleProducts()}

	_, _ = NewStore(loader, nil).Load(context.Background())
	_, _ = NewStore(loader, nil).Load(context.Background())

	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestStore_Find(t *testing.T) {
	s := NewStore(&countingLoader{products: testutil.SampleProducts()}, nil)
	assert.Empty(t, s.Products(), "empty before load")

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	p, err := s.Find(8)
	require.NoError(t, err)
	assert.Equal(t, "Micro Hydro Generator", p.Name)

	_, err = s.Find(999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestStore_NilProductsBecomeEmpty(t *testing.T) {
	s := NewStore(&countingLoader{}, nil)
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
}
