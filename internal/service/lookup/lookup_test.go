package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"patrol-inspection/internal/constants"
	"patrol-inspection/internal/option"
	"patrol-inspection/internal/storage"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) StoredValues(ctx context.Context) (storage.StoredValues, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.StoredValues), args.Error(1)
}

func (m *mockStore) CatalogEntries(ctx context.Context, operation string) ([]storage.CatalogEntry, error) {
	args := m.Called(ctx, operation)
	return args.Get(0).([]storage.CatalogEntry), args.Error(1)
}

func (m *mockStore) SaveCatalogEntry(ctx context.Context, e storage.CatalogEntry) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDropdownOptions_MergesStoredAndCaches(t *testing.T) {
	store := new(mockStore)
	store.On("StoredValues", mock.Anything).Return(storage.StoredValues{
		Customers: []string{"FIG", "NEW CUSTOMER"},
	}, nil).Once()

	svc := New(discard(), store, time.Minute)

	res, err := svc.DropdownOptions(context.Background())
	require.NoError(t, err)

	customers := option.Values(res.Customers)
	assert.Len(t, customers, len(constants.Customers)+1)
	assert.Equal(t, "NEW CUSTOMER", customers[len(customers)-1])
	assert.Equal(t, []string{"SETUP", "2HRS", "4HRS", "LAST"}, option.Values(res.TimeTypes))

	_, err = svc.DropdownOptions(context.Background())
	require.NoError(t, err)

	store.AssertNumberOfCalls(t, "StoredValues", 1)
}

func TestDropdownOptions_StoreError(t *testing.T) {
	store := new(mockStore)
	store.On("StoredValues", mock.Anything).Return(storage.StoredValues{}, errors.New("db down"))

	_, err := New(discard(), store, time.Minute).DropdownOptions(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestDropdownOptions_WithoutStore(t *testing.T) {
	res, err := New(discard(), nil, time.Minute).DropdownOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, constants.Operations, option.Values(res.Operations))
}

func TestItemCatalog_FallsBackPerCategory(t *testing.T) {
	store := new(mockStore)
	store.On("CatalogEntries", mock.Anything, "TURNING").Return([]storage.CatalogEntry{
		{ID: 1, Operation: "TURNING", Category: storage.CategoryProcess, Item: "SPINDLE SPEED"},
		{ID: 2, Operation: "TURNING", Category: "other", Item: "IGNORED"},
	}, nil).Once()

	svc := New(discard(), store, time.Minute)

	res, err := svc.ItemCatalog(context.Background(), " TURNING ")
	require.NoError(t, err)
	assert.Equal(t, constants.ProductItems, option.Values(res.Product))
	assert.Equal(t, []string{"SPINDLE SPEED"}, option.Values(res.Process))

	_, err = svc.ItemCatalog(context.Background(), "TURNING")
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAddCatalogEntry_InvalidatesOperation(t *testing.T) {
	store := new(mockStore)
	store.On("CatalogEntries", mock.Anything, "MILLING").Return([]storage.CatalogEntry{}, nil).Twice()
	store.On("SaveCatalogEntry", mock.Anything, mock.MatchedBy(func(e storage.CatalogEntry) bool {
		return e.Operation == "MILLING" && e.Item == "FLATNESS"
	})).Return(int64(7), nil)

	svc := New(discard(), store, time.Minute)

	_, err := svc.ItemCatalog(context.Background(), "MILLING")
	require.NoError(t, err)

	id, err := svc.AddCatalogEntry(context.Background(), storage.CatalogEntry{
		Operation: "MILLING", Category: storage.CategoryProduct, Item: " FLATNESS ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = svc.ItemCatalog(context.Background(), "MILLING")
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "CatalogEntries", 2)
}

func TestAddCatalogEntry_Validation(t *testing.T) {
	svc := New(discard(), new(mockStore), time.Minute)

	_, err := svc.AddCatalogEntry(context.Background(), storage.CatalogEntry{Operation: "X", Category: "bogus", Item: "Y"})
	assert.ErrorIs(t, err, ErrInvalidCatalogEntry)

	_, err = svc.AddCatalogEntry(context.Background(), storage.CatalogEntry{Category: storage.CategoryProduct, Item: "Y"})
	assert.ErrorIs(t, err, ErrInvalidCatalogEntry)

	_, err = svc.AddCatalogEntry(context.Background(), storage.CatalogEntry{Operation: "   ", Category: storage.CategoryProduct, Item: "Y"})
	assert.ErrorIs(t, err, ErrInvalidCatalogEntry)

	_, err = svc.AddCatalogEntry(context.Background(), storage.CatalogEntry{
		Operation: "X", Category: storage.CategoryProduct, Item: strings.Repeat("I", storage.MaxItem+1),
	})
	assert.ErrorIs(t, err, ErrInvalidCatalogEntry)
	assert.ErrorIs(t, err, storage.ErrValueTooLong)

	_, err = New(discard(), nil, time.Minute).AddCatalogEntry(context.Background(), storage.CatalogEntry{})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestWarm_LoadsEveryOperation(t *testing.T) {
	store := new(mockStore)
	store.On("StoredValues", mock.Anything).Return(storage.StoredValues{}, nil)
	store.On("CatalogEntries", mock.Anything, mock.Anything).Return([]storage.CatalogEntry{}, nil)

	require.NoError(t, New(discard(), store, time.Minute).Warm(context.Background()))
	store.AssertNumberOfCalls(t, "CatalogEntries", len(constants.Operations))
}
