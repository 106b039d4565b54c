package settings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
)

type memRepo struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{values: map[string]string{}}
}

func (m *memRepo) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sets++
	m.values[key] = value
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, decimal.NewFromInt(5), "ThreadLine")
}

func TestGetReturnsDefaultWhenUnset(t *testing.T) {
	svc := newTestService(newMemRepo())

	v, err := svc.Get(context.Background(), "banner", "none")
	require.NoError(t, err)
	assert.Equal(t, "none", v)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	require.NoError(t, svc.Set(ctx, KeyDeliveryFee, "7.50"))
	require.NoError(t, svc.Set(ctx, KeyDeliveryFee, "7.50"))

	v, err := svc.Get(ctx, KeyDeliveryFee, "5")
	require.NoError(t, err)
	assert.Equal(t, "7.50", v)
	assert.Len(t, repo.values, 1)
}

func TestSetRequiresKey(t *testing.T) {
	err := newTestService(newMemRepo()).Set(context.Background(), "  ", "x")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestUpdateValidatesKnownKeys(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
		stored  string
	}{
		{name: "fee", key: KeyDeliveryFee, value: " 7.50 ", stored: "7.50"},
		{name: "free delivery", key: KeyDeliveryFee, value: "0", stored: "0"},
		{name: "negative fee", key: KeyDeliveryFee, value: "-1", wantErr: ErrInvalidDeliveryFee},
		{name: "fee not a number", key: KeyDeliveryFee, value: "five", wantErr: ErrInvalidDeliveryFee},
		{name: "fee with three decimals", key: KeyDeliveryFee, value: "7.505", wantErr: ErrInvalidDeliveryFee},
		{name: "fee larger than column", key: KeyDeliveryFee, value: "10000000000", wantErr: ErrInvalidDeliveryFee},
		{name: "largest fee", key: KeyDeliveryFee, value: "9999999999.99", stored: "9999999999.99"},
		{name: "shop name", key: KeyShopName, value: " Atelier ", stored: "Atelier"},
		{name: "blank shop name", key: KeyShopName, value: "  ", wantErr: ErrShopNameRequired},
		{name: "unknown key stored raw", key: "banner", value: " hello ", stored: " hello "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			err := newTestService(repo).Update(context.Background(), tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, apperr.ErrInvalid)
				assert.Empty(t, repo.values)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stored, repo.values[tt.key])
		})
	}
}

func TestDeliveryFee(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	fee, err := svc.DeliveryFee(ctx)
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromInt(5)))

	repo.values[KeyDeliveryFee] = "7.50"
	fee, err = svc.DeliveryFee(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7.5", fee.String())

	repo.values[KeyDeliveryFee] = "lots"
	_, err = svc.DeliveryFee(ctx)
	require.Error(t, err)
}

func TestShopName(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	name, err := svc.ShopName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ThreadLine", name)

	repo.err = errors.New("db down")
	_, err = svc.ShopName(ctx)
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	_, ok, err := svc.Lookup(ctx, "banner")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Set(ctx, "banner", "Summer sale"))
	v, ok, err := svc.Lookup(ctx, "banner")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Summer sale", v)
}
