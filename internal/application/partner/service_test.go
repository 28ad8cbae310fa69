package partner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
)

type stubGateway struct {
	customers []erp.Customer
	addresses []erp.CustomerAddress
	sellers   []erp.Seller

	nameQuery  string
	phoneQuery string
	addrQuery  string
}

func (g *stubGateway) ListCustomers(context.Context, string) ([]erp.Customer, error) {
	return g.customers, nil
}

func (g *stubGateway) FilterCustomersByName(_ context.Context, _, name string) ([]erp.Customer, error) {
	g.nameQuery = name
	return g.customers, nil
}

func (g *stubGateway) FilterCustomersByPhone(_ context.Context, _, phone string) ([]erp.Customer, error) {
	g.phoneQuery = phone
	return g.customers, nil
}

func (g *stubGateway) CustomerAddresses(_ context.Context, _, code string) ([]erp.CustomerAddress, error) {
	g.addrQuery = code
	return g.addresses, nil
}

func (g *stubGateway) ListSellers(context.Context, string) ([]erp.Seller, error) {
	return g.sellers, nil
}

func (g *stubGateway) FilterSellers(_ context.Context, _, name string) ([]erp.Seller, error) {
	g.nameQuery = name
	return g.sellers, nil
}

func TestSearchCustomers(t *testing.T) {
	t.Run("digits route to phone filter", func(t *testing.T) {
		gw := &stubGateway{customers: []erp.Customer{{ErpCode: "C-1", Name: "فروشگاه نمونه"}}}
		svc := NewService(gw, nil)

		results, err := svc.SearchCustomers(context.Background(), "tok", "۰۹۱۲۳۴۵")
		require.NoError(t, err)
		assert.Equal(t, "0912345", gw.phoneQuery)
		assert.Empty(t, gw.nameQuery)
		assert.Len(t, results, 1)
	})

	t.Run("text routes to name filter", func(t *testing.T) {
		gw := &stubGateway{}
		svc := NewService(gw, nil)

		_, err := svc.SearchCustomers(context.Background(), "tok", "فروشگاه")
		require.NoError(t, err)
		assert.Equal(t, "فروشگاه", gw.nameQuery)
		assert.Empty(t, gw.phoneQuery)
	})

	t.Run("blank query is rejected", func(t *testing.T) {
		svc := NewService(&stubGateway{}, nil)
		_, err := svc.SearchCustomers(context.Background(), "tok", "  ")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAddresses(t *testing.T) {
	gw := &stubGateway{addresses: []erp.CustomerAddress{{ErpCode: "A-1", Address: "تهران"}}}
	svc := NewService(gw, nil)

	addrs, err := svc.Addresses(context.Background(), "tok", "C-1")
	require.NoError(t, err)
	assert.Equal(t, "C-1", gw.addrQuery)
	assert.Len(t, addrs, 1)

	_, err = svc.Addresses(context.Background(), "tok", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSearchSellers(t *testing.T) {
	gw := &stubGateway{sellers: []erp.Seller{{ErpCode: "S-1", Name: "رضا"}}}
	svc := NewService(gw, nil)

	sellers, err := svc.SearchSellers(context.Background(), "tok", " رضا ")
	require.NoError(t, err)
	assert.Equal(t, "رضا", gw.nameQuery)
	assert.Len(t, sellers, 1)

	_, err = svc.SearchSellers(context.Background(), "tok", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
