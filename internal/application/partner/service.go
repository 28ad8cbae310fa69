// Package partner exposes customer and seller lookups for the dashboard.
package partner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/application/catalog"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
)

// Gateway is the slice of the Holoo client the partner lookups need.
type Gateway interface {
	ListCustomers(ctx context.Context, token string) ([]erp.Customer, error)
	FilterCustomersByName(ctx context.Context, token, name string) ([]erp.Customer, error)
	FilterCustomersByPhone(ctx context.Context, token, phone string) ([]erp.Customer, error)
	CustomerAddresses(ctx context.Context, token, customerErpCode string) ([]erp.CustomerAddress, error)
	ListSellers(ctx context.Context, token string) ([]erp.Seller, error)
	FilterSellers(ctx context.Context, token, name string) ([]erp.Seller, error)
}

// Service answers customer and seller queries against the accounting system.
type Service struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates a partner service.
func NewService(gateway Gateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, logger: logger}
}

// Customers lists the customers assigned to the operator's seller.
func (s *Service) Customers(ctx context.Context, token string) ([]erp.Customer, error) {
	return s.gateway.ListCustomers(ctx, token)
}

// SearchCustomers filters customers by name or, when the query is all digits
// after folding Persian keyboards, by phone number.
func (s *Service) SearchCustomers(ctx context.Context, token, query string) ([]erp.Customer, error) {
	query = strings.TrimSpace(catalog.NormalizeDigits(query))
	if query == "" {
		return nil, shared.ErrInvalidInput
	}
	if catalog.IsNumericQuery(query) {
		return s.gateway.FilterCustomersByPhone(ctx, token, query)
	}
	return s.gateway.FilterCustomersByName(ctx, token, query)
}

// Addresses lists the delivery addresses of one customer.
func (s *Service) Addresses(ctx context.Context, token, customerErpCode string) ([]erp.CustomerAddress, error) {
	if customerErpCode == "" {
		return nil, shared.ErrInvalidInput
	}
	return s.gateway.CustomerAddresses(ctx, token, customerErpCode)
}

// Sellers lists all salespeople.
func (s *Service) Sellers(ctx context.Context, token string) ([]erp.Seller, error) {
	return s.gateway.ListSellers(ctx, token)
}

// SearchSellers filters salespeople by name.
func (s *Service) SearchSellers(ctx context.Context, token, name string) ([]erp.Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	return s.gateway.FilterSellers(ctx, token, name)
}
