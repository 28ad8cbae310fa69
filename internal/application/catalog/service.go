// Package catalog exposes product search and listing for the dashboard.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/domain/billing"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
)

// ProductGateway is the slice of the Holoo client the catalog needs.
type ProductGateway interface {
	SearchProductsByName(ctx context.Context, token, name string) ([]erp.Product, error)
	SearchProductsByCode(ctx context.Context, token, code string) ([]erp.Product, error)
	ListProducts(ctx context.Context, token string, page, limit int) ([]erp.Product, error)
}

// TierOption is one sellable price tier of a product. Tiers priced at zero
// are not offered.
type TierOption struct {
	Tier     billing.PriceTier `json:"tier"`
	Currency billing.Currency  `json:"currency"`
	Price    decimal.Decimal   `json:"price"`
}

// ProductResult is a product shaped for the dashboard search box.
type ProductResult struct {
	Code    string       `json:"code"`
	ErpCode string       `json:"erpCode"`
	Name    string       `json:"name"`
	Unit    string       `json:"unit,omitempty"`
	Tiers   []TierOption `json:"tiers"`
}

// Service answers product searches, guarding each session against stale
// responses landing after a newer search has started.
type Service struct {
	gateway ProductGateway
	guard   *SearchGuard
	logger  *zap.Logger
}

// NewService creates a catalog service.
func NewService(gateway ProductGateway, guard *SearchGuard, logger *zap.Logger) *Service {
	if guard == nil {
		guard = NewSearchGuard()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, guard: guard, logger: logger}
}

// Guard exposes the session search guard, e.g. so logout can reset it.
func (s *Service) Guard() *SearchGuard { return s.guard }

// Search looks up products by name or, when the query is all digits after
// folding Persian keyboards, by code. Responses overtaken by a newer search
// on the same session come back as ErrSearchSuperseded.
func (s *Service) Search(ctx context.Context, token, sessionID, query string) ([]ProductResult, error) {
	query = strings.TrimSpace(NormalizeDigits(query))
	if query == "" {
		return nil, shared.ErrInvalidInput
	}

	ticket := s.guard.Begin(sessionID)

	var (
		products []erp.Product
		err      error
	)
	if IsNumericQuery(query) {
		products, err = s.gateway.SearchProductsByCode(ctx, token, query)
	} else {
		products, err = s.gateway.SearchProductsByName(ctx, token, query)
	}
	if err != nil {
		return nil, err
	}

	if !s.guard.Accept(sessionID, ticket) {
		s.logger.Debug("discarding superseded product search",
			zap.String("query", query))
		return nil, shared.ErrSearchSuperseded
	}

	return toResults(products), nil
}

// List returns one page of the product catalog.
func (s *Service) List(ctx context.Context, token string, page, limit int) ([]ProductResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	products, err := s.gateway.ListProducts(ctx, token, page, limit)
	if err != nil {
		return nil, err
	}
	return toResults(products), nil
}

func toResults(products []erp.Product) []ProductResult {
	results := make([]ProductResult, 0, len(products))
	for i := range products {
		p := &products[i]
		results = append(results, ProductResult{
			Code:    p.Code,
			ErpCode: p.ErpCode,
			Name:    p.Name,
			Unit:    p.Unit,
			Tiers:   TierOptions(p),
		})
	}
	return results
}

// TierOptions extracts the sellable price tiers of a product, skipping any
// tier priced at zero or below.
func TierOptions(p *erp.Product) []TierOption {
	options := make([]TierOption, 0, len(billing.AllTiers))
	for _, tier := range billing.AllTiers {
		price := p.TierPrice(tier)
		if !price.IsPositive() {
			continue
		}
		options = append(options, TierOption{
			Tier:     tier,
			Currency: tier.Currency(),
			Price:    price,
		})
	}
	return options
}
