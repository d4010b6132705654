package app

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/dwikikusuma/falc-storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo   ProductRepo
	symbol string
}

func NewService(repo ProductRepo, currencySymbol string) *Service {
	if currencySymbol == "" {
		currencySymbol = "$"
	}
	return &Service{
		repo:   repo,
		symbol: currencySymbol,
	}
}

// SearchResult mirrors the product grid: which cards stay visible and
// whether the "no results" message shows.
type SearchResult struct {
	Visible   []domain.Product
	NoResults bool
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, query string) (SearchResult, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return Filter(products, query, s.symbol), nil
}

// Filter keeps the products whose lower-cased name contains the trimmed,
// lower-cased term, or whose price label contains it with or without the
// currency symbol. An empty term keeps everything.
func Filter(products []domain.Product, term, symbol string) SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))

	visible := lo.Filter(products, func(p domain.Product, _ int) bool {
		price := p.PriceLabel()
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(price, term) ||
			strings.Contains(symbol+price, term)
	})

	return SearchResult{
		Visible:   visible,
		NoResults: len(visible) == 0,
	}
}
