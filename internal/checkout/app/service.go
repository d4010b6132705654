package app

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	cartdomain "github.com/dwikikusuma/falc-storefront/internal/cart/domain"
	"github.com/dwikikusuma/falc-storefront/internal/checkout/domain"
)

const NoticeProceeding = "Proceeding to checkout..."

var ErrEmptyCart = errors.New("cart is empty")

// Service is the handoff point to an external checkout flow. It quotes the
// cart and logs it; payment and order placement happen elsewhere.
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log}
}

func (s *Service) Quote(items cartdomain.State) (domain.Quote, error) {
	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := lo.Map(items, func(li cartdomain.LineItem, _ int) domain.QuoteLine {
		return domain.QuoteLine{
			ProductID: li.ID,
			Name:      li.Name,
			Size:      li.Size,
			Quantity:  li.Quantity,
			UnitPrice: li.Price,
			LineTotal: li.LineTotal(),
		}
	})

	return domain.Quote{Lines: lines, Total: items.Total()}, nil
}

// Begin implements the cart UI's checkout handoff.
func (s *Service) Begin(ctx context.Context, items cartdomain.State) (string, error) {
	quote, err := s.Quote(items)
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "checkout handoff",
		slog.Int("lines", len(quote.Lines)),
		slog.String("total", quote.Total.StringFixed(2)),
	)
	return NoticeProceeding, nil
}
