package app

import (
	"context"

	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
)

// CartStore is the persistent side of the cart. Load fails soft and always
// returns a usable state.
type CartStore interface {
	Load(ctx context.Context) domain.State
	Save(ctx context.Context, state domain.State) error
}

// PersistErrorHandler is told about saves that did not reach storage.
type PersistErrorHandler func(err error)
