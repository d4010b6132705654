package domain

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	// StorageKey is the key the cart is persisted under.
	StorageKey = "falccart"
	// MaxQuantity caps a single line so quantities and counts cannot overflow.
	MaxQuantity = 999
)

// LineItem ids are opaque product ids; any integer is accepted.
type LineItem struct {
	ID       int64
	Name     string
	Image    string
	Size     string
	Price    decimal.Decimal
	Quantity int `validate:"gte=1,lte=999"`
}

var validate = validator.New()

// Validate checks the field-level invariants of a single line item.
func (li LineItem) Validate() error {
	if err := validate.Struct(li); err != nil {
		return err
	}
	if li.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// LineTotal is price × quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is the ordered list of line items, unique by ID.
type State []LineItem

func (s State) Index(id int64) int {
	_, idx, ok := lo.FindIndexOf(s, func(li LineItem) bool { return li.ID == id })
	if !ok {
		return -1
	}
	return idx
}

func (s State) Clone() State {
	out := make(State, len(s))
	copy(out, s)
	return out
}

func (s State) Count() int {
	return lo.SumBy(s, func(li LineItem) int { return li.Quantity })
}

func (s State) Total() decimal.Decimal {
	return lo.Reduce(s, func(acc decimal.Decimal, li LineItem, _ int) decimal.Decimal {
		return acc.Add(li.LineTotal())
	}, decimal.Zero)
}

// Validate checks every item and the uniqueness of IDs.
func (s State) Validate() error {
	seen := make(map[int64]struct{}, len(s))
	for _, li := range s {
		if err := li.Validate(); err != nil {
			return err
		}
		if _, dup := seen[li.ID]; dup {
			return ErrDuplicateID
		}
		seen[li.ID] = struct{}{}
	}
	return nil
}
