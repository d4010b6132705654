package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID    int64
	Name  string
	Image string
	Sizes []string
	Price decimal.Decimal
}

// PriceLabel is the price as shown on the product card, without currency.
func (p Product) PriceLabel() string {
	return p.Price.StringFixed(2)
}
