// Package render turns cart state into display data. It holds no state and
// the same input always yields the same output.
package render

import (
	"github.com/samber/lo"

	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
)

const DefaultCurrencySymbol = "$"

type Row struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type View struct {
	Rows      []Row  `json:"rows"`
	Total     string `json:"total"`
	Count     int    `json:"count"`
	ShowEmpty bool   `json:"showEmpty"`
}

type Renderer struct {
	symbol string
}

func NewRenderer(symbol string) Renderer {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Renderer{symbol: symbol}
}

func (r Renderer) Render(state domain.State) View {
	rows := lo.Map(state, func(li domain.LineItem, _ int) Row {
		return Row{
			ID:        li.ID,
			Name:      li.Name,
			Image:     li.Image,
			Size:      li.Size,
			UnitPrice: li.Price.StringFixed(2),
			Quantity:  li.Quantity,
		}
	})

	return View{
		Rows:      rows,
		Total:     r.symbol + state.Total().StringFixed(2),
		Count:     state.Count(),
		ShowEmpty: len(state) == 0,
	}
}

// Render uses the default currency symbol.
func Render(state domain.State) View {
	return NewRenderer(DefaultCurrencySymbol).Render(state)
}
