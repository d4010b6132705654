package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
)

func sample() domain.State {
	return domain.State{
		{ID: 1, Name: "Falcon Tee", Image: "/img/tee.png", Size: "L", Price: decimal.RequireFromString("10"), Quantity: 2},
		{ID: 2, Name: "Cap", Image: "/img/cap.png", Size: "One", Price: decimal.RequireFromString("5.5"), Quantity: 1},
	}
}

func TestRender(t *testing.T) {
	v := Render(sample())

	require.Len(t, v.Rows, 2)
	assert.Equal(t, Row{ID: 1, Name: "Falcon Tee", Image: "/img/tee.png", Size: "L", UnitPrice: "10.00", Quantity: 2}, v.Rows[0])
	assert.Equal(t, "5.50", v.Rows[1].UnitPrice)
	assert.Equal(t, "$25.50", v.Total)
	assert.Equal(t, 3, v.Count)
	assert.False(t, v.ShowEmpty)
}

func TestRenderEmpty(t *testing.T) {
	v := Render(domain.State{})

	assert.Empty(t, v.Rows)
	assert.Equal(t, "$0.00", v.Total)
	assert.Equal(t, 0, v.Count)
	assert.True(t, v.ShowEmpty)

	assert.Equal(t, "$0.00", Render(nil).Total)
}

func TestRenderIsDeterministic(t *testing.T) {
	s := sample()
	assert.Equal(t, Render(s), Render(s))
}

func TestRendererSymbol(t *testing.T) {
	assert.Equal(t, "€25.50", NewRenderer("€").Render(sample()).Total)
	assert.Equal(t, "$25.50", NewRenderer("").Render(sample()).Total)
}
