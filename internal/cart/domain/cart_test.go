package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func li(id int64, price string, qty int) LineItem {
	return LineItem{ID: id, Name: "n", Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestStateTotals(t *testing.T) {
	s := State{li(1, "10.00", 2), li(2, "5.50", 1)}

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, "25.50", s.Total().StringFixed(2))
	assert.Equal(t, "0.00", State{}.Total().StringFixed(2))
	assert.Equal(t, 1, s.Index(2))
	assert.Equal(t, -1, s.Index(99))
}

func TestStateValidate(t *testing.T) {
	require.NoError(t, State{li(1, "0", 1), li(2, "3", 4)}.Validate())

	err := State{li(1, "1", 1), li(1, "1", 1)}.Validate()
	assert.True(t, errors.Is(err, ErrDuplicateID))

	assert.Error(t, State{li(1, "1", 0)}.Validate(), "quantity must be at least one")
	assert.Error(t, State{li(1, "1", MaxQuantity+1)}.Validate(), "quantity is capped")
	require.NoError(t, State{li(1, "1", MaxQuantity)}.Validate())
	require.NoError(t, State{li(0, "1", 1), li(-7, "1", 1)}.Validate(), "any integer id is accepted")

	err = State{li(1, "-0.01", 1)}.Validate()
	assert.True(t, errors.Is(err, ErrNegativePrice))
}
