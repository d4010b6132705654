package ui

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/falc-storefront/internal/cart/app"
	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
	"github.com/dwikikusuma/falc-storefront/internal/cart/render"
)

type fakeView struct {
	visible  []bool
	rendered []render.View
	badge    int
	notices  []string
}

func (v *fakeView) SetDropdownVisible(b bool) { v.visible = append(v.visible, b) }
func (v *fakeView) RenderCart(r render.View)  { v.rendered = append(v.rendered, r) }
func (v *fakeView) SetBadge(n int)            { v.badge = n }
func (v *fakeView) Notify(msg string)         { v.notices = append(v.notices, msg) }
func (v *fakeView) last() render.View         { return v.rendered[len(v.rendered)-1] }
func (v *fakeView) lastVisible() (bool, bool) {
	if len(v.visible) == 0 {
		return false, false
	}
	return v.visible[len(v.visible)-1], true
}

type memStore struct {
	state   domain.State
	saveErr error
}

func (s *memStore) Load(context.Context) domain.State { return s.state.Clone() }
func (s *memStore) Save(_ context.Context, st domain.State) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.state = st.Clone()
	return nil
}

type fakeCheckout struct {
	calls int
	err   error
}

func (c *fakeCheckout) Begin(context.Context, domain.State) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "Proceeding to checkout...", nil
}

func setup(t *testing.T, state domain.State) (*Controller, *fakeView, *fakeCheckout, *memStore) {
	t.Helper()
	store := &memStore{state: state}
	mgr := app.NewManager(context.Background(), store, nil)
	view := &fakeView{}
	co := &fakeCheckout{}
	c := NewController(mgr, view, render.NewRenderer("$"), co, nil)
	c.Init()
	return c, view, co, store
}

func twoItems() domain.State {
	return domain.State{
		{ID: 1, Name: "Tee", Price: decimal.RequireFromString("10.00"), Quantity: 2},
		{ID: 2, Name: "Cap", Price: decimal.RequireFromString("5.50"), Quantity: 1},
	}
}

func TestInitRenders(t *testing.T) {
	_, view, _, _ := setup(t, twoItems())

	require.Len(t, view.rendered, 1)
	assert.Equal(t, "$25.50", view.last().Total)
	assert.Equal(t, 3, view.badge)
}

func TestToggleAndOutsideClick(t *testing.T) {
	c, view, _, _ := setup(t, twoItems())

	c.ToggleClicked()
	assert.True(t, c.DropdownOpen())
	c.ToggleClicked()
	assert.False(t, c.DropdownOpen())

	c.ToggleClicked()
	c.OutsideClicked()
	assert.False(t, c.DropdownOpen())
	assert.Equal(t, []bool{true, false, true, false}, view.visible)
}

func TestRemoveClicked(t *testing.T) {
	c, view, _, store := setup(t, twoItems())
	ctx := context.Background()
	c.ToggleClicked()

	c.RemoveClicked(ctx, 1)
	assert.Equal(t, "$5.50", view.last().Total)
	assert.Equal(t, 1, view.badge)
	assert.True(t, c.DropdownOpen())

	c.RemoveClicked(ctx, 2)
	assert.True(t, view.last().ShowEmpty)
	assert.Equal(t, "$0.00", view.last().Total)
	assert.False(t, c.DropdownOpen(), "dropdown closes once the cart is empty")
	vis, ok := view.lastVisible()
	assert.True(t, ok)
	assert.False(t, vis)
	assert.Empty(t, store.state)
}

func TestAddAndQuantity(t *testing.T) {
	c, view, _, _ := setup(t, nil)
	ctx := context.Background()

	require.NoError(t, c.AddClicked(ctx, domain.LineItem{ID: 9, Name: "Hat", Price: decimal.RequireFromString("3")}, 2))
	assert.Equal(t, "$6.00", view.last().Total)

	err := c.AddClicked(ctx, domain.LineItem{ID: 9}, 0)
	assert.True(t, errors.Is(err, app.ErrInvalidItem))

	require.NoError(t, c.QuantityChanged(ctx, 9, 5))
	assert.Equal(t, 5, view.badge)

	err = c.QuantityChanged(ctx, 9, domain.MaxQuantity+1)
	assert.True(t, errors.Is(err, app.ErrInvalidItem))
	err = c.AddClicked(ctx, domain.LineItem{ID: 9, Name: "Hat", Price: decimal.RequireFromString("3")}, domain.MaxQuantity)
	assert.True(t, errors.Is(err, app.ErrInvalidItem))
	assert.Equal(t, 5, view.badge)

	require.NoError(t, c.QuantityChanged(ctx, 9, 0))
	assert.True(t, view.last().ShowEmpty)
}

func TestCheckoutClicked(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart notifies and aborts", func(t *testing.T) {
		c, view, co, _ := setup(t, nil)
		c.CheckoutClicked(ctx)
		assert.Equal(t, []string{NoticeEmptyCart}, view.notices)
		assert.Equal(t, 0, co.calls)
	})

	t.Run("non-empty cart hands off", func(t *testing.T) {
		c, view, co, store := setup(t, twoItems())
		c.CheckoutClicked(ctx)
		assert.Equal(t, 1, co.calls)
		assert.Equal(t, []string{"Proceeding to checkout..."}, view.notices)
		assert.Len(t, store.state, 2, "checkout does not change the cart")
	})

	t.Run("handoff error is shown", func(t *testing.T) {
		c, view, co, _ := setup(t, twoItems())
		co.err = errors.New("checkout offline")
		c.CheckoutClicked(ctx)
		assert.Equal(t, []string{"checkout offline"}, view.notices)
	})
}

func TestPersistFailureNotice(t *testing.T) {
	c, view, _, store := setup(t, twoItems())
	store.saveErr = errors.New("quota exceeded")

	c.RemoveClicked(context.Background(), 1)

	assert.Equal(t, []string{NoticeNotPersisted}, view.notices)
	assert.Equal(t, "$5.50", view.last().Total, "cart still works in memory")
}
