// Package ui binds cart events to the cart manager and a view. The view is
// an interface so the controller runs without any particular front end.
package ui

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/dwikikusuma/falc-storefront/internal/cart/app"
	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
	"github.com/dwikikusuma/falc-storefront/internal/cart/render"
)

const (
	NoticeEmptyCart    = "Your cart is empty"
	NoticeNotPersisted = "Your cart could not be saved; changes will be lost when you leave"
)

// View is everything the controller needs from the page.
type View interface {
	SetDropdownVisible(visible bool)
	RenderCart(v render.View)
	SetBadge(count int)
	Notify(message string)
}

// Checkout receives a non-empty cart when the visitor checks out.
type Checkout interface {
	Begin(ctx context.Context, items domain.State) (notice string, err error)
}

type Controller struct {
	cart     *app.Manager
	view     View
	renderer render.Renderer
	checkout Checkout
	log      *slog.Logger

	dropdownOpen bool
}

func NewController(cart *app.Manager, view View, renderer render.Renderer, checkout Checkout, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		cart:     cart,
		view:     view,
		renderer: renderer,
		checkout: checkout,
		log:      log,
	}
}

// Init draws the cart as loaded.
func (c *Controller) Init() {
	c.refresh()
}

// DropdownOpen reports the controller's view of the dropdown.
func (c *Controller) DropdownOpen() bool {
	return c.dropdownOpen
}

// SetDropdownOpen restores dropdown state carried over from a previous view.
func (c *Controller) SetDropdownOpen(open bool) {
	c.dropdownOpen = open
}

func (c *Controller) ToggleClicked() {
	c.setDropdown(!c.dropdownOpen)
}

func (c *Controller) OutsideClicked() {
	c.setDropdown(false)
}

func (c *Controller) RemoveClicked(ctx context.Context, id int64) {
	c.report(c.cart.RemoveItem(ctx, id))
	c.refresh()
	if c.cart.IsEmpty() {
		c.setDropdown(false)
	}
}

func (c *Controller) AddClicked(ctx context.Context, item domain.LineItem, quantity int) error {
	err := c.cart.AddItem(ctx, item, quantity)
	if errors.Is(err, app.ErrInvalidItem) {
		return err
	}
	c.report(err)
	c.refresh()
	return nil
}

// QuantityChanged returns only ErrInvalidItem; the cart is left untouched
// in that case.
func (c *Controller) QuantityChanged(ctx context.Context, id int64, quantity int) error {
	err := c.cart.SetQuantity(ctx, id, quantity)
	if errors.Is(err, app.ErrInvalidItem) {
		return err
	}
	c.report(err)
	c.refresh()
	if c.cart.IsEmpty() {
		c.setDropdown(false)
	}
	return nil
}

// CheckoutClicked hands a non-empty cart to checkout. An empty cart only
// produces a notice.
func (c *Controller) CheckoutClicked(ctx context.Context) {
	if c.cart.IsEmpty() {
		c.view.Notify(NoticeEmptyCart)
		return
	}

	notice, err := c.checkout.Begin(ctx, c.cart.State())
	if err != nil {
		c.log.Error("checkout handoff failed", slog.Any("err", err))
		c.view.Notify(err.Error())
		return
	}
	c.view.Notify(notice)
}

func (c *Controller) refresh() {
	state := c.cart.State()
	c.view.SetBadge(state.Count())
	c.view.RenderCart(c.renderer.Render(state))
}

func (c *Controller) setDropdown(open bool) {
	c.dropdownOpen = open
	c.view.SetDropdownVisible(open)
}

func (c *Controller) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, app.ErrNotPersisted) {
		c.view.Notify(NoticeNotPersisted)
		return
	}
	c.log.Error("cart update failed", slog.Any("err", err))
}
