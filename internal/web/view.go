package web

import "github.com/dwikikusuma/falc-storefront/internal/cart/render"

// jsonView collects what the controller would have drawn on a page.
type jsonView struct {
	cart    render.View
	badge   int
	notices []string
}

func (v *jsonView) SetDropdownVisible(bool)  {}
func (v *jsonView) RenderCart(r render.View) { v.cart = r }
func (v *jsonView) SetBadge(n int)           { v.badge = n }
func (v *jsonView) Notify(msg string)        { v.notices = append(v.notices, msg) }

func (v *jsonView) response(open bool) cartResponse {
	notices := v.notices
	if notices == nil {
		notices = []string{}
	}
	return cartResponse{
		Cart:         v.cart,
		Badge:        v.badge,
		DropdownOpen: open,
		Notices:      notices,
	}
}
