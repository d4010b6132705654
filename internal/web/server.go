// Package web serves the storefront API. Each request plays the part of a
// page load: the visitor's cart is read from storage, one UI event is applied,
// and the resulting view is returned as JSON.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	cartapp "github.com/dwikikusuma/falc-storefront/internal/cart/app"
	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
	"github.com/dwikikusuma/falc-storefront/internal/cart/infra/kv"
	"github.com/dwikikusuma/falc-storefront/internal/cart/render"
	"github.com/dwikikusuma/falc-storefront/internal/cart/ui"
	catalogapp "github.com/dwikikusuma/falc-storefront/internal/catalog/app"
	"github.com/dwikikusuma/falc-storefront/internal/sphere"
	"github.com/dwikikusuma/falc-storefront/pkg/storage"
)

const (
	SessionCookie  = "falc_session"
	DropdownCookie = "falc_dropdown"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	storage  storage.Storage
	catalog  *catalogapp.Service
	checkout ui.Checkout
	renderer render.Renderer
	log      *slog.Logger

	sessionTTL time.Duration
}

type Deps struct {
	Storage    storage.Storage
	Catalog    *catalogapp.Service
	Checkout   ui.Checkout
	Renderer   render.Renderer
	Log        *slog.Logger
	SessionTTL time.Duration
}

func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		storage:    d.Storage,
		catalog:    d.Catalog,
		checkout:   d.Checkout,
		renderer:   d.Renderer,
		log:        log,
		sessionTTL: d.SessionTTL,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/products", s.handleProducts)

	mux.HandleFunc("GET /api/cart", s.cartEvent(func(e *event) error { return nil }))
	mux.HandleFunc("POST /api/cart/toggle", s.cartEvent(func(e *event) error {
		e.ctrl.ToggleClicked()
		return nil
	}))
	mux.HandleFunc("POST /api/cart/dismiss", s.cartEvent(func(e *event) error {
		e.ctrl.OutsideClicked()
		return nil
	}))
	mux.HandleFunc("POST /api/cart/items", s.cartEvent(s.addItem))
	mux.HandleFunc("PUT /api/cart/items/{id}", s.cartEvent(s.setQuantity))
	mux.HandleFunc("DELETE /api/cart/items/{id}", s.cartEvent(s.removeItem))
	mux.HandleFunc("POST /api/cart/checkout", s.cartEvent(func(e *event) error {
		e.ctrl.CheckoutClicked(e.r.Context())
		return nil
	}))

	mux.HandleFunc("GET /api/sphere", s.handleSphere)
	mux.HandleFunc("GET /api/sphere/parallax", s.handleParallax)
	return mux
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, _, err := s.storage.GetItem(r.Context(), "readyz", "ping"); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// event is one cart interaction bound to the caller's session.
type event struct {
	r    *http.Request
	ctrl *ui.Controller
}

type cartResponse struct {
	Cart         render.View `json:"cart"`
	Badge        int         `json:"badge"`
	DropdownOpen bool        `json:"dropdownOpen"`
	Notices      []string    `json:"notices"`
}

func (s *Server) cartEvent(apply func(e *event) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ns := s.session(w, r)
		log := s.log.With(slog.String("session", ns))

		store := kv.NewCartStore(s.storage, ns, log)
		mgr := cartapp.NewManager(r.Context(), store, log)
		view := &jsonView{}
		ctrl := ui.NewController(mgr, view, s.renderer, s.checkout, log)
		ctrl.SetDropdownOpen(dropdownOpen(r))
		ctrl.Init()

		if err := apply(&event{r: r, ctrl: ctrl}); err != nil {
			s.writeError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     DropdownCookie,
			Value:    strconv.FormatBool(ctrl.DropdownOpen()),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, view.response(ctrl.DropdownOpen()))
	}
}

type addItemRequest struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) addItem(e *event) error {
	var req addItemRequest
	if err := codec.NewDecoder(e.r.Body).Decode(&req); err != nil {
		return errors.Mark(errors.Wrap(err, "decode body"), ErrBadRequest)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := e.r.Context()
	p, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if len(p.Sizes) > 0 && !lo.Contains(p.Sizes, req.Size) {
		return errors.Wrapf(ErrBadRequest, "size %q not offered for product %d", req.Size, p.ID)
	}

	return e.ctrl.AddClicked(ctx, domain.LineItem{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Size:  req.Size,
		Price: p.Price,
	}, req.Quantity)
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (s *Server) setQuantity(e *event) error {
	id, err := pathID(e.r)
	if err != nil {
		return err
	}
	var req setQuantityRequest
	if err := codec.NewDecoder(e.r.Body).Decode(&req); err != nil {
		return errors.Mark(errors.Wrap(err, "decode body"), ErrBadRequest)
	}
	if req.Quantity == nil {
		return errors.Wrap(ErrBadRequest, "quantity is required")
	}
	return e.ctrl.QuantityChanged(e.r.Context(), id, *req.Quantity)
}

func (s *Server) removeItem(e *event) error {
	id, err := pathID(e.r)
	if err != nil {
		return err
	}
	e.ctrl.RemoveClicked(e.r.Context(), id)
	return nil
}

type productDTO struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Image string   `json:"image"`
	Sizes []string `json:"sizes"`
	Price string   `json:"price"`
}

type productsResponse struct {
	Products  []productDTO `json:"products"`
	NoResults bool         `json:"noResults"`
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := productsResponse{Products: make([]productDTO, 0, len(res.Visible)), NoResults: res.NoResults}
	for _, p := range res.Visible {
		out.Products = append(out.Products, productDTO{
			ID:    p.ID,
			Name:  p.Name,
			Image: p.Image,
			Sizes: p.Sizes,
			Price: p.PriceLabel(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSphere(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := intParam(q.Get("n"), sphere.DefaultPoints)
	if err != nil || n > 10000 {
		s.writeError(w, r, errors.Wrap(ErrBadRequest, "n"))
		return
	}
	radius, err := floatParam(q.Get("radius"), sphere.DefaultRadius)
	if err != nil {
		s.writeError(w, r, errors.Wrap(ErrBadRequest, "radius"))
		return
	}
	writeJSON(w, http.StatusOK, sphere.Points(n, radius))
}

func (s *Server) handleParallax(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var vals [4]float64
	for i, key := range []string{"w", "h", "x", "y"} {
		v, err := floatParam(q.Get(key), 0)
		if err != nil {
			s.writeError(w, r, errors.Wrapf(ErrBadRequest, "%s", key))
			return
		}
		vals[i] = v
	}
	writeJSON(w, http.StatusOK, sphere.Parallax(vals[0], vals[1], vals[2], vals[3]))
}

// session returns the caller's storage namespace, issuing a new session
// cookie when the request has none or an invalid one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.sessionTTL > 0 {
		cookie.MaxAge = int(s.sessionTTL / time.Second)
	}
	http.SetCookie(w, cookie)
	return id
}

func dropdownOpen(r *http.Request) bool {
	c, err := r.Cookie(DropdownCookie)
	if err != nil {
		return false
	}
	open, _ := strconv.ParseBool(c.Value)
	return open
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadRequest, "item id %q", r.PathValue("id"))
	}
	return id, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func floatParam(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = codec.NewEncoder(w).Encode(v)
}
