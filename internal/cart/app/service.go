package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
)

var (
	ErrInvalidItem = errors.New("invalid cart item")
	// ErrNotPersisted is returned alongside a committed in-memory change
	// whose write to storage failed.
	ErrNotPersisted = errors.New("cart change not persisted")
)

// Manager owns the cart of one page view. Every mutation is written through
// to the store before it becomes visible.
type Manager struct {
	mu    sync.RWMutex
	items domain.State

	store     CartStore
	log       *slog.Logger
	onPersist PersistErrorHandler
}

type Option func(*Manager)

func WithPersistErrorHandler(h PersistErrorHandler) Option {
	return func(m *Manager) { m.onPersist = h }
}

func NewManager(ctx context.Context, store CartStore, log *slog.Logger, opts ...Option) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		store: store,
		log:   log,
		items: store.Load(ctx),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Items returns a snapshot in insertion order.
func (m *Manager) Items() []domain.LineItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items.Clone()
}

// State is Items typed as domain.State, for rendering.
func (m *Manager) State() domain.State {
	return m.Items()
}

func (m *Manager) TotalItemCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items.Count()
}

func (m *Manager) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items) == 0
}

func (m *Manager) Total() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items.Total()
}

// RemoveItem drops the line item with id. Unknown ids are a no-op but the
// state is still written back.
func (m *Manager) RemoveItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := lo.Filter(m.items, func(li domain.LineItem, _ int) bool { return li.ID != id })
	return m.commit(ctx, next)
}

// AddItem appends item with quantity, or increments the quantity of the
// line item that already has item.ID. Other fields of an existing line are
// left as they are. A resulting quantity above domain.MaxQuantity is
// rejected with ErrInvalidItem.
func (m *Manager) AddItem(ctx context.Context, item domain.LineItem, quantity int) error {
	if quantity < 1 {
		return errors.Wrapf(ErrInvalidItem, "quantity %d", quantity)
	}
	item.Quantity = quantity
	if err := item.Validate(); err != nil {
		return errors.Mark(errors.Wrap(err, "add item"), ErrInvalidItem)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.items.Clone()
	if idx := next.Index(item.ID); idx >= 0 {
		if next[idx].Quantity > domain.MaxQuantity-quantity {
			return errors.Wrapf(ErrInvalidItem, "quantity %d + %d exceeds %d", next[idx].Quantity, quantity, domain.MaxQuantity)
		}
		next[idx].Quantity += quantity
	} else {
		next = append(next, item)
	}
	return m.commit(ctx, next)
}

// SetQuantity sets the quantity of id. A quantity below one removes the
// line item; unknown ids are ignored.
func (m *Manager) SetQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity > domain.MaxQuantity {
		return errors.Wrapf(ErrInvalidItem, "quantity %d exceeds %d", quantity, domain.MaxQuantity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.items.Index(id)
	if idx < 0 {
		return nil
	}

	next := m.items.Clone()
	if quantity < 1 {
		next = append(next[:idx], next[idx+1:]...)
	} else {
		next[idx].Quantity = quantity
	}
	return m.commit(ctx, next)
}

// Clear empties the cart by persisting an empty sequence.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commit(ctx, domain.State{})
}

// commit saves next and then installs it. A failed save still installs next
// so the cart keeps working in memory for the rest of the session.
func (m *Manager) commit(ctx context.Context, next domain.State) error {
	if next == nil {
		next = domain.State{}
	}

	err := m.store.Save(ctx, next)
	m.items = next
	if err == nil {
		return nil
	}

	m.log.Warn("cart not persisted", slog.Any("err", err), slog.Int("items", len(next)))
	if m.onPersist != nil {
		m.onPersist(err)
	}
	return errors.Mark(err, ErrNotPersisted)
}
