package kv

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/falc-storefront/internal/cart/domain"
	"github.com/dwikikusuma/falc-storefront/pkg/storage"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New()

// record is the persisted shape of one line item. Pointers let us tell a
// missing field from a zero value.
type record struct {
	ID       *int64       `json:"id" validate:"required"`
	Name     *string      `json:"name" validate:"required"`
	Image    *string      `json:"image" validate:"required"`
	Size     *string      `json:"size" validate:"required"`
	Price    *json.Number `json:"price" validate:"required"`
	Quantity *int         `json:"quantity" validate:"required"`
}

// CartStore loads and saves the cart of one session under domain.StorageKey.
type CartStore struct {
	storage   storage.Storage
	namespace string
	log       *slog.Logger
}

func NewCartStore(s storage.Storage, namespace string, log *slog.Logger) *CartStore {
	if log == nil {
		log = slog.Default()
	}
	return &CartStore{
		storage:   s,
		namespace: namespace,
		log:       log,
	}
}

// Load never fails: absent, unreadable or malformed data is an empty cart.
func (s *CartStore) Load(ctx context.Context) domain.State {
	raw, ok, err := s.storage.GetItem(ctx, s.namespace, domain.StorageKey)
	if err != nil {
		s.log.Warn("cart load failed, starting empty", slog.Any("err", err))
		return domain.State{}
	}
	if !ok {
		return domain.State{}
	}

	state, err := Decode([]byte(raw))
	if err != nil {
		s.log.Debug("discarding malformed cart", slog.Any("err", err))
		return domain.State{}
	}
	return state
}

// Save replaces the stored cart with state.
func (s *CartStore) Save(ctx context.Context, state domain.State) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(ctx, s.namespace, domain.StorageKey, string(raw)); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}

// Decode parses the persisted form, rejecting anything that does not match
// the line item schema exactly.
func Decode(raw []byte) (domain.State, error) {
	var recs []record
	if err := codec.Unmarshal(raw, &recs); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}

	state := make(domain.State, 0, len(recs))
	for i, rec := range recs {
		if err := validate.Struct(rec); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		price, err := decimal.NewFromString(rec.Price.String())
		if err != nil {
			return nil, errors.Wrapf(err, "record %d price", i)
		}
		state = append(state, domain.LineItem{
			ID:       *rec.ID,
			Name:     *rec.Name,
			Image:    *rec.Image,
			Size:     *rec.Size,
			Price:    price,
			Quantity: *rec.Quantity,
		})
	}
	if err := state.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid cart")
	}
	return state, nil
}

func Encode(state domain.State) ([]byte, error) {
	recs := make([]record, 0, len(state))
	for _, li := range state {
		li := li
		price := json.Number(li.Price.String())
		recs = append(recs, record{
			ID:       &li.ID,
			Name:     &li.Name,
			Image:    &li.Image,
			Size:     &li.Size,
			Price:    &price,
			Quantity: &li.Quantity,
		})
	}
	raw, err := codec.Marshal(recs)
	if err != nil {
		return nil, errors.Wrap(err, "encode cart")
	}
	return raw, nil
}
