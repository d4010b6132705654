package yamlfile

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/falc-storefront/internal/catalog/app"
	"github.com/dwikikusuma/falc-storefront/internal/catalog/domain"
)

type productFile struct {
	Products []productEntry `yaml:"products" validate:"dive"`
}

type productEntry struct {
	ID    int64    `yaml:"id" validate:"gt=0"`
	Name  string   `yaml:"name" validate:"required"`
	Image string   `yaml:"image"`
	Sizes []string `yaml:"sizes"`
	Price string   `yaml:"price" validate:"required,numeric"`
}

// ProductRepo is a read-only catalog held in memory, in file order.
type ProductRepo struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

func Load(path string) (*ProductRepo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*ProductRepo, error) {
	var f productFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}

	products := make([]domain.Product, 0, len(f.Products))
	for _, e := range f.Products {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "product %d price", e.ID)
		}
		products = append(products, domain.Product{
			ID:    e.ID,
			Name:  e.Name,
			Image: e.Image,
			Sizes: e.Sizes,
			Price: price,
		})
	}
	return New(products)
}

func New(products []domain.Product) (*ProductRepo, error) {
	byID := lo.KeyBy(products, func(p domain.Product) int64 { return p.ID })
	if len(byID) != len(products) {
		return nil, errors.New("catalog has duplicate product ids")
	}
	return &ProductRepo{products: products, byID: byID}, nil
}

func (r *ProductRepo) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepo) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Default is the catalog used when no file is configured.
func Default() *ProductRepo {
	repo, _ := New([]domain.Product{
		{ID: 1, Name: "Falcon Oversized Hoodie", Image: "/images/hoodie.jpg", Sizes: []string{"S", "M", "L", "XL"}, Price: decimal.RequireFromString("59.99")},
		{ID: 2, Name: "Talon Graphic Tee", Image: "/images/tee.jpg", Sizes: []string{"S", "M", "L"}, Price: decimal.RequireFromString("24.99")},
		{ID: 3, Name: "Skyline Cargo Pants", Image: "/images/cargo.jpg", Sizes: []string{"30", "32", "34"}, Price: decimal.RequireFromString("74.50")},
		{ID: 4, Name: "Wingspan Cap", Image: "/images/cap.jpg", Sizes: []string{"One Size"}, Price: decimal.RequireFromString("19.00")},
	})
	return repo
}
