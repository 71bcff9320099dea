package catalog

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("product not found")

// Product is a storefront catalog entry. The catalog is authored at build
// time and never mutated by storefront flows; vendor listings are a
// separate, vendor-owned copy with their own identifiers.
type Product struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Image       string  `json:"image" yaml:"image"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Stock       int     `json:"stock" yaml:"stock"`
}

// Category groups products for navigation. The list is derived from the
// distinct category tags present in the catalog.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

//go:embed catalog.yaml
var embeddedCatalog []byte

// Service serves the read-only product catalog.
type Service struct {
	products   []Product
	categories []Category
	byID       map[int]Product
}

// Load builds a Service from the catalog file at path, or from the
// embedded catalog when path is empty.
func Load(path string) (*Service, error) {
	data := embeddedCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}

	var doc struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return New(doc.Products), nil
}

// New builds a Service over a fixed product list.
func New(products []Product) *Service {
	s := &Service{
		products: products,
		byID:     make(map[int]Product, len(products)),
	}
	seen := make(map[string]bool)
	for _, p := range products {
		s.byID[p.ID] = p
		if !seen[p.Category] {
			seen[p.Category] = true
			s.categories = append(s.categories, Category{
				ID:   len(s.categories) + 1,
				Name: p.Category,
				Slug: strings.ToLower(strings.ReplaceAll(p.Category, " ", "-")),
			})
		}
	}
	return s
}

// List returns the products in authoring order. Callers get a copy so the
// catalog stays immutable.
func (s *Service) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) GetByID(id int) (Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}
