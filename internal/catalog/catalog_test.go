package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	products := s.List()
	require.NotEmpty(t, products)

	seen := make(map[int]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate product id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.Price, 0.0)
		assert.GreaterOrEqual(t, p.Stock, 0)
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}
}

func TestGetByID(t *testing.T) {
	s := New([]Product{{ID: 7, Name: "Lamp", Price: 12.5}})

	p, err := s.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)

	_, err = s.GetByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoriesDerived(t *testing.T) {
	s := New([]Product{
		{ID: 1, Category: "electronics"},
		{ID: 2, Category: "home decor"},
		{ID: 3, Category: "electronics"},
	})

	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "electronics", cats[0].Name)
	assert.Equal(t, "home-decor", cats[1].Slug)
}

func TestListReturnsCopy(t *testing.T) {
	s := New([]Product{{ID: 1, Name: "Original"}})

	list := s.List()
	list[0].Name = "Mutated"

	again := s.List()
	assert.Equal(t, "Original", again[0].Name)
}
