package selection

import (
	"testing"

	"rentwear/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64) core.Product {
	return core.Product{ID: id, Name: id, PricePerDay: price, Available: true}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Product.ID)
	}
	return out
}

func TestStore_Empty(t *testing.T) {
	s := NewStore()

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.AggregateValue())
	assert.Empty(t, s.Items())
	assert.False(t, s.Contains("anything"))
}

func TestStore_UpsertCountsDistinctProducts(t *testing.T) {
	s := NewStore()
	refs := []string{"a", "b", "a", "c", "b", "a"}
	for i, ref := range refs {
		s.Upsert(product(ref, 10), i+1)
	}

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []string{"a", "b", "c"}, ids(s.Items()))
}

func TestStore_UpsertOverwritesInPlace(t *testing.T) {
	s := NewStore()
	s.Upsert(product("x", 4), 2)
	s.Upsert(product("y", 4), 1)
	s.Upsert(product("x", 4), 7)

	e, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, 7, e.Days)
	assert.Equal(t, []string{"x", "y"}, ids(s.Items()), "update must not reorder")
}

func TestStore_UpsertRefreshesProductSnapshot(t *testing.T) {
	s := NewStore()
	s.Upsert(product("x", 4), 2)
	s.Upsert(product("x", 6), 2)

	assert.Equal(t, 12.0, s.AggregateValue())
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Remove("ghost")
	assert.Equal(t, 0, s.Count())

	s.Upsert(product("a", 1), 1)
	s.Remove("ghost")
	assert.Equal(t, []string{"a"}, ids(s.Items()))
}

func TestStore_RemoveKeepsOrderAndIndex(t *testing.T) {
	s := NewStore()
	for _, ref := range []string{"a", "b", "c", "d"} {
		s.Upsert(product(ref, 1), 1)
	}

	s.Remove("b")
	assert.Equal(t, []string{"a", "c", "d"}, ids(s.Items()))

	// the index must still point at the right slots after the shift
	s.Upsert(product("d", 1), 9)
	e, ok := s.Get("d")
	require.True(t, ok)
	assert.Equal(t, 9, e.Days)
	assert.Equal(t, []string{"a", "c", "d"}, ids(s.Items()))
}

func TestStore_ContainsFollowsUpsertAndRemove(t *testing.T) {
	s := NewStore()
	s.Upsert(product("x", 1), 3)
	assert.True(t, s.Contains("x"))

	s.Remove("x")
	assert.False(t, s.Contains("x"))
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Upsert(product("a", 1), 1)
	s.Upsert(product("b", 1), 1)

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Contains("a"))

	s.Upsert(product("b", 1), 1)
	assert.Equal(t, []string{"b"}, ids(s.Items()))
}

func TestStore_ShirtAndShoesScenario(t *testing.T) {
	shirt := product("shirt-1", 12.5)
	shoes := product("shoes-2", 30)

	s := NewStore()
	s.Upsert(shirt, 2)
	s.Upsert(shoes, 1)
	s.Upsert(shirt, 5)

	assert.Equal(t, 2, s.Count())

	e, ok := s.Get("shirt-1")
	require.True(t, ok)
	assert.Equal(t, 5, e.Days)

	assert.InDelta(t, 5*12.5+1*30, s.AggregateValue(), 1e-9)
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := NewStore()
	s.Upsert(product("a", 1), 1)

	items := s.Items()
	items[0].Days = 99

	e, _ := s.Get("a")
	assert.Equal(t, 1, e.Days)
}
