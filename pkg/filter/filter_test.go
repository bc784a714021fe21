package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/retroshelf/pkg/items"
)

func sample() []items.Item {
	return []items.Item{
		{ID: "1", Title: "A", Category: "Arcade", Platform: "PC"},
		{ID: "2", Title: "B", Category: "RPG", Platform: "PC"},
		{ID: "3", Title: "C", Category: "Arcade", Platform: "SNES"},
		{ID: "4", Title: "D", Category: "", Platform: "Atari"},
	}
}

func TestFacets(t *testing.T) {
	v := Facets(sample())

	assert.Equal(t, []string{"Arcade", "RPG"}, v.Categories)
	assert.Equal(t, []string{"Atari", "PC", "SNES"}, v.Platforms)
}

func TestFacetsByteOrder(t *testing.T) {
	v := Facets([]items.Item{
		{Category: "ação"},
		{Category: "Zumbi"},
		{Category: "Ação"},
		{Category: "arcade"},
	})

	assert.Equal(t, []string{"Ação", "Zumbi", "arcade", "ação"}, v.Categories)
}

func TestFacetsEmpty(t *testing.T) {
	v := Facets(nil)
	assert.NotNil(t, v.Categories)
	assert.NotNil(t, v.Platforms)
	assert.Empty(t, v.Categories)
}

func TestApplyIdentity(t *testing.T) {
	list := sample()
	assert.Equal(t, list, Filter{}.Apply(list))
	assert.True(t, Filter{}.IsZero())
}

func TestApplyCategoryOnly(t *testing.T) {
	list := []items.Item{
		{Title: "A", Category: "Arcade", Platform: "PC"},
		{Title: "B", Category: "RPG", Platform: "PC"},
	}

	got := Filter{Category: "Arcade"}.Apply(list)

	assert.Equal(t, []items.Item{{Title: "A", Category: "Arcade", Platform: "PC"}}, got)
}

func TestApplyBoth(t *testing.T) {
	got := Filter{Category: "Arcade", Platform: "SNES"}.Apply(sample())

	assert.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestApplyNoMatchIsEmptyNotNil(t *testing.T) {
	got := Filter{Platform: "Dreamcast"}.Apply(sample())

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NotNil(t, Filter{}.Apply(nil))
}

func TestReconcile(t *testing.T) {
	v := Vocabulary{Categories: []string{"Arcade"}, Platforms: []string{"PC"}}

	assert.Equal(t, Filter{Category: "Arcade", Platform: "PC"},
		Filter{Category: "Arcade", Platform: "PC"}.Reconcile(v))
	assert.Equal(t, Filter{Platform: "PC"},
		Filter{Category: "RPG", Platform: "PC"}.Reconcile(v))
	assert.Equal(t, Filter{}, Filter{Category: "RPG", Platform: "SNES"}.Reconcile(v))
}

func TestFromQuery(t *testing.T) {
	q := url.Values{"categoria": {" Arcade "}, "platform": {"PC"}}
	f := FromQuery(q)

	assert.Equal(t, Filter{Category: "Arcade", Platform: "PC"}, f)
	assert.Equal(t, "categoria=Arcade&plataforma=PC", f.Values().Encode())
	assert.Empty(t, Filter{}.Values())
}
