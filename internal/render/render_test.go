package render

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/stash/internal/catalog"
)

func makeItems(n int) []catalog.Item {
	items := make([]catalog.Item, n)
	for i := range items {
		items[i] = catalog.Item{ID: fmt.Sprintf("id-%d", i+1), Name: fmt.Sprintf("Item %d", i+1)}
	}
	return items
}

func placeholderPositions(out []Item) []int {
	var pos []int
	content := 0
	for _, item := range out {
		if item.IsPlaceholder() {
			pos = append(pos, content)
			continue
		}
		content++
	}
	return pos
}

func TestMaterialize_DisabledIsOneToOne(t *testing.T) {
	items := makeItems(13)
	for _, every := range []int{-1, 0, 1, 3, 6} {
		out := Materialize(items, false, every)
		require.Len(t, out, len(items))
		for i, row := range out {
			assert.Equal(t, KindContent, row.Kind)
			assert.Equal(t, items[i].ID, row.Key)
			assert.Equal(t, items[i], row.Entry)
		}
	}
}

func TestMaterialize_SevenItemsEveryThree(t *testing.T) {
	out := Materialize(makeItems(7), true, 3)
	require.Len(t, out, 9)
	assert.Equal(t, []int{3, 6}, placeholderPositions(out))
	assert.True(t, out[3].IsPlaceholder())
	assert.True(t, out[7].IsPlaceholder())
	assert.Equal(t, 0, out[3].Slot)
	assert.Equal(t, 1, out[7].Slot)
}

func TestMaterialize_EverySix(t *testing.T) {
	out := Materialize(makeItems(20), true, 6)
	assert.Equal(t, []int{6, 12, 18}, placeholderPositions(out))
	assert.Len(t, out, 23)
}

func TestMaterialize_NoTrailingOrLeadingPlaceholder(t *testing.T) {
	for _, tc := range []struct{ n, every int }{{6, 3}, {3, 3}, {1, 1}, {4, 1}, {0, 2}} {
		out := Materialize(makeItems(tc.n), true, tc.every)
		if len(out) == 0 {
			continue
		}
		assert.False(t, out[0].IsPlaceholder(), "n=%d every=%d leading placeholder", tc.n, tc.every)
		assert.False(t, out[len(out)-1].IsPlaceholder(), "n=%d every=%d trailing placeholder", tc.n, tc.every)
	}

	out := Materialize(makeItems(4), true, 1)
	assert.Len(t, out, 7, "every=1 puts a placeholder between each pair")
}

func TestMaterialize_NonPositiveFrequencyDisables(t *testing.T) {
	for _, every := range []int{0, -5} {
		out := Materialize(makeItems(10), true, every)
		assert.Len(t, out, 10)
		assert.Empty(t, placeholderPositions(out))
	}
}

func TestMaterialize_KeysAreUniqueAndStable(t *testing.T) {
	items := []catalog.Item{
		{ID: "sponsored-0"},
		{ID: "_sponsored-0"},
		{ID: "b"},
		{ID: "sponsored-1"},
	}
	out := Materialize(items, true, 1)

	seen := map[string]bool{}
	for _, row := range out {
		require.False(t, seen[row.Key], "duplicate key %q", row.Key)
		seen[row.Key] = true
	}
	assert.Equal(t, "__sponsored-0", out[1].Key)
	assert.Equal(t, "_sponsored-1", out[3].Key)
	assert.Equal(t, "sponsored-2", out[5].Key)

	again := Materialize(items, true, 1)
	assert.Equal(t, out, again)
}

func TestText_Golden(t *testing.T) {
	items := []catalog.Item{
		{ID: "org.alpha", Name: "Alpha", Category: "tools"},
		{ID: "org.bravo", Name: "Bravo"},
		{ID: "org.charlie", Name: "Charlie", Category: "games"},
		{ID: "org.delta", Name: "Delta"},
		{ID: "org.echo", Name: "Echo", Category: " "},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "favorites_sponsored_every_2", []byte(Text(Materialize(items, true, 2))))
	g.Assert(t, "favorites_plain", []byte(Text(Materialize(items, false, 2))))
}
