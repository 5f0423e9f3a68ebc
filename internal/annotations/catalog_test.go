package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Test Plan for Color Catalog Builder:
// - Catalog order is first-seen order across files, then colors per file
// - Colors are deduplicated by value
// - Display name comes from the first occurrence with ranges
// - A color first seen with no ranges gets its name from a later file
// - A color with no named ranges anywhere falls back to its value
// - Empty dataset yields an empty catalog

func singleRange(name string) []HighlightRange {
	return []HighlightRange{{Name: name, StartLine: 0, EndLine: 0, StartCharacter: 0, EndCharacter: 1}}
}

func TestBuildCatalog_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	ds := NewDataset()
	a := orderedmap.New[string, []HighlightRange]()
	a.Set("#ff0000", singleRange("Red"))
	a.Set("#00ff00", singleRange("Green"))
	ds.Files.Set("a.py", a)

	b := orderedmap.New[string, []HighlightRange]()
	b.Set("#0000ff", singleRange("Blue"))
	b.Set("#ff0000", singleRange("Red"))
	ds.Files.Set("b.py", b)

	catalog := BuildCatalog(ds)
	require.Len(t, catalog, 3)
	assert.Equal(t, []Color{
		{Name: "Red", Value: "#ff0000"},
		{Name: "Green", Value: "#00ff00"},
		{Name: "Blue", Value: "#0000ff"},
	}, catalog)
}

func TestBuildCatalog_FirstNameWins(t *testing.T) {
	t.Parallel()

	ds := NewDataset()
	a := orderedmap.New[string, []HighlightRange]()
	a.Set("#ff0000", singleRange("Red"))
	ds.Files.Set("a.py", a)

	b := orderedmap.New[string, []HighlightRange]()
	b.Set("#ff0000", singleRange("Crimson"))
	ds.Files.Set("b.py", b)

	catalog := BuildCatalog(ds)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Red", catalog[0].Name)
}

func TestBuildCatalog_NameFromLaterFile(t *testing.T) {
	t.Parallel()

	// First occurrence has an empty range list; the name arrives later.
	ds := NewDataset()
	a := orderedmap.New[string, []HighlightRange]()
	a.Set("#ff0000", nil)
	ds.Files.Set("a.py", a)

	b := orderedmap.New[string, []HighlightRange]()
	b.Set("#ff0000", singleRange("Red"))
	ds.Files.Set("b.py", b)

	catalog := BuildCatalog(ds)
	require.Len(t, catalog, 1)
	assert.Equal(t, Color{Name: "Red", Value: "#ff0000"}, catalog[0])
}

func TestBuildCatalog_ValueFallback(t *testing.T) {
	t.Parallel()

	ds := NewDataset()
	a := orderedmap.New[string, []HighlightRange]()
	a.Set("#123456", nil)
	ds.Files.Set("a.py", a)

	catalog := BuildCatalog(ds)
	require.Len(t, catalog, 1)
	assert.Equal(t, "#123456", catalog[0].Name)
}

func TestBuildCatalog_EmptyDataset(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildCatalog(NewDataset()))
}

func TestCatalogValues(t *testing.T) {
	t.Parallel()

	values := CatalogValues([]Color{
		{Name: "Red", Value: "#ff0000"},
		{Name: "Green", Value: "#00ff00"},
	})
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, values)
}
