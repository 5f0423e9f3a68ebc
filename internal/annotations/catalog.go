package annotations

// BuildCatalog derives the deduplicated set of colors present in the
// dataset. Order is first-seen order while iterating files, then colors
// within each file, in the dataset's own insertion order. Deduplication is
// strictly by color value; the display name attached is taken from the
// first occurrence that carries at least one range (falling back to the
// value itself when a color never records a named range). An empty catalog
// is a valid result; the caller decides how to surface "nothing to export".
func BuildCatalog(ds *Dataset) []Color {
	var catalog []Color
	index := map[string]int{}
	named := map[string]bool{}
	for file := ds.Files.Oldest(); file != nil; file = file.Next() {
		for color := file.Value.Oldest(); color != nil; color = color.Next() {
			i, seen := index[color.Key]
			if !seen {
				i = len(catalog)
				index[color.Key] = i
				catalog = append(catalog, Color{Name: color.Key, Value: color.Key})
			}
			// First named occurrence wins; a color first seen with an empty
			// range list picks up its name from a later file.
			if !named[color.Key] && len(color.Value) > 0 {
				catalog[i].Name = color.Value[0].Name
				named[color.Key] = true
			}
		}
	}
	return catalog
}

// CatalogValues returns just the color values of a catalog, in order.
func CatalogValues(catalog []Color) []string {
	values := make([]string, len(catalog))
	for i, c := range catalog {
		values[i] = c.Value
	}
	return values
}
