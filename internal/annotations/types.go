// Package annotations loads and validates the highlight annotation dataset:
// a mapping from project-relative file paths to per-color sequences of
// highlighted ranges. The dataset is consumed read-only; iteration order of
// both the file map and each file's color map is the insertion order of the
// underlying JSON document and is treated as significant (it drives catalog
// order and write order downstream).
package annotations

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HighlightRange is a single annotated span within one source file.
// Lines are 0-based and inclusive on both ends; characters are 0-based
// column offsets, half-open (StartCharacter inclusive, EndCharacter
// exclusive).
type HighlightRange struct {
	Name           string `json:"name"`
	StartLine      int    `json:"startLine"`
	EndLine        int    `json:"endLine"`
	StartCharacter int    `json:"startCharacter"`
	EndCharacter   int    `json:"endCharacter"`
}

// Color identifies one annotation layer. Value is the dataset's unique
// color-encoding string (e.g. "#ff0000"); Name is the layer's display label.
// Colors are derived from the dataset once per export invocation and never
// persisted back.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FileAnnotations maps a color value to the ordered sequence of ranges
// recorded for that color in one file. Sequence order is recording order.
type FileAnnotations = orderedmap.OrderedMap[string, []HighlightRange]

// Dataset is the root of the annotation store. Files maps project-relative
// paths to their annotations, in the order the paths appear in the document.
type Dataset struct {
	Files *orderedmap.OrderedMap[string, *FileAnnotations] `json:"files"`
}

// NewDataset returns an empty dataset. Mostly useful in tests.
func NewDataset() *Dataset {
	return &Dataset{Files: orderedmap.New[string, *FileAnnotations]()}
}
