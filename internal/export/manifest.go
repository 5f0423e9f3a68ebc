package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/codelayers/layerex/internal/annotations"
)

// ManifestFilename is the manifest written into every destination folder.
const ManifestFilename = "modules.json"

// ExportRecord describes one exported range: which file it came from, which
// layer and color it belongs to, and the range as recorded in the dataset.
// One record is appended per processed range, including ranges whose writes
// were suppressed by the merge guard.
type ExportRecord struct {
	FilePath   string                     `json:"filePath"`
	LayerName  string                     `json:"layerName"`
	ColorValue string                     `json:"colorValue"`
	Range      annotations.HighlightRange `json:"range"`
}

// Manifest is the JSON document written alongside the reconstructed files.
type Manifest struct {
	Modules []ExportRecord      `json:"modules"`
	Colors  []annotations.Color `json:"colors"`
}

// ManifestBuilder accumulates export records for one destination folder.
// Append-only during a run; serialized once at the end.
type ManifestBuilder struct {
	records []ExportRecord
	colors  []annotations.Color
}

// NewManifestBuilder creates a builder covering the given colors. A merged
// destination passes all selected colors; a per-layer destination passes
// just its own.
func NewManifestBuilder(colors ...annotations.Color) *ManifestBuilder {
	return &ManifestBuilder{
		records: []ExportRecord{},
		colors:  append([]annotations.Color{}, colors...),
	}
}

// Append adds one record.
func (b *ManifestBuilder) Append(rec ExportRecord) {
	b.records = append(b.records, rec)
}

// Records returns the accumulated records.
func (b *ManifestBuilder) Records() []ExportRecord {
	return b.records
}

// Write serializes the manifest, pretty-printed, into destDir.
func (b *ManifestBuilder) Write(destDir string) error {
	manifest := Manifest{Modules: b.records, Colors: b.colors}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(destDir, ManifestFilename)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
