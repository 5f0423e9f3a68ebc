package annotations

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrDatasetNotFound is returned by Load when the annotation file does not
// exist. Callers should surface this before any export work begins.
var ErrDatasetNotFound = errors.New("annotation dataset not found")

// ParseError wraps any failure to interpret the annotation file's content as
// a well-formed dataset, including structurally valid JSON that violates the
// range invariants (negative offsets, endLine < startLine).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid annotation dataset %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and validates the annotation dataset at path. The file is never
// mutated or rewritten. A document without a "files" field yields a dataset
// with an empty file mapping, not an error.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("failed to read annotation dataset: %w", err)
	}

	ds := &Dataset{}
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	// Absent "files" field is an empty mapping, and a null entry for a file
	// is an empty color map. Normalizing here lets every consumer iterate
	// without nil checks.
	if ds.Files == nil {
		ds.Files = orderedmap.New[string, *FileAnnotations]()
	}
	for pair := ds.Files.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			ds.Files.Set(pair.Key, orderedmap.New[string, []HighlightRange]())
		}
	}

	if err := validateRanges(ds); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return ds, nil
}

// validateRanges enforces the structural range invariants at load time
// rather than trusting field values at each access site.
func validateRanges(ds *Dataset) error {
	for file := ds.Files.Oldest(); file != nil; file = file.Next() {
		for color := file.Value.Oldest(); color != nil; color = color.Next() {
			for i, r := range color.Value {
				switch {
				case r.StartLine < 0 || r.EndLine < 0 || r.StartCharacter < 0 || r.EndCharacter < 0:
					return fmt.Errorf("file %q color %q range %d: negative position", file.Key, color.Key, i)
				case r.EndLine < r.StartLine:
					return fmt.Errorf("file %q color %q range %d: endLine %d before startLine %d",
						file.Key, color.Key, i, r.EndLine, r.StartLine)
				}
			}
		}
	}
	return nil
}

// Validate reports ranges whose layer name disagrees with the first name
// recorded for their color anywhere in the dataset. The first occurrence is
// authoritative; a mismatch is reported but never fatal.
func (ds *Dataset) Validate() []string {
	var warnings []string
	firstName := map[string]string{}
	for file := ds.Files.Oldest(); file != nil; file = file.Next() {
		for color := file.Value.Oldest(); color != nil; color = color.Next() {
			for _, r := range color.Value {
				name, seen := firstName[color.Key]
				if !seen {
					firstName[color.Key] = r.Name
					continue
				}
				if r.Name != name {
					warnings = append(warnings, fmt.Sprintf(
						"file %q color %q: layer name %q differs from first recorded name %q",
						file.Key, color.Key, r.Name, name))
				}
			}
		}
	}
	return warnings
}
