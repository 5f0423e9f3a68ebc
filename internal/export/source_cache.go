package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maypok86/otter"
)

// sourceCacheCapacity bounds the number of source files kept in memory
// during one run. A file annotated by several selected colors is read once.
const sourceCacheCapacity = 512

// SourceCache reads source files relative to the project root and caches
// their line splits for the duration of one export run. The cached slices
// are shared and must be treated as read-only by callers.
type SourceCache struct {
	root  string
	cache otter.Cache[string, []string]
}

// NewSourceCache creates a cache rooted at the project directory.
func NewSourceCache(root string) (*SourceCache, error) {
	cache, err := otter.MustBuilder[string, []string](sourceCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build source cache: %w", err)
	}
	return &SourceCache{root: root, cache: cache}, nil
}

// Lines returns the source file's lines. Line terminators are normalized and
// stripped, so each element is one line's text and len equals the file's
// line count at read time.
func (c *SourceCache) Lines(relPath string) ([]string, error) {
	if lines, ok := c.cache.Get(relPath); ok {
		return lines, nil
	}

	data, err := os.ReadFile(filepath.Join(c.root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	c.cache.Set(relPath, lines)
	return lines, nil
}

// Close releases the cache's resources.
func (c *SourceCache) Close() {
	c.cache.Close()
}
