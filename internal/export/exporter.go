// Package export reconstructs highlighted layers as standalone files. For
// each selected color it walks every annotated file, extracts that color's
// ranges, and writes a sparse copy of the file (original line count
// preserved, non-highlighted lines empty) into a destination folder,
// together with a modules.json manifest of what was exported.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/codelayers/layerex/internal/annotations"
	"github.com/codelayers/layerex/internal/extract"
)

// WritePolicy decides what happens when a range's piece lands on a line
// that already holds content.
type WritePolicy int

const (
	// Overwrite always writes. Within one color, later ranges win at the
	// same position, consistent with recorded order.
	Overwrite WritePolicy = iota

	// PreserveExisting never overwrites a non-empty line. Used when
	// merging multiple colors into one destination: the first color to
	// claim a line wins.
	PreserveExisting
)

// SharedState carries reconstructed files across colors when several layers
// merge into one destination, keyed by project-relative path. It is owned by
// a single run and discarded at its end.
type SharedState map[string][]string

// Options configures one export run.
type Options struct {
	// RootDir is the project root source paths are resolved against.
	RootDir string

	// DestRoot is the root folder for exports. Merged runs write into it
	// directly; per-layer runs write into one subfolder per layer.
	DestRoot string

	// Merged selects merge mode: all layers share DestRoot and a first
	// write to a line wins across colors.
	Merged bool

	// Include restricts the export to annotated files matching at least
	// one glob pattern. Empty means all annotated files.
	Include []string

	// Reporter receives progress callbacks. Nil means silent.
	Reporter ProgressReporter
}

// Summary is the user-visible result of a run.
type Summary struct {
	Layers       int
	Ranges       int
	FilesWritten int
	FilesSkipped int
}

// Exporter performs export runs. Layers are processed strictly sequentially
// in selection order; the merge guard's outcome depends on that order. An
// Exporter is not safe for concurrent use, and no two runs may interleave
// against the same destination folder.
type Exporter struct {
	opts     Options
	include  []glob.Glob
	sources  *SourceCache
	reporter ProgressReporter

	// run-scoped; reset by Run
	cleared map[string]bool
	summary *Summary
}

// New creates an Exporter for the given options.
func New(opts Options) (*Exporter, error) {
	include := make([]glob.Glob, 0, len(opts.Include))
	for _, pattern := range opts.Include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		include = append(include, g)
	}

	sources, err := NewSourceCache(opts.RootDir)
	if err != nil {
		return nil, err
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}

	return &Exporter{
		opts:     opts,
		include:  include,
		sources:  sources,
		reporter: reporter,
	}, nil
}

// Close releases the exporter's resources.
func (e *Exporter) Close() {
	e.sources.Close()
}

// Run exports the selected colors from the dataset. In merge mode all
// colors write into DestRoot with cross-color overwrites suppressed; once a
// color suppressed at a line, any other still-empty line remains claimable.
// Outside merge mode each color gets its own destination subfolder and its
// own manifest. Every destination is fully cleared before this run's first
// write into it; nothing from a prior run survives.
func (e *Exporter) Run(ds *annotations.Dataset, colors []annotations.Color) (*Summary, error) {
	e.cleared = map[string]bool{}
	e.summary = &Summary{}

	e.reporter.OnRunStart(colors, e.opts.Merged)

	if e.opts.Merged {
		shared := SharedState{}
		sink := NewManifestBuilder(colors...)
		for _, color := range colors {
			ranges, err := e.exportLayer(color, ds, e.opts.DestRoot, shared, PreserveExisting, sink)
			if err != nil {
				return nil, err
			}
			e.summary.Layers++
			e.summary.Ranges += ranges
		}
		if err := sink.Write(e.opts.DestRoot); err != nil {
			return nil, err
		}
	} else {
		for _, color := range colors {
			dest := filepath.Join(e.opts.DestRoot, layerDirName(color))
			sink := NewManifestBuilder(color)
			ranges, err := e.exportLayer(color, ds, dest, nil, Overwrite, sink)
			if err != nil {
				return nil, err
			}
			if err := sink.Write(dest); err != nil {
				return nil, err
			}
			e.summary.Layers++
			e.summary.Ranges += ranges
		}
	}

	e.reporter.OnRunComplete(e.summary)
	return e.summary, nil
}

// exportLayer walks every annotated file and writes color's reconstruction
// into destDir. It returns the number of ranges processed, counting ranges
// whose writes the merge guard suppressed.
func (e *Exporter) exportLayer(color annotations.Color, ds *annotations.Dataset, destDir string, shared SharedState, policy WritePolicy, sink *ManifestBuilder) (int, error) {
	if err := e.ensureCleanDest(destDir); err != nil {
		return 0, err
	}

	e.reporter.OnLayerStart(color, e.countAnnotatedFiles(ds, color.Value))

	total := 0
	for file := ds.Files.Oldest(); file != nil; file = file.Next() {
		relPath := file.Key
		ranges, ok := file.Value.Get(color.Value)
		if !ok || len(ranges) == 0 {
			continue
		}
		if !e.includes(relPath) {
			continue
		}

		lines, err := e.sources.Lines(relPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e.reporter.OnFileSkipped(relPath, "source file missing")
			} else {
				e.reporter.OnFileSkipped(relPath, err.Error())
			}
			e.summary.FilesSkipped++
			continue
		}

		// In merge mode, mutate a clone and only commit it back to the
		// shared state once this color's pass over the file persisted.
		var recon []string
		if prev, reuse := shared[relPath]; shared != nil && reuse {
			recon = slices.Clone(prev)
		} else {
			recon = make([]string, len(lines))
		}

		wrote := false
		for _, rng := range ranges {
			total++
			sink.Append(ExportRecord{
				FilePath:   relPath,
				LayerName:  color.Name,
				ColorValue: color.Value,
				Range:      rng,
			})

			use := rng
			if rng.EndLine >= len(lines) {
				// File was edited after the annotation was captured.
				// Clamp to the current file end rather than failing
				// the layer; drop the range entirely when it starts
				// past the file.
				clamped, fits := extract.Clamp(rng, lines)
				e.reporter.OnRangeClamped(relPath, color, rng)
				if !fits {
					continue
				}
				use = clamped
			}

			snippet, err := extract.Extract(lines, use)
			if err != nil {
				e.reporter.OnRangeClamped(relPath, color, rng)
				continue
			}

			for _, pl := range snippet.Lines {
				if pl.Index >= len(recon) {
					continue
				}
				if policy == PreserveExisting && recon[pl.Index] != "" {
					continue
				}
				recon[pl.Index] = pl.Text
				wrote = true
			}
		}

		if !wrote {
			continue
		}

		outPath := filepath.Join(destDir, filepath.FromSlash(relPath))
		if err := writeFileAtomic(outPath, []byte(strings.Join(recon, "\n"))); err != nil {
			e.reporter.OnFileSkipped(relPath, fmt.Sprintf("write failed: %v", err))
			e.summary.FilesSkipped++
			continue
		}
		if shared != nil {
			shared[relPath] = recon
		}
		e.summary.FilesWritten++
		e.reporter.OnFileExported(relPath)
	}

	e.reporter.OnLayerComplete(color, total)
	return total, nil
}

// ensureCleanDest recursively clears dir the first time this run writes to
// it. Later layers of the same run (merge mode) must not wipe earlier ones.
func (e *Exporter) ensureCleanDest(dir string) error {
	if e.cleared[dir] {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear destination %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", dir, err)
	}
	e.cleared[dir] = true
	return nil
}

// includes reports whether relPath passes the include patterns.
func (e *Exporter) includes(relPath string) bool {
	if len(e.include) == 0 {
		return true
	}
	for _, g := range e.include {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// countAnnotatedFiles counts files carrying ranges for the color, after
// include filtering. Used for progress reporting only.
func (e *Exporter) countAnnotatedFiles(ds *annotations.Dataset, colorValue string) int {
	count := 0
	for file := ds.Files.Oldest(); file != nil; file = file.Next() {
		ranges, ok := file.Value.Get(colorValue)
		if ok && len(ranges) > 0 && e.includes(file.Key) {
			count++
		}
	}
	return count
}

// layerDirName derives a filesystem-safe folder name for a per-layer
// destination.
func layerDirName(color annotations.Color) string {
	name := color.Name
	if name == "" {
		name = strings.TrimPrefix(color.Value, "#")
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '#':
			return '_'
		}
		return r
	}, name)
}
