package export

import "github.com/codelayers/layerex/internal/annotations"

// ProgressReporter provides callbacks for reporting export progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnRunStart is called once before any layer is processed.
	OnRunStart(colors []annotations.Color, merged bool)

	// OnLayerStart is called before a layer's files are walked.
	// annotatedFiles is the number of files carrying ranges for this color.
	OnLayerStart(color annotations.Color, annotatedFiles int)

	// OnFileExported is called after a reconstructed file is persisted.
	OnFileExported(relPath string)

	// OnFileSkipped is called when a file is skipped (missing source,
	// write failure). The run continues.
	OnFileSkipped(relPath, reason string)

	// OnRangeClamped is called when a range referenced lines beyond the
	// current source file and was clamped or dropped.
	OnRangeClamped(relPath string, color annotations.Color, rng annotations.HighlightRange)

	// OnLayerComplete is called after a layer finishes, with the number of
	// ranges processed for it.
	OnLayerComplete(color annotations.Color, ranges int)

	// OnRunComplete is called once when the whole run finishes.
	OnRunComplete(summary *Summary)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnRunStart(colors []annotations.Color, merged bool)  {}
func (n *NoOpProgressReporter) OnLayerStart(color annotations.Color, annotated int) {}
func (n *NoOpProgressReporter) OnFileExported(relPath string)                       {}
func (n *NoOpProgressReporter) OnFileSkipped(relPath, reason string)                {}
func (n *NoOpProgressReporter) OnLayerComplete(color annotations.Color, ranges int) {}
func (n *NoOpProgressReporter) OnRunComplete(summary *Summary)                      {}
func (n *NoOpProgressReporter) OnRangeClamped(relPath string, color annotations.Color, rng annotations.HighlightRange) {
}
