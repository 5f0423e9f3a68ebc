package cli

import (
	"fmt"
	"log"

	"github.com/schollz/progressbar/v3"

	"github.com/codelayers/layerex/internal/annotations"
	"github.com/codelayers/layerex/internal/export"
)

// CLIProgressReporter implements export progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnRunStart(colors []annotations.Color, merged bool) {
	if c.quiet {
		return
	}
	if merged {
		log.Printf("Exporting %d layer(s) into a shared folder...", len(colors))
		return
	}
	log.Printf("Exporting %d layer(s)...", len(colors))
}

func (c *CLIProgressReporter) OnLayerStart(color annotations.Color, annotatedFiles int) {
	if c.quiet || annotatedFiles == 0 {
		return
	}
	c.bar = progressbar.NewOptions(annotatedFiles,
		progressbar.OptionSetDescription(fmt.Sprintf("Exporting %s", color.Name)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
	)
}

func (c *CLIProgressReporter) OnFileExported(relPath string) {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnFileSkipped(relPath, reason string) {
	log.Printf("warning: skipped %s: %s", relPath, reason)
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnRangeClamped(relPath string, color annotations.Color, rng annotations.HighlightRange) {
	log.Printf("warning: %s: range %d-%d of layer %s exceeds the file's current length",
		relPath, rng.StartLine, rng.EndLine, color.Name)
}

func (c *CLIProgressReporter) OnLayerComplete(color annotations.Color, ranges int) {
	if c.bar != nil {
		c.bar.Finish()
		fmt.Println()
		c.bar = nil
	}
}

func (c *CLIProgressReporter) OnRunComplete(summary *export.Summary) {}
