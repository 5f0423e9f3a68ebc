package cli

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codelayers/layerex/internal/annotations"
	"github.com/codelayers/layerex/internal/config"
	"github.com/codelayers/layerex/internal/export"
)

var (
	exportAllFlag     bool
	exportMergeFlag   bool
	exportOutFlag     string
	exportIncludeFlag []string
	exportQuietFlag   bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [color...]",
	Short: "Export highlighted layers as reconstructed files",
	Long: `Export walks every annotated file, extracts the ranges recorded for the
selected colors, and writes reconstructed sparse files (original line count
preserved, non-highlighted lines empty) plus a modules.json manifest.

Colors are selected by value (e.g. "#ff0000") or by layer name. By default
each layer is written to its own folder under the export path; with --merge
all selected layers share one folder and the first layer to claim a line
wins.

The destination folder is fully cleared before each run. Missing source
files are skipped with a warning and never abort the run.

Examples:
  # List colors, then export one layer
  layerex colors
  layerex export "#ff0000"

  # Export every layer found in the dataset
  layerex export --all

  # Merge two layers into a single folder
  layerex export --merge "#ff0000" "#00ff00"

  # Restrict the export to Python sources
  layerex export --all --include "**.py"
`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVarP(&exportAllFlag, "all", "a", false, "Export every color in the dataset")
	exportCmd.Flags().BoolVarP(&exportMergeFlag, "merge", "m", false, "Merge all selected layers into one destination folder")
	exportCmd.Flags().StringVarP(&exportOutFlag, "out", "o", "", "Export root folder (overrides export.path)")
	exportCmd.Flags().StringArrayVar(&exportIncludeFlag, "include", nil, "Glob pattern of files to export (repeatable, overrides export.include)")
	exportCmd.Flags().BoolVarP(&exportQuietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runExport(cmd *cobra.Command, args []string) error {
	rootDir, err := projectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("merge") {
		cfg.Export.SingleFolder = exportMergeFlag
	}
	if exportOutFlag != "" {
		cfg.Export.Path = exportOutFlag
	}
	if exportIncludeFlag != nil {
		cfg.Export.Include = exportIncludeFlag
	}

	ds, err := loadDataset(rootDir, cfg)
	if err != nil {
		return err
	}
	for _, warning := range ds.Validate() {
		log.Printf("warning: %s", warning)
	}

	catalog := annotations.BuildCatalog(ds)
	if len(catalog) == 0 {
		fmt.Println("No colors found in the annotation dataset - nothing to export")
		return nil
	}

	selected, err := selectColors(catalog, args, exportAllFlag)
	if err != nil {
		return err
	}

	destRoot := cfg.Export.Path
	if !filepath.IsAbs(destRoot) {
		destRoot = filepath.Join(rootDir, destRoot)
	}

	exporter, err := export.New(export.Options{
		RootDir:  rootDir,
		DestRoot: destRoot,
		Merged:   cfg.Export.SingleFolder,
		Include:  cfg.Export.Include,
		Reporter: NewCLIProgressReporter(exportQuietFlag),
	})
	if err != nil {
		return err
	}
	defer exporter.Close()

	summary, err := exporter.Run(ds, selected)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if summary.Ranges == 0 {
		fmt.Println("Nothing to export - the selected layers contain no ranges")
		return nil
	}
	if !exportQuietFlag {
		fmt.Printf("✓ Exported %d range(s) across %d layer(s)\n", summary.Ranges, summary.Layers)
		fmt.Printf("  %d file(s) written to %s", summary.FilesWritten, destRoot)
		if summary.FilesSkipped > 0 {
			fmt.Printf(", %d file(s) skipped", summary.FilesSkipped)
		}
		fmt.Println()
	}
	return nil
}

// loadDataset loads the annotation dataset, mapping load failures to
// actionable messages.
func loadDataset(rootDir string, cfg *config.Config) (*annotations.Dataset, error) {
	path := cfg.Annotations.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}

	ds, err := annotations.Load(path)
	if err != nil {
		if errors.Is(err, annotations.ErrDatasetNotFound) {
			return nil, fmt.Errorf("no highlight annotations found at %s", path)
		}
		return nil, err
	}
	return ds, nil
}

// selectColors resolves the positional arguments against the catalog, by
// color value first and display name second.
func selectColors(catalog []annotations.Color, args []string, all bool) ([]annotations.Color, error) {
	if all {
		if len(args) > 0 {
			return nil, errors.New("--all cannot be combined with explicit colors")
		}
		return catalog, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no colors selected; pass color values or --all (available: %s)",
			strings.Join(annotations.CatalogValues(catalog), ", "))
	}

	var selected []annotations.Color
	for _, arg := range args {
		color, ok := findColor(catalog, arg)
		if !ok {
			return nil, fmt.Errorf("unknown color %q (available: %s)",
				arg, strings.Join(annotations.CatalogValues(catalog), ", "))
		}
		selected = append(selected, color)
	}
	return selected, nil
}

func findColor(catalog []annotations.Color, arg string) (annotations.Color, bool) {
	for _, c := range catalog {
		if c.Value == arg {
			return c, true
		}
	}
	for _, c := range catalog {
		if c.Name == arg {
			return c, true
		}
	}
	return annotations.Color{}, false
}
