package cli

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/codelayers/layerex/internal/annotations"
	"github.com/codelayers/layerex/internal/config"
)

var colorsJSONFlag bool

// colorsCmd represents the colors command
var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the colors/layers present in the annotation dataset",
	Long: `Colors derives the deduplicated catalog of annotation layers from the
highlight dataset, in first-seen order, together with how many files and
ranges each layer covers. Use the listed values to select layers for
'layerex export'.

Examples:
  # Human-readable listing
  layerex colors

  # Machine-readable listing
  layerex colors --json
`,
	RunE: runColors,
}

func init() {
	rootCmd.AddCommand(colorsCmd)
	colorsCmd.Flags().BoolVar(&colorsJSONFlag, "json", false, "Print the catalog as JSON")
}

func runColors(cmd *cobra.Command, args []string) error {
	rootDir, err := projectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ds, err := loadDataset(rootDir, cfg)
	if err != nil {
		return err
	}
	for _, warning := range ds.Validate() {
		log.Printf("warning: %s", warning)
	}

	catalog := annotations.BuildCatalog(ds)

	if colorsJSONFlag {
		if catalog == nil {
			catalog = []annotations.Color{}
		}
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(catalog) == 0 {
		fmt.Println("No colors found in the annotation dataset")
		return nil
	}

	fmt.Printf("%d color(s) in the dataset:\n\n", len(catalog))
	for _, color := range catalog {
		files, ranges := countUsage(ds, color.Value)
		fmt.Printf("  %-10s %-20s %d file(s), %d range(s)\n", color.Value, color.Name, files, ranges)
	}
	return nil
}

// countUsage tallies how many files and ranges carry the color.
func countUsage(ds *annotations.Dataset, colorValue string) (files, ranges int) {
	for file := ds.Files.Oldest(); file != nil; file = file.Next() {
		rs, ok := file.Value.Get(colorValue)
		if ok && len(rs) > 0 {
			files++
			ranges += len(rs)
		}
	}
	return files, ranges
}
