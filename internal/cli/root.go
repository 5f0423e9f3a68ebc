package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootFlag string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "layerex",
	Short: "Layerex - export highlighted layers from your codebase",
	Long: `Layerex re-materializes user-annotated highlight layers as standalone
files. Each exported file preserves the original line/column geometry of its
highlighted snippets and blanks out everything else, and every destination
folder receives a modules.json manifest describing what was exported.

Annotations are read from the highlight dataset (.layerex/highlights.json
by default); configuration lives in .layerex/config.yml.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "C", "", "project root (default is the working directory)")
}

// projectRoot resolves the project root directory from the --root flag or
// the working directory.
func projectRoot() (string, error) {
	if rootFlag != "" {
		abs, err := filepath.Abs(rootFlag)
		if err != nil {
			return "", fmt.Errorf("failed to resolve project root: %w", err)
		}
		return abs, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}
