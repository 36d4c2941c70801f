package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"tutobot/internal/adapter/loader"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List the pre-existing document library",
	Long: `List the documents available in the configured library directory.
Entries can be passed to --doc by name.`,
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	lib := loader.NewLibrary(cfg.Library.Dir, cfg.Library.Patterns)
	entries, err := lib.List()
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No documents in %s\n", cfg.Library.Dir)
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-40s %8d bytes\n", e.Name, e.Size)
	}
	return nil
}
