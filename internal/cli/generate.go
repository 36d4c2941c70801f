package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"tutobot/internal/adapter/render"
	"tutobot/internal/usecase"
)

var (
	generateDoc    string
	generateOutput string
	generateTitle  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Reformulate a document into a new PDF",
	Long: `Ingest a document (PDF path, library name, or URL), reformulate its
full text through the chat model while preserving structure and
information volume, and write the result as a PDF.

Examples:
  tutobot generate --doc manual.pdf -o regenerated.pdf
  tutobot generate --doc https://example.com/page`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateDoc, "doc", "", "document: PDF path, library name, or URL (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "generated.pdf", "output PDF path")
	generateCmd.Flags().StringVarP(&generateTitle, "title", "t", "", "document title (default from config)")
	generateCmd.MarkFlagRequired("doc")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	pipeline, cache, err := buildPipeline(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx := cmd.Context()
	if err := loadDocument(ctx, pipeline, cfg, generateDoc); err != nil {
		return err
	}

	chat, err := buildChat(cfg)
	if err != nil {
		return err
	}

	title := generateTitle
	if title == "" {
		title = cfg.Output.Title
	}

	fmt.Println("Reformulating...")
	reformulator := usecase.NewReformulator(chat, render.NewPDFRenderer(), cfg.Synthesis.ContextBudget)
	pdf, err := reformulator.Reformulate(ctx, title, pipeline.Text())
	if err != nil {
		return err
	}

	outPath := generateOutput
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(cfg.Output.Dir, outPath)
	}
	if err := os.WriteFile(outPath, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(pdf))
	return nil
}
