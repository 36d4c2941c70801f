package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestDoc string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a document and warm the embedding cache",
	Long: `Ingest a document (PDF path, library name, or URL) and persist its
embeddings. Later ask or generate runs against the same unchanged
document skip the remote embedding calls.

Examples:
  tutobot ingest --doc manual.pdf
  tutobot ingest --doc https://example.com/page`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestDoc, "doc", "", "document: PDF path, library name, or URL (required)")
	ingestCmd.MarkFlagRequired("doc")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	pipeline, cache, err := buildPipeline(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx := cmd.Context()
	if err := loadDocument(ctx, pipeline, cfg, ingestDoc); err != nil {
		return err
	}

	doc, ok := pipeline.Document()
	if !ok {
		return fmt.Errorf("no document loaded")
	}
	fmt.Printf("Ingested %s (fingerprint %s)\n", doc.Name, doc.ID)
	return nil
}
