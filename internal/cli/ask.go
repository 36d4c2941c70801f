package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askDoc   string
	askQuery string
	askTopK  int
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question about a document",
	Long: `Ingest a document (PDF path, library name, or URL), index its text
with embeddings, and answer the question from the retrieved context.

Examples:
  tutobot ask --doc manual.pdf -q "What is the warranty period?"
  tutobot ask --doc https://example.com/page -q "Main topic?" -k 2`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askDoc, "doc", "", "document: PDF path, library name, or URL (required)")
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of segments to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("doc")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if askTopK > 0 {
		cfg.Retrieve.TopK = askTopK
	}

	pipeline, cache, err := buildPipeline(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx := cmd.Context()
	if err := loadDocument(ctx, pipeline, cfg, askDoc); err != nil {
		return err
	}

	answer, err := pipeline.Ask(ctx, askQuery)
	if err != nil {
		return err
	}

	if askJSON {
		type citation struct {
			Page  int     `json:"page"`
			Score float64 `json:"score"`
		}
		out := struct {
			Question  string     `json:"question"`
			Answer    string     `json:"answer"`
			Citations []citation `json:"citations,omitempty"`
		}{Question: askQuery, Answer: answer.Text}
		for _, s := range answer.Segments {
			out.Citations = append(out.Citations, citation{Page: s.Segment.Page, Score: s.Score})
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(answer.Text)
	if len(answer.Segments) > 0 {
		fmt.Println()
		fmt.Print("Sources:")
		for _, s := range answer.Segments {
			fmt.Printf(" p.%d", s.Segment.Page)
		}
		fmt.Println()
	}
	return nil
}
