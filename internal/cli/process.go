package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"ai-docstruct-be/internal/dto"
	"ai-docstruct-be/internal/service"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Run documents through extraction and the model",
	Long: `Extracts each document, builds the prompt and calls the model chain.
Without ANTHROPIC_API_KEY a simulated response is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

var processJSON bool

func init() {
	processCmd.Flags().BoolVar(&processJSON, "json", false, "Print full result records as JSON")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	docs := make([]dto.UploadedDocument, len(args))
	for i, path := range args {
		docs[i] = dto.UploadedDocument{Filename: filepath.Base(path), Path: path}
	}

	svc := service.NewDocumentService(
		pipeline.Extractor,
		pipeline.Invoker,
		pipeline.Exporter,
		nil,
		sysLog,
		cfg.App.MaxParallelFiles,
	)
	res, err := svc.ProcessBatch(cmd.Context(), docs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if processJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	for i, r := range res.Results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s [%s", r.Filename, r.Status)
		if r.Model != "" {
			fmt.Fprintf(out, ", %s", r.Model)
		}
		fmt.Fprintln(out, "] ==")
		fmt.Fprintln(out, r.AiResponse)
	}
	return nil
}
