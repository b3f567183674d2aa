// Package cli implements the docstruct command-line interface over the same
// pipeline the REST server uses.
package cli

import (
	"context"

	"ai-docstruct-be/internal/bootstrap"
	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	sysLog   logger.ILogger
	pipeline *bootstrap.Pipeline
)

var rootCmd = &cobra.Command{
	Use:   "docstruct",
	Short: "Extract, structure and export office documents",
	Long: `docstruct extracts text from PDF, DOCX, PPTX and XLSX files, asks the
configured model to restructure it, and exports results as md, txt or pdf.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			cfg = config.Load()
		}
		if sysLog == nil {
			sysLog = newCLILogger(cfg.App.LogFilePath)
		}
		if pipeline == nil {
			pipeline = bootstrap.NewPipeline(cfg, sysLog)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = sysLog.Sync()
	},
}

// newCLILogger keeps stdout free for command output.
func newCLILogger(path string) logger.ILogger {
	if path == "" {
		return logger.NewNopLogger()
	}
	return logger.NewIsolatedLogger(path)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
