package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [content-file|-]",
	Short: "Export text as md, txt or pdf",
	Long:  `Reads content from a file (or stdin with "-") and writes <name>.<format> into the output directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
	exportName   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format: md, txt or pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "File name without extension (defaults to the input name)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	content, err := readContent(cmd, args[0])
	if err != nil {
		return err
	}

	name := exportName
	if name == "" && args[0] != "-" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	payload, err := pipeline.Exporter.Export(content, exportFormat, name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	target := filepath.Join(exportOut, payload.Filename)
	if err := os.WriteFile(target, payload.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d bytes", target, payload.MediaType, len(payload.Body))
	if payload.Pages > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d pages", payload.Pages)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ")")
	return nil
}

func readContent(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), nil
}
