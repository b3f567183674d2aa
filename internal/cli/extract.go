package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Print the extracted text of documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, path := range args {
		res := pipeline.Extractor.Extract(path)
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", res.Filename)
		}
		fmt.Fprint(out, res.Display())
	}
	return nil
}
