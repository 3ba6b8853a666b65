package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/markdownify/internal/output"
	"github.com/jmylchreest/markdownify/pkg/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.md|-]",
	Short: "Report the structure of a Markdown document",
	Long: `Parse a Markdown document as CommonMark with GitHub extensions and
report its headings, lists, tables, code blocks and inline markup.

Useful for checking that a conversion produced the structure you expect:

  markdownify convert page.html | markdownify inspect --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("format", "text", "report format: text, json, yaml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	src, err := readInput(context.Background(), arg, cmd.InOrStdin(), FetchConfig{}, 0)
	if err != nil {
		return err
	}

	w, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	return w.Write(inspect.Inspect(src.Content))
}
