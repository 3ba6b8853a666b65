package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/markdownify/internal/logger"
	"github.com/jmylchreest/markdownify/internal/output"
	"github.com/jmylchreest/markdownify/pkg/cleaner"
	"github.com/jmylchreest/markdownify/pkg/cleaner/prune"
	"github.com/jmylchreest/markdownify/pkg/inspect"
	"github.com/jmylchreest/markdownify/pkg/markdownify"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|url|-]",
	Short: "Convert HTML to Markdown",
	Long: `Convert an HTML document to Markdown.

With no argument, or "-", the document is read from stdin. An http(s)
URL is fetched first.

Examples:
  markdownify convert page.html -o page.md
  markdownify convert https://example.com --prune --remove ".comments"
  markdownify convert page.html --select "main article" --heading-style atx
  markdownify convert page.html --strip a,img --wrap --wrap-width 72`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	addConvertFlags(flags)
	addInputFlags(flags)

	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("select", "s", "", "CSS selector; convert only matching elements")
	flags.String("stats", "", "print a structure report to stderr: text, json, yaml")
}

// convertReport is printed by --stats.
type convertReport struct {
	Source     string          `json:"source" yaml:"source"`
	InputBytes int             `json:"input_bytes" yaml:"input_bytes"`
	Duration   time.Duration   `json:"duration_ns" yaml:"duration"`
	Prune      *prune.Stats    `json:"prune,omitempty" yaml:"prune,omitempty"`
	Markdown   *inspect.Report `json:"markdown" yaml:"markdown"`
}

func (r convertReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s (%d bytes, converted in %v)\n", r.Source, r.InputBytes, r.Duration.Round(time.Microsecond))
	if r.Prune != nil {
		sb.WriteString("\nPrune\n")
		sb.WriteString(r.Prune.String())
	}
	sb.WriteString("\nMarkdown\n")
	sb.WriteString(r.Markdown.String())
	return sb.String()
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	statsFormat, _ := cmd.Flags().GetString("stats")
	var writer output.Writer
	if statsFormat != "" {
		format, err := output.ParseFormat(statsFormat)
		if err != nil {
			return err
		}
		if writer, err = output.NewWriter(cmd.ErrOrStderr(), format); err != nil {
			return err
		}
	}

	maxSize, err := parseSize(cfg.MaxInputSize)
	if err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	src, err := readInput(ctx, arg, cmd.InOrStdin(), cfg.Fetch, maxSize)
	if err != nil {
		return err
	}

	start := time.Now()
	report := convertReport{Source: src.Name, InputBytes: len(src.Content)}

	html := src.Content
	if pruneEnabled(cmd) {
		result := prune.New(&cfg.Prune).CleanWithStats(html)
		for _, w := range result.Warnings {
			logger.Warn("prune warning", "warning", w.String())
		}
		html = result.Content
		report.Prune = result.Stats
		logger.Debug("pruned input", "removed", result.Stats.TotalElementsRemoved(), "bytes", result.Stats.OutputBytes)
	}

	md, err := cleaner.NewMarkdown(markdownify.WithOptions(cfg.Convert))
	if err != nil {
		return err
	}

	var out string
	if selector, _ := cmd.Flags().GetString("select"); selector != "" {
		out, err = convertSelection(md.Converter(), html, selector)
	} else {
		out, err = md.Clean(html)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	report.Duration = time.Since(start)

	outPath, _ := cmd.Flags().GetString("output")
	if err := writeOutput(cmd.OutOrStdout(), outPath, out); err != nil {
		return err
	}

	if writer != nil {
		report.Markdown = inspect.Inspect(out)
		return writer.Write(report)
	}
	return nil
}

// convertSelection converts only the nodes matching selector, joined as
// top-level blocks.
func convertSelection(conv *markdownify.Converter, html, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		logger.Warn("selector matched nothing", "selector", selector)
	}
	logger.Debug("converting selection", "selector", selector, "matches", sel.Length())
	return conv.ConvertSelection(sel), nil
}
