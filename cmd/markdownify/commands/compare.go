package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/markdownify/internal/output"
	"github.com/jmylchreest/markdownify/pkg/cleaner"
	"github.com/jmylchreest/markdownify/pkg/cleaner/prune"
	"github.com/jmylchreest/markdownify/pkg/markdownify"
)

var compareCmd = &cobra.Command{
	Use:   "compare [file|url|-]",
	Short: "Compare markdownify's output with html-to-markdown",
	Long: `Convert the same input with markdownify and with html-to-markdown,
then report sizes, timings, a similarity ratio and a unified diff.

Conversion flags apply to markdownify only.

Examples:
  markdownify compare page.html
  markdownify compare https://example.com --prune --format json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	addConvertFlags(flags)
	addInputFlags(flags)

	flags.String("format", "text", "report format: text, json, yaml")
	flags.Bool("diff", true, "include a unified diff")
	flags.Bool("show-output", false, "include both outputs in the report")
	flags.Int("context", 3, "diff context lines")
}

type compareResult struct {
	Name     string        `json:"name" yaml:"name"`
	Bytes    int           `json:"bytes" yaml:"bytes"`
	Lines    int           `json:"lines" yaml:"lines"`
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"`
}

type compareReport struct {
	Source     string          `json:"source" yaml:"source"`
	InputBytes int             `json:"input_bytes" yaml:"input_bytes"`
	Results    []compareResult `json:"results" yaml:"results"`
	Similarity float64         `json:"similarity" yaml:"similarity"`
	Diff       string          `json:"diff,omitempty" yaml:"diff,omitempty"`
}

func (r compareReport) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Input: %s, %d bytes\n\n", r.Source, r.InputBytes)
	fmt.Fprintf(&sb, "%-25s %10s %8s %10s\n", "Converter", "Output", "Lines", "Time")
	fmt.Fprintf(&sb, "%-25s %10s %8s %10s\n", "---------", "------", "-----", "----")
	for _, res := range r.Results {
		if res.Error != "" {
			fmt.Fprintf(&sb, "%-25s %10s %8s %10v (error: %s)\n", res.Name, "ERROR", "-", res.Duration.Round(time.Microsecond), res.Error)
			continue
		}
		fmt.Fprintf(&sb, "%-25s %10d %8d %10v\n", res.Name, res.Bytes, res.Lines, res.Duration.Round(time.Microsecond))
	}
	fmt.Fprintf(&sb, "\nSimilarity: %.1f%%\n", r.Similarity*100)

	for _, res := range r.Results {
		if res.Output != "" {
			fmt.Fprintf(&sb, "\n===== %s =====\n%s\n", res.Name, res.Output)
		}
	}
	if r.Diff != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Diff)
	}
	return sb.String()
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
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

	md, err := cleaner.NewMarkdown(markdownify.WithOptions(cfg.Convert))
	if err != nil {
		return err
	}
	converters := []cleaner.Cleaner{md, cleaner.NewReference()}
	if pruneEnabled(cmd) {
		p := prune.New(&cfg.Prune)
		for i, c := range converters {
			converters[i] = cleaner.NewChain(p, c)
		}
	}

	showOutput, _ := cmd.Flags().GetBool("show-output")
	withDiff, _ := cmd.Flags().GetBool("diff")
	contextLines, _ := cmd.Flags().GetInt("context")

	report := compareReport{Source: src.Name, InputBytes: len(src.Content)}
	outputs := make([]string, len(converters))
	for i, c := range converters {
		res, out := runConverter(c, src.Content)
		if showOutput {
			res.Output = out
		}
		report.Results = append(report.Results, res)
		outputs[i] = out
	}

	a, b := difflib.SplitLines(outputs[0]), difflib.SplitLines(outputs[1])
	report.Similarity = difflib.NewMatcher(a, b).Ratio()
	if withDiff {
		report.Diff, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        a,
			B:        b,
			FromFile: converters[0].Name(),
			ToFile:   converters[1].Name(),
			Context:  contextLines,
		})
		if err != nil {
			return fmt.Errorf("failed to diff outputs: %w", err)
		}
	}

	w, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	return w.Write(report)
}

func runConverter(c cleaner.Cleaner, html string) (compareResult, string) {
	start := time.Now()
	out, err := c.Clean(html)
	res := compareResult{Name: c.Name(), Duration: time.Since(start)}
	if err != nil {
		res.Error = err.Error()
		return res, ""
	}
	res.Bytes = len(out)
	if out != "" {
		res.Lines = strings.Count(out, "\n") + 1
	}
	return res, out
}
