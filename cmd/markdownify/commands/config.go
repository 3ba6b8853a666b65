package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/markdownify/pkg/cleaner/prune"
	"github.com/jmylchreest/markdownify/pkg/markdownify"
)

// Config is the effective configuration: defaults, then the config file,
// then environment variables, then flags.
type Config struct {
	Convert markdownify.Options `mapstructure:"convert" yaml:"convert"`
	Prune   prune.Config        `mapstructure:"prune" yaml:"prune"`
	Fetch   FetchConfig         `mapstructure:"fetch" yaml:"fetch"`

	// MaxInputSize is a human-readable size such as "10MB"; "0" disables the limit.
	MaxInputSize string `mapstructure:"max_input_size" yaml:"max_input_size"`
}

// FetchConfig configures URL inputs.
type FetchConfig struct {
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

const defaultMaxInputSize = "10MB"

// sliceFlags are not bound to viper: an unset slice flag reads back as an
// empty, non-nil list, which would make strip and convert always conflict.
var sliceFlags = map[string]string{
	"strip":                 "strip",
	"convert":               "convert",
	"keep-inline-images-in": "keep_inline_images_in",
}

// addConvertFlags registers a flag for every conversion option. Defaults
// come from markdownify.DefaultOptions so unset flags never override the
// config file with a different value.
func addConvertFlags(flags *pflag.FlagSet) {
	d := markdownify.DefaultOptions()

	flags.Bool("autolinks", d.Autolinks, "render links whose text is their URL as <url>")
	flags.String("bullets", d.Bullets, "bullet characters, cycled by list depth")
	flags.String("code-language", d.CodeLanguage, "language for fenced code blocks")
	flags.StringSlice("strip", nil, "tags to strip, keeping their text")
	flags.StringSlice("convert", nil, "convert only these tags, stripping the rest")
	flags.Bool("default-title", d.DefaultTitle, "use the link URL as its title when none is set")
	flags.Bool("escape-asterisks", d.EscapeAsterisks, "escape * in text")
	flags.Bool("escape-underscores", d.EscapeUnderscores, "escape _ in text")
	flags.Bool("escape-misc", d.EscapeMisc, "escape other Markdown punctuation in text")
	flags.String("heading-style", string(d.HeadingStyle), "heading style: atx, atx_closed, underlined")
	flags.StringSlice("keep-inline-images-in", nil, "parent tags in which images keep their markup (e.g. td,h1)")
	flags.String("newline-style", string(d.NewlineStyle), "line break style: spaces, backslash")
	flags.String("strip-document", string(d.StripDocument), "document whitespace trimming: strip, lstrip, rstrip, none")
	flags.String("strip-pre", string(d.StripPre), "code block blank-line trimming: strip, strip_one, none")
	flags.String("strong-em-symbol", d.StrongEmSymbol, "emphasis symbol: * or _")
	flags.String("sub-symbol", d.SubSymbol, "markup around <sub> text")
	flags.String("sup-symbol", d.SupSymbol, "markup around <sup> text")
	flags.Bool("table-infer-header", d.TableInferHeader, "use the first row as header when a table has none")
	flags.Bool("wrap", d.Wrap, "wrap paragraphs")
	flags.Int("wrap-width", d.WrapWidth, "wrap width; 0 collapses whitespace without breaking lines")
	flags.Int("max-depth", d.MaxDepth, "maximum element nesting before subtrees are flattened to text; 0 disables")
}

// addInputFlags registers flags shared by commands that read HTML.
func addInputFlags(flags *pflag.FlagSet) {
	flags.Bool("prune", false, "remove scripts, hidden elements and page furniture before converting")
	flags.String("prune-preset", "default", "prune preset: minimal, default, article")
	flags.StringSlice("remove", nil, "CSS selectors to remove before converting (implies --prune)")
	flags.StringSlice("keep", nil, "CSS selectors protected from pruning")
	flags.String("user-agent", "", "user agent for URL inputs")
	flags.Duration("timeout", 30*time.Second, "timeout for URL inputs")
	flags.String("max-input-size", defaultMaxInputSize, "maximum input size (e.g. 500KB, 5MB; 0 = unlimited)")
}

// bindFlags binds the command's flags to viper keys. It runs from PreRunE
// because several commands share flag names and viper keeps one binding
// per key.
func bindFlags(cmd *cobra.Command, _ []string) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if key := viperKey(f.Name); key != "" {
			err = viper.BindPFlag(key, f)
		}
	})
	return err
}

func viperKey(flag string) string {
	if _, ok := sliceFlags[flag]; ok {
		return ""
	}
	name := strings.ReplaceAll(flag, "-", "_")
	switch flag {
	case "user-agent", "timeout":
		return "fetch." + name
	case "max-input-size":
		return name
	case "prune", "prune-preset", "remove", "keep", "stats", "format", "output", "select", "diff", "show-output", "context", "config", "debug", "quiet", "log-json":
		return ""
	}
	return "convert." + name
}

// loadConfig resolves the effective configuration for cmd.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	preset := "default"
	if f := cmd.Flags().Lookup("prune-preset"); f != nil {
		preset = f.Value.String()
	}
	pruneCfg, ok := prune.Preset(preset)
	if !ok {
		return nil, fmt.Errorf("unknown prune preset %q", preset)
	}

	cfg := &Config{
		Convert:      markdownify.DefaultOptions(),
		Prune:        *pruneCfg,
		Fetch:        FetchConfig{Timeout: 30 * time.Second},
		MaxInputSize: defaultMaxInputSize,
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	for flag, key := range sliceFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		values, _ := cmd.Flags().GetStringSlice(flag)
		switch key {
		case "strip":
			cfg.Convert.Strip = values
		case "convert":
			cfg.Convert.Convert = values
		case "keep_inline_images_in":
			cfg.Convert.KeepInlineImagesIn = values
		}
	}

	removes, _ := cmd.Flags().GetStringSlice("remove")
	keeps, _ := cmd.Flags().GetStringSlice("keep")
	cfg.Prune = *cfg.Prune.Merge(&prune.Config{RemoveSelectors: removes, KeepSelectors: keeps})

	if err := cfg.Convert.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pruneEnabled reports whether the command should prune before converting.
func pruneEnabled(cmd *cobra.Command) bool {
	enabled, _ := cmd.Flags().GetBool("prune")
	removes, _ := cmd.Flags().GetStringSlice("remove")
	return enabled || len(removes) > 0 || viper.GetBool("prune.enabled")
}

// parseSize parses a human-readable byte size. Empty and "0" mean no limit.
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration that convert would use, after merging defaults,
the config file, environment variables and flags.

The output is a valid .markdownify.yaml.`,
	PreRunE: bindFlags,
	RunE:    runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	addConvertFlags(configCmd.Flags())
	addInputFlags(configCmd.Flags())
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
