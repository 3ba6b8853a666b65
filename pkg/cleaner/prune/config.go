// Package prune removes page furniture from HTML before it is converted
// to Markdown. It works on a goquery document and hands back HTML, so it
// composes with any cleaner in a chain.
package prune

// Config defines what the pruner removes.
type Config struct {
	// StripScripts removes <script>, <style> and <template> elements.
	StripScripts bool `mapstructure:"strip_scripts" yaml:"strip_scripts" json:"strip_scripts"`

	// StripComments removes HTML comments.
	StripComments bool `mapstructure:"strip_comments" yaml:"strip_comments" json:"strip_comments"`

	// StripHiddenElements removes elements with the hidden attribute,
	// aria-hidden="true", or an inline display:none / visibility:hidden.
	StripHiddenElements bool `mapstructure:"strip_hidden_elements" yaml:"strip_hidden_elements" json:"strip_hidden_elements"`

	// StripSVG removes inline SVG, which is almost always decorative.
	StripSVG bool `mapstructure:"strip_svg" yaml:"strip_svg" json:"strip_svg"`

	// StripIframes removes iframe elements.
	StripIframes bool `mapstructure:"strip_iframes" yaml:"strip_iframes" json:"strip_iframes"`

	// UnwrapNoscript replaces <noscript> with its parsed contents. The
	// parser treats noscript bodies as raw text, so without this the
	// fallback markup (often lazy-loaded images) never reaches the converter.
	UnwrapNoscript bool `mapstructure:"unwrap_noscript" yaml:"unwrap_noscript" json:"unwrap_noscript"`

	// RemoveSelectors is a list of CSS selectors to always remove.
	RemoveSelectors []string `mapstructure:"remove_selectors" yaml:"remove_selectors" json:"remove_selectors"`

	// KeepSelectors protects matching elements from every removal rule.
	KeepSelectors []string `mapstructure:"keep_selectors" yaml:"keep_selectors" json:"keep_selectors"`
}

// DefaultConfig returns the configuration used by `markdownify convert --prune`.
func DefaultConfig() *Config {
	return &Config{
		StripScripts:        true,
		StripComments:       true,
		StripHiddenElements: true,
		StripSVG:            true,
		StripIframes:        true,
		UnwrapNoscript:      true,

		RemoveSelectors: []string{
			// Ads
			"ins.adsbygoogle",
			"[data-ad-slot]",
			".advertisement",
			"[id*='google_ads']",

			// Sharing widgets
			".share-buttons",
			".social-share",

			// Cookie banners
			"[class*='cookie-banner']",
			"[id*='cookie-consent']",
		},
	}
}

// PresetMinimal only strips scripts and comments.
func PresetMinimal() *Config {
	return &Config{
		StripScripts:  true,
		StripComments: true,
	}
}

// PresetArticle extends the defaults with the page chrome that surrounds an
// article: navigation, headers, footers and sidebars.
func PresetArticle() *Config {
	cfg := DefaultConfig()
	cfg.RemoveSelectors = append(cfg.RemoveSelectors,
		"nav",
		"header",
		"footer",
		"aside",
		".sidebar",
		"[role='navigation']",
		"[role='banner']",
		"[role='contentinfo']",
	)
	return cfg
}

// Preset returns a named configuration: "minimal", "default" or "article".
func Preset(name string) (*Config, bool) {
	switch name {
	case "minimal":
		return PresetMinimal(), true
	case "", "default":
		return DefaultConfig(), true
	case "article":
		return PresetArticle(), true
	}
	return nil, false
}

// Merge returns a copy of c with other layered on top. Boolean switches
// are enabled when either side enables them; selectors are appended
// without duplicates.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	merged.RemoveSelectors = append([]string(nil), c.RemoveSelectors...)
	merged.KeepSelectors = append([]string(nil), c.KeepSelectors...)
	if other == nil {
		return &merged
	}

	merged.StripScripts = merged.StripScripts || other.StripScripts
	merged.StripComments = merged.StripComments || other.StripComments
	merged.StripHiddenElements = merged.StripHiddenElements || other.StripHiddenElements
	merged.StripSVG = merged.StripSVG || other.StripSVG
	merged.StripIframes = merged.StripIframes || other.StripIframes
	merged.UnwrapNoscript = merged.UnwrapNoscript || other.UnwrapNoscript

	merged.RemoveSelectors = appendUnique(merged.RemoveSelectors, other.RemoveSelectors)
	merged.KeepSelectors = appendUnique(merged.KeepSelectors, other.KeepSelectors)
	return &merged
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
