package markdownify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HeadingStyle controls how h1-h6 are rendered.
type HeadingStyle string

const (
	HeadingATX        HeadingStyle = "atx"
	HeadingATXClosed  HeadingStyle = "atx_closed"
	HeadingUnderlined HeadingStyle = "underlined"

	// HeadingSetext is an alias for HeadingUnderlined.
	HeadingSetext = HeadingUnderlined
)

// NewlineStyle controls how <br> is rendered outside inline contexts.
type NewlineStyle string

const (
	NewlineSpaces    NewlineStyle = "spaces"
	NewlineBackslash NewlineStyle = "backslash"
)

// StripMode selects how whitespace is trimmed from the document or from
// <pre> blocks.
type StripMode string

const (
	StripNone  StripMode = "none"
	StripBoth  StripMode = "strip"
	StripLeft  StripMode = "lstrip"
	StripRight StripMode = "rstrip"

	// StripOne removes exactly one leading and one trailing blank line.
	// Only meaningful for StripPre.
	StripOne StripMode = "strip_one"
)

var (
	// ErrConflictingTagFilters is returned when both Strip and Convert are set.
	ErrConflictingTagFilters = errors.New("you may specify either tags to strip or tags to convert, but not both")

	// ErrInvalidOptions wraps validation failures.
	ErrInvalidOptions = errors.New("invalid options")
)

// Options configures a Converter.
type Options struct {
	// Autolinks renders <a href="x">x</a> as <x>.
	Autolinks bool `yaml:"autolinks" json:"autolinks" mapstructure:"autolinks"`

	// Bullets cycles by nesting depth for unordered lists.
	Bullets string `yaml:"bullets" json:"bullets" mapstructure:"bullets" validate:"required"`

	CodeLanguage string `yaml:"code_language" json:"code_language" mapstructure:"code_language"`

	// CodeLanguageCallback, when set, picks the fence language for a <pre>
	// element. An empty result falls back to CodeLanguage.
	CodeLanguageCallback func(el Node) string `yaml:"-" json:"-" mapstructure:"-"`

	// Convert is an allow-list of tags. Nil means unset.
	Convert []string `yaml:"convert,omitempty" json:"convert,omitempty" mapstructure:"convert"`

	// Strip is a deny-list of tags. Nil means unset.
	Strip []string `yaml:"strip,omitempty" json:"strip,omitempty" mapstructure:"strip"`

	// DefaultTitle uses the href as the link title when none is given.
	DefaultTitle bool `yaml:"default_title" json:"default_title" mapstructure:"default_title"`

	EscapeAsterisks   bool `yaml:"escape_asterisks" json:"escape_asterisks" mapstructure:"escape_asterisks"`
	EscapeUnderscores bool `yaml:"escape_underscores" json:"escape_underscores" mapstructure:"escape_underscores"`
	EscapeMisc        bool `yaml:"escape_misc" json:"escape_misc" mapstructure:"escape_misc"`

	HeadingStyle HeadingStyle `yaml:"heading_style" json:"heading_style" mapstructure:"heading_style" validate:"oneof=atx atx_closed underlined ATX ATX_CLOSED UNDERLINED"`

	// KeepInlineImagesIn lists parent tags (e.g. td, h1) inside which images
	// keep their markup instead of collapsing to alt text.
	KeepInlineImagesIn []string `yaml:"keep_inline_images_in,omitempty" json:"keep_inline_images_in,omitempty" mapstructure:"keep_inline_images_in"`

	NewlineStyle NewlineStyle `yaml:"newline_style" json:"newline_style" mapstructure:"newline_style" validate:"oneof=spaces backslash SPACES BACKSLASH"`

	StripDocument StripMode `yaml:"strip_document" json:"strip_document" mapstructure:"strip_document" validate:"omitempty,oneof=strip lstrip rstrip none STRIP LSTRIP RSTRIP NONE"`
	StripPre      StripMode `yaml:"strip_pre" json:"strip_pre" mapstructure:"strip_pre" validate:"omitempty,oneof=strip strip_one none STRIP STRIP_ONE NONE"`

	StrongEmSymbol string `yaml:"strong_em_symbol" json:"strong_em_symbol" mapstructure:"strong_em_symbol" validate:"required"`
	SubSymbol      string `yaml:"sub_symbol" json:"sub_symbol" mapstructure:"sub_symbol"`
	SupSymbol      string `yaml:"sup_symbol" json:"sup_symbol" mapstructure:"sup_symbol"`

	TableInferHeader bool `yaml:"table_infer_header" json:"table_infer_header" mapstructure:"table_infer_header"`

	Wrap      bool `yaml:"wrap" json:"wrap" mapstructure:"wrap"`
	WrapWidth int  `yaml:"wrap_width" json:"wrap_width" mapstructure:"wrap_width" validate:"gte=0"`

	// MaxDepth bounds element nesting. Deeper subtrees are rendered as plain
	// text. Zero disables the limit.
	MaxDepth int `yaml:"max_depth" json:"max_depth" mapstructure:"max_depth" validate:"gte=0"`

	// Renderers overrides or extends the built-in tag renderers. Keys are tag
	// names; see RendererKey for how they are normalised.
	Renderers map[string]Renderer `yaml:"-" json:"-" mapstructure:"-"`

	// HeadingRenderer replaces the generic hN renderer for headings that have
	// no specific entry in Renderers.
	HeadingRenderer HeadingRenderer `yaml:"-" json:"-" mapstructure:"-"`
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		Autolinks:         true,
		Bullets:           "*+-",
		EscapeAsterisks:   true,
		EscapeUnderscores: true,
		HeadingStyle:      HeadingUnderlined,
		NewlineStyle:      NewlineSpaces,
		StripDocument:     StripBoth,
		StripPre:          StripBoth,
		StrongEmSymbol:    "*",
		WrapWidth:         80,
		MaxDepth:          1000,
	}
}

var validate = validator.New()

// Validate reports configuration errors. A Strip/Convert conflict is
// reported as ErrConflictingTagFilters; everything else wraps
// ErrInvalidOptions.
func (o *Options) Validate() error {
	if o.Strip != nil && o.Convert != nil {
		return ErrConflictingTagFilters
	}
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

func (o *Options) headingStyle() HeadingStyle {
	return HeadingStyle(strings.ToLower(string(o.HeadingStyle)))
}

func (o *Options) newlineStyle() NewlineStyle {
	return NewlineStyle(strings.ToLower(string(o.NewlineStyle)))
}

func normalizeStrip(m StripMode) StripMode {
	m = StripMode(strings.ToLower(string(m)))
	if m == "" {
		return StripNone
	}
	return m
}

// Option mutates Options.
type Option func(*Options)

// WithOptions replaces all options with o.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

func WithAutolinks(v bool) Option { return func(o *Options) { o.Autolinks = v } }

func WithBullets(bullets string) Option { return func(o *Options) { o.Bullets = bullets } }

func WithCodeLanguage(lang string) Option { return func(o *Options) { o.CodeLanguage = lang } }

func WithCodeLanguageCallback(fn func(el Node) string) Option {
	return func(o *Options) { o.CodeLanguageCallback = fn }
}

// WithConvert sets the tag allow-list. Calling it with no tags converts
// nothing.
func WithConvert(tags ...string) Option {
	return func(o *Options) { o.Convert = append([]string{}, tags...) }
}

// WithStrip sets the tag deny-list. Calling it with no tags strips nothing.
func WithStrip(tags ...string) Option {
	return func(o *Options) { o.Strip = append([]string{}, tags...) }
}

func WithDefaultTitle(v bool) Option { return func(o *Options) { o.DefaultTitle = v } }

func WithEscapeAsterisks(v bool) Option { return func(o *Options) { o.EscapeAsterisks = v } }

func WithEscapeUnderscores(v bool) Option { return func(o *Options) { o.EscapeUnderscores = v } }

func WithEscapeMisc(v bool) Option { return func(o *Options) { o.EscapeMisc = v } }

func WithHeadingStyle(s HeadingStyle) Option { return func(o *Options) { o.HeadingStyle = s } }

func WithKeepInlineImagesIn(tags ...string) Option {
	return func(o *Options) { o.KeepInlineImagesIn = append([]string{}, tags...) }
}

func WithNewlineStyle(s NewlineStyle) Option { return func(o *Options) { o.NewlineStyle = s } }

func WithStripDocument(m StripMode) Option { return func(o *Options) { o.StripDocument = m } }

func WithStripPre(m StripMode) Option { return func(o *Options) { o.StripPre = m } }

func WithStrongEmSymbol(s string) Option { return func(o *Options) { o.StrongEmSymbol = s } }

func WithSubSymbol(s string) Option { return func(o *Options) { o.SubSymbol = s } }

func WithSupSymbol(s string) Option { return func(o *Options) { o.SupSymbol = s } }

func WithTableInferHeader(v bool) Option { return func(o *Options) { o.TableInferHeader = v } }

// WithWrap enables paragraph wrapping at width columns. A width of zero
// only collapses whitespace.
func WithWrap(v bool, width int) Option {
	return func(o *Options) {
		o.Wrap = v
		o.WrapWidth = width
	}
}

func WithMaxDepth(depth int) Option { return func(o *Options) { o.MaxDepth = depth } }

// WithRenderer registers a renderer for tag, overriding any built-in.
func WithRenderer(tag string, r Renderer) Option {
	return func(o *Options) {
		if o.Renderers == nil {
			o.Renderers = make(map[string]Renderer)
		}
		o.Renderers[RendererKey(tag)] = r
	}
}

// WithHeadingRenderer replaces the generic hN renderer.
func WithHeadingRenderer(r HeadingRenderer) Option {
	return func(o *Options) { o.HeadingRenderer = r }
}
