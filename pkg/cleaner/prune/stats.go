package prune

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats captures what a prune pass removed.
type Stats struct {
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// ElementsRemoved counts removals per tag name.
	ElementsRemoved map[string]int `json:"elements_removed" yaml:"elements_removed"`

	// SelectorMatches counts removals per configured selector.
	SelectorMatches map[string]int `json:"selector_matches" yaml:"selector_matches"`

	HiddenElementRemovals int `json:"hidden_element_removals" yaml:"hidden_element_removals"`
	CommentsRemoved       int `json:"comments_removed" yaml:"comments_removed"`
	NoscriptUnwrapped     int `json:"noscript_unwrapped" yaml:"noscript_unwrapped"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// NewStats creates a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
		SelectorMatches: make(map[string]int),
	}
}

// RecordRemoval records that an element was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// RecordSelectorMatch records that a selector removed count elements.
func (s *Stats) RecordSelectorMatch(selector string, count int) {
	s.SelectorMatches[selector] += count
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, n := range s.ElementsRemoved {
		total += n
	}
	return total
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent())
	fmt.Fprintf(&sb, "Elements removed: %d\n", s.TotalElementsRemoved())

	if len(s.ElementsRemoved) > 0 {
		parts := make([]string, 0, len(s.ElementsRemoved))
		for _, tag := range slices.Sorted(maps.Keys(s.ElementsRemoved)) {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString("Removed by tag: " + strings.Join(parts, ", ") + "\n")
	}
	if s.HiddenElementRemovals > 0 {
		fmt.Fprintf(&sb, "Hidden element removals: %d\n", s.HiddenElementRemovals)
	}
	if s.CommentsRemoved > 0 {
		fmt.Fprintf(&sb, "Comments removed: %d\n", s.CommentsRemoved)
	}
	if s.NoscriptUnwrapped > 0 {
		fmt.Fprintf(&sb, "Noscript unwrapped: %d\n", s.NoscriptUnwrapped)
	}
	fmt.Fprintf(&sb, "Time: %v\n", s.Duration.Round(time.Microsecond))

	return sb.String()
}

// Warning is a non-fatal issue hit while pruning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message" yaml:"message"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the output of a prune pass.
type Result struct {
	// Content is the pruned HTML. When parsing fails it is the original input.
	Content  string    `json:"content" yaml:"content"`
	Stats    *Stats    `json:"stats" yaml:"stats"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning appends a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message, Context: context})
}
