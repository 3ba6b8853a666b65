// Package cleaner defines the HTML processing pipeline used around the
// converter. A Cleaner takes a document and returns a transformed one;
// cleaners compose with NewChain so pruning and conversion can run as one
// step.
package cleaner

// Cleaner transforms a document.
type Cleaner interface {
	// Clean transforms input. HTML cleaners return HTML, Markdown cleaners
	// return Markdown.
	Clean(input string) (string, error)

	// Name identifies the cleaner in logs and reports.
	Name() string
}
