package markdownify

import (
	"strconv"
	"strings"
)

const maxColspan = 1000

func renderTable(_ *Converter, _ Node, text string, _ Context) string {
	return "\n\n" + strings.TrimSpace(text) + "\n\n"
}

func renderCaption(_ *Converter, _ Node, text string, _ Context) string {
	return strings.TrimSpace(text) + "\n\n"
}

func renderFigcaption(_ *Converter, _ Node, text string, _ Context) string {
	return "\n\n" + strings.TrimSpace(text) + "\n\n"
}

// colspan parses a cell's colspan, clamped to [1, maxColspan]. Anything
// unparsable counts as 1.
func colspan(cell Node) int {
	v, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 1
	}
	return max(1, min(maxColspan, n))
}

func renderCell(_ *Converter, n Node, text string, _ Context) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")
	return " " + text + strings.Repeat(" |", colspan(n))
}

func separatorRow(cols int, cell string) string {
	cells := make([]string, cols)
	for i := range cells {
		cells[i] = cell
	}
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// renderRow emits a table row. The first row of a table either becomes the
// header (followed by a separator) or, when the table has no header and
// inference is off, gets an empty header synthesised above it.
func renderRow(c *Converter, n Node, text string, _ Context) string {
	cells := childElements(n, "td", "th")
	parent := n.Parent()
	isFirstRow := prevElement(n) == nil

	isHeadRow := true
	for _, cell := range cells {
		if cell.Tag() != "th" {
			isHeadRow = false
			break
		}
	}
	if isTag(parent, "thead") && len(childElements(parent, "tr")) == 1 {
		isHeadRow = true
	}

	headMissing := false
	if isFirstRow {
		if !isTag(parent, "tbody") {
			headMissing = true
		} else if table := parent.Parent(); table == nil || len(childElements(table, "thead")) == 0 {
			headMissing = true
		}
	}

	fullColspan := 0
	for _, cell := range cells {
		fullColspan += colspan(cell)
	}

	var overline, underline string
	switch {
	case isFirstRow && (isHeadRow || (headMissing && c.opts.TableInferHeader)):
		underline = separatorRow(fullColspan, "---")
	case (headMissing && !c.opts.TableInferHeader) ||
		(isFirstRow && (isTag(parent, "table") || (isTag(parent, "tbody") && prevElement(parent) == nil))):
		overline = separatorRow(fullColspan, "") + separatorRow(fullColspan, "---")
	}

	return overline + "|" + text + "\n" + underline
}
