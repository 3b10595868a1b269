package docs

import (
	"encoding/json"
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// Output formats accepted by Render.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Formats lists the accepted Render formats, default first.
var Formats = []string{FormatText, FormatMarkdown, FormatJSON}

// Render converts a document to one of the output formats.
func Render(doc *docs.Document, format string) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	switch format {
	case FormatText:
		return renderText(doc), nil
	case FormatMarkdown:
		return renderMarkdown(doc), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode document: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document format %q", format)
	}
}

// section is one tab, or the whole body of a document without tabs.
type section struct {
	title string
	// depth is 0 for top-level tabs and grows by one per child level.
	depth int
	// index is the 1-based position among siblings, used for untitled tabs.
	index int
	body  *docs.Body
}

func sections(doc *docs.Document) []section {
	if len(doc.Tabs) == 0 {
		return []section{{body: doc.Body}}
	}
	var out []section
	var walk func(tabs []*docs.Tab, depth int)
	walk = func(tabs []*docs.Tab, depth int) {
		for i, tab := range tabs {
			s := section{depth: depth, index: i + 1}
			if tab.TabProperties != nil {
				s.title = tab.TabProperties.Title
			}
			if tab.DocumentTab != nil {
				s.body = tab.DocumentTab.Body
			}
			out = append(out, s)
			walk(tab.ChildTabs, depth+1)
		}
	}
	walk(doc.Tabs, 0)
	return out
}

func (s section) label() string {
	if s.title != "" {
		return s.title
	}
	if s.depth == 0 {
		return fmt.Sprintf("Tab %d", s.index)
	}
	return fmt.Sprintf("Subtab %d", s.index)
}

func (s section) content() []*docs.StructuralElement {
	if s.body == nil {
		return nil
	}
	return s.body.Content
}

func renderText(doc *docs.Document) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}

	secs := sections(doc)
	for _, s := range secs {
		if len(secs) > 1 {
			fmt.Fprintf(&b, "%s=== %s ===\n\n", strings.Repeat("  ", s.depth), s.label())
		}
		for _, el := range s.content() {
			switch {
			case el.Paragraph != nil:
				b.WriteString(paragraphText(el.Paragraph))
			case el.Table != nil:
				writeTableText(&b, el.Table)
			}
		}
	}
	return b.String()
}

func paragraphText(p *docs.Paragraph) string {
	var b strings.Builder
	for _, el := range p.Elements {
		if el.TextRun != nil {
			b.WriteString(el.TextRun.Content)
		}
	}
	return b.String()
}

func writeTableText(b *strings.Builder, table *docs.Table) {
	for _, row := range table.TableRows {
		cells := make([]string, len(row.TableCells))
		for i, cell := range row.TableCells {
			cells[i] = cellText(cell)
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteString("\n")
	}
}

func cellText(cell *docs.TableCell) string {
	var parts []string
	for _, el := range cell.Content {
		if el.Paragraph == nil {
			continue
		}
		if text := strings.TrimSpace(paragraphText(el.Paragraph)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// markdownWriter tracks list state so a list is separated from the
// paragraph that follows it.
type markdownWriter struct {
	b      strings.Builder
	inList bool
}

func renderMarkdown(doc *docs.Document) string {
	w := &markdownWriter{}
	if doc.Title != "" {
		fmt.Fprintf(&w.b, "# %s\n\n", doc.Title)
	}

	secs := sections(doc)
	for _, s := range secs {
		if len(secs) > 1 {
			w.endList()
			fmt.Fprintf(&w.b, "%s %s\n\n", strings.Repeat("#", min(s.depth+2, 6)), s.label())
		}
		for _, el := range s.content() {
			switch {
			case el.Paragraph != nil:
				w.paragraph(el.Paragraph)
			case el.Table != nil:
				w.table(el.Table)
			case el.SectionBreak != nil && w.b.Len() > 0:
				w.endList()
				w.b.WriteString("---\n\n")
			}
		}
	}
	w.endList()
	return strings.TrimRight(w.b.String(), "\n") + "\n"
}

func (w *markdownWriter) endList() {
	if w.inList {
		w.b.WriteString("\n")
		w.inList = false
	}
}

func (w *markdownWriter) paragraph(p *docs.Paragraph) {
	var line strings.Builder
	for _, el := range p.Elements {
		switch {
		case el.TextRun != nil:
			line.WriteString(markdownRun(el.TextRun))
		case el.InlineObjectElement != nil:
			line.WriteString("[image]")
		}
	}
	text := strings.TrimSpace(line.String())
	if text == "" {
		return
	}

	if p.Bullet != nil {
		nesting := int(p.Bullet.NestingLevel)
		fmt.Fprintf(&w.b, "%s- %s\n", strings.Repeat("  ", nesting), text)
		w.inList = true
		return
	}

	w.endList()
	if level := headingLevel(p.ParagraphStyle); level > 0 {
		w.b.WriteString(strings.Repeat("#", level))
		w.b.WriteString(" ")
	}
	w.b.WriteString(text)
	w.b.WriteString("\n\n")
}

func (w *markdownWriter) table(table *docs.Table) {
	w.endList()
	for i, row := range table.TableRows {
		w.b.WriteString("|")
		for _, cell := range row.TableCells {
			w.b.WriteString(" ")
			w.b.WriteString(strings.ReplaceAll(cellText(cell), "|", `\|`))
			w.b.WriteString(" |")
		}
		w.b.WriteString("\n")
		if i == 0 {
			w.b.WriteString("|")
			w.b.WriteString(strings.Repeat(" --- |", len(row.TableCells)))
			w.b.WriteString("\n")
		}
	}
	w.b.WriteString("\n")
}

func headingLevel(style *docs.ParagraphStyle) int {
	if style == nil {
		return 0
	}
	switch style.NamedStyleType {
	case "TITLE", "HEADING_1":
		return 1
	case "SUBTITLE", "HEADING_2":
		return 2
	case "HEADING_3":
		return 3
	case "HEADING_4":
		return 4
	case "HEADING_5":
		return 5
	case "HEADING_6":
		return 6
	}
	return 0
}

// markdownRun renders one styled run. Emphasis markers wrap the run's text
// but not its surrounding whitespace, which Markdown would not recognise.
func markdownRun(run *docs.TextRun) string {
	content := strings.TrimSuffix(run.Content, "\n")
	core := strings.TrimSpace(content)
	if core == "" || run.TextStyle == nil {
		return content
	}
	lead := content[:strings.Index(content, core)]
	trail := content[len(lead)+len(core):]

	style := run.TextStyle
	switch {
	case style.Link != nil && style.Link.Url != "":
		core = fmt.Sprintf("[%s](%s)", core, style.Link.Url)
	case style.WeightedFontFamily != nil && isMonospace(style.WeightedFontFamily.FontFamily):
		core = "`" + core + "`"
	case style.Bold && style.Italic:
		core = "***" + core + "***"
	case style.Bold:
		core = "**" + core + "**"
	case style.Italic:
		core = "*" + core + "*"
	}
	if style.Strikethrough {
		core = "~~" + core + "~~"
	}
	return lead + core + trail
}

func isMonospace(family string) bool {
	switch family {
	case "Courier New", "Consolas", "Roboto Mono", "Source Code Pro":
		return true
	}
	return false
}
