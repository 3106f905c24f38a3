package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

var notesMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type notesStyles struct {
	text, h1, h2, h3   lipgloss.Style
	em, strong, strike lipgloss.Style
	code, codeBlock    lipgloss.Style
	link, dim          lipgloss.Style
	quote              lipgloss.Style
}

func newNotesStyles() notesStyles {
	return notesStyles{
		text:   lipgloss.NewStyle().Foreground(theme.Text),
		h1:     lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		h2:     lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true),
		h3:     lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		em:     lipgloss.NewStyle().Foreground(theme.Text).Italic(true),
		strong: lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		strike: lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true),
		code:   lipgloss.NewStyle().Foreground(theme.Accent),
		codeBlock: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
		link: lipgloss.NewStyle().Foreground(theme.Secondary),
		dim:  lipgloss.NewStyle().Foreground(theme.TextDim),
		quote: lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
	}
}

// notesRenderer walks a parsed markdown tree and lays it out with lipgloss.
type notesRenderer struct {
	src    []byte
	styles notesStyles
}

// RenderNotes lays out markdown notes for the terminal at the given width.
func RenderNotes(md string, width int) string {
	src := []byte(strings.ReplaceAll(md, "\r\n", "\n"))
	doc := notesMarkdown.Parser().Parse(text.NewReader(src))
	r := notesRenderer{src: src, styles: newNotesStyles()}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(r.blocks(doc, width), "\n\n"))
}

func (r notesRenderer) blocks(parent ast.Node, width int) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if s := r.block(n, width); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r notesRenderer) block(n ast.Node, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	switch n := n.(type) {
	case *ast.Heading:
		style := r.styles.h3
		switch n.Level {
		case 1:
			style = r.styles.h1
		case 2:
			style = r.styles.h2
		}
		return wrap.Render(style.Render(r.plain(n)))
	case *ast.Paragraph, *ast.TextBlock:
		return wrap.Render(r.inline(n))
	case *ast.List:
		return r.list(n, width)
	case *ast.Blockquote:
		return r.styles.quote.Width(width).Render(strings.Join(r.blocks(n, width-2), "\n"))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.styles.codeBlock.Render(strings.TrimRight(r.lines(n), "\n"))
	case *ast.ThematicBreak:
		return r.styles.dim.Render(strings.Repeat("─", width))
	case *east.Table:
		return r.table(n, width)
	case *ast.HTMLBlock:
		return ""
	}
	return strings.Join(r.blocks(n, width), "\n")
}

func (r notesRenderer) list(n *ast.List, width int) string {
	var items []string
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		indent := lipgloss.Width(marker)
		body := strings.Join(r.blocks(item, width-indent), "\n")
		lines := strings.Split(body, "\n")
		for i := range lines {
			if i == 0 {
				lines[i] = r.styles.dim.Render(marker) + lines[i]
			} else {
				lines[i] = strings.Repeat(" ", indent) + lines[i]
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, "\n")
}

func (r notesRenderer) table(n *east.Table, width int) string {
	var headers []string
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.plain(cell))
		}
		if _, ok := row.(*east.TableHeader); ok {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.strong.Padding(0, 1)
			}
			return r.styles.text.Padding(0, 1)
		})
	if w := lipgloss.Width(t.String()); w > width {
		t = t.Width(width)
	}
	return t.String()
}

// inline renders the styled inline content of n.
func (r notesRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.WriteString(r.styles.text.Render(string(c.Value(r.src))))
			switch {
			case c.HardLineBreak():
				b.WriteString("\n")
			case c.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.WriteString(r.styles.text.Render(string(c.Value)))
		case *ast.Emphasis:
			style := r.styles.em
			if c.Level >= 2 {
				style = r.styles.strong
			}
			b.WriteString(style.Render(r.plain(c)))
		case *ast.CodeSpan:
			b.WriteString(r.styles.code.Render(r.plain(c)))
		case *east.Strikethrough:
			b.WriteString(r.styles.strike.Render(r.plain(c)))
		case *ast.Link:
			label := r.plain(c)
			b.WriteString(r.styles.link.Render(label))
			if dest := string(c.Destination); dest != "" && dest != label {
				b.WriteString(r.styles.dim.Render(" (" + dest + ")"))
			}
		case *ast.AutoLink:
			b.WriteString(r.styles.link.Render(string(c.URL(r.src))))
		case *ast.Image:
			b.WriteString(r.styles.dim.Render("[image: " + r.plain(c) + "]"))
		case *east.TaskCheckBox:
			mark := "[ ] "
			if c.IsChecked {
				mark = "[x] "
			}
			b.WriteString(r.styles.dim.Render(mark))
		case *ast.RawHTML:
		default:
			b.WriteString(r.inline(c))
		}
	}
	return b.String()
}

// plain returns the unstyled text below n.
func (r notesRenderer) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Value(r.src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(r.src))
		default:
			b.WriteString(r.plain(c))
		}
	}
	return b.String()
}

// lines returns the raw source lines of a code block.
func (r notesRenderer) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(r.src))
	}
	return b.String()
}
