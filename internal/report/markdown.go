// Package report renders the markdown reports each pipeline stage emits.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Builder assembles a markdown document incrementally. Methods return the
// builder so report construction chains.
type Builder struct {
	parts []string
}

// NewBuilder returns an empty markdown builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends raw markdown.
func (b *Builder) Add(markdown string) *Builder {
	b.parts = append(b.parts, markdown)
	return b
}

// H1 appends a level-1 heading.
func (b *Builder) H1(title string) *Builder { return b.Add("# " + title) }

// H2 appends a level-2 heading.
func (b *Builder) H2(title string) *Builder { return b.Add("## " + title) }

// H3 appends a level-3 heading.
func (b *Builder) H3(title string) *Builder { return b.Add("### " + title) }

// Paragraph appends a text paragraph.
func (b *Builder) Paragraph(text string) *Builder { return b.Add(text) }

// Paragraphf appends a formatted text paragraph.
func (b *Builder) Paragraphf(format string, args ...any) *Builder {
	return b.Add(fmt.Sprintf(format, args...))
}

// BulletList appends one bullet per item.
func (b *Builder) BulletList(items []string) *Builder {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	return b.Add(strings.TrimRight(sb.String(), "\n"))
}

// Table appends a markdown table. Each row must have len(headers) cells;
// short rows are padded with empty cells.
func (b *Builder) Table(headers []string, rows [][]string) *Builder {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.Add(strings.TrimRight(sb.String(), "\n"))
}

// KeyValueTable appends a two-column table of ordered key/value pairs.
func (b *Builder) KeyValueTable(pairs [][2]string) *Builder {
	rows := make([][]string, len(pairs))
	for i, pair := range pairs {
		rows[i] = []string{pair[0], pair[1]}
	}
	return b.Table([]string{"Key", "Value"}, rows)
}

// Image appends an image reference with an optional caption line.
func (b *Builder) Image(path, alt, caption string) *Builder {
	md := fmt.Sprintf("![%s](%s)", alt, path)
	if caption != "" {
		md += "\n\n*" + caption + "*"
	}
	return b.Add(md)
}

// CodeBlock appends a fenced code block.
func (b *Builder) CodeBlock(code, language string) *Builder {
	return b.Add("```" + language + "\n" + code + "\n```")
}

// Blockquote appends a blockquote, handling multi-line text.
func (b *Builder) Blockquote(text string) *Builder {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return b.Add(strings.Join(lines, "\n"))
}

// WarningBox appends a warning blockquote.
func (b *Builder) WarningBox(text string) *Builder {
	return b.Blockquote("⚠️ **Warning:** " + text)
}

// NoteBox appends a note blockquote.
func (b *Builder) NoteBox(text string) *Builder {
	return b.Blockquote("📝 **Note:** " + text)
}

// HorizontalRule appends a rule.
func (b *Builder) HorizontalRule() *Builder { return b.Add("---") }

// String renders the document with blank lines between blocks.
func (b *Builder) String() string {
	return strings.Join(b.parts, "\n\n") + "\n"
}

// Save writes the rendered document to path, creating parent directories.
func (b *Builder) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
