package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderHeadingsAndParagraphs(t *testing.T) {
	doc := NewBuilder().
		H1("Data Quality").
		Paragraph("Three datasets were assessed.").
		H2("CO2").
		Paragraphf("%d rows scanned.", 42).
		String()

	assert.Contains(t, doc, "# Data Quality\n")
	assert.Contains(t, doc, "## CO2\n")
	assert.Contains(t, doc, "42 rows scanned.")
	// Blocks are separated by blank lines.
	assert.Contains(t, doc, "# Data Quality\n\nThree datasets")
}

func TestBuilderTable(t *testing.T) {
	doc := NewBuilder().
		Table([]string{"Column", "Missing"}, [][]string{
			{"co2", "12"},
			{"gdp"},
		}).
		String()

	assert.Contains(t, doc, "| Column | Missing |")
	assert.Contains(t, doc, "| --- | --- |")
	assert.Contains(t, doc, "| co2 | 12 |")
	// Short rows are padded.
	assert.Contains(t, doc, "| gdp |  |")
}

func TestBuilderKeyValueTable(t *testing.T) {
	doc := NewBuilder().
		KeyValueTable([][2]string{{"Rows", "100"}, {"Columns", "8"}}).
		String()

	assert.Contains(t, doc, "| Key | Value |")
	assert.Contains(t, doc, "| Rows | 100 |")
	assert.Contains(t, doc, "| Columns | 8 |")
}

func TestBuilderBulletList(t *testing.T) {
	doc := NewBuilder().BulletList([]string{"first", "second"}).String()
	assert.Contains(t, doc, "- first\n- second")
}

func TestBuilderImageAndBoxes(t *testing.T) {
	doc := NewBuilder().
		Image("figures/co2.png", "CO2 histogram", "Distribution of CO2.").
		WarningBox("27 columns exceed the missing threshold.").
		NoteBox("Values are winsorized.").
		String()

	assert.Contains(t, doc, "![CO2 histogram](figures/co2.png)")
	assert.Contains(t, doc, "*Distribution of CO2.*")
	assert.Contains(t, doc, "> ⚠️ **Warning:** 27 columns")
	assert.Contains(t, doc, "> 📝 **Note:** Values are winsorized.")
}

func TestBuilderBlockquoteMultiline(t *testing.T) {
	doc := NewBuilder().Blockquote("line one\nline two").String()
	assert.Contains(t, doc, "> line one\n> line two")
}

func TestBuilderSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "quality.md")

	err := NewBuilder().H1("Report").Save(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Report\n"))
}
