package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// CodebookEntry documents one exported variable.
type CodebookEntry struct {
	Name        string
	Type        string
	Description string
	MissingPct  float64
}

// WorkbookWriter writes the final dataset as an Excel workbook with a Data
// sheet and a Codebook sheet.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a new workbook writer instance.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// WriteWorkbook writes df and its codebook to an xlsx file.
func (w *WorkbookWriter) WriteWorkbook(filePath string, df dataframe.DataFrame, codebook []CodebookEntry) error {
	if df.Error() != nil {
		return fmt.Errorf("cannot export invalid frame: %w", df.Error())
	}

	slog.Info("Writing Excel workbook",
		slog.String("file_path", filePath),
		slog.Int("rows", df.Nrow()),
		slog.Int("variables", len(codebook)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Data"); err != nil {
		return fmt.Errorf("failed to rename data sheet: %w", err)
	}
	if _, err := f.NewSheet("Codebook"); err != nil {
		return fmt.Errorf("failed to create codebook sheet: %w", err)
	}

	if err := w.writeDataSheet(f, df); err != nil {
		return err
	}
	if err := w.writeCodebookSheet(f, codebook); err != nil {
		return err
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *WorkbookWriter) writeDataSheet(f *excelize.File, df dataframe.DataFrame) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	records := df.Records()
	for rowIdx, record := range records {
		for colIdx, cell := range record {
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell reference: %w", err)
			}
			if err := f.SetCellValue("Data", ref, cleanCell(cell)); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", ref, err)
			}
		}
	}

	if len(records) > 0 && len(records[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(records[0]), 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header range: %w", err)
		}
		if err := f.SetCellStyle("Data", "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style headers: %w", err)
		}
	}
	return nil
}

func (w *WorkbookWriter) writeCodebookSheet(f *excelize.File, codebook []CodebookEntry) error {
	headers := []string{"Variable", "Type", "Description", "Missing %"}
	for i, h := range headers {
		ref, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell reference: %w", err)
		}
		if err := f.SetCellValue("Codebook", ref, h); err != nil {
			return fmt.Errorf("failed to set codebook header: %w", err)
		}
	}

	for i, entry := range codebook {
		row := i + 2
		cells := []any{entry.Name, entry.Type, entry.Description, formatPct(entry.MissingPct)}
		for j, v := range cells {
			ref, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return fmt.Errorf("failed to resolve cell reference: %w", err)
			}
			if err := f.SetCellValue("Codebook", ref, v); err != nil {
				return fmt.Errorf("failed to set codebook cell %s: %w", ref, err)
			}
		}
	}

	if err := f.SetColWidth("Codebook", "A", "A", 32); err != nil {
		return fmt.Errorf("failed to set codebook column width: %w", err)
	}
	if err := f.SetColWidth("Codebook", "C", "C", 60); err != nil {
		return fmt.Errorf("failed to set codebook column width: %w", err)
	}
	return nil
}
