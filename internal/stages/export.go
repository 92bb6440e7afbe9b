package stages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"ecopanel/internal/exporter"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
)

// ExportStep writes the final artifacts: the dataset as CSV, the Excel
// workbook with its codebook sheet, and the run summary report.
type ExportStep struct {
	operations.BaseStep
	deps Deps
}

// NewExportStep creates the export step.
func NewExportStep(deps Deps) *ExportStep {
	return &ExportStep{
		BaseStep: operations.NewBaseStep(operations.StepIDExport, operations.StepNameExport),
		deps:     deps,
	}
}

// Validate requires the final dataset.
func (s *ExportStep) Validate(state *operations.State) error {
	_, err := state.RequireFrame(s.ID(), operations.FrameFinal)
	return err
}

// Execute writes the dataset, workbook and summary.
func (s *ExportStep) Execute(ctx context.Context, state *operations.State) error {
	df, err := state.RequireFrame(s.ID(), operations.FrameFinal)
	if err != nil {
		return err
	}

	codebook := s.codebook(state)

	datasetPath := filepath.Join(s.deps.Paths.FinalDir, "panel_dataset.csv")
	if err := s.deps.CSV.WriteFrame(datasetPath, df); err != nil {
		return err
	}

	workbookPath := filepath.Join(s.deps.Paths.FinalDir, "panel_dataset.xlsx")
	if err := s.deps.Workbook.WriteWorkbook(workbookPath, df, codebook); err != nil {
		return err
	}

	state.SetMeta(operations.MetaDatasetPath, datasetPath)
	state.SetMeta(operations.MetaWorkbookPath, workbookPath)

	doc := report.NewBuilder().
		H1("Pipeline Summary").
		Paragraphf("Run %s finished at %s.", state.ID, time.Now().Format(time.RFC3339)).
		KeyValueTable([][2]string{
			{"Final rows", fmt.Sprintf("%d", df.Nrow())},
			{"Final variables", fmt.Sprintf("%d", df.Ncol())},
			{"Rows downloaded", fmt.Sprintf("%d", state.MetaInt(operations.MetaRowsDownloaded))},
			{"Panel rows after merge", fmt.Sprintf("%d", state.MetaInt(operations.MetaRowsMerged))},
			{"Aggregate rows removed", fmt.Sprintf("%d", state.MetaInt(operations.MetaAggregateRows))},
			{"Unrecognized entities", fmt.Sprintf("%d", state.MetaInt(operations.MetaUnrecognized))},
			{"Outlier cells flagged", fmt.Sprintf("%d", state.MetaInt(operations.MetaOutlierCells))},
			{"Cells imputed", fmt.Sprintf("%d", state.MetaInt(operations.MetaImputedCells))},
			{"Dataset", datasetPath},
			{"Workbook", workbookPath},
		})

	doc.H2("Step durations")
	var rows [][]string
	for _, step := range operationsOrder() {
		if stepState := state.Step(step); stepState != nil {
			rows = append(rows, []string{
				stepState.Name,
				string(stepState.CurrentStatus()),
				stepState.Duration().Round(time.Millisecond).String(),
			})
		}
	}
	doc.Table([]string{"Step", "Status", "Duration"}, rows)

	s.deps.Logger.InfoContext(ctx, "final artifacts written",
		slog.String("dataset", datasetPath),
		slog.String("workbook", workbookPath))

	return doc.Save(s.deps.Paths.ReportPath("09_summary.md"))
}

// codebook returns the codebook the selection step recorded, or an empty one.
func (s *ExportStep) codebook(state *operations.State) []exporter.CodebookEntry {
	v, ok := state.Meta(metaCodebookKey)
	if !ok {
		return nil
	}
	codebook, _ := v.([]exporter.CodebookEntry)
	return codebook
}

// operationsOrder lists the step IDs in pipeline order for the summary.
func operationsOrder() []string {
	return []string{
		operations.StepIDDownload,
		operations.StepIDQuality,
		operations.StepIDCleaning,
		operations.StepIDMerging,
		operations.StepIDEDA,
		operations.StepIDFeatures,
		operations.StepIDOutliers,
		operations.StepIDMissing,
		operations.StepIDSelection,
		operations.StepIDExport,
	}
}
