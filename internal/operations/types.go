package operations

// Step identifiers, in pipeline order.
const (
	StepIDDownload  = "download"
	StepIDQuality   = "quality"
	StepIDCleaning  = "cleaning"
	StepIDMerging   = "merging"
	StepIDEDA       = "eda"
	StepIDFeatures  = "features"
	StepIDOutliers  = "outliers"
	StepIDMissing   = "missing"
	StepIDSelection = "selection"
	StepIDExport    = "export"
)

// Step display names.
const (
	StepNameDownload  = "Source Download"
	StepNameQuality   = "Data Quality Assessment"
	StepNameCleaning  = "Dataset Cleaning"
	StepNameMerging   = "Panel Merging"
	StepNameEDA       = "Exploratory Analysis"
	StepNameFeatures  = "Feature Engineering"
	StepNameOutliers  = "Outlier Analysis"
	StepNameMissing   = "Missing Data Treatment"
	StepNameSelection = "Variable Selection"
	StepNameExport    = "Final Export"
)

// Names of the frames steps pass through the state.
const (
	FrameCO2Raw       = "co2_raw"
	FrameEnergyRaw    = "energy_raw"
	FrameCountriesRaw = "countries_raw"
	FrameCO2Clean     = "co2_clean"
	FrameEnergyClean  = "energy_clean"
	FrameCountries    = "countries"
	FrameMerged       = "merged"
	FrameFeatures     = "features"
	FrameTreated      = "treated"
	FrameFinal        = "final"
)

// Meta keys steps record for the run summary and reports.
const (
	MetaRowsDownloaded = "rows_downloaded"
	MetaRowsMerged     = "rows_merged"
	MetaColumnsDropped = "columns_dropped"
	MetaOutlierCells   = "outlier_cells"
	MetaImputedCells   = "imputed_cells"
	MetaFinalRows      = "final_rows"
	MetaFinalColumns   = "final_columns"
	MetaUnrecognized   = "unrecognized_entities"
	MetaAggregateRows  = "aggregate_rows_removed"
	MetaDatasetPath    = "dataset_path"
	MetaWorkbookPath   = "workbook_path"
)
