// Package stages implements the ten data-preparation steps the pipeline
// runs, in order: download, quality assessment, cleaning, merging,
// exploratory analysis, feature engineering, outlier analysis, missing-data
// treatment, variable selection and final export.
//
// Each step writes a markdown report describing what it saw and did, and
// persists its table under the matching data subdirectory, so any
// intermediate result can be inspected after the run.
package stages
