// Package exporter writes pipeline tables to disk.
//
// Two output formats are supported:
//
//   - CSV, with an optional UTF-8 BOM so Excel opens the files correctly,
//     used for every intermediate table and the final dataset
//   - an Excel workbook holding the final dataset alongside its codebook,
//     the hand-off artifact for analysts
//
// Missing values are rendered as empty cells in both formats.
package exporter
