// Package operations is the step framework the pipeline runs on.
//
// A Step is one unit of data-preparation work: load sources, clean a table,
// merge, engineer features, export. Steps run sequentially under a Manager,
// sharing a State that carries the named dataframes each step produces for
// the next one. Each step execution is logged and traced, and its runtime
// status is tracked in a StepState so the final run summary can report what
// ran, for how long, and with what outcome.
package operations
