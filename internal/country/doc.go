// Package country classifies raw entity names from source datasets.
//
// Source tables mix real countries with statistical aggregates ("World",
// "High income", "Asia (excl. China and India)") and use inconsistent name
// variants ("USA", "Burma", "Ivory Coast"). This package decides, for a given
// string, whether it is an aggregate, a country, or unrecognized, and for
// countries derives the canonical ISO 3166 name, the alpha-3 code, and a
// continent-level region.
//
// All lookup tables are immutable after package initialization, and
// classification is a pure function, so a Classifier is safe for concurrent
// use without synchronization.
package country
