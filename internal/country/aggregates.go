package country

import "strings"

// aggregates lists entity names that denote statistical groupings rather than
// individual countries. OWID-style datasets interleave these with country
// rows, so they have to be filtered before any per-country analysis.
var aggregates = map[string]struct{}{
	// Global
	"World":  {},
	"Global": {},

	// Continents
	"Africa":        {},
	"Asia":          {},
	"Europe":        {},
	"North America": {},
	"South America": {},
	"Oceania":       {},
	"Antarctica":    {},

	// Political and economic groupings
	"European Union":      {},
	"European Union (27)": {},
	"European Union (28)": {},
	"EU-27":               {},
	"EU-28":               {},
	"EU":                  {},
	"OECD":                {},
	"G7":                  {},
	"G20":                 {},
	"BRICS":               {},
	"OPEC":                {},
	"NATO":                {},

	// World Bank income groups
	"High income":                   {},
	"High-income countries":         {},
	"Upper middle income":           {},
	"Upper-middle-income countries": {},
	"Lower middle income":           {},
	"Lower-middle-income countries": {},
	"Low income":                    {},
	"Low-income countries":          {},

	// Global Carbon Project regions and other groupings
	"Africa (GCP)":                 {},
	"Asia (GCP)":                   {},
	"Central America (GCP)":        {},
	"Europe (GCP)":                 {},
	"Middle East (GCP)":            {},
	"North America (GCP)":          {},
	"Oceania (GCP)":                {},
	"South America (GCP)":          {},
	"Asia (excl. China and India)": {},
	"Europe (excl. EU-27)":         {},
	"Europe (excl. EU-28)":         {},
	"European Union (27) (GCP)":    {},
	"International transport":      {},
	"International aviation":       {},
	"International shipping":       {},
	"Kuwaiti Oil Fires":            {},
	"Non-OECD":                     {},
	"OECD (GCP)":                   {},

	// Historical/dissolved states reported as aggregates
	"USSR":           {},
	"Czechoslovakia": {},
	"Yugoslavia":     {},
	"East Germany":   {},
	"West Germany":   {},
}

// aggregatePatterns are case-insensitive substrings that mark a name as an
// aggregate even when it is not an exact member of the set above.
var aggregatePatterns = []string{
	"(gcp)",
	"(excl.",
	"income countries",
	"income ",
	"international ",
}

// IsAggregate reports whether name denotes a statistical grouping rather than
// an individual country. Exact membership is checked first, then the
// substring patterns.
func IsAggregate(name string) bool {
	if _, ok := aggregates[name]; ok {
		return true
	}
	lower := strings.ToLower(name)
	for _, pattern := range aggregatePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// AggregateNames returns the known exact aggregate names, unsorted.
func AggregateNames() []string {
	out := make([]string, 0, len(aggregates))
	for name := range aggregates {
		out = append(out, name)
	}
	return out
}
