package country

// aliases maps common name variants found in source datasets to the canonical
// ISO 3166 common name. Every value must resolve through the authority's
// exact-name lookup.
var aliases = map[string]string{
	// USA variations
	"USA":                      "United States",
	"US":                       "United States",
	"U.S.":                     "United States",
	"U.S.A.":                   "United States",
	"United States of America": "United States",
	"America":                  "United States",

	// UK variations
	"UK":            "United Kingdom",
	"U.K.":          "United Kingdom",
	"Great Britain": "United Kingdom",
	"Britain":       "United Kingdom",
	// Technically wrong but common in source data.
	"England": "United Kingdom",

	// Russia
	"Russia": "Russian Federation",

	// Korea variations
	"South Korea":       "Korea, Republic of",
	"Korea, South":      "Korea, Republic of",
	"Republic of Korea": "Korea, Republic of",
	"North Korea":       "Korea, Democratic People's Republic of",
	"Korea, North":      "Korea, Democratic People's Republic of",

	// China variations
	"Mainland China":             "China",
	"People's Republic of China": "China",
	"Taiwan":                     "Taiwan, Province of China",

	// Long-form official states commonly shortened in datasets
	"Iran":      "Iran, Islamic Republic of",
	"Syria":     "Syrian Arab Republic",
	"Venezuela": "Venezuela, Bolivarian Republic of",
	"Bolivia":   "Bolivia, Plurinational State of",
	"Tanzania":  "Tanzania, United Republic of",
	"Vietnam":   "Viet Nam",
	"Laos":      "Lao People's Democratic Republic",
	"Brunei":    "Brunei Darussalam",
	"Moldova":   "Moldova, Republic of",
	"Turkey":    "Türkiye",

	// Renamed countries
	"Czech Republic": "Czechia",
	"Cape Verde":     "Cabo Verde",
	"Swaziland":      "Eswatini",
	"Macedonia":      "North Macedonia",
	"Burma":          "Myanmar",
	"East Timor":     "Timor-Leste",

	// Côte d'Ivoire spellings
	"Ivory Coast":   "Côte d'Ivoire",
	"Cote d'Ivoire": "Côte d'Ivoire",

	// The two Congos
	"Democratic Republic of Congo": "Congo, The Democratic Republic of the",
	"DR Congo":                     "Congo, The Democratic Republic of the",
	"DRC":                          "Congo, The Democratic Republic of the",
	"Congo-Kinshasa":               "Congo, The Democratic Republic of the",
	"Republic of Congo":            "Congo",
	"Congo-Brazzaville":            "Congo",

	// Other common
	"Micronesia":   "Micronesia, Federated States of",
	"Palestine":    "Palestine, State of",
	"Vatican":      "Holy See (Vatican City State)",
	"Vatican City": "Holy See (Vatican City State)",
}

// keepOriginal lists disputed and dependent territories whose names must pass
// through classification unchanged. Fuzzy matching would remap several of
// them onto unrelated sovereign states (e.g. a small edit distance between
// territory and parent names), so only exact ISO/region lookups are allowed.
var keepOriginal = map[string]struct{}{
	"Kosovo":           {},
	"Western Sahara":   {},
	"Hong Kong":        {},
	"Macao":            {},
	"Greenland":        {},
	"Puerto Rico":      {},
	"Bermuda":          {},
	"Faroe Islands":    {},
	"New Caledonia":    {},
	"French Polynesia": {},
}

// CanonicalAlias returns the canonical name for a known variant, if any.
func CanonicalAlias(name string) (string, bool) {
	canonical, ok := aliases[name]
	return canonical, ok
}

// IsKeepOriginal reports whether name is in the pass-through exception set.
func IsKeepOriginal(name string) bool {
	_, ok := keepOriginal[name]
	return ok
}
