package country

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

//go:embed countries.csv
var countriesCSV string

// maxFuzzyDistance caps the edit distance accepted by SearchFuzzy. Anything
// further away than this is treated as no match regardless of query length.
const maxFuzzyDistance = 3

// Country is one entry of the ISO 3166-1 authority list.
type Country struct {
	Name         string
	OfficialName string
	Alpha2       string
	Alpha3       string
}

// Authority is the static country-name authority: the ISO 3166-1 list with
// exact and fuzzy lookups. It is loaded once at startup and read-only after
// that.
type Authority struct {
	countries []Country
	byName    map[string]int
	byFolded  map[string]int
	byAlpha2  map[string]int
	byAlpha3  map[string]int
}

// NewAuthority parses the embedded ISO 3166-1 table into an Authority.
func NewAuthority() (*Authority, error) {
	r := csv.NewReader(strings.NewReader(countriesCSV))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded country table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("embedded country table is empty")
	}

	a := &Authority{
		countries: make([]Country, 0, len(records)-1),
		byName:    make(map[string]int, len(records)-1),
		byFolded:  make(map[string]int, 2*len(records)),
		byAlpha2:  make(map[string]int, len(records)-1),
		byAlpha3:  make(map[string]int, len(records)-1),
	}

	// Skip the header row.
	for i, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("country table row %d: expected 4 fields, got %d", i+2, len(rec))
		}
		c := Country{
			Name:         rec[0],
			OfficialName: rec[1],
			Alpha2:       strings.ToUpper(rec[2]),
			Alpha3:       strings.ToUpper(rec[3]),
		}
		idx := len(a.countries)
		a.countries = append(a.countries, c)
		a.byName[c.Name] = idx
		a.byAlpha2[c.Alpha2] = idx
		a.byAlpha3[c.Alpha3] = idx

		// First entry wins on folded collisions so lookups stay stable in
		// authority list order.
		fold := strings.ToLower(c.Name)
		if _, ok := a.byFolded[fold]; !ok {
			a.byFolded[fold] = idx
		}
		if c.OfficialName != "" {
			fold = strings.ToLower(c.OfficialName)
			if _, ok := a.byFolded[fold]; !ok {
				a.byFolded[fold] = idx
			}
		}
	}

	return a, nil
}

// Len returns the number of authority entries.
func (a *Authority) Len() int { return len(a.countries) }

// Countries returns a copy of the authority list in list order.
func (a *Authority) Countries() []Country {
	out := make([]Country, len(a.countries))
	copy(out, a.countries)
	return out
}

// ByName looks up a country by its exact common name.
func (a *Authority) ByName(name string) (Country, bool) {
	if idx, ok := a.byName[name]; ok {
		return a.countries[idx], true
	}
	return Country{}, false
}

// LookupName looks up a country by common or official name, ignoring case.
func (a *Authority) LookupName(name string) (Country, bool) {
	if idx, ok := a.byFolded[strings.ToLower(name)]; ok {
		return a.countries[idx], true
	}
	return Country{}, false
}

// ByAlpha2 looks up a country by ISO 3166-1 alpha-2 code.
func (a *Authority) ByAlpha2(code string) (Country, bool) {
	if idx, ok := a.byAlpha2[strings.ToUpper(code)]; ok {
		return a.countries[idx], true
	}
	return Country{}, false
}

// ByAlpha3 looks up a country by ISO 3166-1 alpha-3 code.
func (a *Authority) ByAlpha3(code string) (Country, bool) {
	if idx, ok := a.byAlpha3[strings.ToUpper(code)]; ok {
		return a.countries[idx], true
	}
	return Country{}, false
}

// SearchFuzzy returns the closest authority entry by Levenshtein distance
// over case-folded common and official names. A candidate matches only when
// the distance is at most maxFuzzyDistance and at most half the query length
// in runes. Ties are broken by authority list order, which keeps results
// deterministic across runs.
func (a *Authority) SearchFuzzy(name string) (Country, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Country{}, false
	}

	limit := maxFuzzyDistance
	if half := utf8.RuneCountInString(query) / 2; half < limit {
		limit = half
	}
	if limit == 0 {
		return Country{}, false
	}

	best := -1
	bestDist := limit + 1
	for i, c := range a.countries {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(c.Name))
		if c.OfficialName != "" {
			if d := levenshtein.ComputeDistance(query, strings.ToLower(c.OfficialName)); d < dist {
				dist = d
			}
		}
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}

	if best < 0 {
		return Country{}, false
	}
	return a.countries[best], true
}
