package country

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind tags the outcome of a classification.
type Kind string

const (
	// KindAggregate marks a statistical grouping (continent, income bracket,
	// political or historical union).
	KindAggregate Kind = "aggregate"
	// KindCountry marks an individual sovereign state or dependent territory.
	KindCountry Kind = "country"
	// KindUnrecognized marks a name that could not be classified either way.
	KindUnrecognized Kind = "unrecognized"
)

// Classification is the result of classifying one entity name.
//
// For KindCountry, Name holds the canonical name, and Alpha3/Region are set
// when the respective lookup succeeded (their absence is not an error). For
// the other kinds, Name preserves the input unchanged.
type Classification struct {
	Kind   Kind
	Name   string
	Alpha3 string
	Region string
}

// IsCountry reports whether the entity classified as an individual country.
func (c Classification) IsCountry() bool { return c.Kind == KindCountry }

// Options configures a single classification call.
type Options struct {
	// Safe disables fuzzy matching. Cleaning stages use it to avoid false
	// positives: an unknown name passes through unrecognized instead of being
	// snapped onto the nearest authority entry.
	Safe bool
}

// Classifier classifies raw entity names against the static tables and a
// country-name authority. It holds no mutable state.
type Classifier struct {
	authority *Authority
}

// NewClassifier returns a Classifier backed by the given authority.
func NewClassifier(authority *Authority) *Classifier {
	return &Classifier{authority: authority}
}

// Classify classifies name with default options (fuzzy matching enabled).
func (c *Classifier) Classify(name string) Classification {
	return c.ClassifyWithOptions(name, Options{})
}

// ClassifyWithOptions classifies a raw entity name.
//
// The decision order matters: the keep-original exception set is checked
// before anything else so territory names are never remapped, and aggregate
// detection runs before any country matching so a grouping like "High income"
// cannot be fuzzy-matched onto a country. The function never fails; inputs
// that match nothing come back as KindUnrecognized with the original name.
func (c *Classifier) ClassifyWithOptions(name string, opts Options) Classification {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Classification{Kind: KindUnrecognized, Name: name}
	}

	if IsKeepOriginal(trimmed) {
		result := Classification{Kind: KindCountry, Name: trimmed}
		if entry, ok := c.authority.ByName(trimmed); ok {
			result.Alpha3 = entry.Alpha3
			result.Region = RegionForISO(entry.Alpha3)
		}
		return result
	}

	if IsAggregate(trimmed) {
		return Classification{Kind: KindAggregate, Name: trimmed}
	}

	canonical := ""
	if alias, ok := CanonicalAlias(trimmed); ok {
		canonical = alias
	} else if entry, ok := c.authority.LookupName(trimmed); ok {
		canonical = entry.Name
	} else if !opts.Safe {
		if entry, ok := c.authority.SearchFuzzy(trimmed); ok {
			canonical = entry.Name
		}
	}

	if canonical == "" {
		return Classification{Kind: KindUnrecognized, Name: name}
	}

	result := Classification{Kind: KindCountry, Name: canonical}
	if entry, ok := c.authority.ByName(canonical); ok {
		result.Alpha3 = entry.Alpha3
		result.Region = RegionForISO(entry.Alpha3)
	}
	return result
}

// Standardize returns the canonical country name for a raw entity name, or
// the input unchanged when it is an aggregate or unrecognized. This mirrors
// the cleaning stages' rename pass.
func (c *Classifier) Standardize(name string, opts Options) string {
	result := c.ClassifyWithOptions(name, opts)
	if result.Kind == KindCountry {
		return result.Name
	}
	return name
}

// ISOForName returns the alpha-3 code for a raw entity name, or "" when the
// name is not an individual country or has no code.
func (c *Classifier) ISOForName(name string) string {
	return c.Classify(name).Alpha3
}

// AddRegionColumn returns df with a "region" column appended.
//
// When isoCol names an existing column, rows with a non-empty ISO code derive
// the region directly from the code. All other rows classify the name in
// nameCol first. Aggregate and unrecognized rows get an empty region; callers
// decide whether to drop them.
func (c *Classifier) AddRegionColumn(df dataframe.DataFrame, nameCol, isoCol string) dataframe.DataFrame {
	hasISO := isoCol != "" && hasColumn(df, isoCol)
	if !hasColumn(df, nameCol) && !hasISO {
		return df
	}

	n := df.Nrow()
	regions := make([]string, n)

	var isoRecords, nameRecords []string
	if hasISO {
		isoRecords = df.Col(isoCol).Records()
	}
	if hasColumn(df, nameCol) {
		nameRecords = df.Col(nameCol).Records()
	}

	for i := 0; i < n; i++ {
		if hasISO {
			if iso := cleanCell(isoRecords[i]); iso != "" {
				regions[i] = RegionForISO(iso)
				continue
			}
		}
		if nameRecords != nil {
			result := c.Classify(cleanCell(nameRecords[i]))
			regions[i] = result.Region
		}
	}

	return df.Mutate(series.New(regions, series.String, "region"))
}

// ValidationResult partitions a list of entity names by classification
// outcome. The three buckets are disjoint; duplicates in the input are
// preserved in every bucket, so the counts always sum to the input length.
type ValidationResult struct {
	Valid      []string
	Invalid    []string
	Aggregates []string
}

// ValidCount returns the number of names classified as countries.
func (r ValidationResult) ValidCount() int { return len(r.Valid) }

// InvalidCount returns the number of unrecognized names.
func (r ValidationResult) InvalidCount() int { return len(r.Invalid) }

// AggregateCount returns the number of aggregate names.
func (r ValidationResult) AggregateCount() int { return len(r.Aggregates) }

// ValidateEntities classifies each name and buckets it by outcome.
func (c *Classifier) ValidateEntities(names []string) ValidationResult {
	var result ValidationResult
	for _, name := range names {
		switch c.Classify(name).Kind {
		case KindAggregate:
			result.Aggregates = append(result.Aggregates, name)
		case KindCountry:
			result.Valid = append(result.Valid, name)
		default:
			result.Invalid = append(result.Invalid, name)
		}
	}
	return result
}

// hasColumn reports whether df has a column with the given name.
func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, col := range df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// cleanCell normalizes a raw dataframe cell, mapping gota's NaN marker to "".
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "NaN" {
		return ""
	}
	return v
}
