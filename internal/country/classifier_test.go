package country

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	authority, err := NewAuthority()
	require.NoError(t, err)
	return NewClassifier(authority)
}

func TestClassify_Aggregates(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name  string
		input string
	}{
		{"world", "World"},
		{"continent", "Europe"},
		{"income group", "High income"},
		{"income group long form", "Upper-middle-income countries"},
		{"political union", "European Union (27)"},
		{"historical union", "USSR"},
		{"gcp pattern", "Middle East (GCP)"},
		{"excl pattern", "Asia (excl. China and India)"},
		{"international pattern", "International aviation"},
		{"income countries pattern", "Middle-income countries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.input)
			assert.Equal(t, KindAggregate, result.Kind)
			assert.Equal(t, tt.input, result.Name)
			assert.Empty(t, result.Alpha3)
			assert.Empty(t, result.Region)
		})
	}
}

func TestClassify_AllExactAggregateMembers(t *testing.T) {
	c := newTestClassifier(t)

	for _, name := range AggregateNames() {
		result := c.Classify(name)
		assert.Equal(t, KindAggregate, result.Kind, "expected %q to classify as aggregate", name)
	}
}

func TestClassify_Aliases(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		input     string
		canonical string
		alpha3    string
		region    string
	}{
		{"USA", "United States", "USA", "North America"},
		{"United States of America", "United States", "USA", "North America"},
		{"UK", "United Kingdom", "GBR", "Europe"},
		{"Russia", "Russian Federation", "RUS", "Europe"},
		{"South Korea", "Korea, Republic of", "KOR", "Asia"},
		{"Burma", "Myanmar", "MMR", "Asia"},
		{"Swaziland", "Eswatini", "SWZ", "Africa"},
		{"DR Congo", "Congo, The Democratic Republic of the", "COD", "Africa"},
		{"Congo-Brazzaville", "Congo", "COG", "Africa"},
		{"Czech Republic", "Czechia", "CZE", "Europe"},
		{"Vietnam", "Viet Nam", "VNM", "Asia"},
		{"Cape Verde", "Cabo Verde", "CPV", "Africa"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := c.Classify(tt.input)
			require.Equal(t, KindCountry, result.Kind)
			assert.Equal(t, tt.canonical, result.Name)
			assert.Equal(t, tt.alpha3, result.Alpha3)
			assert.Equal(t, tt.region, result.Region)
		})
	}
}

func TestClassify_EveryAliasResolvesThroughAuthority(t *testing.T) {
	c := newTestClassifier(t)

	for variant, canonical := range aliases {
		result := c.Classify(variant)
		require.Equal(t, KindCountry, result.Kind, "alias %q", variant)
		assert.Equal(t, canonical, result.Name, "alias %q", variant)

		_, ok := c.authority.ByName(canonical)
		assert.True(t, ok, "alias target %q missing from authority", canonical)
	}
}

func TestClassify_KeepOriginalBypassesFuzzy(t *testing.T) {
	c := newTestClassifier(t)

	for name := range keepOriginal {
		result := c.Classify(name)
		require.Equal(t, KindCountry, result.Kind, "keep-original %q", name)
		assert.Equal(t, name, result.Name, "keep-original %q must pass through unchanged", name)
	}

	// Kosovo resolves its code by exact name only and keeps its name.
	kosovo := c.Classify("Kosovo")
	assert.Equal(t, "Kosovo", kosovo.Name)
	assert.Equal(t, "XKX", kosovo.Alpha3)
	assert.Equal(t, "Europe", kosovo.Region)

	// Hong Kong has an ISO code but no region assignment.
	hk := c.Classify("Hong Kong")
	assert.Equal(t, "HKG", hk.Alpha3)
	assert.Empty(t, hk.Region)
}

func TestClassify_ExactAndFuzzy(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("exact canonical name", func(t *testing.T) {
		result := c.Classify("France")
		require.Equal(t, KindCountry, result.Kind)
		assert.Equal(t, "France", result.Name)
		assert.Equal(t, "FRA", result.Alpha3)
	})

	t.Run("case-insensitive exact", func(t *testing.T) {
		result := c.Classify("germany")
		require.Equal(t, KindCountry, result.Kind)
		assert.Equal(t, "Germany", result.Name)
	})

	t.Run("official name", func(t *testing.T) {
		result := c.Classify("Federal Republic of Germany")
		require.Equal(t, KindCountry, result.Kind)
		assert.Equal(t, "Germany", result.Name)
	})

	t.Run("fuzzy typo", func(t *testing.T) {
		result := c.Classify("Germny")
		require.Equal(t, KindCountry, result.Kind)
		assert.Equal(t, "Germany", result.Name)
	})

	t.Run("safe mode skips fuzzy", func(t *testing.T) {
		result := c.ClassifyWithOptions("Germny", Options{Safe: true})
		assert.Equal(t, KindUnrecognized, result.Kind)
		assert.Equal(t, "Germny", result.Name)
	})

	t.Run("nonsense stays unrecognized", func(t *testing.T) {
		result := c.Classify("Atlantis")
		assert.Equal(t, KindUnrecognized, result.Kind)
		assert.Equal(t, "Atlantis", result.Name)
	})
}

func TestClassify_DegenerateInputs(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \t  "},
		{"very long", strings.Repeat("x", 10000)},
		{"non-ascii garbage", "質問\x00データ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				result := c.Classify(tt.input)
				assert.Equal(t, KindUnrecognized, result.Kind)
				assert.Equal(t, tt.input, result.Name)
			})
		})
	}
}

func TestClassify_Idempotence(t *testing.T) {
	c := newTestClassifier(t)

	inputs := []string{"USA", "Ivory Coast", "France", "Czech Republic", "Russia", "Taiwan"}
	for _, input := range inputs {
		first := c.Classify(input)
		require.Equal(t, KindCountry, first.Kind, "input %q", input)

		second := c.Classify(first.Name)
		require.Equal(t, KindCountry, second.Kind, "canonical %q", first.Name)
		assert.Equal(t, first.Name, second.Name, "re-classifying %q must be a fixed point", first.Name)
		assert.Equal(t, first.Alpha3, second.Alpha3)
	}
}

func TestClassify_VariantsConverge(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		a, b string
	}{
		{"Côte d'Ivoire", "Ivory Coast"},
		{"Czech Republic", "Czechia"},
		{"Democratic Republic of Congo", "Congo-Kinshasa"},
		{"Vatican", "Vatican City"},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			ra := c.Classify(tt.a)
			rb := c.Classify(tt.b)
			require.Equal(t, KindCountry, ra.Kind)
			require.Equal(t, KindCountry, rb.Kind)
			assert.Equal(t, ra.Name, rb.Name)
			assert.Equal(t, ra.Alpha3, rb.Alpha3)
		})
	}
}

func TestStandardize(t *testing.T) {
	c := newTestClassifier(t)

	assert.Equal(t, "United States", c.Standardize("USA", Options{}))
	// Aggregates and unknowns pass through untouched.
	assert.Equal(t, "World", c.Standardize("World", Options{}))
	assert.Equal(t, "Atlantis", c.Standardize("Atlantis", Options{}))
	// Safe mode never renames via fuzzy.
	assert.Equal(t, "Germny", c.Standardize("Germny", Options{Safe: true}))
}

func TestValidateEntities(t *testing.T) {
	c := newTestClassifier(t)

	names := []string{"World", "USA", "France", "High income", "Atlantis"}
	result := c.ValidateEntities(names)

	assert.Equal(t, []string{"USA", "France"}, result.Valid)
	assert.Equal(t, []string{"Atlantis"}, result.Invalid)
	assert.Equal(t, []string{"World", "High income"}, result.Aggregates)
	assert.Equal(t, len(names), result.ValidCount()+result.InvalidCount()+result.AggregateCount())
}

func TestValidateEntities_DuplicatesPreserved(t *testing.T) {
	c := newTestClassifier(t)

	names := []string{"France", "France", "World", "World", "???", "???"}
	result := c.ValidateEntities(names)

	assert.Len(t, result.Valid, 2)
	assert.Len(t, result.Aggregates, 2)
	assert.Len(t, result.Invalid, 2)
	assert.Equal(t, len(names), result.ValidCount()+result.InvalidCount()+result.AggregateCount())
}

func TestAddRegionColumn_ISOFastPath(t *testing.T) {
	c := newTestClassifier(t)

	df := dataframe.New(
		series.New([]string{"ignored-a", "ignored-b", "ignored-c"}, series.String, "country"),
		series.New([]string{"FRA", "USA", "NGA"}, series.String, "iso_code"),
	)

	got := c.AddRegionColumn(df, "country", "iso_code")
	require.Contains(t, got.Names(), "region")
	assert.Equal(t, []string{"Europe", "North America", "Africa"}, got.Col("region").Records())
}

func TestAddRegionColumn_NameFallback(t *testing.T) {
	c := newTestClassifier(t)

	df := dataframe.New(
		series.New([]string{"USA", "World", "Atlantis", "Brazil"}, series.String, "country"),
	)

	got := c.AddRegionColumn(df, "country", "")
	require.Contains(t, got.Names(), "region")
	assert.Equal(t, []string{"North America", "", "", "South America"}, got.Col("region").Records())
}

func TestAddRegionColumn_Deterministic(t *testing.T) {
	c := newTestClassifier(t)

	df := dataframe.New(
		series.New([]string{"USA", "France", "Nigeria"}, series.String, "country"),
	)

	first := c.AddRegionColumn(df, "country", "")
	second := c.AddRegionColumn(df, "country", "")
	assert.Equal(t, first.Col("region").Records(), second.Col("region").Records())
}

func TestIsAggregate(t *testing.T) {
	assert.True(t, IsAggregate("World"))
	assert.True(t, IsAggregate("Europe (excl. EU-27)"))
	assert.True(t, IsAggregate("Low-income countries"))
	assert.False(t, IsAggregate("France"))
	assert.False(t, IsAggregate("United States"))
}

func TestRegionForISO(t *testing.T) {
	assert.Equal(t, "Europe", RegionForISO("FRA"))
	assert.Equal(t, "Europe", RegionForISO("fra"))
	assert.Equal(t, "Africa", RegionForISO("NGA"))
	assert.Empty(t, RegionForISO("HKG"))
	assert.Empty(t, RegionForISO(""))
}
