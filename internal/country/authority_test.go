package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthority(t *testing.T) {
	authority, err := NewAuthority()
	require.NoError(t, err)
	assert.Greater(t, authority.Len(), 190)
}

func TestAuthority_ExactLookups(t *testing.T) {
	authority, err := NewAuthority()
	require.NoError(t, err)

	t.Run("by name", func(t *testing.T) {
		c, ok := authority.ByName("France")
		require.True(t, ok)
		assert.Equal(t, "FRA", c.Alpha3)
		assert.Equal(t, "FR", c.Alpha2)

		_, ok = authority.ByName("france")
		assert.False(t, ok, "ByName is case-sensitive")
	})

	t.Run("by folded name", func(t *testing.T) {
		c, ok := authority.LookupName("FRANCE")
		require.True(t, ok)
		assert.Equal(t, "France", c.Name)

		c, ok = authority.LookupName("french republic")
		require.True(t, ok)
		assert.Equal(t, "France", c.Name)
	})

	t.Run("by alpha2", func(t *testing.T) {
		c, ok := authority.ByAlpha2("de")
		require.True(t, ok)
		assert.Equal(t, "Germany", c.Name)
	})

	t.Run("by alpha3", func(t *testing.T) {
		c, ok := authority.ByAlpha3("nga")
		require.True(t, ok)
		assert.Equal(t, "Nigeria", c.Name)

		_, ok = authority.ByAlpha3("ZZZ")
		assert.False(t, ok)
	})
}

func TestAuthority_SearchFuzzy(t *testing.T) {
	authority, err := NewAuthority()
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		want    string
		matched bool
	}{
		{"single typo", "Germny", "Germany", true},
		{"transposition", "Swedne", "Sweden", true},
		{"diacritic variant", "Turkiye", "Türkiye", true},
		{"exact passes through", "Portugal", "Portugal", true},
		{"too far off", "Atlantis", "", false},
		{"empty", "", "", false},
		{"short garbage", "zq", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := authority.SearchFuzzy(tt.query)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.want, c.Name)
			}
		})
	}
}

func TestAuthority_SearchFuzzyDeterministic(t *testing.T) {
	authority, err := NewAuthority()
	require.NoError(t, err)

	first, ok1 := authority.SearchFuzzy("Nigera")
	second, ok2 := authority.SearchFuzzy("Nigera")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestAuthority_RegionMapCoverage(t *testing.T) {
	authority, err := NewAuthority()
	require.NoError(t, err)

	// Every code with a region assignment must resolve in the authority, so
	// region derivation never dangles.
	for code := range regionByAlpha3 {
		_, ok := authority.ByAlpha3(code)
		assert.True(t, ok, "region map code %q missing from authority", code)
	}
}
