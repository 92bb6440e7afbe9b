package stages

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecopanel/internal/fetch"
	"ecopanel/internal/operations"
)

const testCO2CSV = `country,year,iso_code,co2,co2_per_capita
France,2000,FRA,370,6.1
France,2001,FRA,365,6.0
World,2000,,25000,4.1
`

const testEnergyCSV = `Entity,Year,Access to electricity (% of population)
France,2000,100
France,2001,100
`

func csvServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeCountriesDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "countries.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE countries (name TEXT, "Density (P/Km2)" REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO countries VALUES ('France', 119), ('World', NULL)`)
	require.NoError(t, err)
	return path
}

func TestDownloadStep(t *testing.T) {
	deps := testDeps(t)

	co2Srv := csvServer(t, testCO2CSV)
	energySrv := csvServer(t, testEnergyCSV)
	dbPath := writeCountriesDB(t, t.TempDir())

	deps.Config.Sources.OWIDCO2URL = co2Srv.URL
	deps.Config.Sources.SustainableEnergyURL = energySrv.URL
	deps.Config.Sources.CountriesSQLitePath = dbPath
	deps.Config.Sources.CountriesTable = "countries"
	deps.Downloader = fetch.NewDownloader(fetch.Options{
		Timeout:       5 * time.Second,
		MaxRetries:    1,
		RetryDelay:    time.Millisecond,
		RatePerSecond: 1000,
	}, nil)

	state := testState(t, deps)
	step := NewDownloadStep(deps)
	require.NoError(t, step.Validate(state))
	require.NoError(t, step.Execute(context.Background(), state))

	co2, ok := state.Frame(operations.FrameCO2Raw)
	require.True(t, ok)
	assert.Equal(t, 3, co2.Nrow())

	energy, ok := state.Frame(operations.FrameEnergyRaw)
	require.True(t, ok)
	assert.Equal(t, 2, energy.Nrow())

	countries, ok := state.Frame(operations.FrameCountriesRaw)
	require.True(t, ok)
	assert.Equal(t, 2, countries.Nrow())

	assert.Equal(t, 7, state.MetaInt(operations.MetaRowsDownloaded))

	// The downloads are cached.
	_, err := filepath.Glob(filepath.Join(deps.Paths.DownloadsDir, "*.csv"))
	assert.NoError(t, err)
}

func TestDownloadStepSQLiteDirDiscovery(t *testing.T) {
	deps := testDeps(t)

	co2Srv := csvServer(t, testCO2CSV)
	energySrv := csvServer(t, testEnergyCSV)
	dir := t.TempDir()
	writeCountriesDB(t, dir)

	deps.Config.Sources.OWIDCO2URL = co2Srv.URL
	deps.Config.Sources.SustainableEnergyURL = energySrv.URL
	// Point at the directory; the step locates the database inside it.
	deps.Config.Sources.CountriesSQLitePath = dir
	deps.Config.Sources.CountriesTable = "countries"
	deps.Downloader = fetch.NewDownloader(fetch.DefaultOptions(), nil)

	state := testState(t, deps)
	require.NoError(t, NewDownloadStep(deps).Execute(context.Background(), state))

	_, ok := state.Frame(operations.FrameCountriesRaw)
	assert.True(t, ok)
}

func TestDownloadStepMissingCountriesSource(t *testing.T) {
	deps := testDeps(t)

	co2Srv := csvServer(t, testCO2CSV)
	energySrv := csvServer(t, testEnergyCSV)

	deps.Config.Sources.OWIDCO2URL = co2Srv.URL
	deps.Config.Sources.SustainableEnergyURL = energySrv.URL
	deps.Config.Sources.CountriesSQLitePath = filepath.Join(t.TempDir(), "nope.sqlite")
	deps.Downloader = fetch.NewDownloader(fetch.DefaultOptions(), nil)

	state := testState(t, deps)
	err := NewDownloadStep(deps).Execute(context.Background(), state)
	require.Error(t, err)
}
