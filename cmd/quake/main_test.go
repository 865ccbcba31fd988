package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quakeclient "github.com/robert-malhotra/go-quake-client/pkg/client"
	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const feedJSON = `{
	"type": "FeatureCollection",
	"metadata": {"generated": 1700000000000, "title": "USGS Earthquakes", "status": 200, "api": "1.14.0", "count": 2},
	"features": [
		{"type": "Feature", "id": "us7000l2d1", "properties": {"mag": 4.6, "magType": "mb", "place": "80 km SSW of Tobelo, Indonesia", "time": 1699999000000}, "geometry": {"type": "Point", "coordinates": [127.65, 1.04, 35.2]}},
		{"type": "Feature", "id": "ci1", "properties": {"mag": null, "place": "Somewhere"}, "geometry": {}}
	]
}`

type cliRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func runCLI(t *testing.T, args ...string) (*cliRun, error) {
	t.Helper()
	run := &cliRun{}
	cmd := newRootCommand()
	cmd.Writer = &run.stdout
	cmd.ErrWriter = &run.stderr

	missing := filepath.Join(t.TempDir(), "none.toml")
	full := append([]string{"quake", "--config", missing}, args...)
	return run, cmd.Run(context.Background(), full)
}

func TestCLI_Circle(t *testing.T) {
	var query atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		w.Write([]byte(feedJSON))
	}))
	defer server.Close()

	t.Run("json output in kilometers", func(t *testing.T) {
		run, err := runCLI(t, "--url", server.URL, "circle", "--lat", "1", "--lon", "127", "--radius", "250", "--km", "--min-mag", "4")
		require.NoError(t, err)
		assert.Equal(t, "format=geojson&latitude=1&longitude=127&maxradiuskm=250&minmagnitude=4", query.Load())

		var res quake.QueryResult
		require.NoError(t, json.Unmarshal(run.stdout.Bytes(), &res))
		require.Len(t, res.Features, 2)
		assert.Equal(t, "us7000l2d1", res.Features[0].ID)
	})

	t.Run("summary in degrees", func(t *testing.T) {
		run, err := runCLI(t, "--url", server.URL, "--summary", "circle", "--lat", "1", "--lon", "127", "--radius", "5")
		require.NoError(t, err)
		assert.Equal(t, "format=geojson&latitude=1&longitude=127&maxradius=5&minmagnitude=0", query.Load())

		lines := strings.Split(strings.TrimSpace(run.stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "USGS Earthquakes: 2 events", lines[0])
		assert.Contains(t, lines[1], "M4.6 mb")
		assert.Contains(t, lines[1], "35.2 km")
		assert.Contains(t, lines[2], "M?")
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := runCLI(t, "--url", server.URL, "circle", "--lat", "0", "--lon", "0", "--radius", "200")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maxradius")
	})
}

func TestCLI_DateAndRect(t *testing.T) {
	var query atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		w.Write([]byte(feedJSON))
	}))
	defer server.Close()

	_, err := runCLI(t, "--url", server.URL, "date", "--start", "2024-01-01", "--end", "2024-01-02T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "format=geojson&starttime=2024-01-01T00%3A00%3A00&endtime=2024-01-02T10%3A00%3A00&minmagnitude=0", query.Load())

	_, err = runCLI(t, "--url", server.URL, "rect", "--min-lat=-10", "--min-lon=-20", "--max-lat=10", "--max-lon=20")
	require.NoError(t, err)
	assert.Equal(t, "format=geojson&minlatitude=-10&minlongitude=-20&maxlatitude=10&maxlongitude=20&minmagnitude=0", query.Load())
}

func TestCLI_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(feedJSON))
	}))
	defer server.Close()

	_, err := runCLI(t, "--url", server.URL, "--retries", "1", "circle", "--lat", "0", "--lon", "0", "--radius", "1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCLI_NoRetriesByDefault(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := runCLI(t, "--url", server.URL, "circle", "--lat", "0", "--lon", "0", "--radius", "1")
	var reqErr *quakeclient.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestParseTime(t *testing.T) {
	tests := map[string]time.Time{
		"2024-03-01":                time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"2024-03-01T05:06:07":       time.Date(2024, 3, 1, 5, 6, 7, 0, time.UTC),
		"2024-03-01T05:06:07Z":      time.Date(2024, 3, 1, 5, 6, 7, 0, time.UTC),
		"2024-03-01T05:06:07-07:00": time.Date(2024, 3, 1, 12, 6, 7, 0, time.UTC),
	}
	for in, want := range tests {
		got, err := parseTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}

	_, err := parseTime("yesterday")
	assert.Error(t, err)
}

func TestSetUpLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, setUpLogger(&buf, "debug"))
	require.NoError(t, setUpLogger(&buf, ""))

	err := setUpLogger(&buf, "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing log level")
}
