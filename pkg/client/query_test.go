package client

import (
	"context"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryRecorder captures the raw query of every request it serves.
type queryRecorder struct {
	hits    atomic.Int32
	queries chan string
}

func newQueryRecorder(t *testing.T) (*Client, *queryRecorder) {
	t.Helper()
	rec := &queryRecorder{queries: make(chan string, 16)}
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rec.hits.Add(1)
		rec.queries <- r.URL.RawQuery
		writeBody(http.StatusOK, oneFeatureJSON)(w, r)
	})
	return cli, rec
}

func (r *queryRecorder) last(t *testing.T) string {
	t.Helper()
	select {
	case q := <-r.queries:
		return q
	default:
		t.Fatal("no request recorded")
		return ""
	}
}

func queryKeys(raw string) []string {
	var keys []string
	for _, pair := range strings.Split(raw, "&") {
		key, _, _ := strings.Cut(pair, "=")
		keys = append(keys, key)
	}
	return keys
}

func TestClient_QueryByDate(t *testing.T) {
	t.Run("parameters in UTC and order", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)
		plus2 := time.FixedZone("UTC+2", 2*60*60)
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, plus2)
		end := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)

		res, err := cli.QueryByDate(context.Background(), start, end, 4.5)
		require.NoError(t, err)
		require.Len(t, res.Features, 1)

		raw := rec.last(t)
		assert.Equal(t, []string{"format", "starttime", "endtime", "minmagnitude"}, queryKeys(raw))
		assert.Equal(t, "format=geojson&starttime=2024-01-02T01%3A04%3A05&endtime=2024-01-09T00%3A00%3A00&minmagnitude=4.5", raw)
	})

	t.Run("equal bounds are accepted", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)
		now := time.Now()

		_, err := cli.QueryByDate(context.Background(), now, now, 0)
		require.NoError(t, err)
		assert.Equal(t, int32(1), rec.hits.Load())
	})

	t.Run("start after end", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)
		end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		res, err := cli.QueryByDate(context.Background(), end.Add(time.Second), end, 0)
		assert.Nil(t, res)

		var rangeErr *InvalidRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, "starttime", rangeErr.Lower)
		assert.Equal(t, "endtime", rangeErr.Upper)
		assert.Equal(t, "2024-01-01T00:00:01", rangeErr.LowerValue)
		assert.Zero(t, rec.hits.Load())
	})
}

func TestClient_QueryByRectangle(t *testing.T) {
	t.Run("parameters in order", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)

		_, err := cli.QueryByRectangle(context.Background(), -10.5, -20, 10, 20.25, 3)
		require.NoError(t, err)
		assert.Equal(t,
			"format=geojson&minlatitude=-10.5&minlongitude=-20&maxlatitude=10&maxlongitude=20.25&minmagnitude=3",
			rec.last(t))
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)

		_, err := cli.QueryByRectangle(context.Background(), -90, -180, 90, 180, 0)
		require.NoError(t, err)
		assert.Equal(t, int32(1), rec.hits.Load())
	})

	tests := []struct {
		name                           string
		minLat, minLon, maxLat, maxLon float64
		wantRange                      string
		wantBounds                     string
	}{
		{name: "latitude order wins over everything", minLat: 10, minLon: 500, maxLat: 5, maxLon: -500, wantRange: "minlatitude"},
		{name: "longitude order before domain", minLat: -100, minLon: 20, maxLat: 100, maxLon: 10, wantRange: "minlongitude"},
		{name: "min latitude domain", minLat: -91, minLon: -200, maxLat: 95, maxLon: 200, wantBounds: "minlatitude"},
		{name: "max latitude domain", minLat: 0, minLon: -200, maxLat: 90.5, maxLon: 200, wantBounds: "maxlatitude"},
		{name: "min longitude domain", minLat: 0, minLon: -180.1, maxLat: 1, maxLon: 200, wantBounds: "minlongitude"},
		{name: "max longitude domain", minLat: 0, minLon: 0, maxLat: 1, maxLon: 181, wantBounds: "maxlongitude"},
		{name: "NaN latitude", minLat: math.NaN(), minLon: 0, maxLat: 1, maxLon: 1, wantBounds: "minlatitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, rec := newQueryRecorder(t)

			res, err := cli.QueryByRectangle(context.Background(), tt.minLat, tt.minLon, tt.maxLat, tt.maxLon, 0)
			assert.Nil(t, res)
			assert.Zero(t, rec.hits.Load())

			if tt.wantRange != "" {
				var rangeErr *InvalidRangeError
				require.ErrorAs(t, err, &rangeErr)
				assert.Equal(t, tt.wantRange, rangeErr.Lower)
				return
			}
			var boundsErr *InvalidBoundsError
			require.ErrorAs(t, err, &boundsErr)
			assert.Equal(t, tt.wantBounds, boundsErr.Param)
		})
	}
}

func TestClient_QueryByCircleDegrees(t *testing.T) {
	t.Run("radius on the boundary", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)

		_, err := cli.QueryByCircleDegrees(context.Background(), 0, 0, 180, 0)
		require.NoError(t, err)
		assert.Equal(t, "format=geojson&latitude=0&longitude=0&maxradius=180&minmagnitude=0", rec.last(t))
	})

	tests := []struct {
		name             string
		lat, lon, radius float64
		wantParam        string
	}{
		{name: "radius too large", lat: 0, lon: 0, radius: 200, wantParam: "maxradius"},
		{name: "negative radius", lat: 0, lon: 0, radius: -1, wantParam: "maxradius"},
		{name: "latitude checked first", lat: 91, lon: 181, radius: 200, wantParam: "latitude"},
		{name: "longitude before radius", lat: 0, lon: -181, radius: 200, wantParam: "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, rec := newQueryRecorder(t)

			_, err := cli.QueryByCircleDegrees(context.Background(), tt.lat, tt.lon, tt.radius, 0)
			var boundsErr *InvalidBoundsError
			require.ErrorAs(t, err, &boundsErr)
			assert.Equal(t, tt.wantParam, boundsErr.Param)
			assert.Zero(t, rec.hits.Load())
		})
	}
}

func TestClient_QueryByCircleKm(t *testing.T) {
	t.Run("radius on the boundary", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)

		_, err := cli.QueryByCircleKm(context.Background(), 35.5, -120.25, 20001.6, 1.5)
		require.NoError(t, err)
		assert.Equal(t, "format=geojson&latitude=35.5&longitude=-120.25&maxradiuskm=20001.6&minmagnitude=1.5", rec.last(t))
	})

	t.Run("radius past the boundary", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)

		_, err := cli.QueryByCircleKm(context.Background(), 0, 0, 20001.7, 0)
		var boundsErr *InvalidBoundsError
		require.ErrorAs(t, err, &boundsErr)
		assert.Equal(t, "maxradiuskm", boundsErr.Param)
		assert.Equal(t, MaxRadiusKm, boundsErr.Max)
		assert.Contains(t, err.Error(), "[0, 20001.6]")
		assert.Zero(t, rec.hits.Load())
	})
}

func TestClient_MinMagnitudeMustBeFinite(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	queries := map[string]func(*Client, float64) error{
		"date": func(c *Client, m float64) error {
			_, err := c.QueryByDate(context.Background(), start, start.Add(time.Hour), m)
			return err
		},
		"rectangle": func(c *Client, m float64) error {
			_, err := c.QueryByRectangle(context.Background(), -10, -10, 10, 10, m)
			return err
		},
		"circle degrees": func(c *Client, m float64) error {
			_, err := c.QueryByCircleDegrees(context.Background(), 0, 0, 10, m)
			return err
		},
		"circle km": func(c *Client, m float64) error {
			_, err := c.QueryByCircleKm(context.Background(), 0, 0, 100, m)
			return err
		},
	}
	values := map[string]float64{
		"NaN":  math.NaN(),
		"+Inf": math.Inf(1),
		"-Inf": math.Inf(-1),
	}

	for qname, query := range queries {
		for vname, v := range values {
			t.Run(qname+" "+vname, func(t *testing.T) {
				cli, rec := newQueryRecorder(t)

				err := query(cli, v)
				var boundsErr *InvalidBoundsError
				require.ErrorAs(t, err, &boundsErr)
				assert.Equal(t, "minmagnitude", boundsErr.Param)
				assert.Contains(t, err.Error(), "finite")
				assert.Zero(t, rec.hits.Load())
			})
		}
	}

	t.Run("negative magnitudes pass", func(t *testing.T) {
		cli, rec := newQueryRecorder(t)

		_, err := cli.QueryByCircleKm(context.Background(), 0, 0, 100, -1.5)
		require.NoError(t, err)
		assert.Equal(t, "format=geojson&latitude=0&longitude=0&maxradiuskm=100&minmagnitude=-1.5", rec.last(t))
	})
}
