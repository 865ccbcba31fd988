package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

// querier is the subset of *client.Client the TUI drives.
type querier interface {
	QueryByDate(ctx context.Context, start, end time.Time, minMagnitude float64) (*quake.QueryResult, error)
	QueryByCircleKm(ctx context.Context, lat, lon, maxRadiusKm, minMagnitude float64) (*quake.QueryResult, error)
}

// searchForm is the raw text of the search form fields.
type searchForm struct {
	Latitude     string
	Longitude    string
	RadiusKm     string
	HoursBack    string
	MinMagnitude string
}

type searchRequest struct {
	circle       bool
	lat, lon     float64
	radiusKm     float64
	hoursBack    float64
	minMagnitude float64
}

// parseSearchForm turns form text into a request. Blank latitude and
// longitude select a time-window search; giving only one is an error.
func parseSearchForm(f searchForm) (searchRequest, error) {
	var (
		req searchRequest
		err error
	)

	if req.minMagnitude, err = parseOptionalFloat("min magnitude", f.MinMagnitude, 0); err != nil {
		return req, err
	}

	lat, lon := strings.TrimSpace(f.Latitude), strings.TrimSpace(f.Longitude)
	switch {
	case lat == "" && lon == "":
		if req.hoursBack, err = parseOptionalFloat("hours back", f.HoursBack, 24); err != nil {
			return req, err
		}
		if req.hoursBack <= 0 {
			return req, fmt.Errorf("hours back must be positive")
		}
		return req, nil
	case lat == "" || lon == "":
		return req, fmt.Errorf("latitude and longitude must be given together")
	}

	req.circle = true
	if req.lat, err = parseOptionalFloat("latitude", lat, 0); err != nil {
		return req, err
	}
	if req.lon, err = parseOptionalFloat("longitude", lon, 0); err != nil {
		return req, err
	}
	if req.radiusKm, err = parseOptionalFloat("radius", f.RadiusKm, 100); err != nil {
		return req, err
	}
	return req, nil
}

func parseOptionalFloat(name, text string, fallback float64) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, text)
	}
	return v, nil
}

func (r searchRequest) run(ctx context.Context, q querier, now time.Time) (*quake.QueryResult, error) {
	if r.circle {
		return q.QueryByCircleKm(ctx, r.lat, r.lon, r.radiusKm, r.minMagnitude)
	}
	start := now.Add(-time.Duration(r.hoursBack * float64(time.Hour)))
	return q.QueryByDate(ctx, start, now, r.minMagnitude)
}

func (r searchRequest) String() string {
	if r.circle {
		return fmt.Sprintf("within %g km of %g, %g (M%g+)", r.radiusKm, r.lat, r.lon, r.minMagnitude)
	}
	return fmt.Sprintf("last %g hours (M%g+)", r.hoursBack, r.minMagnitude)
}
