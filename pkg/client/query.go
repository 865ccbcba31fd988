package client

import (
	"context"
	"math"
	"time"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const (
	// MaxRadiusDegrees is the largest accepted radius for QueryByCircleDegrees.
	MaxRadiusDegrees = 180.0
	// MaxRadiusKm is half the Earth's great-circle circumference in kilometers.
	MaxRadiusKm = 20001.6
)

// QueryByDate returns events between start and end. Both are sent in UTC.
func (c *Client) QueryByDate(ctx context.Context, start, end time.Time, minMagnitude float64) (*quake.QueryResult, error) {
	if start.After(end) {
		return nil, &InvalidRangeError{
			Lower:      "starttime",
			Upper:      "endtime",
			LowerValue: formatTime(start),
			UpperValue: formatTime(end),
		}
	}
	if err := checkMagnitude(minMagnitude); err != nil {
		return nil, err
	}

	return c.query(ctx, []queryParam{
		{"starttime", formatTime(start)},
		{"endtime", formatTime(end)},
		{"minmagnitude", formatFloat(minMagnitude)},
	})
}

// QueryByRectangle returns events inside a latitude/longitude rectangle.
// Ordering is checked before domain bounds; the first failing check is reported.
func (c *Client) QueryByRectangle(ctx context.Context, minLat, minLon, maxLat, maxLon, minMagnitude float64) (*quake.QueryResult, error) {
	if minLat > maxLat {
		return nil, rangeError("minlatitude", minLat, "maxlatitude", maxLat)
	}
	if minLon > maxLon {
		return nil, rangeError("minlongitude", minLon, "maxlongitude", maxLon)
	}
	if err := checkLatitude("minlatitude", minLat); err != nil {
		return nil, err
	}
	if err := checkLatitude("maxlatitude", maxLat); err != nil {
		return nil, err
	}
	if err := checkLongitude("minlongitude", minLon); err != nil {
		return nil, err
	}
	if err := checkLongitude("maxlongitude", maxLon); err != nil {
		return nil, err
	}
	if err := checkMagnitude(minMagnitude); err != nil {
		return nil, err
	}

	return c.query(ctx, []queryParam{
		{"minlatitude", formatFloat(minLat)},
		{"minlongitude", formatFloat(minLon)},
		{"maxlatitude", formatFloat(maxLat)},
		{"maxlongitude", formatFloat(maxLon)},
		{"minmagnitude", formatFloat(minMagnitude)},
	})
}

// QueryByCircleDegrees returns events within maxRadius degrees of a point.
func (c *Client) QueryByCircleDegrees(ctx context.Context, lat, lon, maxRadius, minMagnitude float64) (*quake.QueryResult, error) {
	if err := checkCircle(lat, lon, "maxradius", maxRadius, MaxRadiusDegrees); err != nil {
		return nil, err
	}
	if err := checkMagnitude(minMagnitude); err != nil {
		return nil, err
	}

	return c.query(ctx, []queryParam{
		{"latitude", formatFloat(lat)},
		{"longitude", formatFloat(lon)},
		{"maxradius", formatFloat(maxRadius)},
		{"minmagnitude", formatFloat(minMagnitude)},
	})
}

// QueryByCircleKm returns events within maxRadiusKm kilometers of a point.
func (c *Client) QueryByCircleKm(ctx context.Context, lat, lon, maxRadiusKm, minMagnitude float64) (*quake.QueryResult, error) {
	if err := checkCircle(lat, lon, "maxradiuskm", maxRadiusKm, MaxRadiusKm); err != nil {
		return nil, err
	}
	if err := checkMagnitude(minMagnitude); err != nil {
		return nil, err
	}

	return c.query(ctx, []queryParam{
		{"latitude", formatFloat(lat)},
		{"longitude", formatFloat(lon)},
		{"maxradiuskm", formatFloat(maxRadiusKm)},
		{"minmagnitude", formatFloat(minMagnitude)},
	})
}

func checkCircle(lat, lon float64, radiusParam string, radius, maxRadius float64) error {
	if err := checkLatitude("latitude", lat); err != nil {
		return err
	}
	if err := checkLongitude("longitude", lon); err != nil {
		return err
	}
	return checkBounds(radiusParam, radius, 0, maxRadius)
}

func checkLatitude(param string, v float64) error {
	return checkBounds(param, v, -90, 90)
}

func checkLongitude(param string, v float64) error {
	return checkBounds(param, v, -180, 180)
}

// checkMagnitude accepts any finite magnitude.
func checkMagnitude(v float64) error {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		return nil
	}
	return &InvalidBoundsError{Param: "minmagnitude", Value: v, Min: math.Inf(-1), Max: math.Inf(1)}
}

// checkBounds is inclusive on both ends and rejects NaN.
func checkBounds(param string, v, lo, hi float64) error {
	if v >= lo && v <= hi {
		return nil
	}
	return &InvalidBoundsError{Param: param, Value: v, Min: lo, Max: hi}
}

func rangeError(lower string, lowerValue float64, upper string, upperValue float64) error {
	return &InvalidRangeError{
		Lower:      lower,
		Upper:      upper,
		LowerValue: formatFloat(lowerValue),
		UpperValue: formatFloat(upperValue),
	}
}
