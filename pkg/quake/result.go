package quake

import "time"

// QueryResult is the root FeatureCollection returned by an event query.
type QueryResult struct {
	Type     string    `json:"type"`
	Metadata Metadata  `json:"metadata"`
	Features []Feature `json:"features"`
	// BBox is minlon, minlat, [mindepth], maxlon, maxlat, [maxdepth].
	BBox []float64 `json:"bbox,omitempty"`
}

// Metadata describes the feed that produced a QueryResult.
// Count is reported by the server and is not checked against Features.
type Metadata struct {
	Generated int64  `json:"generated"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	API       string `json:"api"`
	Count     int    `json:"count"`
}

// GeneratedAt returns the generation timestamp in UTC.
func (m Metadata) GeneratedAt() time.Time {
	return millisToTime(m.Generated)
}

// BoundingBox is the interpreted form of QueryResult.BBox.
type BoundingBox struct {
	MinLon, MinLat, MinDepth float64
	MaxLon, MaxLat, MaxDepth float64
	HasDepth                 bool
}

// BoundingBox interprets BBox. It reports false when the box is absent or does
// not hold 4 or 6 numbers.
func (r *QueryResult) BoundingBox() (BoundingBox, bool) {
	switch len(r.BBox) {
	case 4:
		return BoundingBox{
			MinLon: r.BBox[0], MinLat: r.BBox[1],
			MaxLon: r.BBox[2], MaxLat: r.BBox[3],
		}, true
	case 6:
		return BoundingBox{
			MinLon: r.BBox[0], MinLat: r.BBox[1], MinDepth: r.BBox[2],
			MaxLon: r.BBox[3], MaxLat: r.BBox[4], MaxDepth: r.BBox[5],
			HasDepth: true,
		}, true
	default:
		return BoundingBox{}, false
	}
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
