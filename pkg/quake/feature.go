package quake

// Feature is a single seismic event.
type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
	ID         string     `json:"id"`
}

// Geometry is the event hypocenter. For Point geometries Coordinates holds
// longitude, latitude and depth in kilometers.
type Geometry struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// Point returns the coordinates of a point geometry. Depth is zero when the
// server only sent two coordinates; ok is false with fewer than two.
func (g Geometry) Point() (lon, lat, depth float64, ok bool) {
	if len(g.Coordinates) < 2 {
		return 0, 0, 0, false
	}
	lon, lat = g.Coordinates[0], g.Coordinates[1]
	if len(g.Coordinates) > 2 {
		depth = g.Coordinates[2]
	}
	return lon, lat, depth, true
}
