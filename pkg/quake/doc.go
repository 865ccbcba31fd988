// Package quake provides types for the GeoJSON documents returned by the FDSN
// earthquake event web service (format=geojson).
//
// A query response decodes into a QueryResult holding the feed Metadata and one
// Feature per seismic event. Feature properties not modelled as struct fields
// are preserved during JSON unmarshaling in Properties.AdditionalFields.
//
// Example usage:
//
//	var res quake.QueryResult
//	json.Unmarshal(data, &res)
//
//	for _, f := range res.Features {
//	    lon, lat, depth, _ := f.Geometry.Point()
//	    fmt.Println(f.ID, f.Properties.Place, lon, lat, depth)
//	}
package quake
