// Package overpass builds Overpass QL queries, issues them against an
// Overpass-compatible endpoint and normalizes the raw elements into places
// the rest of the service can work with.
package overpass

// LatLon is a WGS84 coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Element is a single raw feature from an Overpass response. Nodes carry
// their own coordinate; ways and relations carry a centroid in Center when
// the query asked for `out center`.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *LatLon           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type searchResponse struct {
	Elements []Element `json:"elements"`
}

// Place is a normalized point of interest. Lat and Lon are always set;
// elements without a resolvable coordinate never become a Place.
type Place struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Category   string  `json:"category,omitempty"`
	SourceID   string  `json:"source_id,omitempty"`
	SourceKind string  `json:"source_kind,omitempty"`
}
