package overpass

import (
	"fmt"

	"github.com/shadamnittt/FeelGo/internal/catalogs"
)

// Query is a ready-to-send Overpass request plus the parameters it was built
// from, kept around for logging.
type Query struct {
	QL           string
	Amenity      string
	RadiusMeters int
	Center       LatLon
}

// BuildQuery maps a category id to its amenity tag and produces an Overpass QL
// query for all nodes, ways and relations with that tag within radiusMeters of
// center. Unknown categories fall back to the default amenity. The result is
// deterministic for identical inputs.
func BuildQuery(categoryID string, center LatLon, radiusMeters int) Query {
	amenity := catalogs.AmenityForCategory(categoryID)

	ql := fmt.Sprintf(`[out:json][timeout:25];
(
  node["amenity"=%q](around:%d,%f,%f);
  way["amenity"=%q](around:%d,%f,%f);
  relation["amenity"=%q](around:%d,%f,%f);
);
out center;`,
		amenity, radiusMeters, center.Lat, center.Lon,
		amenity, radiusMeters, center.Lat, center.Lon,
		amenity, radiusMeters, center.Lat, center.Lon,
	)

	return Query{
		QL:           ql,
		Amenity:      amenity,
		RadiusMeters: radiusMeters,
		Center:       center,
	}
}
