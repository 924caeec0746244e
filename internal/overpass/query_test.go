package overpass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryDeterministic(t *testing.T) {
	center := LatLon{Lat: 55.75, Lon: 37.61}

	first := BuildQuery("restaurant", center, 1000)
	second := BuildQuery("restaurant", center, 1000)

	assert.Equal(t, first, second)
}

func TestBuildQueryKnownCategory(t *testing.T) {
	q := BuildQuery("theatre", LatLon{Lat: 55.75, Lon: 37.61}, 5000)

	assert.Equal(t, "theatre", q.Amenity)
	assert.Equal(t, 5000, q.RadiusMeters)
	assert.Contains(t, q.QL, `"amenity"="theatre"`)
	assert.Contains(t, q.QL, "around:5000")
}

func TestBuildQueryUnknownCategoryFallsBack(t *testing.T) {
	q := BuildQuery("spaceport", LatLon{Lat: 55.75, Lon: 37.61}, 1000)

	assert.Equal(t, "cafe", q.Amenity)
	assert.Contains(t, q.QL, `"amenity"="cafe"`)
}

func TestBuildQueryCoversAllElementKinds(t *testing.T) {
	q := BuildQuery("cafe", LatLon{Lat: 55.75, Lon: 37.61}, 1000)

	for _, kind := range []string{"node", "way", "relation"} {
		assert.True(t, strings.Contains(q.QL, kind), "query should request %s features", kind)
	}
	assert.Contains(t, q.QL, "out center")
}
