package overpass

import "fmt"

// UnnamedPlaceholder is shown for elements that carry neither a name tag nor
// a usable category label.
const UnnamedPlaceholder = "Без названия"

// Normalize converts raw elements into places, preserving response order.
// Elements with no direct coordinate and no centroid are dropped regardless
// of what else they carry. No deduplication happens here; overlapping
// provider records pass through as-is.
func Normalize(elements []Element, categoryLabel string) []Place {
	places := make([]Place, 0, len(elements))

	for _, el := range elements {
		lat, lon, ok := resolveCoordinate(el)
		if !ok {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			name = categoryLabel
		}
		if name == "" {
			name = UnnamedPlaceholder
		}

		category := el.Tags["amenity"]
		if category == "" {
			category = categoryLabel
		}

		places = append(places, Place{
			Name:       name,
			Lat:        lat,
			Lon:        lon,
			Category:   category,
			SourceID:   fmt.Sprintf("%s/%d", el.Type, el.ID),
			SourceKind: el.Type,
		})
	}

	return places
}

func resolveCoordinate(el Element) (float64, float64, bool) {
	if el.Lat != nil && el.Lon != nil {
		return *el.Lat, *el.Lon, true
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon, true
	}
	return 0, 0, false
}
