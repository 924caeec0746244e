package response_models

type Place struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Category   string  `json:"category,omitempty"`
	SourceID   string  `json:"source_id,omitempty"`
	SourceKind string  `json:"source_kind,omitempty"`
}
