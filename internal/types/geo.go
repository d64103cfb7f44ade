package types

// LatLng is a WGS84 coordinate pair as exchanged with the mapping provider
// and embedded into generated itineraries during enrichment.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
