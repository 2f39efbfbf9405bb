// README: Shared value objects used across modules.
package types

// ID identifies a persisted record.
type ID string

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Place is a resolved, canonical location: a display label plus the
// provider's stable identifier and optional coordinates.
type Place struct {
	Label    string  `json:"label" firestore:"label"`
	PlaceID  string  `json:"placeId" firestore:"placeId"`
	Location *LatLng `json:"location,omitempty" firestore:"location"`
}
