package maps

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"googlemaps.github.io/maps"

	"tripplanner/internal/types"
)

// ErrNoMatch is returned when a query resolves to no place at all.
var ErrNoMatch = errors.New("no place matched the query")

// PlacesService handles interactions with the Google Places API. It is the
// only component that talks to the Maps SDK; the trip pipeline sees plain
// types.Place values.
type PlacesService struct {
	client *maps.Client
	apiKey string
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, apiKey: apiKey}, nil
}

// Resolve turns a free-text destination query into a canonical place record.
func (s *PlacesService) Resolve(ctx context.Context, query string) (types.Place, error) {
	r := &maps.FindPlaceFromTextRequest{
		Input:     query,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields: []maps.PlaceSearchFieldMask{
			maps.PlaceSearchFieldMaskName,
			maps.PlaceSearchFieldMaskFormattedAddress,
			maps.PlaceSearchFieldMaskPlaceID,
			maps.PlaceSearchFieldMaskGeometry,
		},
	}

	resp, err := s.client.FindPlaceFromText(ctx, r)
	if err != nil {
		return types.Place{}, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return types.Place{}, ErrNoMatch
	}

	c := resp.Candidates[0]
	label := c.Name
	if label == "" {
		label = c.FormattedAddress
	}
	return types.Place{
		Label:   label,
		PlaceID: c.PlaceID,
		Location: &types.LatLng{
			Lat: c.Geometry.Location.Lat,
			Lng: c.Geometry.Location.Lng,
		},
	}, nil
}

// PhotoReference finds a representative photo reference for a destination,
// used by trip cards. Returns ErrNoMatch when the query yields no photos.
func (s *PlacesService) PhotoReference(ctx context.Context, query string) (string, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", ErrNoMatch
	}
	ref := pickPhotoReference(resp.Results[0].Photos)
	if ref == "" {
		return "", ErrNoMatch
	}
	return ref, nil
}

// pickPhotoReference prefers the fourth photo (usually a landscape shot
// rather than a logo) and falls back to the first.
func pickPhotoReference(photos []maps.Photo) string {
	if len(photos) == 0 {
		return ""
	}
	if len(photos) > 3 {
		return photos[3].PhotoReference
	}
	return photos[0].PhotoReference
}

// PhotoURL builds a fetchable URL for a photo reference.
func (s *PlacesService) PhotoURL(ref string) string {
	return fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/place/photo?maxwidth=1000&photo_reference=%s&key=%s",
		url.QueryEscape(ref), url.QueryEscape(s.apiKey),
	)
}
