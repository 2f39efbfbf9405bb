package maps

import (
	"strings"
	"testing"

	"googlemaps.github.io/maps"
)

func TestPickPhotoReference(t *testing.T) {
	if got := pickPhotoReference(nil); got != "" {
		t.Errorf("expected empty ref for no photos, got %q", got)
	}

	few := []maps.Photo{{PhotoReference: "a"}, {PhotoReference: "b"}}
	if got := pickPhotoReference(few); got != "a" {
		t.Errorf("expected fallback to first photo, got %q", got)
	}

	many := []maps.Photo{{PhotoReference: "a"}, {PhotoReference: "b"}, {PhotoReference: "c"}, {PhotoReference: "d"}}
	if got := pickPhotoReference(many); got != "d" {
		t.Errorf("expected fourth photo, got %q", got)
	}
}

func TestPhotoURL(t *testing.T) {
	s := &PlacesService{apiKey: "test key"}
	u := s.PhotoURL("ref/123")
	if !strings.Contains(u, "photo_reference=ref%2F123") {
		t.Errorf("expected escaped photo reference in URL, got %s", u)
	}
	if !strings.Contains(u, "key=test+key") {
		t.Errorf("expected escaped api key in URL, got %s", u)
	}
}
