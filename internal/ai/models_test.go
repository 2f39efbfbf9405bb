// README: Tests for itinerary response parsing and schema enforcement.
package ai

import (
	"errors"
	"strings"
	"testing"
)

const cannedResponse = `{"hotel_options":[{"name":"Hotel A","address":"123 St"}],"itinerary":[{"day":"Day 1","plan":[{"time":"9am","place":"Park"}]}]}`

func TestParseItinerary_CannedResponse(t *testing.T) {
	itin, err := parseItinerary(cannedResponse)
	if err != nil {
		t.Fatalf("parseItinerary: %v", err)
	}
	if len(itin.HotelOptions) != 1 {
		t.Errorf("expected 1 hotel option, got %d", len(itin.HotelOptions))
	}
	if len(itin.Days) != 1 {
		t.Errorf("expected 1 day, got %d", len(itin.Days))
	}
	if got := itin.Days[0].Activities[0].Place; got != "Park" {
		t.Errorf("expected first activity place %q, got %q", "Park", got)
	}
}

func TestParseItinerary_MarkdownFences(t *testing.T) {
	fenced := "```json\n" + cannedResponse + "\n```"
	itin, err := parseItinerary(fenced)
	if err != nil {
		t.Fatalf("parseItinerary with fences: %v", err)
	}
	if itin.HotelOptions[0].Name != "Hotel A" {
		t.Errorf("unexpected hotel name %q", itin.HotelOptions[0].Name)
	}
}

func TestParseItinerary_NotJSON(t *testing.T) {
	_, err := parseItinerary("I'm sorry, I can't plan that trip.")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T (%v)", err, err)
	}
	if genErr.Reason != "invalid_json" {
		t.Errorf("expected reason invalid_json, got %q", genErr.Reason)
	}
	if genErr.Raw == "" {
		t.Error("expected raw snippet to be populated")
	}
}

func TestParseItinerary_RawTruncatedTo400(t *testing.T) {
	long := "not json " + strings.Repeat("x", 2000)
	_, err := parseItinerary(long)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if len(genErr.Raw) != 400 {
		t.Errorf("expected raw snippet of 400 chars, got %d", len(genErr.Raw))
	}
}

func TestParseItinerary_MissingMandatoryFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing top-level arrays", `{}`},
		{"hotel without address", `{"hotel_options":[{"name":"Hotel A"}],"itinerary":[]}`},
		{"day without plan", `{"hotel_options":[],"itinerary":[{"day":"Day 1"}]}`},
		{"activity without place", `{"hotel_options":[],"itinerary":[{"day":"Day 1","plan":[{"time":"9am"}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseItinerary(tc.body)
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected *GenerationError, got %T (%v)", err, err)
			}
			if genErr.Reason != "invalid_json" {
				t.Errorf("expected reason invalid_json, got %q", genErr.Reason)
			}
		})
	}
}

func TestParseItinerary_OptionalFieldsPreserved(t *testing.T) {
	body := `{"hotel_options":[{"name":"Hotel B","address":"456 Ave","price":"$120","rating":"4.5"}],` +
		`"itinerary":[{"day":"Day 1","plan":[{"time":"10am","place":"Museum","ticket_pricing":"$20"}]}]}`
	itin, err := parseItinerary(body)
	if err != nil {
		t.Fatalf("parseItinerary: %v", err)
	}
	if itin.HotelOptions[0].Price != "$120" {
		t.Errorf("expected price preserved, got %q", itin.HotelOptions[0].Price)
	}
	if itin.Days[0].Activities[0].TicketPricing != "$20" {
		t.Errorf("expected ticket pricing preserved, got %q", itin.Days[0].Activities[0].TicketPricing)
	}
}
