package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GeneratedItinerary is the structured output of one generation call:
// a set of hotel options plus a day-by-day activity plan. Immutable once
// returned.
type GeneratedItinerary struct {
	HotelOptions []HotelOption `json:"hotel_options" firestore:"hotel_options"`
	Days         []DayPlan     `json:"itinerary" firestore:"itinerary"`
}

// HotelOption is a single suggested hotel. Name and Address are mandatory;
// the rest is best-effort from the model.
type HotelOption struct {
	Name        string `json:"name" firestore:"name"`
	Address     string `json:"address" firestore:"address"`
	Price       string `json:"price,omitempty" firestore:"price"`
	ImageURL    string `json:"image_url,omitempty" firestore:"image_url"`
	Coordinates string `json:"geo_coordinates,omitempty" firestore:"geo_coordinates"`
	Rating      string `json:"rating,omitempty" firestore:"rating"`
	Description string `json:"description,omitempty" firestore:"description"`
}

// DayPlan holds one day's ordered activities.
type DayPlan struct {
	Day        string     `json:"day" firestore:"day"`
	Activities []Activity `json:"plan" firestore:"plan"`
}

// Activity is a single itinerary stop. Time and Place are mandatory.
type Activity struct {
	Time          string `json:"time" firestore:"time"`
	Place         string `json:"place" firestore:"place"`
	Details       string `json:"details,omitempty" firestore:"details"`
	ImageURL      string `json:"image_url,omitempty" firestore:"image_url"`
	Coordinates   string `json:"geo_coordinates,omitempty" firestore:"geo_coordinates"`
	TicketPricing string `json:"ticket_pricing,omitempty" firestore:"ticket_pricing"`
	Rating        string `json:"rating,omitempty" firestore:"rating"`
}

// GenerationError reports a failed generation call: the upstream request
// failed, the model returned nothing, or the response text did not conform
// to the itinerary schema. Raw carries the first 400 characters of the
// offending response for debugging.
type GenerationError struct {
	Reason string // "request_failed", "empty_response" or "invalid_json"
	Raw    string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

const rawSnippetLimit = 400

// parseItinerary parses the model's textual response into a GeneratedItinerary
// and enforces the mandatory fields of the response schema. Any violation
// fails with an "invalid_json" GenerationError rather than returning partial
// data.
func parseItinerary(text string) (*GeneratedItinerary, error) {
	clean := cleanJSONString(text)

	var itin GeneratedItinerary
	if err := json.Unmarshal([]byte(clean), &itin); err != nil {
		return nil, &GenerationError{Reason: "invalid_json", Raw: truncate(clean, rawSnippetLimit), Err: err}
	}
	if err := checkSchema(&itin); err != nil {
		return nil, &GenerationError{Reason: "invalid_json", Raw: truncate(clean, rawSnippetLimit), Err: err}
	}
	return &itin, nil
}

func checkSchema(itin *GeneratedItinerary) error {
	if itin.HotelOptions == nil || itin.Days == nil {
		return fmt.Errorf("missing hotel_options or itinerary")
	}
	for i, h := range itin.HotelOptions {
		if h.Name == "" || h.Address == "" {
			return fmt.Errorf("hotel_options[%d]: name and address are required", i)
		}
	}
	for i, d := range itin.Days {
		if d.Day == "" || d.Activities == nil {
			return fmt.Errorf("itinerary[%d]: day and plan are required", i)
		}
		for j, a := range d.Activities {
			if a.Time == "" || a.Place == "" {
				return fmt.Errorf("itinerary[%d].plan[%d]: time and place are required", i, j)
			}
		}
	}
	return nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
