package ai

import (
	"context"
)

// ItineraryGenerator is the contract for producing a structured itinerary
// from a finished prompt. Implementations must not retry internally; the
// caller decides whether to re-invoke after a failure.
type ItineraryGenerator interface {
	// Generate sends the prompt as the sole user message and returns the
	// parsed, schema-conforming itinerary or a *GenerationError.
	Generate(ctx context.Context, prompt string) (*GeneratedItinerary, error)

	// GenerateStream delivers raw text increments to sink in arrival order,
	// then parses the accumulated response under the same contract as
	// Generate. Cancelling ctx stops chunk delivery; sink is not invoked
	// afterwards and no partial itinerary is returned.
	GenerateStream(ctx context.Context, prompt string, sink func(chunk string)) (*GeneratedItinerary, error)
}
