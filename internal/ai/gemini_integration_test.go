// README: Live Gemini integration test, gated on GEMINI_API_KEY.
package ai

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestGeminiGenerateLive exercises a real generation round-trip. It skips
// unless GEMINI_API_KEY is set so regular test runs stay offline.
func TestGeminiGenerateLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live Gemini test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	provider, err := NewGeminiProvider(ctx, apiKey, "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	defer provider.Close()

	prompt := "Generate Travel Plan for Location: Lisbon, Portugal, for 2 Days for a couple with a Cheap budget. " +
		"Give me a Hotels options list and a day-by-day itinerary in JSON format."

	itin, err := provider.Generate(ctx, prompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(itin.HotelOptions) == 0 {
		t.Error("expected at least one hotel option")
	}
	if len(itin.Days) == 0 {
		t.Error("expected at least one itinerary day")
	}
}
