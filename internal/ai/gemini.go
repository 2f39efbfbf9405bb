package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiProvider implements ItineraryGenerator using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client configured for JSON
// itinerary output. apiKey should be provided from environment variables;
// modelName selects the Gemini model (e.g. "gemini-2.5-flash").
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Fixed decoding configuration for itinerary generation.
	model.SetTemperature(1.0)
	model.SetTopP(0.95)
	model.SetTopK(64)
	model.SetMaxOutputTokens(8192)

	// Force JSON responses conforming to the itinerary schema.
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = itinerarySchema()

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate sends the prompt as the sole user message and parses the JSON
// response into a GeneratedItinerary. No retry is performed.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (*GeneratedItinerary, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &GenerationError{Reason: "request_failed", Err: err}
	}

	text, ok := responseText(resp)
	if !ok {
		return nil, &GenerationError{Reason: "empty_response"}
	}

	return parseItinerary(text)
}

// GenerateStream streams text increments to sink in arrival order and, once
// the stream completes, parses the full response. A cancelled context stops
// chunk delivery without invoking sink again.
func (p *GeminiProvider) GenerateStream(ctx context.Context, prompt string, sink func(chunk string)) (*GeneratedItinerary, error) {
	iter := p.model.GenerateContentStream(ctx, genai.Text(prompt))

	var full strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &GenerationError{Reason: "request_failed", Err: err}
		}

		chunk, ok := responseText(resp)
		if !ok {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if sink != nil {
			sink(chunk)
		}
		full.WriteString(chunk)
	}

	if full.Len() == 0 {
		return nil, &GenerationError{Reason: "empty_response"}
	}
	return parseItinerary(full.String())
}

// responseText extracts the concatenated text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// itinerarySchema is the structured-output contract sent with every request:
// hotel options require name+address, itinerary days require day+plan, and
// plan entries require time+place.
func itinerarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"hotel_options": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":            {Type: genai.TypeString},
						"address":         {Type: genai.TypeString},
						"price":           {Type: genai.TypeString},
						"image_url":       {Type: genai.TypeString},
						"geo_coordinates": {Type: genai.TypeString},
						"rating":          {Type: genai.TypeString},
						"description":     {Type: genai.TypeString},
					},
					Required: []string{"name", "address"},
				},
			},
			"itinerary": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day": {Type: genai.TypeString},
						"plan": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"time":            {Type: genai.TypeString},
									"place":           {Type: genai.TypeString},
									"details":         {Type: genai.TypeString},
									"image_url":       {Type: genai.TypeString},
									"geo_coordinates": {Type: genai.TypeString},
									"ticket_pricing":  {Type: genai.TypeString},
									"rating":          {Type: genai.TypeString},
								},
								Required: []string{"time", "place"},
							},
						},
					},
					Required: []string{"day", "plan"},
				},
			},
		},
		Required: []string{"hotel_options", "itinerary"},
	}
}
