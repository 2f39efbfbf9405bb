package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"tripplanner/internal/ai"
	"tripplanner/internal/modules/trip"
	"tripplanner/internal/types"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	model := os.Getenv("TRIP_GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey, model)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	sel := trip.TripSelection{
		Destination:  types.Place{Label: "Kyoto, Japan"},
		NumberOfDays: 3,
		Budget:       trip.BudgetModerate,
		Traveler:     trip.TravelerCouple,
	}

	prompt, err := trip.BuildPrompt(trip.DefaultPromptTemplate, sel)
	if err != nil {
		log.Fatalf("Error building prompt: %v", err)
	}

	itin, err := provider.GenerateStream(ctx, prompt, func(chunk string) {
		fmt.Print(chunk)
	})
	if err != nil {
		log.Fatalf("Error generating itinerary: %v", err)
	}

	fmt.Println()
	fmt.Printf("Hotels: %d\n", len(itin.HotelOptions))
	for _, day := range itin.Days {
		fmt.Printf("%s: %d activities\n", day.Day, len(day.Activities))
	}
}
