package trip

import (
	"strconv"
	"strings"
)

// DefaultPromptTemplate is the instruction text sent to the generation
// service. Placeholders: {location} is replaced once, {totalDays} everywhere
// it appears, {traveler} once, {budget} everywhere it appears.
const DefaultPromptTemplate = "Generate Travel Plan for Location: {location}, for {totalDays} Days for {traveler} " +
	"with a {budget} budget. Give me a Hotels options list with HotelName, Hotel address, Price, " +
	"hotel image url, geo coordinates, rating and descriptions, and suggest an itinerary with placeName, " +
	"Place Details, Place Image Url, Geo Coordinates, ticket Pricing, rating and Time to travel to each " +
	"location for {totalDays} days, with each day plan and the best time to visit, in JSON format. " +
	"Keep every suggestion within a {budget} budget."

// BuildPrompt produces the final instruction text for the generation service.
// Pure and deterministic; fails with *ValidationError when the selection is
// incomplete so an invalid request never reaches the network.
func BuildPrompt(template string, sel TripSelection) (string, error) {
	if err := sel.Validate(); err != nil {
		return "", err
	}
	out := strings.Replace(template, "{location}", sel.Destination.Label, 1)
	out = strings.ReplaceAll(out, "{totalDays}", strconv.Itoa(sel.NumberOfDays))
	out = strings.Replace(out, "{traveler}", sel.Traveler.Label(), 1)
	out = strings.ReplaceAll(out, "{budget}", sel.Budget.Label())
	return out, nil
}
