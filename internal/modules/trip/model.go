// README: Trip selection aggregate, budget/traveler enums and validation.
package trip

import (
	"fmt"
	"strings"

	"tripplanner/internal/ai"
	"tripplanner/internal/types"
)

// Day limits for a single trip. The upper bound is a product policy, not a
// technical limit.
const (
	MinDays = 1
	MaxDays = 5
)

type BudgetTier string

const (
	BudgetCheap    BudgetTier = "cheap"
	BudgetModerate BudgetTier = "moderate"
	BudgetLuxury   BudgetTier = "luxury"
)

// Label returns the human wording substituted into the prompt.
func (b BudgetTier) Label() string {
	switch b {
	case BudgetCheap:
		return "Cheap"
	case BudgetModerate:
		return "Moderate"
	case BudgetLuxury:
		return "Luxury"
	}
	return ""
}

func ParseBudgetTier(s string) (BudgetTier, error) {
	switch BudgetTier(strings.ToLower(strings.TrimSpace(s))) {
	case BudgetCheap:
		return BudgetCheap, nil
	case BudgetModerate:
		return BudgetModerate, nil
	case BudgetLuxury:
		return BudgetLuxury, nil
	}
	return "", fmt.Errorf("unknown budget tier %q", s)
}

type TravelerParty string

const (
	TravelerSolo    TravelerParty = "solo"
	TravelerCouple  TravelerParty = "couple"
	TravelerFamily  TravelerParty = "family"
	TravelerFriends TravelerParty = "friends"
)

// Label returns the human wording substituted into the prompt.
func (p TravelerParty) Label() string {
	switch p {
	case TravelerSolo:
		return "a solo traveler"
	case TravelerCouple:
		return "a couple"
	case TravelerFamily:
		return "a family (3 to 5 people)"
	case TravelerFriends:
		return "a group of friends (5 to 10 people)"
	}
	return ""
}

func ParseTravelerParty(s string) (TravelerParty, error) {
	switch TravelerParty(strings.ToLower(strings.TrimSpace(s))) {
	case TravelerSolo:
		return TravelerSolo, nil
	case TravelerCouple:
		return TravelerCouple, nil
	case TravelerFamily:
		return TravelerFamily, nil
	case TravelerFriends:
		return TravelerFriends, nil
	}
	return "", fmt.Errorf("unknown traveler party %q", s)
}

// TripSelection is the complete set of user choices required to generate an
// itinerary. All four fields must be populated before generation is allowed.
// Firestore field names mirror the stored document layout.
type TripSelection struct {
	Destination  types.Place   `json:"destination" firestore:"location"`
	NumberOfDays int           `json:"noOfDays" firestore:"noOfDays"`
	Budget       BudgetTier    `json:"budget" firestore:"budget"`
	Traveler     TravelerParty `json:"traveler" firestore:"traveler"`
}

// ValidationError reports an incomplete or out-of-range trip selection.
type ValidationError struct {
	Missing []string // fields absent from the selection
	Reason  string   // non-empty for range violations
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "invalid trip selection: missing " + strings.Join(e.Missing, ", ")
	}
	return "invalid trip selection: " + e.Reason
}

// Validate checks that every field is populated and the day count is within
// [MinDays, MaxDays]. Missing fields take precedence over range violations.
func (s TripSelection) Validate() error {
	var missing []string
	if s.Destination.Label == "" {
		missing = append(missing, "destination")
	}
	if s.NumberOfDays == 0 {
		missing = append(missing, "numberOfDays")
	}
	if s.Budget.Label() == "" {
		missing = append(missing, "budget")
	}
	if s.Traveler.Label() == "" {
		missing = append(missing, "traveler")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	if s.NumberOfDays < MinDays || s.NumberOfDays > MaxDays {
		return &ValidationError{Reason: fmt.Sprintf("numberOfDays must be between %d and %d", MinDays, MaxDays)}
	}
	return nil
}

// TripRecord is a saved trip: the user's selection plus the generated
// itinerary. Created exactly once at save time and never mutated.
type TripRecord struct {
	ID         types.ID              `json:"id"`
	OwnerEmail string                `json:"ownerEmail"`
	Selection  TripSelection         `json:"selection"`
	Itinerary  ai.GeneratedItinerary `json:"itinerary"`
}
