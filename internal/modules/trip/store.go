// README: Trip repository backed by Firestore (collection "AITrips").
package trip

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tripplanner/internal/ai"
	"tripplanner/internal/types"
)

const collectionName = "AITrips"

var (
	ErrNotFound = errors.New("trip not found")
	ErrConflict = errors.New("trip id already exists")
)

// Store persists trip records in Firestore. One document per trip, keyed by
// the record id.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// tripDoc is the stored document layout. Field names match the collection's
// historical schema.
type tripDoc struct {
	ID            string                `firestore:"id"`
	UserEmail     string                `firestore:"userEmail"`
	UserSelection TripSelection         `firestore:"userSelection"`
	TripData      ai.GeneratedItinerary `firestore:"tripData"`
}

func toDoc(r TripRecord) tripDoc {
	return tripDoc{
		ID:            string(r.ID),
		UserEmail:     r.OwnerEmail,
		UserSelection: r.Selection,
		TripData:      r.Itinerary,
	}
}

func fromDoc(d tripDoc) TripRecord {
	return TripRecord{
		ID:         types.ID(d.ID),
		OwnerEmail: d.UserEmail,
		Selection:  d.UserSelection,
		Itinerary:  d.TripData,
	}
}

// Save writes the full record as a single atomic document creation. A second
// save with the same id fails with ErrConflict instead of overwriting, which
// closes the rapid double-submission window of time-derived ids.
func (s *Store) Save(ctx context.Context, rec TripRecord) error {
	_, err := s.client.Collection(collectionName).Doc(string(rec.ID)).Create(ctx, toDoc(rec))
	if status.Code(err) == codes.AlreadyExists {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("saving trip %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id types.ID) (TripRecord, error) {
	snap, err := s.client.Collection(collectionName).Doc(string(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return TripRecord{}, ErrNotFound
	}
	if err != nil {
		return TripRecord{}, fmt.Errorf("fetching trip %s: %w", id, err)
	}
	var d tripDoc
	if err := snap.DataTo(&d); err != nil {
		return TripRecord{}, fmt.Errorf("decoding trip %s: %w", id, err)
	}
	return fromDoc(d), nil
}

// ListByOwner returns every trip owned by email, oldest first. Ordering is
// done client-side: ids are time-derived so lexicographic order is creation
// order, and a server-side OrderBy next to the Where would need a composite
// index.
func (s *Store) ListByOwner(ctx context.Context, email string) ([]TripRecord, error) {
	iter := s.client.Collection(collectionName).Where("userEmail", "==", email).Documents(ctx)
	defer iter.Stop()

	var records []TripRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing trips for %s: %w", email, err)
		}
		var d tripDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decoding trip %s: %w", snap.Ref.ID, err)
		}
		records = append(records, fromDoc(d))
	}

	sortByCreation(records)
	return records, nil
}

func sortByCreation(records []TripRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}
