// README: Trip service orchestrates validate -> quota -> prompt -> generate -> persist.
package trip

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"tripplanner/internal/ai"
	"tripplanner/internal/types"
)

var (
	// ErrBusy rejects a generate-and-save while one is already in flight for
	// the same owner. Ids are time-derived, so a concurrent duplicate could
	// otherwise collide or double-bill the quota.
	ErrBusy = errors.New("a trip generation is already in flight for this user")
)

// Repository is the persistence contract the service needs; *Store is the
// production implementation.
type Repository interface {
	Save(ctx context.Context, rec TripRecord) error
	GetByID(ctx context.Context, id types.ID) (TripRecord, error)
	ListByOwner(ctx context.Context, email string) ([]TripRecord, error)
}

// QuotaChecker bounds how many generations a user may run. A nil checker
// disables the bound.
type QuotaChecker interface {
	Use(ctx context.Context, user string) error
}

// Service runs the trip pipeline and owns the sign-in gate's deferred
// selections.
type Service struct {
	gen      ai.ItineraryGenerator
	repo     Repository
	quota    QuotaChecker
	template string

	now   func() time.Time
	newID func() types.ID

	mu       sync.Mutex
	inflight map[string]bool
	pending  map[string]TripSelection
}

func NewService(gen ai.ItineraryGenerator, repo Repository, quota QuotaChecker) *Service {
	s := &Service{
		gen:      gen,
		repo:     repo,
		quota:    quota,
		template: DefaultPromptTemplate,
		now:      time.Now,
		inflight: make(map[string]bool),
		pending:  make(map[string]TripSelection),
	}
	s.newID = func() types.ID {
		return types.ID(strconv.FormatInt(s.now().UnixMilli(), 10))
	}
	return s
}

// GenerateAndSave validates the selection, builds the prompt, invokes the
// generation service and persists the result as one new record. Any failure
// leaves no partial record behind; the caller decides whether to retry.
func (s *Service) GenerateAndSave(ctx context.Context, ownerEmail string, sel TripSelection) (TripRecord, error) {
	return s.run(ctx, ownerEmail, sel, nil)
}

// GenerateAndStream behaves like GenerateAndSave but forwards raw model text
// increments to sink as they arrive.
func (s *Service) GenerateAndStream(ctx context.Context, ownerEmail string, sel TripSelection, sink func(chunk string)) (TripRecord, error) {
	return s.run(ctx, ownerEmail, sel, sink)
}

func (s *Service) run(ctx context.Context, ownerEmail string, sel TripSelection, sink func(chunk string)) (TripRecord, error) {
	// Validate before anything touches the network.
	prompt, err := BuildPrompt(s.template, sel)
	if err != nil {
		return TripRecord{}, err
	}

	if !s.acquire(ownerEmail) {
		return TripRecord{}, ErrBusy
	}
	defer s.release(ownerEmail)

	if s.quota != nil {
		if err := s.quota.Use(ctx, ownerEmail); err != nil {
			return TripRecord{}, err
		}
	}

	var itin *ai.GeneratedItinerary
	if sink != nil {
		itin, err = s.gen.GenerateStream(ctx, prompt, sink)
	} else {
		itin, err = s.gen.Generate(ctx, prompt)
	}
	if err != nil {
		return TripRecord{}, err
	}

	rec := TripRecord{
		ID:         s.newID(),
		OwnerEmail: ownerEmail,
		Selection:  sel,
		Itinerary:  *itin,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return TripRecord{}, err
	}

	log.Printf("trip %s saved for %s (%s, %d days)", rec.ID, ownerEmail, sel.Destination.Label, sel.NumberOfDays)
	return rec, nil
}

func (s *Service) acquire(owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[owner] {
		return false
	}
	s.inflight[owner] = true
	return true
}

func (s *Service) release(owner string) {
	s.mu.Lock()
	delete(s.inflight, owner)
	s.mu.Unlock()
}

// Defer parks a selection behind the sign-in gate, keyed by the caller's
// session key. A second Defer for the same key replaces the parked selection
// so the resume never runs a stale request twice.
func (s *Service) Defer(key string, sel TripSelection) {
	s.mu.Lock()
	s.pending[key] = sel
	s.mu.Unlock()
}

// ResumePending runs the selection parked under key exactly once, now that
// the owner has signed in. Returns (nil, nil) when nothing was parked. The
// parked selection is consumed even if the pipeline then fails; a retry is
// the user's explicit decision, not an automatic one.
func (s *Service) ResumePending(ctx context.Context, key, ownerEmail string) (*TripRecord, error) {
	s.mu.Lock()
	sel, ok := s.pending[key]
	if ok {
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	rec, err := s.GenerateAndSave(ctx, ownerEmail, sel)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (TripRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, email string) ([]TripRecord, error) {
	return s.repo.ListByOwner(ctx, email)
}
