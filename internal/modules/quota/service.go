package quota

import "context"

// Service bounds how many itinerary generations a user may run per month.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Use deducts one generation from the user's monthly allowance. A user absent
// from the table is initialised first and the generation consumed immediately.
// Returns ErrQuotaExhausted when the current month's allowance is spent.
func (s *Service) Use(ctx context.Context, email string) error {
	err := s.store.UseOne(ctx, email)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, email); initErr != nil {
		return initErr
	}
	return s.store.UseOne(ctx, email)
}
