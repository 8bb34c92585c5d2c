package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
	"github.com/gestionusuarios/admin-console/internal/metrics"
)

// Screen composes a Listing with the dialog, confirmation, and mutation
// contract every CRUD screen shares:
//
//	submit → validate → mutate → on success: invalidate + success toast +
//	close dialog; on failure: error toast, dialog stays open with the field
//	values intact.
//
// No optimistic local mutation happens anywhere: the table always reflects
// server-confirmed state after a round trip.
type Screen[T any, F any] struct {
	resource string
	listing  *Listing[T]
	notifier ports.Notifier
	validate func(form F, isNew bool) error
	protect  func(entity T) error
	log      zerolog.Logger

	mu      sync.Mutex
	open    bool
	editing *T
	form    F
	pending *T
}

// NewScreen wires a screen. validate runs before any network call; protect
// may be nil when the resource has no protected entities.
func NewScreen[T any, F any](
	resource string,
	listing *Listing[T],
	notifier ports.Notifier,
	validate func(form F, isNew bool) error,
	protect func(entity T) error,
	log zerolog.Logger,
) *Screen[T, F] {
	return &Screen[T, F]{
		resource: resource,
		listing:  listing,
		notifier: notifier,
		validate: validate,
		protect:  protect,
		log:      log,
	}
}

// Listing exposes the underlying pagination/search state.
func (s *Screen[T, F]) Listing() *Listing[T] { return s.listing }

// OpenCreate opens the dialog with create defaults.
func (s *Screen[T, F]) OpenCreate(defaults F) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.editing = nil
	s.form = defaults
}

// OpenEdit opens the dialog pre-populated from the selected entity.
func (s *Screen[T, F]) OpenEdit(entity T, form F) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.editing = &entity
	s.form = form
}

// SetForm replaces the dialog's field values, as typing does.
func (s *Screen[T, F]) SetForm(form F) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

// Dialog returns the current form values, the entity under edit (nil for
// create), and whether the dialog is open.
func (s *Screen[T, F]) Dialog() (form F, editing *T, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form, s.editing, s.open
}

// CloseDialog dismisses the dialog without submitting.
func (s *Screen[T, F]) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.editing = nil
}

// Submit runs the mutation contract for the open dialog. isNew selects the
// create-mode form rules. A *domain.ValidationError is returned before any
// network call and never reaches the notifier.
func (s *Screen[T, F]) Submit(ctx context.Context, action string, isNew bool, mutate func(ctx context.Context, form F) error, okMsg, fallbackMsg string) error {
	s.mu.Lock()
	form := s.form
	s.mu.Unlock()

	if err := s.validate(form, isNew); err != nil {
		return err
	}

	if err := mutate(ctx, form); err != nil {
		metrics.MutationsTotal.WithLabelValues(s.resource, action, "error").Inc()
		s.notifier.Error(domain.MensajeDe(err, fallbackMsg))
		return err
	}

	metrics.MutationsTotal.WithLabelValues(s.resource, action, "ok").Inc()
	s.listing.Invalidate()
	s.notifier.Success(okMsg)
	s.CloseDialog()
	return nil
}

// RequestDelete starts the confirmation step for a destructive action. A
// protected entity is refused outright: no confirmation opens and the error
// names the veto.
func (s *Screen[T, F]) RequestDelete(entity T) error {
	if s.protect != nil {
		if err := s.protect(entity); err != nil {
			s.log.Warn().Str("resource", s.resource).Msg("delete refused by protection policy")
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &entity
	return nil
}

// PendingDelete returns the entity awaiting confirmation, false when no
// confirmation is open.
func (s *Screen[T, F]) PendingDelete() (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.pending != nil
}

// CancelDelete dismisses the confirmation.
func (s *Screen[T, F]) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// ConfirmDelete executes the confirmed deletion under the mutation contract.
// The protection policy is re-checked here, so the action is refused even if
// a confirmation was somehow forged.
func (s *Screen[T, F]) ConfirmDelete(ctx context.Context, del func(ctx context.Context, entity T) error, okMsg, fallbackMsg string) error {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return domain.ErrConfirmacionRequerida
	}
	if s.protect != nil {
		if err := s.protect(*pending); err != nil {
			return err
		}
	}

	if err := del(ctx, *pending); err != nil {
		metrics.MutationsTotal.WithLabelValues(s.resource, "delete", "error").Inc()
		s.notifier.Error(domain.MensajeDe(err, fallbackMsg))
		return err
	}

	metrics.MutationsTotal.WithLabelValues(s.resource, "delete", "ok").Inc()
	s.listing.Invalidate()
	s.notifier.Success(okMsg)
	s.CancelDelete()
	return nil
}

// Run executes a dialog-less mutation (estado toggle, perfil edges) under
// the same success/failure contract. The table updates through invalidation
// without any dialog round trip.
func (s *Screen[T, F]) Run(ctx context.Context, action string, op func(ctx context.Context) error, okMsg, fallbackMsg string) error {
	if err := op(ctx); err != nil {
		metrics.MutationsTotal.WithLabelValues(s.resource, action, "error").Inc()
		s.notifier.Error(domain.MensajeDe(err, fallbackMsg))
		return err
	}
	metrics.MutationsTotal.WithLabelValues(s.resource, action, "ok").Inc()
	s.listing.Invalidate()
	s.notifier.Success(okMsg)
	return nil
}
