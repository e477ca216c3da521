package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

// ErrDraftNotReady rejects a submit for a draft still on the selection or
// personal-info step.
var ErrDraftNotReady = errors.New("draft has not reached the confirmation step")

// ValidationError carries the per-field messages from a failed step 2 gate.
// Every invalid field is reported at once; nothing is fail-fast.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// SubmitResult is what a successful submission returns to the caller: the
// persisted order plus the pre-filled messaging hand-off link (empty when the
// hand-off could not be built; the order stands regardless).
type SubmitResult struct {
	Order       *domain.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url,omitempty"`
}

// BookingService drives the three-step booking wizard. Drafts are the only
// mutable state and they live in Redis under a TTL; everything else the
// service touches is a repository owned by the caller.
//
// Steps: 1 select package, 2 personal details, 3 confirm. Submission is the
// only transition with durable side effects.
type BookingService struct {
	drafts        domain.DraftRepository
	pricing       *PricingEngine
	orderRepo     domain.OrderRepository
	specialtyRepo domain.SpecialtyRepository
	settingsRepo  domain.SettingsRepository
	notifier      Notifier
	draftTTL      time.Duration
}

// NewBookingService creates a new booking workflow service
func NewBookingService(
	drafts domain.DraftRepository,
	pricing *PricingEngine,
	orderRepo domain.OrderRepository,
	specialtyRepo domain.SpecialtyRepository,
	settingsRepo domain.SettingsRepository,
	notifier Notifier,
	draftTTL time.Duration,
) *BookingService {
	return &BookingService{
		drafts:        drafts,
		pricing:       pricing,
		orderRepo:     orderRepo,
		specialtyRepo: specialtyRepo,
		settingsRepo:  settingsRepo,
		notifier:      notifier,
		draftTTL:      draftTTL,
	}
}

// Start creates a fresh draft on step 1.
func (s *BookingService) Start(ctx context.Context) (*domain.BookingDraft, error) {
	draft := &domain.BookingDraft{
		ID:        ulid.Make().String(),
		Step:      domain.StepSelectPackage,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// Get returns the current draft state.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.BookingDraft, error) {
	return s.drafts.Get(ctx, id)
}

// Abandon discards a draft explicitly. Unsubmitted drafts also die silently
// when their TTL runs out; there is no durability requirement for them.
func (s *BookingService) Abandon(ctx context.Context, id string) error {
	return s.drafts.Delete(ctx, id)
}

// Select records the package choice. The selection is a tagged union: fixed
// with a package id, or custom with an hour count. Custom hours are range
// checked here; whether a fixed package id still resolves is deliberately NOT
// checked until submission, matching the catalog-changed-under-me semantics.
func (s *BookingService) Select(ctx context.Context, id string, sel domain.Selection) (*domain.BookingDraft, error) {
	switch sel.Kind {
	case domain.SelectionFixed:
		if sel.PackageID == "" {
			return nil, fmt.Errorf("package id is required for a fixed selection")
		}
		sel.Hours = 0
	case domain.SelectionCustom:
		if sel.Hours < domain.MinCustomHours || sel.Hours > domain.MaxCustomHours {
			return nil, fmt.Errorf("%w: %d not in [%d, %d]",
				domain.ErrInvalidHours, sel.Hours, domain.MinCustomHours, domain.MaxCustomHours)
		}
		sel.PackageID = ""
	default:
		return nil, fmt.Errorf("unknown selection kind %q", sel.Kind)
	}

	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Selection = &sel
	if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// UpdateCustomer stores the step 2 fields. If a previous validation attempt
// left errors on the draft, the errors are recomputed so corrected fields
// clear immediately while still-invalid ones keep their message.
func (s *BookingService) UpdateCustomer(ctx context.Context, id string, c domain.Customer) (*domain.BookingDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Customer = c
	if len(draft.Errors) > 0 {
		specialties, err := s.specialtyNames(ctx)
		if err != nil {
			return nil, err
		}
		draft.Errors = domain.ValidateCustomer(draft.Customer, specialties)
	}

	if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// Quote prices the draft's current selection for the live preview. Pure read:
// repeated calls with an unchanged draft return the same numbers and persist
// nothing.
func (s *BookingService) Quote(ctx context.Context, id string) (Quote, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if draft.Selection == nil {
		return Quote{}, fmt.Errorf("no selection on draft")
	}

	settings, err := s.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return Quote{}, err
	}
	return s.pricing.Quote(ctx, *draft.Selection, settings.HourlyRate)
}

// Next advances the wizard one step, applying the per-step guard.
//
// Step 1 -> 2 requires a selection; without one the call is a silent no-op
// (the UI disables the button, this is just the backstop). Step 2 -> 3 runs
// the full customer validation and, on failure, stays on step 2 with the
// per-field errors recorded on the draft. Step 3 has no forward transition
// here; submission is its own call.
func (s *BookingService) Next(ctx context.Context, id string) (*domain.BookingDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch draft.Step {
	case domain.StepSelectPackage:
		if !draft.HasSelection() {
			return draft, nil
		}
		draft.Step = domain.StepPersonalInfo

	case domain.StepPersonalInfo:
		specialties, err := s.specialtyNames(ctx)
		if err != nil {
			return nil, err
		}
		draft.Errors = domain.ValidateCustomer(draft.Customer, specialties)
		if len(draft.Errors) == 0 {
			draft.Step = domain.StepConfirm
		}

	case domain.StepConfirm:
		return draft, nil
	}

	if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// Back moves one step towards step 1. Always allowed, never re-validates,
// never clears entered data.
func (s *BookingService) Back(ctx context.Context, id string) (*domain.BookingDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if draft.Step > domain.StepSelectPackage {
		draft.Step--
		if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
			return nil, fmt.Errorf("failed to save draft: %w", err)
		}
	}
	return draft, nil
}

// Submit finalizes the draft into an order.
//
// Only a draft on the confirmation step is accepted; anything earlier is
// rejected with ErrDraftNotReady. The customer fields are re-validated even
// though step 2 already gated them; a *ValidationError comes back if anything
// regressed. The selection is then
// priced (this is where a stale fixed package surfaces as ErrPackageNotFound)
// and the order is persisted with status pending. Only after the order is
// durable does the messaging hand-off run; if the link cannot be built the
// order is flagged notify_pending instead of being rolled back.
func (s *BookingService) Submit(ctx context.Context, id string) (*SubmitResult, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step != domain.StepConfirm {
		return nil, ErrDraftNotReady
	}

	specialties, err := s.specialtyNames(ctx)
	if err != nil {
		return nil, err
	}
	if errs := domain.ValidateCustomer(draft.Customer, specialties); len(errs) > 0 {
		draft.Errors = errs
		draft.Step = domain.StepPersonalInfo
		if saveErr := s.drafts.Save(ctx, draft, s.draftTTL); saveErr != nil {
			log.Printf("[Booking] Failed to save draft after validation regression: %v", saveErr)
		}
		return nil, &ValidationError{Fields: errs}
	}

	if draft.Selection == nil {
		return nil, fmt.Errorf("no selection on draft")
	}

	settings, err := s.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := s.pricing.Quote(ctx, *draft.Selection, settings.HourlyRate)
	if err != nil {
		return nil, err
	}
	packageName, err := s.pricing.PackageDisplayName(ctx, *draft.Selection)
	if err != nil {
		return nil, err
	}

	packageID := draft.Selection.PackageID
	if draft.Selection.Kind == domain.SelectionCustom {
		packageID = domain.CustomPackageID
	}

	order := &domain.Order{
		CustomerName:          draft.Customer.Name,
		Email:                 draft.Customer.Email,
		Phone:                 draft.Customer.Phone,
		HealthAuthorityNumber: draft.Customer.HealthAuthorityNumber,
		Specialty:             draft.Customer.Specialty,
		PackageID:             packageID,
		PackageName:           packageName,
		Hours:                 quote.Hours,
		TotalPrice:            quote.Price,
		Status:                domain.OrderStatusPending,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Order is durable from here on. The hand-off is best effort.
	link, err := s.notifier.OrderLink(ctx, order)
	if err != nil {
		log.Printf("[Booking] WhatsApp hand-off failed for order %s: %v", order.ID, err)
		if flagErr := s.orderRepo.SetNotifyPending(ctx, order.ID, true); flagErr != nil {
			log.Printf("[Booking] Failed to flag order %s notify_pending: %v", order.ID, flagErr)
		} else {
			order.NotifyPending = true
		}
		link = ""
	}

	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		log.Printf("[Booking] Failed to delete submitted draft %s: %v", draft.ID, err)
	}

	return &SubmitResult{Order: order, WhatsAppURL: link}, nil
}

func (s *BookingService) specialtyNames(ctx context.Context) ([]string, error) {
	specialties, err := s.specialtyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	names := make([]string, 0, len(specialties))
	for _, sp := range specialties {
		names = append(names, sp.Name)
	}
	return names, nil
}
