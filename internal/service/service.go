package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vetbook-service/api"
	"vetbook-service/internal/ai"
	"vetbook-service/internal/lock"
	"vetbook-service/internal/models"
	"vetbook-service/internal/notify"
	"vetbook-service/internal/planning"
	"vetbook-service/internal/schedule"
	"vetbook-service/internal/triage"
	"vetbook-service/internal/urgency"
	"vetbook-service/pkg/response"
)

// ReasonSymptoms is the consultation reason that requires the triage
// questionnaire; every other reason skips it.
const ReasonSymptoms = "symptoms"

type Store interface {
	// Clinics
	GetClinicBySlug(ctx context.Context, slug string) (*models.Clinic, error)
	GetClinic(ctx context.Context, id string) (*models.Clinic, error)

	// Veterinarians
	ListVeterinarians(ctx context.Context, clinicID string) ([]models.Veterinarian, error)
	ListVetSchedules(ctx context.Context, clinicID string) ([]models.VetSchedule, error)
	ListVetAbsences(ctx context.Context, clinicID string) ([]models.VetAbsence, error)

	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
	// CreateBookings inserts all rows in one transaction: all or none.
	CreateBookings(ctx context.Context, bookings []*models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, clinicID, fromDate, toDate string) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	UpdateBookingSlot(ctx context.Context, id, date, clock string, vetID *string) error
	UpdateBookingAnalysis(ctx context.Context, id string, score int, summary string) error
	DeleteBooking(ctx context.Context, id string) error
	DeleteBlockedSlots(ctx context.Context, clinicID, vetID, date string, clocks []string) (int, error)
	ListPendingBookingIDs(ctx context.Context, clinicID string) ([]string, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, booking *models.Booking) (*ai.AnalysisResult, error)
	Advice(ctx context.Context, booking *models.Booking) (string, error)
}

type Notifier interface {
	Publish(ctx context.Context, event notify.Event) error
}

type Settings struct {
	SlotDurationMinutes int
	HorizonDays         int
	LockTTL             time.Duration
}

type Service struct {
	store    Store
	locker   lock.Locker
	notifier Notifier
	analyzer Analyzer
	settings Settings

	now func() time.Time

	mu         sync.Mutex
	clipboards map[string]*planning.Clipboard
}

func NewService(store Store, locker lock.Locker, notifier Notifier, analyzer Analyzer, settings Settings) *Service {
	return &Service{
		store:      store,
		locker:     locker,
		notifier:   notifier,
		analyzer:   analyzer,
		settings:   settings,
		now:        time.Now,
		clipboards: map[string]*planning.Clipboard{},
	}
}

// Clinics

func (s *Service) GetClinicBySlug(ctx context.Context, slug string) (*api.ClinicResponse, error) {
	const op = "service.GetClinicBySlug"

	clinic, err := s.store.GetClinicBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.ClinicResponse{
		ID:                  clinic.ID,
		Slug:                clinic.Slug,
		Name:                clinic.Name,
		SlotDurationMinutes: s.slotDuration(clinic),
	}, nil
}

// Triage

func (s *Service) TriageQuestions(req *api.TriageQuestionsRequest) (*api.TriageQuestionsResponse, error) {
	const op = "service.TriageQuestions"

	if err := validateSymptomSelection(req.Reason, req.Symptoms, req.CustomSymptom); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	flags := triage.ComputeConditionFlags(req.Symptoms, req.CustomSymptom)

	return &api.TriageQuestionsResponse{
		Flags:  flags,
		Groups: triage.SelectQuestionGroups(flags),
	}, nil
}

func (s *Service) ValidateTriage(req *api.TriageValidateRequest) *api.TriageValidateResponse {
	flags := triage.ComputeConditionFlags(req.Symptoms, req.CustomSymptom)
	required := triage.RequiredKeys(flags, req.KeyPrefix)

	answers := triage.AnswerMap(req.Answers)

	var missing []string
	for _, key := range required {
		v, ok := answers.Answer(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}

	return &api.TriageValidateResponse{
		CanProceed:   triage.CanProceed(flags, answers, req.KeyPrefix),
		MissingKeys:  missing,
		RequiredKeys: required,
	}
}

// Slots

func (s *Service) AvailableSlots(ctx context.Context, clinicSlug string) ([]models.TimeSlot, error) {
	const op = "service.AvailableSlots"

	clinic, err := s.store.GetClinicBySlug(ctx, clinicSlug)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in, err := s.scheduleInput(ctx, clinic)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return schedule.AvailableOnly(schedule.ComputeAvailableSlots(in)), nil
}

// Bookings

func (s *Service) SubmitBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.SubmitBooking"

	clinic, err := s.store.GetClinicBySlug(ctx, req.ClinicSlug)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.Date == "" || req.Time == "" {
		return nil, fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	if err := validateSymptomSelection(req.Reason, req.Symptoms, req.CustomSymptom); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	flags := triage.ComputeConditionFlags(req.Symptoms, req.CustomSymptom)
	if !triage.CanProceed(flags, triage.AnswerMap(req.Answers), "") {
		return nil, fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	in, err := s.scheduleInput(ctx, clinic)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var vetID string
	if req.VetID != nil {
		vetID = *req.VetID
	} else {
		// clinic picks: first free vet in creation order, resolved now,
		// not at display time
		free, ok := schedule.FirstFreeVet(in, req.Date, req.Time)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
		}
		vetID = free
	}

	lockKey := lock.SlotKey(clinic.ID, req.Date, req.Time, vetID)
	locked, err := s.locker.Lock(ctx, lockKey, s.settings.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	if err := planning.CheckSlot(in.Bookings, req.Date, req.Time, vetID, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking := &models.Booking{
		ID:              uuid.NewString(),
		ClinicID:        clinic.ID,
		VetID:           &vetID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: s.slotDuration(clinic),
		Status:          models.BookingPending,
		Source:          models.SourceOnline,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		AnimalName:      req.AnimalName,
		AnimalSpecies:   req.AnimalSpecies,
		Reason:          req.Reason,
		Symptoms:        req.Symptoms,
		CustomSymptom:   req.CustomSymptom,
		Answers:         req.Answers,
	}

	if _, err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("%s: create booking: %w", op, err)
	}

	s.publish(ctx, notify.EventInsert, booking)

	// The analysis step is eventually consistent: any failure here leaves
	// the booking with a null score and never undoes the insert.
	if result, aerr := s.analyzer.Analyze(ctx, booking); aerr == nil {
		if uerr := s.store.UpdateBookingAnalysis(ctx, booking.ID, result.UrgencyScore, result.AnalysisSummary); uerr == nil {
			booking.UrgencyScore = &result.UrgencyScore
			booking.AnalysisSummary = &result.AnalysisSummary
		}
	}

	return bookingResponse(booking), nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookingResponse(booking), nil
}

// PlanningBoard lists the date range ordered for staff: urgency first,
// blocked placeholders filtered out.
func (s *Service) PlanningBoard(ctx context.Context, clinicID, fromDate, toDate string) ([]api.BoardEntry, error) {
	const op = "service.PlanningBoard"

	bookings, err := s.store.ListBookings(ctx, clinicID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	board := urgency.SortForBoard(bookings)

	entries := make([]api.BoardEntry, 0, len(board))
	for i := range board {
		entry := api.BoardEntry{Booking: *bookingResponse(&board[i])}
		if board[i].UrgencyScore != nil {
			c := urgency.Classify(*board[i].UrgencyScore)
			entry.Staff = &c
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *Service) ConfirmBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	return s.setStatus(ctx, "service.ConfirmBooking", id, models.BookingConfirmed)
}

func (s *Service) CancelBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	return s.setStatus(ctx, "service.CancelBooking", id, models.BookingCancelled)
}

func (s *Service) CompleteBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	return s.setStatus(ctx, "service.CompleteBooking", id, models.BookingCompleted)
}

func (s *Service) setStatus(ctx context.Context, op string, id string, status models.BookingStatus) (*api.BookingResponse, error) {
	if err := s.store.UpdateBookingStatus(ctx, id, status); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, notify.EventUpdate, booking)

	return bookingResponse(booking), nil
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	const op = "service.DeleteBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, notify.EventDelete, booking)

	return nil
}

func (s *Service) MoveBooking(ctx context.Context, id string, req *api.MoveRequest) (*api.BookingResponse, error) {
	const op = "service.MoveBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	clinic, err := s.store.GetClinic(ctx, booking.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in, err := s.scheduleInput(ctx, clinic)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	vetID := req.VetID
	if vetID == nil {
		vetID = booking.VetID
	}
	if vetID == nil {
		free, ok := schedule.FirstFreeVet(in, req.Date, req.Time)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
		}
		vetID = &free
	}

	lockKey := lock.SlotKey(clinic.ID, req.Date, req.Time, *vetID)
	locked, err := s.locker.Lock(ctx, lockKey, s.settings.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	if err := planning.CheckSlot(in.Bookings, req.Date, req.Time, *vetID, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.UpdateBookingSlot(ctx, id, req.Date, req.Time, vetID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	moved, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, notify.EventUpdate, moved)

	return bookingResponse(moved), nil
}

// Clipboard

func (s *Service) clipboard(session string) *planning.Clipboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	clip, ok := s.clipboards[session]
	if !ok {
		clip = &planning.Clipboard{}
		s.clipboards[session] = clip
	}

	return clip
}

// CopyToClipboard stores a booking on the staff session's clipboard for a
// later paste. Blocked placeholder rows are not copyable.
func (s *Service) CopyToClipboard(ctx context.Context, bookingID, session string, action planning.Action) error {
	const op = "service.CopyToClipboard"

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if booking.Source == models.SourceBlocked {
		return fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	clip := s.clipboard(session)

	switch action {
	case planning.ActionCut:
		clip.Cut(*booking)
	case planning.ActionCopy:
		clip.Copy(*booking)
	default:
		return fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	return nil
}

func (s *Service) PasteBooking(ctx context.Context, req *api.PasteRequest) (*api.BookingResponse, error) {
	const op = "service.PasteBooking"

	clip := s.clipboard(req.Session)

	vetID := req.VetID
	pasted, action, err := clip.Paste(req.Date, req.Time, &vetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// on any failure past this point a cut must go back on the clipboard,
	// the source booking would otherwise be stranded
	restore := func() {
		if action == planning.ActionCut {
			original, gerr := s.store.GetBooking(ctx, pasted.ID)
			if gerr == nil {
				clip.Cut(*original)
			}
		}
	}

	clinic, err := s.store.GetClinic(ctx, pasted.ClinicID)
	if err != nil {
		restore()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in, err := s.scheduleInput(ctx, clinic)
	if err != nil {
		restore()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lockKey := lock.SlotKey(clinic.ID, req.Date, req.Time, vetID)
	locked, err := s.locker.Lock(ctx, lockKey, s.settings.LockTTL)
	if err != nil {
		restore()
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		restore()
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	ignoreID := ""
	if action == planning.ActionCut {
		ignoreID = pasted.ID
	}

	if err := planning.CheckSlot(in.Bookings, req.Date, req.Time, vetID, ignoreID); err != nil {
		restore()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if action == planning.ActionCut {
		if err := s.store.UpdateBookingSlot(ctx, pasted.ID, req.Date, req.Time, &vetID); err != nil {
			restore()
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		moved, err := s.store.GetBooking(ctx, pasted.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		s.publish(ctx, notify.EventUpdate, moved)

		return bookingResponse(moved), nil
	}

	pasted.ID = uuid.NewString()

	if _, err := s.store.CreateBooking(ctx, &pasted); err != nil {
		return nil, fmt.Errorf("%s: create booking: %w", op, err)
	}

	s.publish(ctx, notify.EventInsert, &pasted)

	return bookingResponse(&pasted), nil
}

// Blocked ranges

// BlockRange closes part of a day by inserting one blocked-source booking
// row per slot increment. Increments already holding a real appointment are
// skipped, never overwritten. Returns how many rows were inserted.
func (s *Service) BlockRange(ctx context.Context, req *api.BlockRequest) (int, error) {
	const op = "service.BlockRange"

	clinic, err := s.store.GetClinic(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	clocks := schedule.ClockRange(req.StartTime, req.EndTime, s.slotDuration(clinic))
	if len(clocks) == 0 {
		return 0, fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	existing, err := s.store.ListBookings(ctx, clinic.ID, req.Date, req.Date)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var inserted []*models.Booking

	for _, clock := range clocks {
		if planning.CheckSlot(existing, req.Date, clock, req.VetID, "") != nil {
			continue
		}

		vetID := req.VetID
		inserted = append(inserted, &models.Booking{
			ID:              uuid.NewString(),
			ClinicID:        clinic.ID,
			VetID:           &vetID,
			Date:            req.Date,
			Time:            clock,
			DurationMinutes: s.slotDuration(clinic),
			Status:          models.BookingConfirmed,
			Source:          models.SourceBlocked,
			Reason:          req.Reason,
		})
	}

	if len(inserted) > 0 {
		if err := s.store.CreateBookings(ctx, inserted); err != nil {
			return 0, fmt.Errorf("%s: create blocked rows: %w", op, err)
		}
	}

	for _, row := range inserted {
		s.publish(ctx, notify.EventInsert, row)
	}

	return len(inserted), nil
}

func (s *Service) UnblockRange(ctx context.Context, req *api.BlockRequest) (int, error) {
	const op = "service.UnblockRange"

	clinic, err := s.store.GetClinic(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	clocks := schedule.ClockRange(req.StartTime, req.EndTime, s.slotDuration(clinic))
	if len(clocks) == 0 {
		return 0, fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	deleted, err := s.store.DeleteBlockedSlots(ctx, clinic.ID, req.VetID, req.Date, clocks)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}

// Advice

// Advice returns the display-only AI advice for a booking. Callers show an
// unavailable state on error; nothing is retried.
func (s *Service) Advice(ctx context.Context, bookingID string) (string, error) {
	const op = "service.Advice"

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	advice, err := s.analyzer.Advice(ctx, booking)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return advice, nil
}

// PendingBookingIDs feeds the counter's seed at startup.
func (s *Service) PendingBookingIDs(ctx context.Context, clinicID string) ([]string, error) {
	const op = "service.PendingBookingIDs"

	ids, err := s.store.ListPendingBookingIDs(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

// helpers

func (s *Service) slotDuration(clinic *models.Clinic) int {
	if clinic.SlotDurationMinutes > 0 {
		return clinic.SlotDurationMinutes
	}

	return s.settings.SlotDurationMinutes
}

func (s *Service) scheduleInput(ctx context.Context, clinic *models.Clinic) (schedule.Input, error) {
	vets, err := s.store.ListVeterinarians(ctx, clinic.ID)
	if err != nil {
		return schedule.Input{}, err
	}

	vetSchedules, err := s.store.ListVetSchedules(ctx, clinic.ID)
	if err != nil {
		return schedule.Input{}, err
	}

	absences, err := s.store.ListVetAbsences(ctx, clinic.ID)
	if err != nil {
		return schedule.Input{}, err
	}

	from := s.now()
	to := from.AddDate(0, 0, s.settings.HorizonDays)

	bookings, err := s.store.ListBookings(ctx, clinic.ID,
		from.Format(schedule.DateLayout), to.Format(schedule.DateLayout))
	if err != nil {
		return schedule.Input{}, err
	}

	return schedule.Input{
		Schedule:            clinic.Schedule,
		Vets:                vets,
		VetSchedules:        vetSchedules,
		Absences:            absences,
		Bookings:            bookings,
		SlotDurationMinutes: s.slotDuration(clinic),
		From:                from,
		HorizonDays:         s.settings.HorizonDays,
	}, nil
}

func (s *Service) publish(ctx context.Context, kind notify.EventKind, booking *models.Booking) {
	// best effort: the feed only refreshes staff counters
	_ = s.notifier.Publish(ctx, notify.Event{
		Kind:      kind,
		BookingID: booking.ID,
		ClinicID:  booking.ClinicID,
		Status:    booking.Status,
		Source:    booking.Source,
	})
}

func validateSymptomSelection(reason string, symptoms []string, customSymptom string) error {
	if reason != ReasonSymptoms {
		return nil
	}

	if len(symptoms) == 0 && strings.TrimSpace(customSymptom) == "" {
		return response.ErrValidation
	}

	return nil
}

func bookingResponse(b *models.Booking) *api.BookingResponse {
	resp := &api.BookingResponse{
		ID:            b.ID,
		ClinicID:      b.ClinicID,
		VetID:         b.VetID,
		Date:          b.Date,
		Time:          b.Time,
		Status:        string(b.Status),
		Source:        string(b.Source),
		ClientName:    b.ClientName,
		AnimalName:    b.AnimalName,
		AnimalSpecies: b.AnimalSpecies,
		Reason:        b.Reason,
		UrgencyScore:  b.UrgencyScore,
	}

	if b.Source != models.SourceBlocked {
		if badge, shown := urgency.ClientBadge(b.UrgencyScore); shown {
			resp.ClientBadge = &badge
		}
	}

	return resp
}
