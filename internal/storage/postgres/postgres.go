package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"vetbook-service/internal/models"
	"vetbook-service/pkg/response"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// #### clinics ####

func (s *Storage) GetClinicBySlug(ctx context.Context, slug string) (*models.Clinic, error) {
	const op = "storage.postgres.GetClinicBySlug"

	return s.getClinic(ctx, op, `WHERE slug=$1`, slug)
}

func (s *Storage) GetClinic(ctx context.Context, id string) (*models.Clinic, error) {
	const op = "storage.postgres.GetClinic"

	return s.getClinic(ctx, op, `WHERE clinic_id=$1`, id)
}

func (s *Storage) getClinic(ctx context.Context, op, where string, arg any) (*models.Clinic, error) {
	var clinic models.Clinic
	var scheduleJSON []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT clinic_id, slug, clinic_name, slot_duration_minutes, weekly_schedule
		FROM clinics `+where, arg).
		Scan(
			&clinic.ID,
			&clinic.Slug,
			&clinic.Name,
			&clinic.SlotDurationMinutes,
			&scheduleJSON,
		)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(scheduleJSON, &clinic.Schedule); err != nil {
		return nil, fmt.Errorf("%s: weekly_schedule: %w", op, err)
	}

	return &clinic, nil
}

// ListClinicIDs feeds the pending-counter seed at startup.
func (s *Storage) ListClinicIDs(ctx context.Context) ([]string, error) {
	const op = "storage.postgres.ListClinicIDs"

	rows, err := s.db.QueryContext(ctx, `SELECT clinic_id FROM clinics`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string

		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// #### veterinarians ####

func (s *Storage) ListVeterinarians(ctx context.Context, clinicID string) ([]models.Veterinarian, error) {
	const op = "storage.postgres.ListVeterinarians"

	rows, err := s.db.QueryContext(ctx,
		`SELECT vet_id, clinic_id, vet_name, position
		FROM veterinarians WHERE clinic_id=$1
		ORDER BY position`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var vets []models.Veterinarian

	for rows.Next() {
		var vet models.Veterinarian

		if err := rows.Scan(&vet.ID, &vet.ClinicID, &vet.Name, &vet.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		vets = append(vets, vet)
	}

	return vets, rows.Err()
}

func (s *Storage) ListVetSchedules(ctx context.Context, clinicID string) ([]models.VetSchedule, error) {
	const op = "storage.postgres.ListVetSchedules"

	rows, err := s.db.QueryContext(ctx,
		`SELECT vs.vet_id, vs.weekday, vs.day_schedule
		FROM vet_schedules vs
		JOIN veterinarians v ON v.vet_id = vs.vet_id
		WHERE v.clinic_id=$1`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var schedules []models.VetSchedule

	for rows.Next() {
		var vs models.VetSchedule
		var dayJSON []byte

		if err := rows.Scan(&vs.VetID, &vs.Weekday, &dayJSON); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := json.Unmarshal(dayJSON, &vs.Day); err != nil {
			return nil, fmt.Errorf("%s: day_schedule: %w", op, err)
		}

		schedules = append(schedules, vs)
	}

	return schedules, rows.Err()
}

func (s *Storage) ListVetAbsences(ctx context.Context, clinicID string) ([]models.VetAbsence, error) {
	const op = "storage.postgres.ListVetAbsences"

	rows, err := s.db.QueryContext(ctx,
		`SELECT a.vet_id, a.start_date, a.end_date, a.reason
		FROM vet_absences a
		JOIN veterinarians v ON v.vet_id = a.vet_id
		WHERE v.clinic_id=$1`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var absences []models.VetAbsence

	for rows.Next() {
		var a models.VetAbsence

		if err := rows.Scan(&a.VetID, &a.StartDate, &a.EndDate, &a.Reason); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		absences = append(absences, a)
	}

	return absences, rows.Err()
}

// #### bookings ####

func insertBooking(ctx context.Context, ex execer, b *models.Booking) error {
	answersJSON, err := json.Marshal(b.Answers)
	if err != nil {
		return fmt.Errorf("answers: %w", err)
	}

	_, err = ex.ExecContext(ctx,
		`INSERT INTO bookings
		(booking_id, clinic_id, vet_id, appointment_date, appointment_time,
		duration_minutes, status, booking_source, client_name, client_email,
		client_phone, animal_name, animal_species, consultation_reason,
		symptoms, custom_symptom, answers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now())`,
		b.ID,
		b.ClinicID,
		b.VetID,
		b.Date,
		b.Time,
		b.DurationMinutes,
		string(b.Status),
		string(b.Source),
		b.ClientName,
		b.ClientEmail,
		b.ClientPhone,
		b.AnimalName,
		b.AnimalSpecies,
		b.Reason,
		pq.Array(b.Symptoms),
		b.CustomSymptom,
		answersJSON,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return response.ErrConflict
		}
		if ok && sqlErr.Code == "23503" {
			return response.ErrNotFound
		}

		return err
	}

	return nil
}

func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) (string, error) {
	const op = "storage.postgres.CreateBooking"

	if err := insertBooking(ctx, s.db, booking); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return booking.ID, nil
}

func (s *Storage) CreateBookings(ctx context.Context, bookings []*models.Booking) error {
	const op = "storage.postgres.CreateBookings"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, b := range bookings {
		if err := insertBooking(ctx, tx, b); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

const bookingColumns = `booking_id, clinic_id, vet_id, appointment_date, appointment_time,
	duration_minutes, status, booking_source, client_name, client_email,
	client_phone, animal_name, animal_species, consultation_reason,
	symptoms, custom_symptom, answers, urgency_score, analysis_summary,
	created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*models.Booking, error) {
	var b models.Booking
	var symptoms pq.StringArray
	var answersJSON []byte

	err := row.Scan(
		&b.ID,
		&b.ClinicID,
		&b.VetID,
		&b.Date,
		&b.Time,
		&b.DurationMinutes,
		&b.Status,
		&b.Source,
		&b.ClientName,
		&b.ClientEmail,
		&b.ClientPhone,
		&b.AnimalName,
		&b.AnimalSpecies,
		&b.Reason,
		&symptoms,
		&b.CustomSymptom,
		&answersJSON,
		&b.UrgencyScore,
		&b.AnalysisSummary,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Symptoms = symptoms

	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &b.Answers); err != nil {
			return nil, fmt.Errorf("answers: %w", err)
		}
	}

	return &b, nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_id=$1`, id)

	booking, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}

func (s *Storage) ListBookings(ctx context.Context, clinicID, fromDate, toDate string) ([]models.Booking, error) {
	const op = "storage.postgres.ListBookings"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookingColumns+`
		FROM bookings
		WHERE clinic_id=$1 AND appointment_date BETWEEN $2 AND $3
		ORDER BY appointment_date, appointment_time`,
		clinicID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var bookings []models.Booking

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func (s *Storage) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const op = "storage.postgres.UpdateBookingStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status=$1, updated_at=now() WHERE booking_id=$2`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateBookingSlot(ctx context.Context, id, date, clock string, vetID *string) error {
	const op = "storage.postgres.UpdateBookingSlot"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings
		SET appointment_date=$1, appointment_time=$2, vet_id=$3, updated_at=now()
		WHERE booking_id=$4`,
		date, clock, vetID, id)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return fmt.Errorf("%s: %w", op, response.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateBookingAnalysis(ctx context.Context, id string, score int, summary string) error {
	const op = "storage.postgres.UpdateBookingAnalysis"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings
		SET urgency_score=$1, analysis_summary=$2, updated_at=now()
		WHERE booking_id=$3`,
		score, summary, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBooking"

	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id=$1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteBlockedSlots(ctx context.Context, clinicID, vetID, date string, clocks []string) (int, error) {
	const op = "storage.postgres.DeleteBlockedSlots"

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bookings
		WHERE clinic_id=$1 AND vet_id=$2 AND appointment_date=$3
		AND booking_source='blocked' AND appointment_time = ANY($4)`,
		clinicID, vetID, date, pq.Array(clocks))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}

func (s *Storage) ListPendingBookingIDs(ctx context.Context, clinicID string) ([]string, error) {
	const op = "storage.postgres.ListPendingBookingIDs"

	rows, err := s.db.QueryContext(ctx,
		`SELECT booking_id FROM bookings
		WHERE clinic_id=$1 AND status='pending' AND booking_source <> 'blocked'`,
		clinicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string

		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
