package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type BookingSource string

const (
	SourceOnline  BookingSource = "online"
	SourceBlocked BookingSource = "blocked"
	SourceStaff   BookingSource = "staff-created"
)

// Booking dates are clinic-local "2006-01-02" strings and times "15:04" strings,
// never time.Time, so slot math stays DST-free.
type Booking struct {
	ID              string            `db:"booking_id"`
	ClinicID        string            `db:"clinic_id"`
	VetID           *string           `db:"vet_id"`
	Date            string            `db:"appointment_date"`
	Time            string            `db:"appointment_time"`
	DurationMinutes int               `db:"duration_minutes"`
	Status          BookingStatus     `db:"status"`
	Source          BookingSource     `db:"booking_source"`
	ClientName      string            `db:"client_name"`
	ClientEmail     string            `db:"client_email"`
	ClientPhone     string            `db:"client_phone"`
	AnimalName      string            `db:"animal_name"`
	AnimalSpecies   string            `db:"animal_species"`
	Reason          string            `db:"consultation_reason"`
	Symptoms        []string          `db:"symptoms"`
	CustomSymptom   string            `db:"custom_symptom"`
	Answers         map[string]string `db:"answers"`
	UrgencyScore    *int              `db:"urgency_score"`
	AnalysisSummary *string           `db:"analysis_summary"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

type Veterinarian struct {
	ID       string `db:"vet_id"`
	ClinicID string `db:"clinic_id"`
	Name     string `db:"vet_name"`
	// Position is the creation order used for first-free-vet assignment.
	Position int `db:"position"`
}

// TimeWindow bounds half a working day. An empty Start or End means the
// half-day is closed.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (w TimeWindow) IsZero() bool {
	return w.Start == "" || w.End == ""
}

type DaySchedule struct {
	IsOpen    bool       `json:"is_open"`
	Morning   TimeWindow `json:"morning"`
	Afternoon TimeWindow `json:"afternoon"`
}

// WeeklySchedule is the clinic-wide working-hours template, keyed by weekday.
// Missing weekdays are closed.
type WeeklySchedule map[time.Weekday]DaySchedule

// VetSchedule overrides the clinic template for one veterinarian on one weekday.
type VetSchedule struct {
	VetID   string       `db:"vet_id"`
	Weekday time.Weekday `db:"weekday"`
	Day     DaySchedule  `db:"day_schedule"`
}

// VetAbsence removes a veterinarian from availability for the whole date
// range, bounds inclusive.
type VetAbsence struct {
	VetID     string `db:"vet_id"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	Reason    string `db:"reason"`
}

type Clinic struct {
	ID                  string         `db:"clinic_id"`
	Slug                string         `db:"slug"`
	Name                string         `db:"clinic_name"`
	SlotDurationMinutes int            `db:"slot_duration_minutes"`
	Schedule            WeeklySchedule `db:"weekly_schedule"`
}

// TimeSlot is a computed bookable triple, never persisted directly.
type TimeSlot struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	VetID           string `json:"vet_id"`
	DurationMinutes int    `json:"duration_minutes"`
	Available       bool   `json:"available"`
	Blocked         bool   `json:"blocked"`
}
