package api

import (
	"vetbook-service/internal/models"
	"vetbook-service/internal/triage"
	"vetbook-service/internal/urgency"
)

type ClinicResponse struct {
	ID                  string `json:"clinic_id"`
	Slug                string `json:"slug"`
	Name                string `json:"name"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

type TriageQuestionsRequest struct {
	Reason        string   `json:"consultation_reason"`
	Symptoms      []string `json:"symptoms"`
	CustomSymptom string   `json:"custom_symptom"`
}

type TriageQuestionsResponse struct {
	Flags  triage.ConditionFlags  `json:"flags"`
	Groups []triage.QuestionGroup `json:"groups"`
}

type TriageValidateRequest struct {
	Reason        string            `json:"consultation_reason"`
	Symptoms      []string          `json:"symptoms"`
	CustomSymptom string            `json:"custom_symptom"`
	Answers       map[string]string `json:"answers"`
	KeyPrefix     string            `json:"key_prefix"`
}

type TriageValidateResponse struct {
	CanProceed   bool     `json:"can_proceed"`
	MissingKeys  []string `json:"missing_keys,omitempty"`
	RequiredKeys []string `json:"required_keys"`
}

type BookingRequest struct {
	ClinicSlug    string            `json:"clinic_slug"`
	Date          string            `json:"appointment_date"`
	Time          string            `json:"appointment_time"`
	VetID         *string           `json:"vet_id,omitempty"`
	ClientName    string            `json:"client_name"`
	ClientEmail   string            `json:"client_email"`
	ClientPhone   string            `json:"client_phone"`
	AnimalName    string            `json:"animal_name"`
	AnimalSpecies string            `json:"animal_species"`
	Reason        string            `json:"consultation_reason"`
	Symptoms      []string          `json:"symptoms"`
	CustomSymptom string            `json:"custom_symptom"`
	Answers       map[string]string `json:"answers"`
}

type BookingResponse struct {
	ID            string  `json:"booking_id"`
	ClinicID      string  `json:"clinic_id"`
	VetID         *string `json:"vet_id,omitempty"`
	Date          string  `json:"appointment_date"`
	Time          string  `json:"appointment_time"`
	Status        string  `json:"status"`
	Source        string  `json:"booking_source"`
	ClientName    string  `json:"client_name"`
	AnimalName    string  `json:"animal_name"`
	AnimalSpecies string  `json:"animal_species"`
	Reason        string  `json:"consultation_reason"`
	UrgencyScore  *int    `json:"urgency_score,omitempty"`
	// ClientBadge is present only above the client-facing threshold.
	ClientBadge *urgency.Classification `json:"urgency_badge,omitempty"`
}

type BoardEntry struct {
	Booking BookingResponse         `json:"booking"`
	Staff   *urgency.Classification `json:"staff_urgency,omitempty"`
}

type SlotsResponse struct {
	Slots []models.TimeSlot `json:"slots"`
}

type MoveRequest struct {
	Date  string  `json:"appointment_date"`
	Time  string  `json:"appointment_time"`
	VetID *string `json:"vet_id,omitempty"`
}

type ClipboardRequest struct {
	Session string `json:"session"`
	Action  string `json:"action"` // cut | copy
}

type PasteRequest struct {
	Session string `json:"session"`
	Date    string `json:"appointment_date"`
	Time    string `json:"appointment_time"`
	VetID   string `json:"vet_id"`
}

type BlockRequest struct {
	ClinicID  string `json:"clinic_id"`
	VetID     string `json:"vet_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

type BlockResponse struct {
	BlockedSlots int `json:"blocked_slots"`
}

type AdviceResponse struct {
	Advice    string `json:"advice,omitempty"`
	Available bool   `json:"available"`
}

type PendingCountResponse struct {
	ClinicID string `json:"clinic_id"`
	Pending  int    `json:"pending"`
}
