package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetbook-service/internal/models"
)

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func mondayClinic() models.WeeklySchedule {
	return models.WeeklySchedule{
		time.Monday: {
			IsOpen:    true,
			Morning:   models.TimeWindow{Start: "08:00", End: "12:00"},
			Afternoon: models.TimeWindow{Start: "14:00", End: "18:00"},
		},
	}
}

func oneVet() []models.Veterinarian {
	return []models.Veterinarian{{ID: "vet-1", Name: "Dr Martin", Position: 1}}
}

func strPtr(s string) *string { return &s }

func TestComputeAvailableSlots_OpenMonday(t *testing.T) {
	slots := ComputeAvailableSlots(Input{
		Schedule:            mondayClinic(),
		Vets:                oneVet(),
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	})

	require.Len(t, slots, 32)

	morning, afternoon := 0, 0
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.False(t, s.Blocked)
		assert.Equal(t, "2026-01-05", s.Date)
		assert.Equal(t, "vet-1", s.VetID)
		assert.Equal(t, 15, s.DurationMinutes)
		if s.Time < "12:00" {
			morning++
		} else {
			afternoon++
		}
	}
	assert.Equal(t, 16, morning)
	assert.Equal(t, 16, afternoon)

	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "11:45", slots[15].Time)
	assert.Equal(t, "14:00", slots[16].Time)
	assert.Equal(t, "17:45", slots[31].Time)
}

func TestComputeAvailableSlots_ClosedDayOmitted(t *testing.T) {
	// horizon covers Monday + Tuesday, only Monday is in the template
	slots := ComputeAvailableSlots(Input{
		Schedule:            mondayClinic(),
		Vets:                oneVet(),
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         2,
	})

	for _, s := range slots {
		assert.Equal(t, "2026-01-05", s.Date)
	}
}

func TestComputeAvailableSlots_IsOpenFalse(t *testing.T) {
	sched := mondayClinic()
	day := sched[time.Monday]
	day.IsOpen = false
	sched[time.Monday] = day

	slots := ComputeAvailableSlots(Input{
		Schedule:            sched,
		Vets:                oneVet(),
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	})

	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_InvertedWindowClosesHalfDayOnly(t *testing.T) {
	sched := mondayClinic()
	day := sched[time.Monday]
	day.Morning = models.TimeWindow{Start: "12:00", End: "08:00"}
	sched[time.Monday] = day

	slots := ComputeAvailableSlots(Input{
		Schedule:            sched,
		Vets:                oneVet(),
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	})

	require.Len(t, slots, 16)
	for _, s := range slots {
		assert.GreaterOrEqual(t, s.Time, "14:00")
	}
}

func TestComputeAvailableSlots_AbsenceRemovesVet(t *testing.T) {
	slots := ComputeAvailableSlots(Input{
		Schedule: mondayClinic(),
		Vets:     oneVet(),
		Absences: []models.VetAbsence{
			{VetID: "vet-1", StartDate: "2026-01-01", EndDate: "2026-01-10"},
		},
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	})

	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_BookingOccupiesTriple(t *testing.T) {
	in := Input{
		Schedule: mondayClinic(),
		Vets:     oneVet(),
		Bookings: []models.Booking{
			{VetID: strPtr("vet-1"), Date: "2026-01-05", Time: "09:00", Status: models.BookingConfirmed, Source: models.SourceOnline},
			{VetID: strPtr("vet-1"), Date: "2026-01-05", Time: "09:15", Status: models.BookingCancelled, Source: models.SourceOnline},
		},
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	}

	available := AvailableOnly(ComputeAvailableSlots(in))

	times := map[string]bool{}
	for _, s := range available {
		times[s.Time] = true
	}

	assert.False(t, times["09:00"], "occupied slot still offered")
	assert.True(t, times["09:15"], "cancelled booking must free the slot")
}

func TestComputeAvailableSlots_BlockedRange(t *testing.T) {
	vets := []models.Veterinarian{
		{ID: "vet-1", Position: 1},
		{ID: "vet-2", Position: 2},
	}

	in := Input{
		Schedule: mondayClinic(),
		Vets:     vets,
		Bookings: []models.Booking{
			{VetID: strPtr("vet-1"), Date: "2026-01-05", Time: "10:00", Status: models.BookingConfirmed, Source: models.SourceBlocked},
			{VetID: strPtr("vet-1"), Date: "2026-01-05", Time: "10:15", Status: models.BookingConfirmed, Source: models.SourceBlocked},
		},
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	}

	slots := ComputeAvailableSlots(in)

	blockedTimes := 0
	for _, s := range slots {
		if s.Blocked {
			blockedTimes++
			assert.Equal(t, "vet-1", s.VetID)
			assert.False(t, s.Available)
		}
	}
	assert.Equal(t, 2, blockedTimes)

	available := AvailableOnly(slots)
	for _, s := range available {
		if s.VetID == "vet-1" {
			assert.NotEqual(t, "10:00", s.Time)
			assert.NotEqual(t, "10:15", s.Time)
		}
	}

	// the other vet keeps the full day
	vet2 := 0
	for _, s := range available {
		if s.VetID == "vet-2" {
			vet2++
		}
	}
	assert.Equal(t, 32, vet2)
}

func TestComputeAvailableSlots_VetOverrideReplacesTemplate(t *testing.T) {
	in := Input{
		Schedule: mondayClinic(),
		Vets:     oneVet(),
		VetSchedules: []models.VetSchedule{
			{
				VetID:   "vet-1",
				Weekday: time.Monday,
				Day: models.DaySchedule{
					IsOpen:  true,
					Morning: models.TimeWindow{Start: "09:00", End: "10:00"},
				},
			},
		},
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	}

	slots := ComputeAvailableSlots(in)

	require.Len(t, slots, 4)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "09:45", slots[3].Time)
}

func TestFirstFreeVet_CreationOrder(t *testing.T) {
	vets := []models.Veterinarian{
		{ID: "vet-2", Position: 2},
		{ID: "vet-1", Position: 1},
	}

	in := Input{
		Schedule:            mondayClinic(),
		Vets:                vets,
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	}

	vetID, ok := FirstFreeVet(in, "2026-01-05", "09:00")
	require.True(t, ok)
	assert.Equal(t, "vet-1", vetID)

	// vet-1 busy at 09:00: the next one in creation order takes it
	in.Bookings = []models.Booking{
		{VetID: strPtr("vet-1"), Date: "2026-01-05", Time: "09:00", Status: models.BookingPending, Source: models.SourceOnline},
	}

	vetID, ok = FirstFreeVet(in, "2026-01-05", "09:00")
	require.True(t, ok)
	assert.Equal(t, "vet-2", vetID)
}

func TestFirstFreeVet_NoneFree(t *testing.T) {
	in := Input{
		Schedule: mondayClinic(),
		Vets:     oneVet(),
		Bookings: []models.Booking{
			{VetID: strPtr("vet-1"), Date: "2026-01-05", Time: "09:00", Status: models.BookingConfirmed, Source: models.SourceOnline},
		},
		SlotDurationMinutes: 15,
		From:                monday,
		HorizonDays:         1,
	}

	_, ok := FirstFreeVet(in, "2026-01-05", "09:00")
	assert.False(t, ok)
}
