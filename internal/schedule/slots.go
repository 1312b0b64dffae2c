package schedule

import (
	"fmt"
	"sort"
	"time"

	"vetbook-service/internal/models"
)

const DateLayout = "2006-01-02"
const ClockLayout = "15:04"

// Input carries everything the slot computation reads. Bookings must be the
// refreshed list for the horizon; the computation itself never touches a
// store.
type Input struct {
	Schedule            models.WeeklySchedule
	Vets                []models.Veterinarian
	VetSchedules        []models.VetSchedule
	Absences            []models.VetAbsence
	Bookings            []models.Booking
	SlotDurationMinutes int
	From                time.Time
	HorizonDays         int
}

func tripleKey(date, clock, vetID string) string {
	return date + "|" + clock + "|" + vetID
}

// ComputeAvailableSlots walks the horizon day by day and discretizes each
// open window into slot-duration increments, exclusive of the window end. A
// veterinarian absent on a date contributes no slots for it; a half-day whose
// start is not before its end is closed without closing the other half. A
// slot is unavailable when a non-cancelled booking occupies the exact
// (date, time, vet) triple, and blocked when the occupant is a blocked-source
// row. Use AvailableOnly for the client-facing bookable set.
func ComputeAvailableSlots(in Input) []models.TimeSlot {
	if in.SlotDurationMinutes <= 0 || in.HorizonDays <= 0 {
		return nil
	}

	occupied := map[string]bool{}
	blocked := map[string]bool{}

	for _, b := range in.Bookings {
		if b.Status == models.BookingCancelled || b.VetID == nil {
			continue
		}
		key := tripleKey(b.Date, b.Time, *b.VetID)
		occupied[key] = true
		if b.Source == models.SourceBlocked {
			blocked[key] = true
		}
	}

	overrides := map[string]models.DaySchedule{}
	for _, vs := range in.VetSchedules {
		overrides[fmt.Sprintf("%s|%d", vs.VetID, vs.Weekday)] = vs.Day
	}

	vets := append([]models.Veterinarian(nil), in.Vets...)
	sort.SliceStable(vets, func(i, j int) bool {
		return vets[i].Position < vets[j].Position
	})

	var slots []models.TimeSlot

	for i := 0; i < in.HorizonDays; i++ {
		day := in.From.AddDate(0, 0, i)
		date := day.Format(DateLayout)
		weekday := day.Weekday()

		for _, vet := range vets {
			if vetAbsent(in.Absences, vet.ID, date) {
				continue
			}

			sched, ok := in.Schedule[weekday]
			if override, found := overrides[fmt.Sprintf("%s|%d", vet.ID, weekday)]; found {
				sched, ok = override, true
			}
			if !ok || !sched.IsOpen {
				continue
			}

			for _, window := range []models.TimeWindow{sched.Morning, sched.Afternoon} {
				for _, clock := range discretize(window, in.SlotDurationMinutes) {
					key := tripleKey(date, clock, vet.ID)
					slot := models.TimeSlot{
						Date:            date,
						Time:            clock,
						VetID:           vet.ID,
						DurationMinutes: in.SlotDurationMinutes,
						Blocked:         blocked[key],
					}
					slot.Available = !occupied[key]
					slots = append(slots, slot)
				}
			}
		}
	}

	return slots
}

// AvailableOnly keeps the bookable set: free and not blocked.
func AvailableOnly(slots []models.TimeSlot) []models.TimeSlot {
	result := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Available && !s.Blocked {
			result = append(result, s)
		}
	}

	return result
}

// FirstFreeVet resolves a no-preference booking to a veterinarian at
// confirmation time: the first vet in creation order free at the requested
// date and time. Ties break on list order on purpose; load balancing is a
// product decision not taken here.
func FirstFreeVet(in Input, date, clock string) (string, bool) {
	for _, slot := range AvailableOnly(ComputeAvailableSlots(in)) {
		if slot.Date == date && slot.Time == clock {
			return slot.VetID, true
		}
	}

	return "", false
}

// vetAbsent relies on ISO dates comparing lexically; bounds inclusive.
func vetAbsent(absences []models.VetAbsence, vetID, date string) bool {
	for _, a := range absences {
		if a.VetID == vetID && date >= a.StartDate && date <= a.EndDate {
			return true
		}
	}

	return false
}

// discretize returns the slot start clocks of one half-day window, exclusive
// of the window end. A window whose start is not before its end is closed.
func discretize(window models.TimeWindow, durationMinutes int) []string {
	if window.IsZero() {
		return nil
	}

	return ClockRange(window.Start, window.End, durationMinutes)
}

// ClockRange lists slot start clocks from start to end exclusive, stepping by
// the slot duration. Blocked ranges expand into rows with the same function
// so staff blocks and availability always agree on increments.
func ClockRange(startClock, endClock string, durationMinutes int) []string {
	start, err := time.Parse(ClockLayout, startClock)
	if err != nil {
		return nil
	}
	end, err := time.Parse(ClockLayout, endClock)
	if err != nil {
		return nil
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if startMin >= endMin {
		return nil
	}

	var clocks []string
	for m := startMin; m < endMin; m += durationMinutes {
		clocks = append(clocks, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}

	return clocks
}
