package planning

import (
	"fmt"
	"time"

	"vetbook-service/internal/models"
	"vetbook-service/pkg/response"
)

// CheckSlot guards a create/move/paste against the refreshed booking list:
// the target (date, time, vet) triple must not be blocked and must not be
// occupied by another non-cancelled booking. ignoreID exempts the booking
// being moved from colliding with itself. The check is not atomic against
// concurrent staff sessions; the store's unique constraint is the safety net.
func CheckSlot(bookings []models.Booking, date, clock, vetID, ignoreID string) error {
	const op = "planning.CheckSlot"

	for _, b := range bookings {
		if b.Status == models.BookingCancelled || b.VetID == nil {
			continue
		}
		if b.Date != date || b.Time != clock || *b.VetID != vetID {
			continue
		}
		if b.Source == models.SourceBlocked {
			return fmt.Errorf("%s: %w", op, response.ErrSlotBlocked)
		}
		if b.ID != ignoreID {
			return fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
		}
	}

	return nil
}

type Action string

const (
	ActionCut  Action = "cut"
	ActionCopy Action = "copy"
)

// Clipboard holds at most one booking for a staff planning session.
type Clipboard struct {
	booking *models.Booking
	action  Action
}

func (c *Clipboard) Cut(b models.Booking) {
	c.booking = &b
	c.action = ActionCut
}

func (c *Clipboard) Copy(b models.Booking) {
	c.booking = &b
	c.action = ActionCopy
}

func (c *Clipboard) IsEmpty() bool {
	return c.booking == nil
}

func (c *Clipboard) Clear() {
	c.booking = nil
	c.action = ""
}

// Paste produces the booking to persist at the target triple. Cut transfers
// the booking's identity (a move) and empties the clipboard after one use;
// copy yields a brand-new row keeping the clinical data but with a reset
// pending status and no id or timestamps, and the clipboard survives for
// repeated pastes.
func (c *Clipboard) Paste(date, clock string, vetID *string) (models.Booking, Action, error) {
	const op = "planning.Clipboard.Paste"

	if c.booking == nil {
		return models.Booking{}, "", fmt.Errorf("%s: %w", op, response.ErrClipboardEmpty)
	}

	pasted := *c.booking
	pasted.Date = date
	pasted.Time = clock
	pasted.VetID = vetID

	action := c.action

	switch action {
	case ActionCut:
		c.Clear()
	case ActionCopy:
		pasted.ID = ""
		pasted.Status = models.BookingPending
		pasted.CreatedAt = time.Time{}
		pasted.UpdatedAt = time.Time{}
	}

	return pasted, action, nil
}
