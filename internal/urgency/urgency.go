package urgency

import (
	"sort"

	"vetbook-service/internal/models"
)

type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
)

type Classification struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}

// Classify bands the externally-computed 0-10 score for staff views.
// Inclusive lower bounds, highest matching band wins.
func Classify(score int) Classification {
	switch {
	case score >= 8:
		return Classification{Tier: TierCritical, Label: "URGENCE ÉLEVÉE"}
	case score >= 6:
		return Classification{Tier: TierHigh, Label: "Urgence modérée"}
	case score >= 4:
		return Classification{Tier: TierMedium, Label: "Priorité moyenne"}
	default:
		return Classification{Tier: TierLow, Label: "Priorité faible"}
	}
}

// clientBadgeThreshold is deliberately higher than the staff banding: medium
// urgency framing is hidden from clients to avoid unnecessary alarm.
const clientBadgeThreshold = 7

// ClientBadge returns the badge to show the client, if any. Nothing is shown
// below the threshold or before the analysis has produced a score.
func ClientBadge(score *int) (Classification, bool) {
	if score == nil || *score < clientBadgeThreshold {
		return Classification{}, false
	}

	return Classify(*score), true
}

// SortForBoard orders bookings for the staff planning board: blocked-source
// placeholders are filtered out entirely, scored bookings come first by
// descending urgency, unscored ones follow, ties keep date/time order.
func SortForBoard(bookings []models.Booking) []models.Booking {
	board := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Source == models.SourceBlocked {
			continue
		}
		board = append(board, b)
	}

	sort.SliceStable(board, func(i, j int) bool {
		si, sj := board[i].UrgencyScore, board[j].UrgencyScore
		switch {
		case si != nil && sj != nil && *si != *sj:
			return *si > *sj
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		}
		if board[i].Date != board[j].Date {
			return board[i].Date < board[j].Date
		}
		return board[i].Time < board[j].Time
	})

	return board
}
