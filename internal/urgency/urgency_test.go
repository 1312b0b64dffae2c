package urgency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetbook-service/internal/models"
)

func intPtr(n int) *int { return &n }

func TestClassify_Bands(t *testing.T) {
	cases := []struct {
		score int
		tier  Tier
		label string
	}{
		{10, TierCritical, "URGENCE ÉLEVÉE"},
		{8, TierCritical, "URGENCE ÉLEVÉE"},
		{7, TierHigh, "Urgence modérée"},
		{6, TierHigh, "Urgence modérée"},
		{5, TierMedium, "Priorité moyenne"},
		{4, TierMedium, "Priorité moyenne"},
		{3, TierLow, "Priorité faible"},
		{0, TierLow, "Priorité faible"},
	}

	for _, tc := range cases {
		c := Classify(tc.score)
		assert.Equalf(t, tc.tier, c.Tier, "score %d", tc.score)
		assert.Equalf(t, tc.label, c.Label, "score %d", tc.score)
	}
}

func TestClientBadge_Threshold(t *testing.T) {
	// score 6 is staff-tier high yet stays hidden from the client
	_, shown := ClientBadge(intPtr(6))
	assert.False(t, shown)

	badge, shown := ClientBadge(intPtr(7))
	require.True(t, shown)
	assert.Equal(t, TierHigh, badge.Tier)

	_, shown = ClientBadge(nil)
	assert.False(t, shown)
}

func TestSortForBoard_FiltersBlockedAndOrders(t *testing.T) {
	bookings := []models.Booking{
		{ID: "blocked", Source: models.SourceBlocked, UrgencyScore: intPtr(9)},
		{ID: "unscored", Source: models.SourceOnline, Date: "2026-01-05", Time: "09:00"},
		{ID: "low", Source: models.SourceOnline, UrgencyScore: intPtr(2), Date: "2026-01-05", Time: "10:00"},
		{ID: "critical", Source: models.SourceStaff, UrgencyScore: intPtr(9), Date: "2026-01-06", Time: "08:00"},
		{ID: "high", Source: models.SourceOnline, UrgencyScore: intPtr(6), Date: "2026-01-05", Time: "08:00"},
	}

	board := SortForBoard(bookings)

	var ids []string
	for _, b := range board {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"critical", "high", "low", "unscored"}, ids)
}

func TestSortForBoard_TiesKeepDateTimeOrder(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b", UrgencyScore: intPtr(5), Date: "2026-01-06", Time: "08:00", Source: models.SourceOnline},
		{ID: "a", UrgencyScore: intPtr(5), Date: "2026-01-05", Time: "09:00", Source: models.SourceOnline},
	}

	board := SortForBoard(bookings)

	require.Len(t, board, 2)
	assert.Equal(t, "a", board[0].ID)
	assert.Equal(t, "b", board[1].ID)
}
