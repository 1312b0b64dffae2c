package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetbook-service/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPendingCounter_FollowsFeed(t *testing.T) {
	srv := miniredis.RunT(t)

	pub, err := NewPublisher(srv.Addr())
	require.NoError(t, err)
	defer pub.Close()

	counter, err := NewPendingCounter(srv.Addr(), discardLogger())
	require.NoError(t, err)
	defer counter.Close()

	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, Event{
		Kind:      EventInsert,
		BookingID: "b1",
		ClinicID:  "c1",
		Status:    models.BookingPending,
		Source:    models.SourceOnline,
	}))
	require.NoError(t, pub.Publish(ctx, Event{
		Kind:      EventInsert,
		BookingID: "b2",
		ClinicID:  "c1",
		Status:    models.BookingPending,
		Source:    models.SourceOnline,
	}))

	require.Eventually(t, func() bool {
		return counter.Count("c1") == 2
	}, 2*time.Second, 10*time.Millisecond)

	// confirming one drops it from the pending set
	require.NoError(t, pub.Publish(ctx, Event{
		Kind:      EventUpdate,
		BookingID: "b1",
		ClinicID:  "c1",
		Status:    models.BookingConfirmed,
		Source:    models.SourceOnline,
	}))

	require.Eventually(t, func() bool {
		return counter.Count("c1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, counter.Count("other-clinic"))
}

func TestPendingCounter_IgnoresBlockedRows(t *testing.T) {
	srv := miniredis.RunT(t)

	pub, err := NewPublisher(srv.Addr())
	require.NoError(t, err)
	defer pub.Close()

	counter, err := NewPendingCounter(srv.Addr(), discardLogger())
	require.NoError(t, err)
	defer counter.Close()

	require.NoError(t, pub.Publish(context.Background(), Event{
		Kind:      EventInsert,
		BookingID: "blk",
		ClinicID:  "c1",
		Status:    models.BookingPending,
		Source:    models.SourceBlocked,
	}))
	require.NoError(t, pub.Publish(context.Background(), Event{
		Kind:      EventInsert,
		BookingID: "b1",
		ClinicID:  "c1",
		Status:    models.BookingPending,
		Source:    models.SourceOnline,
	}))

	require.Eventually(t, func() bool {
		return counter.Count("c1") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPendingCounter_Seed(t *testing.T) {
	srv := miniredis.RunT(t)

	counter, err := NewPendingCounter(srv.Addr(), discardLogger())
	require.NoError(t, err)
	defer counter.Close()

	counter.Seed("c1", []string{"b1", "b2", "b3"})

	assert.Equal(t, 3, counter.Count("c1"))
}
