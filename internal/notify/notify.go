package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"vetbook-service/internal/models"
	"vetbook-service/pkg/sl"
)

const bookingChannel = "bookings:changes"

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event describes one booking row change pushed to staff sessions. Blocked
// placeholders are published too; consumers decide what to count.
type Event struct {
	Kind      EventKind            `json:"kind"`
	BookingID string               `json:"booking_id"`
	ClinicID  string               `json:"clinic_id"`
	Status    models.BookingStatus `json:"status"`
	Source    models.BookingSource `json:"source"`
}

type Publisher struct {
	client *redis.Client
}

func NewPublisher(redisAddr string) (*Publisher, error) {
	const op = "notify.NewPublisher"

	client := redis.NewClient(&redis.Options{Addr: redisAddr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{client: client}, nil
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	const op = "notify.Publisher.Publish"

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.client.Publish(ctx, bookingChannel, payload).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

// PendingCounter keeps a near-real-time count of pending online bookings per
// clinic from the change feed. Eventually consistent only; the authoritative
// number always comes from the store.
type PendingCounter struct {
	client *redis.Client
	sub    *redis.PubSub
	log    *slog.Logger

	mu      sync.Mutex
	pending map[string]map[string]struct{}
}

func NewPendingCounter(redisAddr string, log *slog.Logger) (*PendingCounter, error) {
	const op = "notify.NewPendingCounter"

	client := redis.NewClient(&redis.Options{Addr: redisAddr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &PendingCounter{
		client:  client,
		sub:     client.Subscribe(context.Background(), bookingChannel),
		log:     log,
		pending: map[string]map[string]struct{}{},
	}

	go c.consume()

	return c, nil
}

// Seed initializes one clinic's set from the store before the feed takes over.
func (c *PendingCounter) Seed(clinicID string, bookingIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := map[string]struct{}{}
	for _, id := range bookingIDs {
		set[id] = struct{}{}
	}
	c.pending[clinicID] = set
}

func (c *PendingCounter) Count(clinicID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending[clinicID])
}

func (c *PendingCounter) consume() {
	for msg := range c.sub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			c.log.Error("Failed to decode booking event", sl.Err(err))
			continue
		}

		c.apply(event)
	}
}

func (c *PendingCounter) apply(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// blocked placeholders never count as client requests
	countable := event.Source != models.SourceBlocked &&
		event.Status == models.BookingPending &&
		event.Kind != EventDelete

	set, ok := c.pending[event.ClinicID]
	if !ok {
		set = map[string]struct{}{}
		c.pending[event.ClinicID] = set
	}

	if countable {
		set[event.BookingID] = struct{}{}
	} else {
		delete(set, event.BookingID)
	}
}

// Close unsubscribes from the feed; the consume goroutine ends when the
// subscription channel closes.
func (c *PendingCounter) Close() error {
	if err := c.sub.Close(); err != nil {
		return err
	}

	return c.client.Close()
}
