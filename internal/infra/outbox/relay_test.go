//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant-reservation/internal/infra/outbox"
	"restaurant-reservation/internal/infra/repository"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type failedJob struct {
	ID        uuid.UUID
	LastError string
	RetryAt   time.Time
}

type fakeJobStore struct {
	mu     sync.Mutex
	queued []repository.NotificationJob
	sent   []uuid.UUID
	failed []failedJob
	purged int
}

func (s *fakeJobStore) WithJobs(ctx context.Context, fn func(ctx context.Context, jobs outbox.JobStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, s)
}

func (s *fakeJobStore) PurgeExpiredIdempotencyKeys(_ context.Context) (int64, error) {
	s.purged++
	return 0, nil
}

func (s *fakeJobStore) ClaimQueued(_ context.Context, limit int32) ([]repository.NotificationJob, error) {
	n := min(int(limit), len(s.queued))
	batch := s.queued[:n]
	s.queued = s.queued[n:]
	return batch, nil
}

func (s *fakeJobStore) MarkSent(_ context.Context, jobID uuid.UUID) error {
	s.sent = append(s.sent, jobID)
	return nil
}

func (s *fakeJobStore) MarkFailed(_ context.Context, jobID uuid.UUID, lastError string, retryAt time.Time, _ int32) error {
	s.failed = append(s.failed, failedJob{ID: jobID, LastError: lastError, RetryAt: retryAt})
	return nil
}

func (s *fakeJobStore) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newJob(topic string, attempts int32) repository.NotificationJob {
	id := uuid.New()
	return repository.NotificationJob{
		ID:       uuid.New(),
		Kind:     "reservation_event",
		Topic:    topic,
		Payload:  []byte(`{"reservation_id":"` + id.String() + `","seat_id":"2table"}`),
		Attempts: attempts,
	}
}

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ok := newJob("reservation.confirmed", 0)
	broken := newJob("reservation.cancelled", 2)
	store := &fakeJobStore{queued: []repository.NotificationJob{ok, broken}}

	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, "reservation.confirmed", mock.AnythingOfType("string"), ok.Payload).Return(nil).Once()
	pub.On("Publish", mock.Anything, "reservation.cancelled", mock.AnythingOfType("string"), broken.Payload).Return(errors.New("broker down")).Once()

	relay := outbox.NewRelay(store, pub, clock.NewMockClock(now), config.EventsConfig{BatchSize: 10}, nil)

	sent, err := relay.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []uuid.UUID{ok.ID}, store.sent)

	require.Len(t, store.failed, 1)
	assert.Equal(t, broken.ID, store.failed[0].ID)
	assert.Equal(t, "broker down", store.failed[0].LastError)
	// third attempt backs off 2s * 2^2
	assert.Equal(t, now.Add(8*time.Second), store.failed[0].RetryAt)

	pub.AssertExpectations(t)
}

func TestRelay_RunOnce_UsesReservationIDAsKey(t *testing.T) {
	job := newJob("reservation.confirmed", 0)
	store := &fakeJobStore{queued: []repository.NotificationJob{job}}

	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, job.Topic, mock.MatchedBy(func(key string) bool {
		_, err := uuid.Parse(key)
		return err == nil
	}), job.Payload).Return(nil).Once()

	relay := outbox.NewRelay(store, pub, clock.NewRealClock(), config.EventsConfig{}, nil)
	_, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestRelay_RunOnce_RespectsBatchSize(t *testing.T) {
	store := &fakeJobStore{}
	for i := 0; i < 5; i++ {
		store.queued = append(store.queued, newJob("reservation.confirmed", 0))
	}

	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	relay := outbox.NewRelay(store, pub, clock.NewRealClock(), config.EventsConfig{BatchSize: 2}, nil)

	sent, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, store.queued, 3)
}

func TestRelay_StartStop(t *testing.T) {
	store := &fakeJobStore{queued: []repository.NotificationJob{newJob("reservation.confirmed", 0)}}
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	relay := outbox.NewRelay(store, pub, clock.NewRealClock(), config.EventsConfig{RelayInterval: 10 * time.Millisecond}, nil)
	relay.Start()
	relay.Start()

	assert.Eventually(t, func() bool { return store.sentCount() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
	require.NoError(t, relay.Stop(ctx))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.GreaterOrEqual(t, store.purged, 1)
}
