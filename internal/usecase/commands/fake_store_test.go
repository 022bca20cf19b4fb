//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/infra"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/usecase/queries"
	"restaurant-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory reservation store. Within holds the lock for the whole
// transaction and restores a snapshot when fn fails, so transactions are serializable.
type memStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*reservation.Reservation
	order        []uuid.UUID
	keys         map[string]shared.IdempotencyRecord
	jobs         []memJob

	clk      clock.Clock
	claimErr error
}

type memJob struct {
	Topic   string
	Payload []byte
}

func newMemStore(clk clock.Clock) *memStore {
	return &memStore{
		clk:          clk,
		reservations: map[uuid.UUID]*reservation.Reservation{},
		keys:         map[string]shared.IdempotencyRecord{},
	}
}

func idemKey(key uuid.UUID, userID string) string {
	return key.String() + "/" + userID
}

func clone(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.UserID(), r.SeatID(), r.Window(), r.PartySize(), r.Mode(),
		r.GroupID(), r.IsPrimary(), r.Status(), r.OrderItems(), r.CreatedAt(), r.UpdatedAt(),
	)
}

type memSnapshot struct {
	reservations map[uuid.UUID]*reservation.Reservation
	order        []uuid.UUID
	keys         map[string]shared.IdempotencyRecord
	jobs         []memJob
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(s.reservations)),
		order:        append([]uuid.UUID(nil), s.order...),
		keys:         make(map[string]shared.IdempotencyRecord, len(s.keys)),
		jobs:         append([]memJob(nil), s.jobs...),
	}
	for id, r := range s.reservations {
		snap.reservations[id] = clone(r)
	}
	for k, v := range s.keys {
		snap.keys[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.reservations = snap.reservations
	s.order = snap.order
	s.keys = snap.keys
	s.jobs = snap.jobs
}

// -----------------------------------------------------------------------------
// shared.UnitOfWork
// -----------------------------------------------------------------------------

func (s *memStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) CommandReads() shared.CommandReads {
	return memReads{s: s, lock: true}
}

type memTx struct{ s *memStore }

func (t memTx) Reservations() shared.ReservationRepository   { return memReservations(t) }
func (t memTx) Idempotency() shared.IdempotencyRepository    { return memIdempotency(t) }
func (t memTx) Notifications() shared.NotificationRepository { return memNotifications(t) }
func (t memTx) Reads() shared.CommandReads                   { return memReads{s: t.s} }

// -----------------------------------------------------------------------------
// repositories bound to the open transaction
// -----------------------------------------------------------------------------

type memReservations struct{ s *memStore }

func (r memReservations) Claim(_ context.Context, res *reservation.Reservation) error {
	if r.s.claimErr != nil {
		return r.s.claimErr
	}
	for _, existing := range r.s.reservations {
		if existing.IsActive() && existing.SeatID() == res.SeatID() && existing.Window().Overlaps(res.Window()) {
			return infra.WrapRepoErr("seat already reserved for an overlapping window", nil, infra.KindConflict)
		}
	}
	r.s.reservations[res.ID()] = clone(res)
	r.s.order = append(r.s.order, res.ID())
	return nil
}

func (r memReservations) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return clone(res), nil
}

func (r memReservations) MarkCancelled(_ context.Context, res *reservation.Reservation) error {
	existing, ok := r.s.reservations[res.ID()]
	if !ok || !existing.IsActive() {
		return infra.WrapRepoErr("no active reservation to cancel", nil, infra.KindNotFound)
	}
	r.s.reservations[res.ID()] = clone(res)
	return nil
}

func (r memReservations) SaveOrderItems(_ context.Context, res *reservation.Reservation) error {
	existing, ok := r.s.reservations[res.ID()]
	if !ok || !existing.IsActive() || len(existing.OrderItems()) > 0 {
		return infra.WrapRepoErr("order items already attached or reservation inactive", nil, infra.KindConflict)
	}
	r.s.reservations[res.ID()] = clone(res)
	return nil
}

type memIdempotency struct{ s *memStore }

func (r memIdempotency) TryInsert(_ context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey(key, userID)
	if _, ok := r.s.keys[k]; ok {
		return false, nil
	}
	r.s.keys[k] = shared.IdempotencyRecord{
		Key: key, UserID: userID, Endpoint: endpoint, RequestHash: requestHash,
		Status: shared.IdempotencyStatusProcessing, ExpiresAt: expiresAt,
	}
	return true, nil
}

func (r memIdempotency) ClaimExpired(_ context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey(key, userID)
	existing, ok := r.s.keys[k]
	if !ok || !existing.Expired(r.s.clk.Now()) {
		return false, nil
	}
	r.s.keys[k] = shared.IdempotencyRecord{
		Key: key, UserID: userID, Endpoint: endpoint, RequestHash: requestHash,
		Status: shared.IdempotencyStatusProcessing, ExpiresAt: expiresAt,
	}
	return true, nil
}

func (r memIdempotency) MarkCompleted(_ context.Context, key uuid.UUID, userID string, reservationID uuid.UUID) error {
	k := idemKey(key, userID)
	rec := r.s.keys[k]
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultReservationID = &reservationID
	r.s.keys[k] = rec
	return nil
}

type memNotifications struct{ s *memStore }

func (r memNotifications) CreateJob(_ context.Context, _ string, topic string, payload []byte, _ time.Time) error {
	r.s.jobs = append(r.s.jobs, memJob{Topic: topic, Payload: payload})
	return nil
}

// memReads takes the store lock itself unless it runs inside Within.
type memReads struct {
	s    *memStore
	lock bool
}

func (r memReads) GroupOwner(_ context.Context, groupID uuid.UUID) (string, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, res := range r.s.reservations {
		if res.GroupID() == groupID && res.IsPrimary() {
			return res.UserID(), nil
		}
	}
	return "", infra.WrapRepoErr("reservation group not found", nil, infra.KindNotFound)
}

func (r memReads) IdempotencyByKey(_ context.Context, key uuid.UUID, userID string) (*shared.IdempotencyRecord, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	rec, ok := r.s.keys[idemKey(key, userID)]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

// -----------------------------------------------------------------------------
// read side
// -----------------------------------------------------------------------------

func (s *memStore) FindOverlapping(_ context.Context, w reservation.Window) ([]reservation.BookedSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slots []reservation.BookedSlot
	for _, res := range s.reservations {
		if res.IsActive() && res.Window().Overlaps(w) {
			slots = append(slots, reservation.BookedSlot{SeatID: res.SeatID(), Window: res.Window()})
		}
	}
	return slots, nil
}

func (s *memStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return queries.NewReservationView(res), nil
}

func (s *memStore) FindByUserID(_ context.Context, userID string) ([]*queries.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var views []*queries.ReservationView
	for _, id := range s.order {
		if res := s.reservations[id]; res.UserID() == userID {
			views = append(views, queries.NewReservationView(res))
		}
	}
	return views, nil
}

func (s *memStore) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, res := range s.reservations {
		if res.IsActive() {
			n++
		}
	}
	return n
}

func (s *memStore) jobTopics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics := make([]string, len(s.jobs))
	for i, j := range s.jobs {
		topics[i] = j.Topic
	}
	return topics
}
