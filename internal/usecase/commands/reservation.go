package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/infra"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/pkg/errs"
	"restaurant-reservation/internal/usecase/queries"
	"restaurant-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createReservationEndpoint = "POST /api/reservations"
	idempotencyKeyTTL         = 24 * time.Hour
)

type CreateReservationInput struct {
	SeatID    string
	Date      reservation.Date
	StartTime reservation.ClockTime
	EndTime   reservation.ClockTime
	PartySize int
	Mode      reservation.Mode
	// GroupID joins an existing group of the caller; nil starts a new one.
	GroupID *uuid.UUID
}

type OrderItemInput struct {
	ItemID     string
	Name       string
	Quantity   int
	PriceCents int64
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, userID string, in CreateReservationInput, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, userID string, id uuid.UUID) error
	AttachOrderItems(ctx context.Context, userID string, id uuid.UUID, items []OrderItemInput) error
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	catalog            *seat.Catalog
	factory            *reservation.Factory
	availability       queries.AvailabilityQueries
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	catalog *seat.Catalog,
	factory *reservation.Factory,
	availability queries.AvailabilityQueries,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		catalog:            catalog,
		factory:            factory,
		availability:       availability,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

// CreateReservation validates the request, confirms the seat is still free and claims it.
// A lost race surfaces as errs.ErrReservationConflict; another seat is never picked.
func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	userID string,
	in CreateReservationInput,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	req, err := c.factory.NewRequest(in.Date, in.StartTime, in.EndTime, in.PartySize, in.Mode)
	if err != nil {
		return nil, err
	}

	s, err := c.catalog.Lookup(in.SeatID)
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(in)
	if idempotencyKey != nil {
		replayID, err := c.checkIdempotency(ctx, c.uow.CommandReads(), *idempotencyKey, userID, requestHash)
		if err != nil {
			return nil, err
		}
		if replayID != nil {
			return c.replay(ctx, *replayID)
		}
	}

	if err := c.checkGroup(ctx, userID, in.GroupID); err != nil {
		return nil, err
	}

	res, err := c.factory.CreateReservation(req, userID, s, in.GroupID)
	if err != nil {
		return nil, err
	}

	available, err := c.availability.ComputeAvailable(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	if !reservation.NewSeatSet(available...).Has(s.ID) {
		return nil, errs.ErrReservationConflict
	}

	var replayID *uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayID = nil
		now := c.clock.Now()

		if idempotencyKey != nil {
			id, err := c.reserveIdempotencyKey(ctx, tx, *idempotencyKey, userID, requestHash, now)
			if err != nil || id != nil {
				replayID = id
				return err
			}
		}

		if err := tx.Reservations().Claim(ctx, res); err != nil {
			return err
		}

		if err := enqueueEvent(ctx, tx, shared.TopicReservationConfirmed, res, now); err != nil {
			return err
		}

		if idempotencyKey != nil {
			return tx.Idempotency().MarkCompleted(ctx, *idempotencyKey, userID, res.ID())
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(ctx, err)
	}

	if replayID != nil {
		return c.replay(ctx, *replayID)
	}

	return &CreateReservationResult{
		Reservation: queries.NewReservationView(res),
		IsReplayed:  false,
	}, nil
}

// CancelReservation soft-deletes an owned reservation. Cancelling twice succeeds.
func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, userID string, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.loadOwned(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if !res.Cancel(now) {
			return nil
		}

		if err := tx.Reservations().MarkCancelled(ctx, res); err != nil {
			return err
		}
		return enqueueEvent(ctx, tx, shared.TopicReservationCancelled, res, now)
	})
	if err != nil {
		return translateStoreErr(ctx, err)
	}
	return nil
}

// AttachOrderItems stores a pre-order once. A second attempt is rejected, not merged.
func (c *reservationCommandsImpl) AttachOrderItems(ctx context.Context, userID string, id uuid.UUID, items []OrderItemInput) error {
	orderItems := make([]reservation.OrderItem, 0, len(items))
	for _, in := range items {
		item, err := reservation.NewOrderItem(in.ItemID, in.Name, in.Quantity, in.PriceCents)
		if err != nil {
			return err
		}
		orderItems = append(orderItems, item)
	}
	if len(orderItems) == 0 {
		return reservation.ErrEmptyOrder
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.loadOwned(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := res.AttachOrderItems(orderItems, now); err != nil {
			return err
		}

		if err := tx.Reservations().SaveOrderItems(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return reservation.ErrOrderItemsAlreadyAttached
			}
			return err
		}
		return enqueueEvent(ctx, tx, shared.TopicReservationPreordered, res, now)
	})
	if err != nil {
		return translateStoreErr(ctx, err)
	}
	return nil
}

func (c *reservationCommandsImpl) loadOwned(ctx context.Context, tx shared.Tx, userID string, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.OwnedBy(userID) {
		return nil, errs.ErrForbidden
	}
	return res, nil
}

func (c *reservationCommandsImpl) checkGroup(ctx context.Context, userID string, groupID *uuid.UUID) error {
	if groupID == nil {
		return nil
	}
	owner, err := c.uow.CommandReads().GroupOwner(ctx, *groupID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrGroupNotFound
		}
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
	if owner != userID {
		return errs.ErrForbidden
	}
	return nil
}

// checkIdempotency looks for a live key outside any transaction so a replay does not trip
// the availability pre-check on its own seat.
func (c *reservationCommandsImpl) checkIdempotency(
	ctx context.Context,
	reads shared.CommandReads,
	key uuid.UUID,
	userID, requestHash string,
) (*uuid.UUID, error) {
	record, err := reads.IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	if record.Expired(c.clock.Now()) {
		return nil, nil
	}
	return decideReplay(record, requestHash)
}

// reserveIdempotencyKey records key inside the claim transaction. It returns a reservation
// id when another request with the same key already completed.
func (c *reservationCommandsImpl) reserveIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key uuid.UUID,
	userID, requestHash string,
	now time.Time,
) (*uuid.UUID, error) {
	expiresAt := now.Add(idempotencyKeyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, createReservationEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	record, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if !record.Expired(now) {
		return decideReplay(record, requestHash)
	}

	claimed, err := tx.Idempotency().ClaimExpired(ctx, key, userID, createReservationEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, errs.ErrDuplicateRequest
	}
	return nil, nil
}

func decideReplay(record *shared.IdempotencyRecord, requestHash string) (*uuid.UUID, error) {
	if record.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	if record.Status == shared.IdempotencyStatusCompleted && record.ResultReservationID != nil {
		return record.ResultReservationID, nil
	}
	return nil, errs.ErrDuplicateRequest
}

func (c *reservationCommandsImpl) replay(ctx context.Context, id uuid.UUID) (*CreateReservationResult, error) {
	view, err := c.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CreateReservationResult{Reservation: view, IsReplayed: true}, nil
}

type reservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	SeatID        string    `json:"seat_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	PartySize     int       `json:"party_size"`
	Mode          string    `json:"mode"`
	GroupID       uuid.UUID `json:"group_id"`
	Status        string    `json:"status"`
	TotalCents    int64     `json:"total_cents,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func enqueueEvent(ctx context.Context, tx shared.Tx, topic string, res *reservation.Reservation, now time.Time) error {
	w := res.Window()
	payload, err := json.Marshal(reservationEvent{
		ReservationID: res.ID(),
		UserID:        res.UserID(),
		SeatID:        res.SeatID(),
		Date:          w.Date.String(),
		StartTime:     w.Start.String(),
		EndTime:       w.End.String(),
		PartySize:     res.PartySize(),
		Mode:          res.Mode().String(),
		GroupID:       res.GroupID(),
		Status:        res.Status().String(),
		TotalCents:    reservation.OrderTotalCents(res.OrderItems()),
		OccurredAt:    now,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, shared.JobKindReservationEvent, topic, payload, now)
}

// translateStoreErr keeps taxonomy errors as they are and folds everything else that
// came out of the store into ErrStoreUnavailable.
func translateStoreErr(ctx context.Context, err error) error {
	switch {
	case isTaxonomyErr(err):
		return err
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrReservationConflict)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrReservationNotFound)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
}

func isTaxonomyErr(err error) bool {
	for _, target := range []error{
		errs.ErrReservationConflict,
		errs.ErrReservationNotFound,
		errs.ErrForbidden,
		errs.ErrGroupNotFound,
		errs.ErrIdempotencyKeyReused,
		errs.ErrDuplicateRequest,
		errs.ErrStoreUnavailable,
		reservation.ErrInvalidRequest,
		reservation.ErrReservationCancelled,
		reservation.ErrOrderItemsAlreadyAttached,
		reservation.ErrEmptyOrder,
		reservation.ErrInvalidOrderItem,
	} {
		if errs.Is(err, target) {
			return true
		}
	}
	return false
}

func calculateRequestHash(in CreateReservationInput) string {
	canonical := struct {
		SeatID    string     `json:"seat_id"`
		Date      string     `json:"date"`
		StartTime string     `json:"start_time"`
		EndTime   string     `json:"end_time"`
		PartySize int        `json:"party_size"`
		Mode      string     `json:"mode"`
		GroupID   *uuid.UUID `json:"group_id,omitempty"`
	}{
		SeatID:    in.SeatID,
		Date:      in.Date.String(),
		StartTime: in.StartTime.String(),
		EndTime:   in.EndTime.String(),
		PartySize: in.PartySize,
		Mode:      in.Mode.String(),
		GroupID:   in.GroupID,
	}
	data, _ := json.Marshal(canonical)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
