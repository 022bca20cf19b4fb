//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a conn or an open transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertReservation writes an active reservation straight into the table, bypassing the claim path.
// date is YYYY-MM-DD, start and end are HH:MM.
func InsertReservation(t *testing.T, db DBLike, userID, seatID, date, start, end string, partySize int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (id, user_id, seat_id, reservation_date, start_time, end_time,
		                          party_size, mode, group_id, is_primary, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4::date, $5::time, $6::time, $7, 'dine_and_eat', $1, true, 'active', now(), now())`,
		id, userID, seatID, date, start, end, partySize)
	require.NoError(t, err)
	return id
}

func CountActiveReservations(t *testing.T, db DBLike, seatID, date string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE seat_id = $1 AND reservation_date = $2::date AND status = 'active'",
		seatID, date).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties every table the service writes. Tables are listed explicitly so a
// new table forces a deliberate update here.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(resettableTables, ", ")+" RESTART IDENTITY")
	return err
}

var resettableTables = []string{"notification_jobs", "idempotency_keys", "reservations"}
