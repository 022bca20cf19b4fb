// Package pgconv maps between domain values and pgtype columns.
package pgconv

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrInvalidDate = errors.New("invalid date value in pgtype.Date")
	ErrInvalidTime = errors.New("invalid time value in pgtype.Time")
)

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// DateToPgtype keeps only the calendar day of t.
func DateToPgtype(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) (time.Time, error) {
	if !pd.Valid || pd.InfinityModifier != pgtype.Finite {
		return time.Time{}, ErrInvalidDate
	}
	return pd.Time, nil
}

// TimeOfDayToPgtype maps an offset from midnight onto a postgres time column.
func TimeOfDayToPgtype(sinceMidnight time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: sinceMidnight.Microseconds(), Valid: true}
}

func TimeOfDayFromPgtype(pt pgtype.Time) (time.Duration, error) {
	if !pt.Valid {
		return 0, ErrInvalidTime
	}
	return time.Duration(pt.Microseconds) * time.Microsecond, nil
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
