package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/farmhouse/internal/domain/booking"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepo is the shared-database Store backend.
type ReservationRepo struct{ pool *pgxpool.Pool }

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

const selectColumns = `id, name, room, start_date, end_date, status, notes, created_at`

func (r *ReservationRepo) List(ctx context.Context) ([]booking.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM reservations ORDER BY start_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		var res booking.Reservation
		var status string
		if err := rows.Scan(&res.ID, &res.Name, &res.Room, &res.StartDate, &res.EndDate,
			&status, &res.Notes, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.Status = booking.Status(status)
		res.StartDate = res.StartDate.UTC()
		res.EndDate = res.EndDate.UTC()
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationRepo) Add(ctx context.Context, res booking.Reservation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservations (id, name, room, start_date, end_date, status, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		res.ID, res.Name, res.Room, res.StartDate, res.EndDate, string(res.Status), res.Notes, res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepo) Update(ctx context.Context, res booking.Reservation) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET name=$2, room=$3, start_date=$4, end_date=$5, status=$6, notes=$7
		WHERE id=$1`,
		res.ID, res.Name, res.Room, res.StartDate, res.EndDate, string(res.Status), res.Notes,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func (r *ReservationRepo) Remove(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Get fetches one row directly; the engine itself always reads whole
// snapshots via List.
func (r *ReservationRepo) Get(ctx context.Context, id string) (booking.Reservation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM reservations WHERE id=$1`, id)
	var res booking.Reservation
	var status string
	if err := row.Scan(&res.ID, &res.Name, &res.Room, &res.StartDate, &res.EndDate,
		&status, &res.Notes, &res.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Reservation{}, booking.ErrNotFound
		}
		return booking.Reservation{}, err
	}
	res.Status = booking.Status(status)
	res.StartDate = res.StartDate.UTC()
	res.EndDate = res.EndDate.UTC()
	return res, nil
}
