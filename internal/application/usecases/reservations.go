package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/farmhouse/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Draft carries the caller-editable fields of a reservation. ID and
// CreatedAt are assigned here, never by the caller.
type Draft struct {
	Name   string
	Room   string
	Range  booking.DateRange
	Status booking.Status
	Notes  string
}

// ReservationService orchestrates writes against the store, re-running the
// availability check on every create and update. Conflicts are a soft
// signal: they block a write only until the caller repeats it with force.
type ReservationService struct {
	Store booking.Store
	Rooms booking.Registry
	Log   zerolog.Logger
}

func (s ReservationService) draftToReservation(d Draft) booking.Reservation {
	return booking.Reservation{
		Name:      d.Name,
		Room:      d.Room,
		StartDate: d.Range.Start,
		EndDate:   d.Range.End,
		Status:    d.Status,
		Notes:     d.Notes,
	}
}

// Create validates the draft, checks the room for conflicts and persists.
// With conflicts present and force unset it returns *booking.ConflictError
// and writes nothing; with force set it writes anyway and logs the override.
func (s ReservationService) Create(ctx context.Context, d Draft, force bool) (booking.Reservation, error) {
	r := s.draftToReservation(d)
	if err := r.Validate(s.Rooms); err != nil {
		return booking.Reservation{}, err
	}

	snapshot, err := s.Store.List(ctx)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("list reservations: %w", err)
	}
	conflicts := booking.RoomConflicts(snapshot, r.Room, r.Range(), "")
	if len(conflicts) > 0 {
		if !force {
			return booking.Reservation{}, &booking.ConflictError{Room: r.Room, Conflicts: conflicts}
		}
		s.Log.Warn().Str("room", r.Room).Int("conflicts", len(conflicts)).
			Msg("reservation saved over existing conflicts")
	}

	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	if err := s.Store.Add(ctx, r); err != nil {
		return booking.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}
	return r, nil
}

// Update replaces the mutable fields of an existing reservation. The record
// is never flagged against its own prior occupancy, only against the other
// reservations in the same room.
func (s ReservationService) Update(ctx context.Context, id string, d Draft, force bool) (booking.Reservation, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return booking.Reservation{}, err
	}

	r := s.draftToReservation(d)
	r.ID = current.ID
	r.CreatedAt = current.CreatedAt
	if err := r.Validate(s.Rooms); err != nil {
		return booking.Reservation{}, err
	}

	snapshot, err := s.Store.List(ctx)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("list reservations: %w", err)
	}
	conflicts := booking.RoomConflicts(snapshot, r.Room, r.Range(), r.ID)
	if len(conflicts) > 0 {
		if !force {
			return booking.Reservation{}, &booking.ConflictError{Room: r.Room, Conflicts: conflicts}
		}
		s.Log.Warn().Str("room", r.Room).Str("id", r.ID).Int("conflicts", len(conflicts)).
			Msg("reservation updated over existing conflicts")
	}

	if err := s.Store.Update(ctx, r); err != nil {
		return booking.Reservation{}, fmt.Errorf("update reservation: %w", err)
	}
	return r, nil
}

func (s ReservationService) Remove(ctx context.Context, id string) error {
	if err := s.Store.Remove(ctx, id); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return err
		}
		return fmt.Errorf("remove reservation: %w", err)
	}
	return nil
}

func (s ReservationService) Get(ctx context.Context, id string) (booking.Reservation, error) {
	snapshot, err := s.Store.List(ctx)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("list reservations: %w", err)
	}
	for _, r := range snapshot {
		if r.ID == id {
			return r, nil
		}
	}
	return booking.Reservation{}, booking.ErrNotFound
}

// List returns the snapshot ordered by arrival date, then creation time.
func (s ReservationService) List(ctx context.Context) ([]booking.Reservation, error) {
	snapshot, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		if !snapshot[i].StartDate.Equal(snapshot[j].StartDate) {
			return snapshot[i].StartDate.Before(snapshot[j].StartDate)
		}
		return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
	})
	return snapshot, nil
}

// Check previews the conflicts a candidate room/range would have, for the
// availability hint shown before submitting.
func (s ReservationService) Check(ctx context.Context, room string, r booking.DateRange) ([]booking.Reservation, error) {
	snapshot, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return booking.RoomConflicts(snapshot, room, r, ""), nil
}
