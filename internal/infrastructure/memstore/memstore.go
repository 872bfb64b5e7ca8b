// Package memstore keeps reservations in process memory. It is the default
// backend when no database is configured; data lives only as long as the
// process does.
package memstore

import (
	"context"
	"sync"

	"github.com/example/farmhouse/internal/domain/booking"
)

type Store struct {
	mu   sync.RWMutex
	rows []booking.Reservation
}

func New() *Store {
	return &Store{}
}

func (s *Store) List(ctx context.Context) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]booking.Reservation, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *Store) Add(ctx context.Context, r booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, r)
	return nil
}

func (s *Store) Update(ctx context.Context, r booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == r.ID {
			s.rows[i] = r
			return nil
		}
	}
	return booking.ErrNotFound
}

func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return booking.ErrNotFound
}
