package booking

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusDefinite Status = "definite"
	StatusHopeful  Status = "hopeful"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDefinite, StatusHopeful:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Reservation books one room for a half-open range of nights. ID and
// CreatedAt are assigned at creation and never change afterwards.
type Reservation struct {
	ID        string
	Name      string
	Room      string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
	Notes     string
	CreatedAt time.Time
}

func (r Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// Validate checks the invariants the engine enforces on every write. The
// store is trusted to hold only records that passed this once.
func (r Reservation) Validate(reg Registry) error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if !reg.Contains(r.Room) {
		return &ValidationError{Field: "room", Reason: fmt.Sprintf("unknown room %q", r.Room)}
	}
	if !r.Range().Valid() {
		return &ValidationError{Field: "end_date", Reason: "departure must be after arrival"}
	}
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return &ValidationError{Field: "status", Reason: err.Error()}
	}
	return nil
}

var ErrNotFound = errors.New("reservation not found")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports overlapping reservations for the same room. It is a
// soft signal: the caller decides whether to write anyway, the engine never
// decides on its own.
type ConflictError struct {
	Room      string
	Conflicts []Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %q already reserved %d time(s) in that range", e.Room, len(e.Conflicts))
}
