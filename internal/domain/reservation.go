package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusRefunded  ReservationStatus = "refunded"
)

// Valid returns true if the status is one of the known lifecycle statuses
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal returns true if no transition can leave the status
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRefunded
}

// CanTransitionTo reports whether the transition s -> next is legal.
// Same-status transitions are always allowed as idempotent no-ops.
// PENDING may move anywhere, CONFIRMED may be cancelled, completed or
// refunded, CANCELLED may only be refunded, COMPLETED and REFUNDED are
// terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s == next {
		return true
	}

	switch s {
	case StatusPending:
		return next.Valid()
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted || next == StatusRefunded
	case StatusCancelled:
		return next == StatusRefunded
	default:
		return false
	}
}

// Reservation represents a customer's claim on a tour package for a date range
type Reservation struct {
	ID               int64
	ConfirmationCode string
	CustomerID       int64
	PackageID        int64
	GuideID          *int64
	Status           ReservationStatus
	StartDate        time.Time // inclusive
	EndDate          time.Time // inclusive
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive returns true if the reservation counts against package availability
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// Overlaps reports whether the reservation's [StartDate, EndDate] interval
// shares at least one day with [start, end] (closed-interval test)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// ReservationFilter narrows staff reservation listings
type ReservationFilter struct {
	CustomerID *int64
	Status     *ReservationStatus
	Limit      int // 0 = no limit
}
