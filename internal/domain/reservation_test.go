package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReservationStatus_Valid(t *testing.T) {
	for _, s := range []ReservationStatus{
		StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRefunded,
	} {
		assert.True(t, s.Valid(), "status %s must be valid", s)
	}

	assert.False(t, ReservationStatus("unknown").Valid())
	assert.False(t, ReservationStatus("").Valid())
	assert.False(t, ReservationStatus("PENDING").Valid(), "statuses are lowercase")
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	all := []ReservationStatus{
		StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRefunded,
	}

	allowed := map[ReservationStatus]map[ReservationStatus]bool{
		StatusPending: {
			StatusConfirmed: true, StatusCancelled: true,
			StatusCompleted: true, StatusRefunded: true,
		},
		StatusConfirmed: {
			StatusCancelled: true, StatusCompleted: true, StatusRefunded: true,
		},
		StatusCancelled: {
			StatusRefunded: true,
		},
		StatusCompleted: {},
		StatusRefunded:  {},
	}

	for _, from := range all {
		for _, to := range all {
			want := from == to || allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestReservationStatus_SameStatusIsAlwaysAllowed(t *testing.T) {
	for _, s := range []ReservationStatus{
		StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRefunded,
	} {
		assert.True(t, s.CanTransitionTo(s), "same-status transition %s must be a no-op", s)
	}
}

func TestReservationStatus_TerminalStatesAreAbsorbing(t *testing.T) {
	others := []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled}

	for _, terminal := range []ReservationStatus{StatusCompleted, StatusRefunded} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range others {
			assert.False(t, terminal.CanTransitionTo(next),
				"terminal status %s must not transition to %s", terminal, next)
		}
		assert.False(t, StatusCompleted.CanTransitionTo(StatusRefunded))
		assert.False(t, StatusRefunded.CanTransitionTo(StatusCompleted))
	}
}

func TestReservation_IsActive(t *testing.T) {
	cases := map[ReservationStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
		StatusRefunded:  false,
	}

	for status, want := range cases {
		r := &Reservation{Status: status}
		assert.Equal(t, want, r.IsActive(), "status %s", status)
	}
}

func TestReservation_Overlaps(t *testing.T) {
	r := &Reservation{
		StartDate: date("2026-07-10"),
		EndDate:   date("2026-07-15"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical range", "2026-07-10", "2026-07-15", true},
		{"fully inside", "2026-07-11", "2026-07-14", true},
		{"fully covers", "2026-07-01", "2026-07-31", true},
		{"overlaps left edge", "2026-07-05", "2026-07-10", true},
		{"overlaps right edge", "2026-07-15", "2026-07-20", true},
		{"single shared day", "2026-07-12", "2026-07-12", true},
		{"ends day before", "2026-07-01", "2026-07-09", false},
		{"starts day after", "2026-07-16", "2026-07-20", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Overlaps(date(tt.start), date(tt.end)))
		})
	}
}
