package models

import (
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusAccepted    BookingStatus = "accepted"
	StatusRejected    BookingStatus = "rejected"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusInProgress  BookingStatus = "in_progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
)

// AllBookingStatuses lists every state in lifecycle order.
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusRescheduled,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// Actor is the party driving a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorProvider Actor = "provider"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusRescheduled,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// CanTransition reports whether actor may move a booking from s to next.
//
// customer: pending|accepted|in_progress -> cancelled
// provider: pending -> accepted|rejected|rescheduled
//
//	accepted -> rescheduled|in_progress
//	in_progress -> completed
func (s BookingStatus) CanTransition(actor Actor, next BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch actor {
	case ActorCustomer:
		switch s {
		case StatusPending, StatusAccepted, StatusInProgress:
			return next == StatusCancelled
		}
	case ActorProvider:
		switch s {
		case StatusPending:
			return next == StatusAccepted || next == StatusRejected || next == StatusRescheduled
		case StatusAccepted:
			return next == StatusRescheduled || next == StatusInProgress
		case StatusInProgress:
			return next == StatusCompleted
		}
	}
	return false
}

// Transition validates a move and returns a TransitionError when it is not allowed.
func (s BookingStatus) Transition(actor Actor, next BookingStatus) error {
	if !s.CanTransition(actor, next) {
		return &TransitionError{From: s, To: next}
	}
	return nil
}

// TransitionError names an illegal from/to pair.
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}

// StatusChange is one validated transition plus the fields written alongside it.
type StatusChange struct {
	From                BookingStatus
	To                  BookingStatus
	Note                string
	At                  time.Time
	CancellationReason  string
	RejectionReason     string
	RescheduledDate     string
	RescheduledTimeSlot *TimeSlot
	CompletedAt         *time.Time
}

// HistoryEntry is the audit record appended for the change.
func (c StatusChange) HistoryEntry() StatusHistoryEntry {
	return StatusHistoryEntry{Status: c.To, Timestamp: c.At, Note: c.Note}
}

// Apply writes the change onto b in memory. Callers must have checked b.Status == c.From.
func (b *Booking) Apply(c StatusChange) {
	b.Status = c.To
	b.UpdatedAt = c.At
	b.StatusHistory = append(b.StatusHistory, c.HistoryEntry())
	if c.CancellationReason != "" {
		b.CancellationReason = c.CancellationReason
	}
	if c.RejectionReason != "" {
		b.RejectionReason = c.RejectionReason
	}
	if c.RescheduledDate != "" {
		b.RescheduledDate = c.RescheduledDate
	}
	if c.RescheduledTimeSlot != nil {
		ts := *c.RescheduledTimeSlot
		b.RescheduledTimeSlot = &ts
	}
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		b.CompletedAt = &t
	}
}
