package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by id matches nothing.
	ErrNotFound = errors.New("document not found")
	// ErrStaleBooking means a conditional status update matched no document because the status moved.
	ErrStaleBooking = errors.New("booking status changed concurrently")
	// ErrDuplicateReview means the booking already carries a review.
	ErrDuplicateReview = errors.New("booking already reviewed")
	// ErrDuplicateEmail means an account with the email exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateProfile means the user already owns a provider profile.
	ErrDuplicateProfile = errors.New("provider profile already exists")
	// ErrAlreadyVoted means the user already marked the review helpful.
	ErrAlreadyVoted = errors.New("helpful vote already recorded")
	// ErrThreadFull means the booking message thread reached its cap.
	ErrThreadFull = errors.New("message thread is full")
)
