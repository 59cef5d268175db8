package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches a lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate document")
	// ErrSlotTaken is returned when a booking commit finds the window occupied
	// or loses a race for it.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrStaleWrite is returned when a conditional update no longer matches.
	ErrStaleWrite = errors.New("document changed concurrently")
)

// DefaultTimeout bounds single-document operations.
const DefaultTimeout = 5 * time.Second

// WithTimeout derives a bounded context from parent.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// TranslateFindErr maps mongo.ErrNoDocuments onto ErrNotFound.
func TranslateFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
