package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"clinixsphere/database/repository"
	"clinixsphere/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxBookingAttempts bounds retries after a transient transaction error.
const maxBookingAttempts = 3

// retryBaseDelay is the backoff before the second attempt. Later attempts
// double it, and each delay gets up to the same again in jitter.
const retryBaseDelay = 20 * time.Millisecond

// backoff waits before the given retry attempt. Tests replace it.
var backoff = func(ctx context.Context, attempt int) error {
	delay := retryBaseDelay << (attempt - 1)
	delay += time.Duration(rand.Int63n(int64(delay)))
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Create books appt transactionally. The lock document for guard.LockKey is
// bumped first so that concurrent bookings of the same doctor-day write
// conflict, then the overlap check is repeated inside the transaction.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment, guard BookingGuard) error {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	client := r.appointmentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return withBookingRetry(ctx, func() error {
		return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := r.reserve(sc, appt, guard, now); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
	})
}

// reserve is the body of the booking transaction.
func (r *MongoAppointmentRepo) reserve(ctx context.Context, appt *models.Appointment, guard BookingGuard, now time.Time) error {
	_, err := r.lockColl.UpdateOne(ctx,
		bson.M{"key": guard.LockKey},
		bson.M{"$inc": bson.M{"version": 1}, "$set": bson.M{"updatedAt": now}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("acquire booking lock failed: %w", err)
	}

	n, err := r.appointmentColl.CountDocuments(ctx, overlapFilter(appt, guard))
	if err != nil {
		return fmt.Errorf("overlap check failed: %w", err)
	}
	if n > 0 {
		return repository.ErrSlotTaken
	}

	if _, err := r.appointmentColl.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("insert appointment failed: %w", err)
	}
	return nil
}

// overlapFilter matches blocking appointments of the same doctor whose
// half-open window intersects appt's.
func overlapFilter(appt *models.Appointment, guard BookingGuard) bson.M {
	return bson.M{
		"doctorId": appt.DoctorID,
		"status":   bson.M{"$in": guard.Blocking},
		"time": bson.M{
			"$gt": appt.Time.Add(-guard.Duration),
			"$lt": appt.Time.Add(guard.Duration),
		},
	}
}

// withBookingRetry runs attempt until it succeeds, fails for good, or runs
// out of attempts. Lost races surface as repository.ErrSlotTaken.
func withBookingRetry(ctx context.Context, attempt func() error) error {
	for n := 1; ; n++ {
		err := attempt()
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrSlotTaken) {
			return err
		}
		if !isRetryable(err) {
			return fmt.Errorf("booking transaction failed: %w", err)
		}
		if n == maxBookingAttempts {
			return repository.ErrSlotTaken
		}
		if err := backoff(ctx, n); err != nil {
			return err
		}
	}
}

// isRetryable reports whether err came from losing a race on the lock
// document, either as a write conflict or as a concurrent first upsert.
func isRetryable(err error) bool {
	if repository.IsDuplicateKey(err) {
		return true
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("TransientTransactionError")
	}
	return false
}
