package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinixsphere/database/repository"
	"clinixsphere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

func NewMongoAvailabilityRepo(db *mongo.Database) *MongoAvailabilityRepo {
	return &MongoAvailabilityRepo{coll: db.Collection("availabilities")}
}

func (r *MongoAvailabilityRepo) Get(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var availability models.WeeklyAvailability
	err := r.coll.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(&availability)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for doctor %s: %w", doctorID, err)
	}
	return &availability, nil
}

// Put fully replaces the stored record. CreatedAt survives the replacement.
func (r *MongoAvailabilityRepo) Put(ctx context.Context, availability *models.WeeklyAvailability) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	availability.UpdatedAt = now
	if availability.CreatedAt.IsZero() {
		var existing models.WeeklyAvailability
		err := r.coll.FindOne(ctx, bson.M{"doctorId": availability.DoctorID},
			options.FindOne().SetProjection(bson.M{"createdAt": 1})).Decode(&existing)
		switch {
		case err == nil:
			availability.CreatedAt = existing.CreatedAt
		case errors.Is(err, mongo.ErrNoDocuments):
			availability.CreatedAt = now
		default:
			return fmt.Errorf("failed to read availability for doctor %s: %w", availability.DoctorID, err)
		}
	}
	if availability.ClosedDates == nil {
		availability.ClosedDates = []string{}
	}

	filter := bson.M{"doctorId": availability.DoctorID}
	_, err := r.coll.ReplaceOne(ctx, filter, availability, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save availability for doctor %s: %w", availability.DoctorID, err)
	}
	return nil
}
