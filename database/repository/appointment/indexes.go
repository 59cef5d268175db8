package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinixsphere/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the appointment and booking lock indexes.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.appointmentColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "time", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	_, err = r.lockColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create booking lock index: %w", err)
	}
	return nil
}
