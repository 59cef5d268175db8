package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	appointmentColl *mongo.Collection
	lockColl        *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo(db *mongo.Database) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{
		appointmentColl: db.Collection("appointments"),
		lockColl:        db.Collection("booking_locks"),
	}
}

// GetByID retrieves an appointment by ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var appt models.Appointment
	if err := r.appointmentColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err = repository.TranslateFindErr(err); errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) FindByDoctorAndDateRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"time":     bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter, 1)
}

func (r *MongoAppointmentRepo) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID}, 1)
}

func (r *MongoAppointmentRepo) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patientId": patientID}, 1)
}

// FindByDoctorAndPatient returns the shared history, newest first.
func (r *MongoAppointmentRepo) FindByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID, "patientId": patientID}, -1)
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, order int) ([]models.Appointment, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: order}})
	cursor, err := r.appointmentColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatus only matches while the appointment is still in from, so two
// racing transitions cannot both apply.
func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	res, err := r.appointmentColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrStaleWrite
	}
	return nil
}

// DistinctPatients lists the patients of the doctor's appointments in status.
func (r *MongoAppointmentRepo) DistinctPatients(ctx context.Context, doctorID string, status models.AppointmentStatus) ([]string, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	raw, err := r.appointmentColl.Distinct(ctx, "patientId", bson.M{"doctorId": doctorID, "status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to list patients for doctor %s: %w", doctorID, err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
