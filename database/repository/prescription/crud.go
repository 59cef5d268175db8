package prescriptionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinixsphere/database/repository"
	"clinixsphere/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo returns a PrescriptionRepository backed by MongoDB.
func NewMongoPrescriptionRepo(db *mongo.Database) *MongoPrescriptionRepo {
	return &MongoPrescriptionRepo{coll: db.Collection("prescriptions")}
}

func (r *MongoPrescriptionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create prescription indexes: %w", err)
	}
	return nil
}

// Create inserts a new prescription, assigning its ID.
func (r *MongoPrescriptionRepo) Create(ctx context.Context, prescription *models.Prescription) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	prescription.CreatedAt = now
	prescription.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, prescription); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *MongoPrescriptionRepo) GetByID(ctx context.Context, id string) (*models.Prescription, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var prescription models.Prescription
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&prescription); err != nil {
		if err = repository.TranslateFindErr(err); errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch prescription %s: %w", id, err)
	}
	return &prescription, nil
}

func (r *MongoPrescriptionRepo) FindByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *MongoPrescriptionRepo) FindByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"patientId": patientID})
}

func (r *MongoPrescriptionRepo) FindByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID, "patientId": patientID})
}

func (r *MongoPrescriptionRepo) find(ctx context.Context, filter bson.M) ([]models.Prescription, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	prescriptions := []models.Prescription{}
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, fmt.Errorf("failed to decode prescriptions: %w", err)
	}
	return prescriptions, nil
}
