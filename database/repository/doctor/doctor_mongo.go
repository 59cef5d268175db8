package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

func NewMongoDoctorRepo(db *mongo.Database) *MongoDoctorRepo {
	return &MongoDoctorRepo{coll: db.Collection("doctor_profiles")}
}

func (r *MongoDoctorRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create doctor profile indexes: %w", err)
	}
	return nil
}

func (r *MongoDoctorRepo) GetByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var profile models.DoctorProfile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if err = repository.TranslateFindErr(err); errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch doctor profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *MongoDoctorRepo) GetAll(ctx context.Context) ([]models.DoctorProfile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.DoctorProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode doctor profiles: %w", err)
	}
	return profiles, nil
}

func (r *MongoDoctorRepo) Create(ctx context.Context, profile *models.DoctorProfile) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if repository.IsDuplicateKey(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create doctor profile: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of update and returns the new document.
func (r *MongoDoctorRepo) Update(ctx context.Context, userID string, update models.DoctorProfileUpdate) (*models.DoctorProfile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Speciality != nil {
		set["speciality"] = *update.Speciality
	}
	if update.ExperienceYears != nil {
		set["experienceYears"] = *update.ExperienceYears
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.DoctorProfile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": set}, opts).Decode(&profile)
	if err != nil {
		if err = repository.TranslateFindErr(err); errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update doctor profile for user %s: %w", userID, err)
	}
	return &profile, nil
}
