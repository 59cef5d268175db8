package user

import (
	"context"
	"time"

	doctorRepo "clinixsphere/database/repository/doctor"
	userRepo "clinixsphere/database/repository/user"
	"clinixsphere/models"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.UserRegistrationRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Profiles
	GetProfile(ctx context.Context, userID string) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.PublicUser, error)
	GetDoctorProfile(ctx context.Context, userID string) (*models.DoctorDTO, error)
	UpdateDoctorProfile(ctx context.Context, userID string, req models.DoctorProfileUpdate) (*models.DoctorDTO, error)

	// Directory
	ListDoctors(ctx context.Context) ([]models.DoctorDTO, error)
	FindDoctor(ctx context.Context, id string) (*models.User, error)
	GetUsers(ctx context.Context, ids []string) (map[string]models.PublicUser, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	DoctorRepo doctorRepo.DoctorRepository
	TokenTTL   time.Duration
}

func NewUserService(repo userRepo.UserRepository, doctors doctorRepo.DoctorRepository, tokenTTL time.Duration) *DefaultUserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &DefaultUserService{Repo: repo, DoctorRepo: doctors, TokenTTL: tokenTTL}
}
