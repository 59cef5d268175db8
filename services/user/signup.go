package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinixsphere/database/repository"
	"clinixsphere/models"
	"clinixsphere/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and signs the caller in. Doctors also get an
// empty professional profile.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistrationRequest) (*models.AuthResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, utils.NewAppError(utils.KindConflict, "Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewAppError(utils.KindConflict, "Email already registered")
		}
		return nil, err
	}

	if newUser.IsDoctor() {
		profile := &models.DoctorProfile{
			UserID:          newUser.ID,
			Speciality:      "General",
			ExperienceYears: 0,
		}
		if err := s.DoctorRepo.Create(ctx, profile); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}

	utils.GetLogger().Info("User registered", zap.String("userId", newUser.ID), zap.String("role", newUser.Role))
	return s.issueToken(newUser)
}

func (s *DefaultUserService) issueToken(u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, u.Name, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u.Public()}, nil
}
