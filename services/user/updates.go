package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinixsphere/database/repository"
	"clinixsphere/models"
	"clinixsphere/utils"
)

var errUserNotFound = utils.NewAppError(utils.KindNotFound, "User not found")

func (s *DefaultUserService) getUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// UpdateProfile changes the name and email when they are provided.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.PublicUser, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		if err := validateName(name); err != nil {
			return nil, err
		}
		u.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		u.Email = email
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewAppError(utils.KindConflict, "Email already registered")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	pub := u.Public()
	return &pub, nil
}

func (s *DefaultUserService) GetDoctorProfile(ctx context.Context, userID string) (*models.DoctorDTO, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.DoctorRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewAppError(utils.KindNotFound, "Doctor profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &models.DoctorDTO{DoctorProfile: *profile, User: u.Public()}, nil
}

func (s *DefaultUserService) UpdateDoctorProfile(ctx context.Context, userID string, req models.DoctorProfileUpdate) (*models.DoctorDTO, error) {
	if req.ExperienceYears != nil && *req.ExperienceYears < 0 {
		return nil, utils.NewAppError(utils.KindInvalidInput, "experienceYears cannot be negative")
	}
	if req.Speciality != nil && strings.TrimSpace(*req.Speciality) == "" {
		return nil, utils.NewAppError(utils.KindInvalidInput, "speciality cannot be empty")
	}

	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.DoctorRepo.Update(ctx, userID, req)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewAppError(utils.KindNotFound, "Doctor profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &models.DoctorDTO{DoctorProfile: *profile, User: u.Public()}, nil
}
