package user

import (
	"context"
	"errors"

	"clinixsphere/database/repository"
	"clinixsphere/models"
)

// ListDoctors joins every doctor profile with its account. Profiles whose
// account has gone are skipped.
func (s *DefaultUserService) ListDoctors(ctx context.Context) ([]models.DoctorDTO, error) {
	profiles, err := s.DoctorRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := s.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	doctors := make([]models.DoctorDTO, 0, len(profiles))
	for _, p := range profiles {
		u, ok := users[p.UserID]
		if !ok {
			continue
		}
		doctors = append(doctors, models.DoctorDTO{DoctorProfile: p, User: u})
	}
	return doctors, nil
}

// FindDoctor returns the user behind id, or nil when there is none. Callers
// check the role.
func (s *DefaultUserService) FindDoctor(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// GetUsers resolves ids to their public details.
func (s *DefaultUserService) GetUsers(ctx context.Context, ids []string) (map[string]models.PublicUser, error) {
	users, err := s.Repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.PublicUser, len(users))
	for _, u := range users {
		out[u.ID] = u.Public()
	}
	return out, nil
}
