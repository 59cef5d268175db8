package user

import (
	"context"
	"errors"

	"clinixsphere/database/repository"
	"clinixsphere/models"
	"clinixsphere/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = utils.NewAppError(utils.KindUnauthorized, "Invalid email or password")

// Login checks the credentials and issues a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	return s.issueToken(userRec)
}
