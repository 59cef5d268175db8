package user

import (
	"regexp"
	"strings"

	"clinixsphere/models"
	"clinixsphere/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < minNameLength {
		return utils.NewAppError(utils.KindInvalidInput, "name must be at least 2 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return utils.NewAppError(utils.KindInvalidInput, "invalid email address")
	}
	return nil
}

func validateRegistration(req models.UserRegistrationRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < minPasswordLength {
		return utils.NewAppError(utils.KindInvalidInput, "password must be at least 6 characters")
	}
	if req.Role != models.RoleDoctor && req.Role != models.RolePatient {
		return utils.NewAppError(utils.KindInvalidInput, "role must be doctor or patient")
	}
	return nil
}
