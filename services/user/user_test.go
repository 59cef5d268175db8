package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"clinixsphere/database/repository"
	"clinixsphere/models"
	"clinixsphere/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	byID map[string]models.User
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == strings.ToLower(email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUsers) GetByRole(_ context.Context, role string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUsers) Create(_ context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *memoryUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	m.byID[u.ID] = *u
	return nil
}

type memoryDoctors struct {
	byUser map[string]models.DoctorProfile
}

func (m *memoryDoctors) GetByUserID(_ context.Context, userID string) (*models.DoctorProfile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memoryDoctors) GetAll(_ context.Context) ([]models.DoctorProfile, error) {
	out := []models.DoctorProfile{}
	for _, p := range m.byUser {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryDoctors) Create(_ context.Context, p *models.DoctorProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	m.byUser[p.UserID] = *p
	return nil
}

func (m *memoryDoctors) Update(_ context.Context, userID string, upd models.DoctorProfileUpdate) (*models.DoctorProfile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Speciality != nil {
		p.Speciality = *upd.Speciality
	}
	if upd.ExperienceYears != nil {
		p.ExperienceYears = *upd.ExperienceYears
	}
	if upd.Bio != nil {
		p.Bio = *upd.Bio
	}
	m.byUser[userID] = p
	return &p, nil
}

func newService() (*DefaultUserService, *memoryUsers, *memoryDoctors) {
	users := &memoryUsers{byID: map[string]models.User{}}
	doctors := &memoryDoctors{byUser: map[string]models.DoctorProfile{}}
	return NewUserService(users, doctors, time.Hour), users, doctors
}

func TestRegister(t *testing.T) {
	svc, users, doctors := newService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.UserRegistrationRequest{
		Name: "Grace Hopper", Email: "Grace@Example.com", Password: "secret1", Role: models.RoleDoctor,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "grace@example.com", resp.User.Email)

	stored := users.byID[resp.User.ID]
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	profile, ok := doctors.byUser[resp.User.ID]
	require.True(t, ok, "doctors get a profile")
	assert.Equal(t, "General", profile.Speciality)

	claims, err := utils.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)

	_, err = svc.Register(ctx, models.UserRegistrationRequest{
		Name: "Someone", Email: "grace@example.com", Password: "secret1", Role: models.RolePatient,
	})
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestRegister_PatientHasNoProfile(t *testing.T) {
	svc, _, doctors := newService()
	resp, err := svc.Register(context.Background(), models.UserRegistrationRequest{
		Name: "Pat", Email: "pat@example.com", Password: "secret1", Role: models.RolePatient,
	})
	require.NoError(t, err)
	assert.NotContains(t, doctors.byUser, resp.User.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newService()
	cases := map[string]models.UserRegistrationRequest{
		"short name":     {Name: "A", Email: "a@example.com", Password: "secret1", Role: models.RolePatient},
		"bad email":      {Name: "Ann", Email: "not-an-email", Password: "secret1", Role: models.RolePatient},
		"short password": {Name: "Ann", Email: "a@example.com", Password: "123", Role: models.RolePatient},
		"unknown role":   {Name: "Ann", Email: "a@example.com", Password: "secret1", Role: "admin"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), req)
			assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, err := svc.Register(ctx, models.UserRegistrationRequest{
		Name: "Pat", Email: "pat@example.com", Password: "secret1", Role: models.RolePatient,
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "pat@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
}

func TestProfiles(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	doc, err := svc.Register(ctx, models.UserRegistrationRequest{
		Name: "Dr Who", Email: "who@example.com", Password: "secret1", Role: models.RoleDoctor,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, doc.User.ID, models.ProfileUpdateRequest{Name: "Dr Who II"})
	require.NoError(t, err)
	assert.Equal(t, "Dr Who II", updated.Name)
	assert.Equal(t, "who@example.com", updated.Email)

	speciality, years := "Cardiology", 12
	dto, err := svc.UpdateDoctorProfile(ctx, doc.User.ID, models.DoctorProfileUpdate{Speciality: &speciality, ExperienceYears: &years})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", dto.Speciality)
	assert.Equal(t, 12, dto.ExperienceYears)
	assert.Equal(t, "Dr Who II", dto.User.Name)

	negative := -1
	_, err = svc.UpdateDoctorProfile(ctx, doc.User.ID, models.DoctorProfileUpdate{ExperienceYears: &negative})
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	_, err = svc.GetProfile(ctx, "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestDirectory(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	doc, err := svc.Register(ctx, models.UserRegistrationRequest{
		Name: "Dr Who", Email: "who@example.com", Password: "secret1", Role: models.RoleDoctor,
	})
	require.NoError(t, err)
	pat, err := svc.Register(ctx, models.UserRegistrationRequest{
		Name: "Pat", Email: "pat@example.com", Password: "secret1", Role: models.RolePatient,
	})
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, doc.User.ID, doctors[0].User.ID)

	found, err := svc.FindDoctor(ctx, doc.User.ID)
	require.NoError(t, err)
	assert.True(t, found.IsDoctor())

	found, err = svc.FindDoctor(ctx, pat.User.ID)
	require.NoError(t, err)
	assert.False(t, found.IsDoctor())

	found, err = svc.FindDoctor(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}
