package service

import (
	"context"
	"errors"
	"testing"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/mocks"
	mockauth "github.com/batisuivi/batisuivi/internal/mocks/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUserService(t *testing.T) (*mocks.MockUserRepository, *UserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	return repo, NewUserService(UserServiceOptions{Users: repo, Hasher: mockauth.PlainHasher{}})
}

var adminActor = &domainauth.SessionUser{ID: "admin-1", Identifiant: "admin", Role: domainauth.RoleAdmin}

func TestUserService_Create_HashesPassword(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)
	ctx := context.Background()

	req := &model.CreateUserRequest{
		Identifiant: "  rdc2 ",
		MotDePasse:  "secret123",
		Email:       stringPtr(" rdc2@example.com "),
		Role:        domainauth.RoleRDC,
	}
	created := &model.User{ID: "u-9", Identifiant: "rdc2", Role: domainauth.RoleRDC, Actif: true}

	repo.EXPECT().
		Create(ctx, gomock.Any(), "plain:secret123").
		DoAndReturn(func(_ context.Context, got *model.CreateUserRequest, _ string) (*model.User, error) {
			assert.Equal(t, "rdc2", got.Identifiant)
			assert.Equal(t, "rdc2@example.com", *got.Email)
			return created, nil
		})

	u, err := svc.Create(ctx, adminActor, req)
	require.NoError(t, err)
	assert.Equal(t, "u-9", u.ID)
}

func TestUserService_Create_Validation(t *testing.T) {
	t.Parallel()
	_, svc := newUserService(t)

	tests := []struct {
		name string
		req  model.CreateUserRequest
	}{
		{"missing identifiant", model.CreateUserRequest{MotDePasse: "secret123", Role: domainauth.RoleCE}},
		{"invalid role", model.CreateUserRequest{Identifiant: "x", MotDePasse: "secret123", Role: "CHEF"}},
		{"short password", model.CreateUserRequest{Identifiant: "x", MotDePasse: "court", Role: domainauth.RoleCE}},
		{"bad email", model.CreateUserRequest{Identifiant: "x", MotDePasse: "secret123", Role: domainauth.RoleCE, Email: stringPtr("pas-un-email")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), adminActor, &tt.req)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestUserService_Create_ConflictPropagates(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "exists", Field: "identifiant"})

	_, err := svc.Create(context.Background(), adminActor, &model.CreateUserRequest{
		Identifiant: "dup", MotDePasse: "secret123", Role: domainauth.RoleCE,
	})
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "identifiant", apperrors.GetField(err))
}

func TestUserService_SetActive(t *testing.T) {
	t.Parallel()

	t.Run("cannot deactivate self", func(t *testing.T) {
		_, svc := newUserService(t)
		_, err := svc.SetActive(context.Background(), adminActor, adminActor.ID, false)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("reactivating self is a no-op change", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().SetActive(gomock.Any(), adminActor.ID, true).Return(&model.User{ID: adminActor.ID, Actif: true}, nil)
		_, err := svc.SetActive(context.Background(), adminActor, adminActor.ID, true)
		require.NoError(t, err)
	})

	t.Run("deactivates another user", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().SetActive(gomock.Any(), "u-2", false).Return(&model.User{ID: "u-2"}, nil)
		u, err := svc.SetActive(context.Background(), adminActor, "u-2", false)
		require.NoError(t, err)
		assert.False(t, u.Actif)
	})
}

func TestUserService_SetRole(t *testing.T) {
	t.Parallel()

	t.Run("cannot change own role", func(t *testing.T) {
		_, svc := newUserService(t)
		_, err := svc.SetRole(context.Background(), adminActor, adminActor.ID, domainauth.RoleCAFF)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, svc := newUserService(t)
		_, err := svc.SetRole(context.Background(), adminActor, "u-2", domainauth.Role("SUPER"))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("changes another user's role", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().SetRole(gomock.Any(), "u-2", domainauth.RoleCE).
			Return(&model.User{ID: "u-2", Role: domainauth.RoleCE}, nil)
		u, err := svc.SetRole(context.Background(), adminActor, "u-2", domainauth.RoleCE)
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleCE, u.Role)
	})
}

func TestUserService_SelfProtection_AlternateIDSpellings(t *testing.T) {
	t.Parallel()
	actor := &domainauth.SessionUser{ID: "3f2c9a7e-1b2d-4c5e-8f90-a1b2c3d4e5f6", Role: domainauth.RoleAdmin}
	spellings := map[string]string{
		"uppercase":    "3F2C9A7E-1B2D-4C5E-8F90-A1B2C3D4E5F6",
		"unhyphenated": "3f2c9a7e1b2d4c5e8f90a1b2c3d4e5f6",
		"braced":       "{3f2c9a7e-1b2d-4c5e-8f90-a1b2c3d4e5f6}",
		"urn":          "urn:uuid:3f2c9a7e-1b2d-4c5e-8f90-a1b2c3d4e5f6",
	}
	for name, id := range spellings {
		t.Run(name, func(t *testing.T) {
			// The repository mock has no expectations: any update fails the test.
			_, svc := newUserService(t)

			_, err := svc.SetActive(context.Background(), actor, id, false)
			assert.True(t, apperrors.IsValidation(err), "SetActive: %v", err)

			_, err = svc.SetRole(context.Background(), actor, id, domainauth.RoleOuvrier)
			assert.True(t, apperrors.IsValidation(err), "SetRole: %v", err)
		})
	}
}

func TestUserService_Create_RoleAssignment(t *testing.T) {
	t.Parallel()
	cafActor := &domainauth.SessionUser{ID: "caff-1", Role: domainauth.RoleCAFF}

	t.Run("CAFF cannot create an ADMIN", func(t *testing.T) {
		_, svc := newUserService(t)
		_, err := svc.Create(context.Background(), cafActor, &model.CreateUserRequest{
			Identifiant: "root2", MotDePasse: "secret123", Role: domainauth.RoleAdmin,
		})
		assert.True(t, apperrors.IsForbidden(err), "got %v", err)
	})

	t.Run("CAFF creates other roles", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.User{ID: "u-3", Role: domainauth.RoleCE}, nil)
		_, err := svc.Create(context.Background(), cafActor, &model.CreateUserRequest{
			Identifiant: "ce2", MotDePasse: "secret123", Role: domainauth.RoleCE,
		})
		require.NoError(t, err)
	})

	t.Run("ADMIN creates an ADMIN", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.User{ID: "u-4", Role: domainauth.RoleAdmin}, nil)
		_, err := svc.Create(context.Background(), adminActor, &model.CreateUserRequest{
			Identifiant: "root2", MotDePasse: "secret123", Role: domainauth.RoleAdmin,
		})
		require.NoError(t, err)
	})

	t.Run("operator without session may assign ADMIN", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.User{ID: "u-5", Role: domainauth.RoleAdmin}, nil)
		_, err := svc.Create(context.Background(), nil, &model.CreateUserRequest{
			Identifiant: "root3", MotDePasse: "secret123", Role: domainauth.RoleAdmin,
		})
		require.NoError(t, err)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	assert.True(t, apperrors.IsValidation(svc.ResetPassword(context.Background(), "u-2", "court")))

	repo.EXPECT().SetPasswordHash(gomock.Any(), "u-2", "plain:nouveau-secret").Return(nil)
	require.NoError(t, svc.ResetPassword(context.Background(), "u-2", "nouveau-secret"))
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Parallel()
	actor := &domainauth.SessionUser{ID: "u-1", Role: domainauth.RoleOuvrier}
	stored := &model.User{ID: "u-1", PasswordHash: "plain:ancien-secret", Actif: true}

	t.Run("wrong current password", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().GetByID(gomock.Any(), "u-1").Return(stored, nil)
		err := svc.ChangePassword(context.Background(), actor, model.ChangePasswordRequest{
			MotDePasseActuel: "mauvais", NouveauMotDePasse: "nouveau-secret",
		})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("success", func(t *testing.T) {
		repo, svc := newUserService(t)
		repo.EXPECT().GetByID(gomock.Any(), "u-1").Return(stored, nil)
		repo.EXPECT().SetPasswordHash(gomock.Any(), "u-1", "plain:nouveau-secret").Return(nil)
		err := svc.ChangePassword(context.Background(), actor, model.ChangePasswordRequest{
			MotDePasseActuel: "ancien-secret", NouveauMotDePasse: "nouveau-secret",
		})
		require.NoError(t, err)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo, svc := newUserService(t)
		boom := errors.New("boom")
		repo.EXPECT().GetByID(gomock.Any(), "u-1").Return(nil, boom)
		err := svc.ChangePassword(context.Background(), actor, model.ChangePasswordRequest{
			MotDePasseActuel: "ancien-secret", NouveauMotDePasse: "nouveau-secret",
		})
		assert.ErrorIs(t, err, boom)
	})
}
