package service

import (
	"context"
	"testing"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/mocks"
	mockauth "github.com/batisuivi/batisuivi/internal/mocks/auth"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSalarieService(t *testing.T) (*mocks.MockSalarieRepository, *SalarieService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalarieRepository(ctrl)
	return repo, NewSalarieService(SalarieServiceOptions{Repo: repo, Hasher: mockauth.PlainHasher{}})
}

var rhActor = &domainauth.SessionUser{ID: "rh-1", Identifiant: "rh", Role: domainauth.RoleRH}

func TestSalarieService_Create_WithoutAccount(t *testing.T) {
	t.Parallel()
	repo, svc := newSalarieService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any(), (*ports.NewAccount)(nil)).
		Return(&model.Salarie{ID: "s-1", Nom: "Petit", Prenom: "Anne", Actif: true}, nil)

	s, err := svc.Create(context.Background(), rhActor, &model.CreateSalarieRequest{Nom: " Petit ", Prenom: "Anne"})
	require.NoError(t, err)
	assert.Equal(t, "s-1", s.ID)
}

func TestSalarieService_Create_WithAccount(t *testing.T) {
	t.Parallel()
	repo, svc := newSalarieService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *model.CreateSalarieRequest, acc *ports.NewAccount) (*model.Salarie, error) {
			require.NotNil(t, acc)
			assert.Equal(t, "plain:secret123", acc.PasswordHash)
			assert.Equal(t, "lbernard", acc.Request.Identifiant)
			assert.Equal(t, domainauth.RoleOuvrier, acc.Request.Role)
			assert.Equal(t, "Bernard", *acc.Request.Nom)
			return &model.Salarie{ID: "s-2"}, nil
		})

	_, err := svc.Create(context.Background(), rhActor, &model.CreateSalarieRequest{
		Nom:    "Bernard",
		Prenom: "Luc",
		Compte: &model.SalarieAccount{Identifiant: " lbernard", MotDePasse: "secret123", Role: domainauth.RoleOuvrier},
	})
	require.NoError(t, err)
}

func TestSalarieService_Create_InvalidAccount(t *testing.T) {
	t.Parallel()
	_, svc := newSalarieService(t)

	_, err := svc.Create(context.Background(), rhActor, &model.CreateSalarieRequest{
		Nom:    "Bernard",
		Prenom: "Luc",
		Compte: &model.SalarieAccount{Identifiant: "lbernard", MotDePasse: "secret123", Role: "CHEF"},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestSalarieService_Create_AdminAccountRequiresAdmin(t *testing.T) {
	t.Parallel()
	req := func() *model.CreateSalarieRequest {
		return &model.CreateSalarieRequest{
			Nom:    "Bernard",
			Prenom: "Luc",
			Compte: &model.SalarieAccount{Identifiant: "lbernard", MotDePasse: "secret123", Role: domainauth.RoleAdmin},
		}
	}

	for _, role := range []domainauth.Role{domainauth.RoleRH, domainauth.RoleCAFF} {
		t.Run(string(role), func(t *testing.T) {
			// No repository expectation: the request must stop before storage.
			_, svc := newSalarieService(t)
			_, err := svc.Create(context.Background(), &domainauth.SessionUser{ID: "x", Role: role}, req())
			assert.True(t, apperrors.IsForbidden(err), "got %v", err)
		})
	}

	t.Run("ADMIN", func(t *testing.T) {
		repo, svc := newSalarieService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(&model.Salarie{ID: "s-3"}, nil)
		_, err := svc.Create(context.Background(), adminActor, req())
		require.NoError(t, err)
	})
}

func TestSalarieService_Update_RequiresChanges(t *testing.T) {
	t.Parallel()
	_, svc := newSalarieService(t)

	_, err := svc.Update(context.Background(), "s-1", model.UpdateSalarieRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestSalarieService_Delete_LinkedAccount(t *testing.T) {
	t.Parallel()
	repo, svc := newSalarieService(t)

	repo.EXPECT().Delete(gomock.Any(), "s-1").Return(false, apperrors.ForeignKey("linked"))

	_, err := svc.Delete(context.Background(), "s-1")
	assert.True(t, apperrors.IsForeignKey(err))
}
