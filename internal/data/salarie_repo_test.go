package data

import (
	"context"
	"testing"

	"github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/ports"
	"github.com/batisuivi/batisuivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalarieRepo_CreateWithAccountIsAtomic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	salaries := NewSalarieRepo(db)
	users := NewUserRepo(db)
	ctx := context.Background()

	createTestUser(t, users, "ouvrier1", nil, auth.RoleOuvrier)

	req := &model.CreateSalarieRequest{
		Nom:    "Bernard",
		Prenom: "Luc",
		Compte: &model.SalarieAccount{Identifiant: "ouvrier1", MotDePasse: "secret123", Role: auth.RoleOuvrier},
	}
	_, err := salaries.Create(ctx, req, &ports.NewAccount{Request: req.AccountRequest(), PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	list, err := salaries.List(ctx, model.SalariesListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list, "employee row must roll back with the failed account")

	req.Compte.Identifiant = "lbernard"
	s, err := salaries.Create(ctx, req, &ports.NewAccount{Request: req.AccountRequest(), PasswordHash: "h"})
	require.NoError(t, err)

	u, err := users.FindActiveByLogin(ctx, []string{"lbernard"})
	require.NoError(t, err)
	require.NotNil(t, u.SalarieID)
	assert.Equal(t, s.ID, *u.SalarieID)

	_, err = salaries.Delete(ctx, s.ID)
	assert.True(t, apperrors.IsForeignKey(err), "linked employee cannot be deleted")
}

func TestSalarieRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSalarieRepo(db)
	ctx := context.Background()

	s, err := repo.Create(ctx, &model.CreateSalarieRequest{Nom: "Petit", Prenom: "Anne", Poste: strPtr("Chef d'équipe")}, nil)
	require.NoError(t, err)
	assert.True(t, s.Actif)

	inactive := false
	updated, err := repo.Update(ctx, s.ID, model.UpdateSalarieRequest{Actif: &inactive, Poste: strPtr("")})
	require.NoError(t, err)
	assert.False(t, updated.Actif)
	assert.Nil(t, updated.Poste)

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	deleted, err := repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, s.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
