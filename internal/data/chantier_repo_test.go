package data

import (
	"context"
	"testing"
	"time"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChantierRepo_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewChantierRepo(db)
	ctx := context.Background()

	debut := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c, err := repo.Create(ctx, &model.CreateChantierRequest{
		Nom:       "Résidence Les Tilleuls",
		Client:    strPtr("Habitat 44"),
		Statut:    model.ChantierAVenir,
		DateDebut: &debut,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ChantierAVenir, c.Statut)

	enCours := model.ChantierEnCours
	c, err = repo.Update(ctx, c.ID, model.UpdateChantierRequest{Statut: &enCours})
	require.NoError(t, err)
	assert.Equal(t, model.ChantierEnCours, c.Statut)

	q := "tilleuls"
	list, err := repo.List(ctx, model.ChantiersListOptions{Q: &q})
	require.NoError(t, err)
	require.Len(t, list, 1)

	counts, err := repo.CountByStatut(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[model.ChantierStatut]int{
		model.ChantierAVenir:  0,
		model.ChantierEnCours: 1,
		model.ChantierTermine: 0,
	}, counts)

	deleted, err := repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Update(ctx, c.ID, model.UpdateChantierRequest{Statut: &enCours})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestChantierRepo_DatesCheckConstraint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewChantierRepo(db)

	debut := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 0, -1)
	_, err := repo.Create(context.Background(), &model.CreateChantierRequest{
		Nom:       "Inversé",
		Statut:    model.ChantierAVenir,
		DateDebut: &debut,
		DateFin:   &fin,
	})
	assert.True(t, apperrors.IsValidation(err))
}
