package service

import (
	"context"
	"testing"
	"time"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	"github.com/batisuivi/batisuivi/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChantierService_Create_DefaultsStatut(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockChantierRepository(ctrl)
	svc := NewChantierService(ChantierServiceOptions{Repo: repo})

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateChantierRequest) (*model.Chantier, error) {
			assert.Equal(t, model.ChantierAVenir, req.Statut)
			return &model.Chantier{ID: "c-1", Nom: req.Nom, Statut: req.Statut}, nil
		})

	c, err := svc.Create(context.Background(), &model.CreateChantierRequest{Nom: "Gymnase"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)
}

func TestChantierService_Validation(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := NewChantierService(ChantierServiceOptions{Repo: mocks.NewMockChantierRepository(ctrl)})
	ctx := context.Background()

	debut := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, -1, 0)

	_, err := svc.Create(ctx, &model.CreateChantierRequest{Nom: "X", DateDebut: &debut, DateFin: &fin})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(ctx, &model.CreateChantierRequest{Nom: "X", Statut: "ANNULE"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(ctx, "c-1", model.UpdateChantierRequest{})
	assert.True(t, apperrors.IsValidation(err))
}
