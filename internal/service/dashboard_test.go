package service

import (
	"context"
	"errors"
	"testing"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDashboardService(t *testing.T) (
	*mocks.MockChantierRepository, *mocks.MockSalarieRepository, *mocks.MockUserRepository, *DashboardService,
) {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := mocks.NewMockChantierRepository(ctrl)
	s := mocks.NewMockSalarieRepository(ctrl)
	u := mocks.NewMockUserRepository(ctrl)
	return c, s, u, NewDashboardService(DashboardServiceOptions{Chantiers: c, Salaries: s, Users: u})
}

func TestDashboardService_Summary(t *testing.T) {
	t.Parallel()
	c, s, u, svc := newDashboardService(t)

	counts := map[model.ChantierStatut]int{
		model.ChantierAVenir:  2,
		model.ChantierEnCours: 5,
		model.ChantierTermine: 1,
	}
	c.EXPECT().CountByStatut(gomock.Any()).Return(counts, nil)
	s.EXPECT().CountActive(gomock.Any()).Return(12, nil)
	u.EXPECT().CountActive(gomock.Any()).Return(7, nil)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.DashboardSummary{
		ChantiersParStatut: counts,
		SalariesActifs:     12,
		UtilisateursActifs: 7,
	}, got)
}

func TestDashboardService_Summary_Error(t *testing.T) {
	t.Parallel()
	c, s, u, svc := newDashboardService(t)
	boom := errors.New("boom")

	c.EXPECT().CountByStatut(gomock.Any()).Return(nil, boom)
	s.EXPECT().CountActive(gomock.Any()).Return(0, nil).AnyTimes()
	u.EXPECT().CountActive(gomock.Any()).Return(0, nil).AnyTimes()

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, boom)
}
