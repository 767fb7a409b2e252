package service

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"cleanspot-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDefaultZoomTiers(t *testing.T) {
	t.Run("CoverEveryDiagonalExactlyOnce", func(t *testing.T) {
		samples := []float64{0, 1, 599_999, 600_000, 1_500_000, 2_199_999, 2_200_000, 10_000_000}
		for _, d := range samples {
			matches := 0
			for _, tier := range DefaultZoomTiers {
				if tier.Contains(d) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "diagonal %f should land in exactly one tier", d)
		}
	})

	t.Run("BoundaryBelongsToLargerTier", func(t *testing.T) {
		assert.True(t, DefaultZoomTiers[1].Contains(600_000))
		assert.False(t, DefaultZoomTiers[0].Contains(600_000))
		assert.True(t, DefaultZoomTiers[2].Contains(2_200_000))
		assert.False(t, DefaultZoomTiers[1].Contains(2_200_000))
	})

	t.Run("OrderedSmallestFirst", func(t *testing.T) {
		assert.Equal(t, domain.AreaTypeCountry, DefaultZoomTiers[0].TargetType)
		assert.Equal(t, domain.AreaTypeAA1, DefaultZoomTiers[1].TargetType)
		assert.Equal(t, domain.AreaTypeAA2, DefaultZoomTiers[2].TargetType)
		for i := 1; i < len(DefaultZoomTiers); i++ {
			assert.Equal(t, DefaultZoomTiers[i-1].MaxDiagonal, DefaultZoomTiers[i].MinDiagonal)
		}
		assert.Equal(t, math.MaxFloat64, DefaultZoomTiers[2].MaxDiagonal)
	})
}

func TestAreaService_ClassifyZoomLevels(t *testing.T) {
	ctx := context.Background()

	t.Run("AssignsEachTier", func(t *testing.T) {
		mockAreas := new(MockAreaRepo)
		svc := NewAreaService(mockAreas)

		small := []domain.Area{{ID: 1, Country: "Hungary", Diagonal: 500_000}}
		medium := []domain.Area{{ID: 2, Country: "France", Diagonal: 1_200_000}}
		large := []domain.Area{{ID: 3, Country: "Brazil", Diagonal: 4_300_000}}

		mockAreas.On("ListUnclassifiedCountries", ctx, 0.0, 600_000.0).Return(small, nil).Once()
		mockAreas.On("AssignZoomByCountry", ctx, domain.AreaTypeCountry, []string{"Hungary"}, int32(6)).Return(int64(1), nil).Once()

		mockAreas.On("ListUnclassifiedCountries", ctx, 600_000.0, 2_200_000.0).Return(medium, nil).Once()
		mockAreas.On("AssignZoomByCountry", ctx, domain.AreaTypeAA1, []string{"France"}, int32(7)).Return(int64(13), nil).Once()
		mockAreas.On("AssignZoomByCountry", ctx, domain.AreaTypeCountry, []string{"France"}, int32(7)).Return(int64(1), nil).Once()

		mockAreas.On("ListUnclassifiedCountries", ctx, 2_200_000.0, math.MaxFloat64).Return(large, nil).Once()
		mockAreas.On("AssignZoomByCountry", ctx, domain.AreaTypeAA2, []string{"Brazil"}, int32(8)).Return(int64(27), nil).Once()
		mockAreas.On("AssignZoomByCountry", ctx, domain.AreaTypeCountry, []string{"Brazil"}, int32(8)).Return(int64(1), nil).Once()

		mockAreas.On("CountUnclassifiedCountries", ctx).Return(int64(0), nil).Once()

		report, err := svc.ClassifyZoomLevels(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []int64{1, 13, 27}, report.AssignedPerTier)
		assert.Equal(t, int64(0), report.Unclassified)
		mockAreas.AssertExpectations(t)
	})

	t.Run("EmptyTiersSkipAssignment", func(t *testing.T) {
		mockAreas := new(MockAreaRepo)
		svc := NewAreaService(mockAreas)

		mockAreas.On("ListUnclassifiedCountries", ctx, 0.0, 600_000.0).Return([]domain.Area{}, nil).Once()
		mockAreas.On("ListUnclassifiedCountries", ctx, 600_000.0, 2_200_000.0).Return([]domain.Area{}, nil).Once()
		mockAreas.On("ListUnclassifiedCountries", ctx, 2_200_000.0, math.MaxFloat64).Return([]domain.Area{}, nil).Once()
		mockAreas.On("CountUnclassifiedCountries", ctx).Return(int64(2), nil).Once()

		report, err := svc.ClassifyZoomLevels(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []int64{0, 0, 0}, report.AssignedPerTier)
		// Data quality figure, not a failure.
		assert.Equal(t, int64(2), report.Unclassified)
		mockAreas.AssertNotCalled(t, "AssignZoomByCountry")
	})
}

func TestAreaService_GetArea(t *testing.T) {
	ctx := context.Background()
	mockAreas := new(MockAreaRepo)
	svc := NewAreaService(mockAreas)

	mockAreas.On("GetByID", ctx, int64(404)).Return(nil, sql.ErrNoRows).Once()

	_, err := svc.GetArea(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAreaService_AncestorChain(t *testing.T) {
	ctx := context.Background()

	t.Run("CoarsestFirst", func(t *testing.T) {
		mockAreas := new(MockAreaRepo)
		svc := NewAreaService(mockAreas)

		chain := []domain.Area{
			{ID: 1, Type: domain.AreaTypeContinent, Continent: "Europe"},
			{ID: 2, Type: domain.AreaTypeCountry, Country: "France"},
			{ID: 3, Type: domain.AreaTypeLocality, Locality: "Lyon"},
		}
		mockAreas.On("AncestorChain", ctx, int64(3)).Return(chain, nil).Once()

		got, err := svc.AncestorChain(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.AreaTypeContinent, got[0].Type)
		assert.Equal(t, int64(3), got[len(got)-1].ID)
	})

	t.Run("UnknownArea", func(t *testing.T) {
		mockAreas := new(MockAreaRepo)
		svc := NewAreaService(mockAreas)

		mockAreas.On("AncestorChain", ctx, int64(99)).Return([]domain.Area{}, nil).Once()

		_, err := svc.AncestorChain(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
