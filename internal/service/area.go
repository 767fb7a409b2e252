package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/logger"
	"cleanspot-backend/internal/repository"
)

// Diagonal boundaries in meters, taken from reference countries: roughly a
// Hungary-sized bounding box and a France-sized one. A diagonal exactly on
// a boundary belongs to the larger tier.
const (
	smallCountryDiagonal = 600_000.0
	largeCountryDiagonal = 2_200_000.0
)

// DefaultZoomTiers partition countries into three non-overlapping diagonal
// tiers, ordered smallest first. Small countries are displayed at country
// level; larger ones push the zoom down to their level-1 subdivisions, the
// largest to level-2.
var DefaultZoomTiers = []domain.ZoomTier{
	{MinDiagonal: 0, MaxDiagonal: smallCountryDiagonal, TargetType: domain.AreaTypeCountry, ZoomLevel: 6},
	{MinDiagonal: smallCountryDiagonal, MaxDiagonal: largeCountryDiagonal, TargetType: domain.AreaTypeAA1, ZoomLevel: 7},
	{MinDiagonal: largeCountryDiagonal, MaxDiagonal: math.MaxFloat64, TargetType: domain.AreaTypeAA2, ZoomLevel: 8},
}

type areaService struct {
	areaRepo repository.AreaRepository
	tiers    []domain.ZoomTier
}

func NewAreaService(areaRepo repository.AreaRepository) AreaService {
	return &areaService{
		areaRepo: areaRepo,
		tiers:    DefaultZoomTiers,
	}
}

func (s *areaService) GetArea(ctx context.Context, id int64) (*domain.Area, error) {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return area, nil
}

func (s *areaService) AncestorChain(ctx context.Context, id int64) ([]domain.Area, error) {
	chain, err := s.areaRepo.AncestorChain(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, ErrNotFound
	}
	return chain, nil
}

// ClassifyZoomLevels applies each tier in ascending order. The unclassified
// filter on selection makes the pass idempotent: an area classified by an
// earlier tier is never reclassified by a later one. Countries whose
// diagonal matches no tier stay unclassified; that is reported, not failed.
func (s *areaService) ClassifyZoomLevels(ctx context.Context) (*ZoomClassificationReport, error) {
	report := &ZoomClassificationReport{}

	for _, tier := range s.tiers {
		countries, err := s.areaRepo.ListUnclassifiedCountries(ctx, tier.MinDiagonal, tier.MaxDiagonal)
		if err != nil {
			return nil, err
		}
		if len(countries) == 0 {
			report.AssignedPerTier = append(report.AssignedPerTier, 0)
			continue
		}

		names := make([]string, 0, len(countries))
		for _, c := range countries {
			names = append(names, c.Country)
		}

		assigned, err := s.areaRepo.AssignZoomByCountry(ctx, tier.TargetType, names, tier.ZoomLevel)
		if err != nil {
			return nil, err
		}
		if tier.TargetType != domain.AreaTypeCountry {
			// Mark the country rows too so the tier selection excludes them
			// on re-runs even though the display level is a subdivision.
			if _, err := s.areaRepo.AssignZoomByCountry(ctx, domain.AreaTypeCountry, names, tier.ZoomLevel); err != nil {
				return nil, err
			}
		}
		report.AssignedPerTier = append(report.AssignedPerTier, assigned)

		logger.Info("Zoom tier classified",
			"target_type", string(tier.TargetType),
			"zoom_level", tier.ZoomLevel,
			"countries", len(names),
			"rows_assigned", assigned)
	}

	unclassified, err := s.areaRepo.CountUnclassifiedCountries(ctx)
	if err != nil {
		return nil, err
	}
	report.Unclassified = unclassified
	if unclassified > 0 {
		logger.Warn("Countries left without a zoom level", "count", unclassified)
	}
	return report, nil
}
