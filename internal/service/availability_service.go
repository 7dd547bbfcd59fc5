package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/payment-scheme-engine/internal/dto"
	"github.com/anyulbade/payment-scheme-engine/internal/engine"
	"github.com/anyulbade/payment-scheme-engine/internal/repository"
)

type AvailabilityService struct {
	repo *repository.SchemeRepository
}

func NewAvailabilityService(repo *repository.SchemeRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// Overview evaluates the operational status of every scheme at one instant,
// fanning the evaluations out across a bounded worker group.
func (s *AvailabilityService) Overview(ctx context.Context, at time.Time) ([]dto.SchemeAvailabilityOverview, error) {
	schemes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]dto.SchemeAvailabilityOverview, len(schemes))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, scheme := range schemes {
		i, scheme := i, scheme
		g.Go(func() error {
			availability := engine.EvaluateAvailability(scheme, at)
			results[i] = dto.SchemeAvailabilityOverview{
				SchemeID:      scheme.ID,
				Name:          scheme.Name,
				Kind:          string(scheme.Kind),
				IsOperational: availability.Operational,
				Restrictions:  availability.Restrictions,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
