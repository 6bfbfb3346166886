package service

import (
	"context"
	"fmt"
	"time"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/pkg/sanitize"
	"github.com/leoclub/points-tracker-api/internal/repository"
)

var ErrContributionNotFound = repository.ErrContributionNotFound

type ContributionRepository interface {
	Create(ctx context.Context, contribution domain.Contribution) (domain.Contribution, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (domain.Contribution, error)
	FindAll(ctx context.Context) ([]domain.Contribution, error)
	FindByMemberRegNo(ctx context.Context, regNo string) ([]domain.Contribution, error)
	FindByTimePeriod(ctx context.Context, timePeriod string) ([]domain.Contribution, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Contribution, error)
	SumPoints(ctx context.Context) (int, error)
	CountDistinctProjects(ctx context.Context, start, end time.Time) (int, error)
}

type ContributionService struct {
	repo ContributionRepository
}

func NewContributionService(repo ContributionRepository) *ContributionService {
	return &ContributionService{
		repo: repo,
	}
}

// CreateContribution stamps the acting user as added_by. The member's
// total_points counter is updated by the repository in the same
// transaction, so a re-fetch of the member observes the new aggregate.
func (s *ContributionService) CreateContribution(ctx context.Context, acting domain.ActingUser, contribution domain.Contribution) (domain.Contribution, error) {
	if !acting.Capabilities().CanEdit {
		return domain.Contribution{}, ErrPermissionDenied
	}

	contribution.ProjectName = sanitize.FreeText(contribution.ProjectName)
	contribution.Position = sanitize.FreeText(contribution.Position)
	if contribution.Avenue != nil {
		cleaned := sanitize.FreeText(*contribution.Avenue)
		contribution.Avenue = &cleaned
	}

	if acting.ID != "" {
		actingID := acting.ID
		contribution.AddedBy = &actingID
	}

	created, err := s.repo.Create(ctx, contribution)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ContributionService) DeleteContribution(ctx context.Context, acting domain.ActingUser, id string) error {
	if !acting.Capabilities().CanEdit {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ContributionService) ListContributions(ctx context.Context) ([]domain.Contribution, error) {
	contributions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return contributions, nil
}

func (s *ContributionService) ListContributionsForMember(ctx context.Context, regNo string) ([]domain.Contribution, error) {
	contributions, err := s.repo.FindByMemberRegNo(ctx, regNo)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByMemberRegNo -> %w", err)
	}

	return contributions, nil
}

func (s *ContributionService) ListContributionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Contribution, error) {
	contributions, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByDateRange -> %w", err)
	}

	return contributions, nil
}

// TotalPointsAcrossAllMembers sums the points column over every
// contribution row. No caching; recomputed per call.
func (s *ContributionService) TotalPointsAcrossAllMembers(ctx context.Context) (int, error) {
	total, err := s.repo.SumPoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SumPoints -> %w", err)
	}

	return total, nil
}
