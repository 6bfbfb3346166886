package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/repository/dao"
)

var ErrContributionNotFound = dao.ErrContributionNotFound

type ContributionDAO interface {
	Insert(ctx context.Context, contribution dao.Contribution) (dao.Contribution, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (dao.Contribution, error)
	FindAll(ctx context.Context) ([]dao.Contribution, error)
	FindByMemberRegNo(ctx context.Context, regNo string) ([]dao.Contribution, error)
	FindByTimePeriod(ctx context.Context, timePeriod string) ([]dao.Contribution, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]dao.Contribution, error)
	SumPoints(ctx context.Context) (int, error)
	CountDistinctProjects(ctx context.Context, start, end time.Time) (int, error)
}

type ContributionRepository struct {
	dao ContributionDAO
}

func NewContributionRepository(dao ContributionDAO) *ContributionRepository {
	return &ContributionRepository{
		dao: dao,
	}
}

func (r *ContributionRepository) Create(ctx context.Context, contribution domain.Contribution) (domain.Contribution, error) {
	created, err := r.dao.Insert(ctx, dao.Contribution{
		ID:          uuid.NewString(),
		MemberRegNo: contribution.MemberRegNo,
		ProjectName: contribution.ProjectName,
		TimePeriod:  contribution.TimePeriod,
		Position:    contribution.Position,
		Points:      contribution.Points,
		Avenue:      contribution.Avenue,
		AddedBy:     contribution.AddedBy,
		DateAdded:   time.Now().UTC(),
	})
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ContributionRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ContributionRepository) FindByID(ctx context.Context, id string) (domain.Contribution, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ContributionRepository) FindAll(ctx context.Context) ([]domain.Contribution, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *ContributionRepository) FindByMemberRegNo(ctx context.Context, regNo string) ([]domain.Contribution, error) {
	found, err := r.dao.FindByMemberRegNo(ctx, regNo)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByMemberRegNo -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *ContributionRepository) FindByTimePeriod(ctx context.Context, timePeriod string) ([]domain.Contribution, error) {
	found, err := r.dao.FindByTimePeriod(ctx, timePeriod)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTimePeriod -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *ContributionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Contribution, error) {
	found, err := r.dao.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByDateRange -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *ContributionRepository) SumPoints(ctx context.Context) (int, error) {
	total, err := r.dao.SumPoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumPoints -> %w", err)
	}

	return total, nil
}

func (r *ContributionRepository) CountDistinctProjects(ctx context.Context, start, end time.Time) (int, error) {
	count, err := r.dao.CountDistinctProjects(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountDistinctProjects -> %w", err)
	}

	return count, nil
}

func (r *ContributionRepository) daoToDomain(c dao.Contribution) domain.Contribution {
	return domain.Contribution{
		ID:          c.ID,
		MemberRegNo: c.MemberRegNo,
		ProjectName: c.ProjectName,
		TimePeriod:  c.TimePeriod,
		Position:    c.Position,
		Points:      c.Points,
		Avenue:      c.Avenue,
		DateAdded:   c.DateAdded,
		AddedBy:     c.AddedBy,
	}
}

func (r *ContributionRepository) daoToDomainSlice(contributions []dao.Contribution) []domain.Contribution {
	out := make([]domain.Contribution, 0, len(contributions))
	for _, c := range contributions {
		out = append(out, r.daoToDomain(c))
	}

	return out
}
