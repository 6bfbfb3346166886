package repository

import (
	"context"
	"fmt"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/repository/dao"
)

var (
	ErrMemberRegNoExists = dao.ErrMemberRegNoExists
	ErrMemberNotFound    = dao.ErrMemberNotFound
)

type MemberDAO interface {
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	FindByRegNo(ctx context.Context, regNo string) (dao.Member, error)
	FindAll(ctx context.Context) ([]dao.Member, error)
	FindTop(ctx context.Context, limit int) ([]dao.Member, error)
	FindByFaculty(ctx context.Context, faculty string) ([]dao.Member, error)
	Update(ctx context.Context, regNo string, updates map[string]interface{}) (dao.Member, error)
	Search(ctx context.Context, term string) ([]dao.Member, error)
	ReconcileTotals(ctx context.Context) error
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, dao.Member{
		RegNo:            member.RegNo,
		PhotoURL:         member.PhotoURL,
		FullName:         member.FullName,
		NameWithInitials: member.NameWithInitials,
		MyLCINum:         member.MyLCINum,
		Batch:            member.Batch,
		Faculty:          member.Faculty,
		WhatsApp:         member.WhatsApp,
		TotalPoints:      member.TotalPoints,
	})
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MemberRepository) FindByRegNo(ctx context.Context, regNo string) (domain.Member, error) {
	found, err := r.dao.FindByRegNo(ctx, regNo)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByRegNo -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *MemberRepository) FindTop(ctx context.Context, limit int) ([]domain.Member, error) {
	found, err := r.dao.FindTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTop -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *MemberRepository) FindByFaculty(ctx context.Context, faculty string) ([]domain.Member, error) {
	found, err := r.dao.FindByFaculty(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByFaculty -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

// Update maps the partial update onto column values. The registration
// number is not an updatable column.
func (r *MemberRepository) Update(ctx context.Context, regNo string, update domain.MemberUpdate) (domain.Member, error) {
	updates := map[string]interface{}{}
	if update.PhotoURL != nil {
		updates["photo_url"] = *update.PhotoURL
	}
	if update.FullName != nil {
		updates["full_name"] = *update.FullName
	}
	if update.NameWithInitials != nil {
		updates["name_with_initials"] = *update.NameWithInitials
	}
	if update.MyLCINum != nil {
		updates["my_lci_num"] = *update.MyLCINum
	}
	if update.Batch != nil {
		updates["batch"] = *update.Batch
	}
	if update.Faculty != nil {
		updates["faculty"] = *update.Faculty
	}
	if update.WhatsApp != nil {
		updates["whatsapp"] = *update.WhatsApp
	}

	if len(updates) == 0 {
		return r.FindByRegNo(ctx, regNo)
	}

	updated, err := r.dao.Update(ctx, regNo, updates)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MemberRepository) Search(ctx context.Context, term string) ([]domain.Member, error) {
	found, err := r.dao.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *MemberRepository) ReconcileTotals(ctx context.Context) error {
	if err := r.dao.ReconcileTotals(ctx); err != nil {
		return fmt.Errorf("r.dao.ReconcileTotals -> %w", err)
	}

	return nil
}

func (r *MemberRepository) daoToDomain(m dao.Member) domain.Member {
	return domain.Member{
		RegNo:            m.RegNo,
		PhotoURL:         m.PhotoURL,
		FullName:         m.FullName,
		NameWithInitials: m.NameWithInitials,
		MyLCINum:         m.MyLCINum,
		Batch:            m.Batch,
		Faculty:          m.Faculty,
		WhatsApp:         m.WhatsApp,
		TotalPoints:      m.TotalPoints,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *MemberRepository) daoToDomainSlice(members []dao.Member) []domain.Member {
	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		out = append(out, r.daoToDomain(m))
	}

	return out
}
