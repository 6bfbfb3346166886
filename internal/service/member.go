package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/pkg/sanitize"
	"github.com/leoclub/points-tracker-api/internal/repository"
)

var (
	ErrMemberRegNoExists = repository.ErrMemberRegNoExists
	ErrMemberNotFound    = repository.ErrMemberNotFound
	ErrPermissionDenied  = errors.New("permission denied")
)

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	FindByRegNo(ctx context.Context, regNo string) (domain.Member, error)
	FindAll(ctx context.Context) ([]domain.Member, error)
	FindTop(ctx context.Context, limit int) ([]domain.Member, error)
	FindByFaculty(ctx context.Context, faculty string) ([]domain.Member, error)
	Update(ctx context.Context, regNo string, update domain.MemberUpdate) (domain.Member, error)
	Search(ctx context.Context, term string) ([]domain.Member, error)
	ReconcileTotals(ctx context.Context) error
}

// PhotoStore uploads member photos and hands back a public URL.
type PhotoStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

type MemberService struct {
	repo   MemberRepository
	photos PhotoStore
}

func NewMemberService(repo MemberRepository, photos PhotoStore) *MemberService {
	return &MemberService{
		repo:   repo,
		photos: photos,
	}
}

func (s *MemberService) GetMember(ctx context.Context, regNo string) (domain.Member, error) {
	member, err := s.repo.FindByRegNo(ctx, regNo)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByRegNo -> %w", err)
	}

	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return members, nil
}

func (s *MemberService) GetTopMembers(ctx context.Context, limit int) ([]domain.Member, error) {
	if limit <= 0 {
		limit = 3
	}

	members, err := s.repo.FindTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTop -> %w", err)
	}

	return members, nil
}

func (s *MemberService) ListMembersByFaculty(ctx context.Context, faculty string) ([]domain.Member, error) {
	members, err := s.repo.FindByFaculty(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByFaculty -> %w", err)
	}

	return members, nil
}

func (s *MemberService) CreateMember(ctx context.Context, acting domain.ActingUser, member domain.Member) (domain.Member, error) {
	if !acting.Capabilities().CanEdit {
		return domain.Member{}, ErrPermissionDenied
	}

	member.FullName = sanitize.FreeText(member.FullName)
	member.NameWithInitials = sanitize.FreeText(member.NameWithInitials)
	member.Faculty = sanitize.FreeText(member.Faculty)
	member.Batch = sanitize.FreeText(member.Batch)

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, acting domain.ActingUser, regNo string, update domain.MemberUpdate) (domain.Member, error) {
	if !acting.Capabilities().CanEdit {
		return domain.Member{}, ErrPermissionDenied
	}

	if update.FullName != nil {
		cleaned := sanitize.FreeText(*update.FullName)
		update.FullName = &cleaned
	}
	if update.NameWithInitials != nil {
		cleaned := sanitize.FreeText(*update.NameWithInitials)
		update.NameWithInitials = &cleaned
	}

	updated, err := s.repo.Update(ctx, regNo, update)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// SearchMembers sanitizes the raw term first. A term that sanitizes down to
// nothing returns an empty result without touching the store.
func (s *MemberService) SearchMembers(ctx context.Context, term string) ([]domain.Member, error) {
	sanitized := sanitize.SearchTerm(term)
	if sanitized == "" {
		return []domain.Member{}, nil
	}

	members, err := s.repo.Search(ctx, sanitized)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	return members, nil
}

// ReconcileTotals recomputes every member's total_points from the
// contributions table. Repair operation for counter drift.
func (s *MemberService) ReconcileTotals(ctx context.Context, acting domain.ActingUser) error {
	if !acting.Capabilities().CanManageUsers {
		return ErrPermissionDenied
	}

	if err := s.repo.ReconcileTotals(ctx); err != nil {
		return fmt.Errorf("s.repo.ReconcileTotals -> %w", err)
	}

	return nil
}

// UploadMemberPhoto stores the photo under a random key and returns its
// public URL. The caller attaches the URL to a member via UpdateMember.
func (s *MemberService) UploadMemberPhoto(ctx context.Context, acting domain.ActingUser, filename, contentType string, body io.Reader) (string, error) {
	if !acting.Capabilities().CanEdit {
		return "", ErrPermissionDenied
	}

	key := fmt.Sprintf("member-photos/%s%s", uuid.NewString(), path.Ext(filename))

	url, err := s.photos.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("s.photos.Upload -> %w", err)
	}

	return url, nil
}
