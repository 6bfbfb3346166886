package repository

import (
	"context"
	"fmt"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/repository/dao"
)

var (
	ErrAccountEmailExists = dao.ErrAccountEmailExists
	ErrAccountNotFound    = dao.ErrAccountNotFound
	ErrUserNotFound       = dao.ErrUserNotFound
	ErrUsernameExists     = dao.ErrUsernameExists
)

type UserDAO interface {
	InsertAccount(ctx context.Context, account dao.Account) (dao.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (dao.Account, error)
	InsertAppUser(ctx context.Context, user dao.AppUser) (dao.AppUser, error)
	FindAppUserByID(ctx context.Context, id string) (dao.AppUser, error)
	FindAllAppUsers(ctx context.Context) ([]dao.AppUser, error)
	UpdateAppUser(ctx context.Context, id string, updates map[string]interface{}) (dao.AppUser, error)
	DeleteAppUser(ctx context.Context, id string) error
	CountAppUsersByRole(ctx context.Context, role string) (int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Account is the identity record as seen by the services. The password
// hash never leaves this layer except for credential checks.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
}

func (r *UserRepository) CreateAccount(ctx context.Context, id, email, passwordHash string) (Account, error) {
	created, err := r.dao.InsertAccount(ctx, dao.Account{
		ID:       id,
		Email:    email,
		Password: passwordHash,
	})
	if err != nil {
		return Account{}, fmt.Errorf("r.dao.InsertAccount -> %w", err)
	}

	return Account{ID: created.ID, Email: created.Email, PasswordHash: created.Password}, nil
}

func (r *UserRepository) FindAccountByEmail(ctx context.Context, email string) (Account, error) {
	found, err := r.dao.FindAccountByEmail(ctx, email)
	if err != nil {
		return Account{}, fmt.Errorf("r.dao.FindAccountByEmail -> %w", err)
	}

	return Account{ID: found.ID, Email: found.Email, PasswordHash: found.Password}, nil
}

func (r *UserRepository) CreateAppUser(ctx context.Context, user domain.AppUser) (domain.AppUser, error) {
	created, err := r.dao.InsertAppUser(ctx, dao.AppUser{
		ID:                user.ID,
		Username:          user.Username,
		Designation:       user.Designation,
		Role:              string(user.Role),
		LinkedMemberRegNo: user.LinkedMemberRegNo,
	})
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("r.dao.InsertAppUser -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.AppUser, error) {
	found, err := r.dao.FindAppUserByID(ctx, id)
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("r.dao.FindAppUserByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.AppUser, error) {
	found, err := r.dao.FindAllAppUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllAppUsers -> %w", err)
	}

	out := make([]domain.AppUser, 0, len(found))
	for _, u := range found {
		out = append(out, r.daoToDomain(u))
	}

	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update domain.AppUserUpdate) (domain.AppUser, error) {
	updates := map[string]interface{}{}
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.Designation != nil {
		updates["designation"] = *update.Designation
	}
	if update.Role != nil {
		updates["role"] = string(*update.Role)
	}
	if update.LinkedMemberRegNo != nil {
		updates["linked_member_reg_no"] = *update.LinkedMemberRegNo
	}

	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.UpdateAppUser(ctx, id, updates)
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("r.dao.UpdateAppUser -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.DeleteAppUser(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteAppUser -> %w", err)
	}

	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	count, err := r.dao.CountAppUsersByRole(ctx, string(role))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAppUsersByRole -> %w", err)
	}

	return count, nil
}

func (r *UserRepository) daoToDomain(u dao.AppUser) domain.AppUser {
	return domain.AppUser{
		ID:                u.ID,
		Username:          u.Username,
		Designation:       u.Designation,
		Role:              domain.ParseRole(u.Role),
		LinkedMemberRegNo: u.LinkedMemberRegNo,
		CreatedAt:         u.CreatedAt,
	}
}
