package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAccountEmailExists = errors.New("account email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
)

// Account is the identity record holding the login credentials. AppUser
// rows share the account's ID one-to-one.
type Account struct {
	ID string `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AppUser struct {
	ID string `gorm:"primaryKey"`

	Username          string  `gorm:"unique;not null"`
	Designation       string  `gorm:"not null"`
	Role              string  `gorm:"not null"`
	LinkedMemberRegNo *string `gorm:"column:linked_member_reg_no"`

	CreatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) InsertAccount(ctx context.Context, account Account) (Account, error) {
	result := d.db.WithContext(ctx).Create(&account)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Account{}, ErrAccountEmailExists
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *UserDAO) FindAccountByEmail(ctx context.Context, email string) (Account, error) {
	var account Account

	result := d.db.WithContext(ctx).First(&account, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *UserDAO) InsertAppUser(ctx context.Context, user AppUser) (AppUser, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return AppUser{}, ErrUsernameExists
		}

		return AppUser{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAppUserByID(ctx context.Context, id string) (AppUser, error) {
	var user AppUser

	result := d.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AppUser{}, ErrUserNotFound
		}

		return AppUser{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAllAppUsers(ctx context.Context) ([]AppUser, error) {
	var users []AppUser

	result := d.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) UpdateAppUser(ctx context.Context, id string, updates map[string]interface{}) (AppUser, error) {
	delete(updates, "id")

	result := d.db.WithContext(ctx).
		Model(&AppUser{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return AppUser{}, ErrUsernameExists
		}

		return AppUser{}, result.Error
	}
	if result.RowsAffected == 0 {
		return AppUser{}, ErrUserNotFound
	}

	return d.FindAppUserByID(ctx, id)
}

// DeleteAppUser removes the application profile only. The identity account
// row is intentionally left in place.
func (d *UserDAO) DeleteAppUser(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&AppUser{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) CountAppUsersByRole(ctx context.Context, role string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&AppUser{}).
		Where("role = ?", role).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
