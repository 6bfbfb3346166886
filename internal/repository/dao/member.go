package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrMemberRegNoExists = errors.New("member already exists")
	ErrMemberNotFound    = errors.New("member not found")
)

type Member struct {
	RegNo string `gorm:"primaryKey;column:reg_no"`

	PhotoURL         *string `gorm:"column:photo_url"`
	FullName         string  `gorm:"not null"`
	NameWithInitials string  `gorm:"not null"`
	MyLCINum         *string `gorm:"column:my_lci_num"`
	Batch            string  `gorm:"not null"`
	Faculty          string  `gorm:"not null"`
	WhatsApp         string  `gorm:"column:whatsapp;not null"`
	TotalPoints      int     `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Create(&member)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Member{}, ErrMemberRegNoExists
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByRegNo(ctx context.Context, regNo string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "reg_no = ?", regNo)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindAll(ctx context.Context) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).
		Order("total_points DESC, reg_no ASC").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *MemberDAO) FindTop(ctx context.Context, limit int) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).
		Order("total_points DESC, reg_no ASC").
		Limit(limit).
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *MemberDAO) FindByFaculty(ctx context.Context, faculty string) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).
		Where("faculty = ?", faculty).
		Order("total_points DESC, reg_no ASC").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

// Update applies the given column values to one member. The registration
// number is the key and is never part of the update set.
func (d *MemberDAO) Update(ctx context.Context, regNo string, updates map[string]interface{}) (Member, error) {
	delete(updates, "reg_no")

	result := d.db.WithContext(ctx).
		Model(&Member{}).
		Where("reg_no = ?", regNo).
		Updates(updates)
	if result.Error != nil {
		return Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Member{}, ErrMemberNotFound
	}

	return d.FindByRegNo(ctx, regNo)
}

// Search matches the already-sanitized term against reg_no, full_name and
// name_with_initials, case-insensitively.
func (d *MemberDAO) Search(ctx context.Context, term string) ([]Member, error) {
	var members []Member

	pattern := "%" + term + "%"
	result := d.db.WithContext(ctx).
		Where("LOWER(reg_no) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?) OR LOWER(name_with_initials) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("total_points DESC, reg_no ASC").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

// ReconcileTotals rewrites every member's total_points from the sum of its
// contribution rows. Used to repair drift in the denormalized counter.
func (d *MemberDAO) ReconcileTotals(ctx context.Context) error {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE members
		SET total_points = COALESCE(
			(SELECT SUM(points) FROM contributions c WHERE c.member_reg_no = members.reg_no),
			0
		)`)

	return result.Error
}
