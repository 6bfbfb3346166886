package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrContributionNotFound = errors.New("contribution not found")

type Contribution struct {
	ID string `gorm:"primaryKey"`

	MemberRegNo string  `gorm:"not null;index"`
	ProjectName string  `gorm:"not null"`
	TimePeriod  string  `gorm:"not null;index"`
	Position    string  `gorm:"not null"`
	Points      int     `gorm:"not null"`
	Avenue      *string
	AddedBy     *string

	DateAdded time.Time `gorm:"not null"`
}

type ContributionDAO struct {
	db *gorm.DB
}

func NewContributionDAO(db *gorm.DB) *ContributionDAO {
	return &ContributionDAO{
		db: db,
	}
}

// Insert writes the contribution and bumps the owning member's
// total_points counter in the same transaction, so the denormalized
// aggregate cannot drift on the write path.
func (d *ContributionDAO) Insert(ctx context.Context, contribution Contribution) (Contribution, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}

		result := tx.Model(&Member{}).
			Where("reg_no = ?", contribution.MemberRegNo).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", contribution.Points))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberNotFound
		}

		return nil
	})
	if err != nil {
		return Contribution{}, err
	}

	return contribution, nil
}

// Delete removes the contribution and reverses its points on the member
// counter, again inside one transaction.
func (d *ContributionDAO) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contribution Contribution
		if err := tx.First(&contribution, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContributionNotFound
			}

			return err
		}

		if err := tx.Delete(&Contribution{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Model(&Member{}).
			Where("reg_no = ?", contribution.MemberRegNo).
			UpdateColumn("total_points", gorm.Expr("total_points - ?", contribution.Points)).
			Error
	})
}

func (d *ContributionDAO) FindByID(ctx context.Context, id string) (Contribution, error) {
	var contribution Contribution

	result := d.db.WithContext(ctx).First(&contribution, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contribution{}, ErrContributionNotFound
		}

		return Contribution{}, result.Error
	}

	return contribution, nil
}

func (d *ContributionDAO) FindAll(ctx context.Context) ([]Contribution, error) {
	var contributions []Contribution

	result := d.db.WithContext(ctx).
		Order("date_added DESC").
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}

	return contributions, nil
}

func (d *ContributionDAO) FindByMemberRegNo(ctx context.Context, regNo string) ([]Contribution, error) {
	var contributions []Contribution

	result := d.db.WithContext(ctx).
		Where("member_reg_no = ?", regNo).
		Order("date_added DESC").
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}

	return contributions, nil
}

func (d *ContributionDAO) FindByTimePeriod(ctx context.Context, timePeriod string) ([]Contribution, error) {
	var contributions []Contribution

	result := d.db.WithContext(ctx).
		Where("time_period = ?", timePeriod).
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}

	return contributions, nil
}

func (d *ContributionDAO) FindByDateRange(ctx context.Context, start, end time.Time) ([]Contribution, error) {
	var contributions []Contribution

	result := d.db.WithContext(ctx).
		Where("date_added >= ? AND date_added <= ?", start, end).
		Order("date_added DESC").
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}

	return contributions, nil
}

func (d *ContributionDAO) SumPoints(ctx context.Context) (int, error) {
	var total int

	result := d.db.WithContext(ctx).
		Model(&Contribution{}).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func (d *ContributionDAO) CountDistinctProjects(ctx context.Context, start, end time.Time) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Contribution{}).
		Where("date_added >= ? AND date_added <= ?", start, end).
		Distinct("project_name").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}
