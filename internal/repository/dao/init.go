package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&AppUser{},
		&Member{},
		&Contribution{},
	)
}

// isUniqueViolation recognizes duplicate-key failures from both the
// postgres driver and gorm's translated error, so the sqlite test DB
// behaves like production.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}
