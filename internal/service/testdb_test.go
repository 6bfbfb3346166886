package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/repository"
	"github.com/leoclub/points-tracker-api/internal/repository/dao"
)

var (
	actingAdmin  = domain.ActingUser{ID: "admin-1", Role: domain.RoleSuperAdmin}
	actingEditor = domain.ActingUser{ID: "editor-1", Role: domain.RoleEditor}
	actingViewer = domain.ActingUser{ID: "viewer-1", Role: domain.RoleViewer}
)

// newTestDB opens an in-memory SQLite database wired the same way the
// production connection is, including gorm error translation.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}

	if err = dao.InitTables(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newMemberRepo(t *testing.T, db *gorm.DB) *repository.MemberRepository {
	t.Helper()
	return repository.NewMemberRepository(dao.NewMemberDAO(db))
}

func newContributionRepo(t *testing.T, db *gorm.DB) *repository.ContributionRepository {
	t.Helper()
	return repository.NewContributionRepository(dao.NewContributionDAO(db))
}

func newUserRepo(t *testing.T, db *gorm.DB) *repository.UserRepository {
	t.Helper()
	return repository.NewUserRepository(dao.NewUserDAO(db))
}

func createMember(t *testing.T, repo *repository.MemberRepository, regNo, name string) domain.Member {
	t.Helper()

	member, err := repo.Create(context.Background(), domain.Member{
		RegNo:            regNo,
		FullName:         name,
		NameWithInitials: name,
		Batch:            "2021",
		Faculty:          "Faculty of Computing",
		WhatsApp:         "+94770000000",
	})
	require.NoError(t, err)

	return member
}
