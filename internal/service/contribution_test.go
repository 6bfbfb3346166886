package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

func TestContributionService_CreateContribution(t *testing.T) {
	db := newTestDB(t)
	members := newMemberRepo(t, db)
	svc := NewContributionService(newContributionRepo(t, db))

	createMember(t, members, "S/2021/001", "John Smith")

	t.Run("viewer is denied", func(t *testing.T) {
		_, err := svc.CreateContribution(context.Background(), actingViewer, domain.Contribution{
			MemberRegNo: "S/2021/001",
			ProjectName: "Beach Cleanup",
			TimePeriod:  "2026-08",
			Position:    "Participant",
			Points:      10,
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("editor creates and member total moves", func(t *testing.T) {
		created, err := svc.CreateContribution(context.Background(), actingEditor, domain.Contribution{
			MemberRegNo: "S/2021/001",
			ProjectName: "<i>Beach</i> Cleanup",
			TimePeriod:  "2026-08",
			Position:    "Participant",
			Points:      10,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Beach Cleanup", created.ProjectName)
		require.NotNil(t, created.AddedBy)
		assert.Equal(t, actingEditor.ID, *created.AddedBy)

		member, err := members.FindByRegNo(context.Background(), "S/2021/001")
		require.NoError(t, err)
		assert.Equal(t, 10, member.TotalPoints)
	})

	t.Run("unknown member rejected", func(t *testing.T) {
		_, err := svc.CreateContribution(context.Background(), actingEditor, domain.Contribution{
			MemberRegNo: "S/9999/999",
			ProjectName: "Beach Cleanup",
			TimePeriod:  "2026-08",
			Position:    "Participant",
			Points:      10,
		})
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestContributionService_DeleteContribution(t *testing.T) {
	db := newTestDB(t)
	members := newMemberRepo(t, db)
	svc := NewContributionService(newContributionRepo(t, db))

	createMember(t, members, "S/2021/001", "John Smith")

	created, err := svc.CreateContribution(context.Background(), actingEditor, domain.Contribution{
		MemberRegNo: "S/2021/001",
		ProjectName: "Beach Cleanup",
		TimePeriod:  "2026-08",
		Position:    "Participant",
		Points:      10,
	})
	require.NoError(t, err)

	t.Run("viewer is denied", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteContribution(context.Background(), actingViewer, created.ID), ErrPermissionDenied)
	})

	t.Run("editor deletes and points are reversed", func(t *testing.T) {
		require.NoError(t, svc.DeleteContribution(context.Background(), actingEditor, created.ID))

		member, err := members.FindByRegNo(context.Background(), "S/2021/001")
		require.NoError(t, err)
		assert.Equal(t, 0, member.TotalPoints)
	})

	t.Run("unknown contribution", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteContribution(context.Background(), actingEditor, "missing"), ErrContributionNotFound)
	})
}

func TestContributionService_TotalPointsAcrossAllMembers(t *testing.T) {
	db := newTestDB(t)
	members := newMemberRepo(t, db)
	svc := NewContributionService(newContributionRepo(t, db))

	createMember(t, members, "S/2021/001", "John Smith")
	createMember(t, members, "S/2021/002", "Jane Johnson")

	for _, c := range []struct {
		regNo  string
		points int
	}{
		{"S/2021/001", 10},
		{"S/2021/002", 15},
	} {
		_, err := svc.CreateContribution(context.Background(), actingEditor, domain.Contribution{
			MemberRegNo: c.regNo,
			ProjectName: "Beach Cleanup",
			TimePeriod:  "2026-08",
			Position:    "Participant",
			Points:      c.points,
		})
		require.NoError(t, err)
	}

	total, err := svc.TotalPointsAcrossAllMembers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}
