package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

func validImportRow(regNo string) domain.ImportRow {
	return domain.ImportRow{
		RegNo:            regNo,
		FullName:         "John Smith",
		NameWithInitials: "J. Smith",
		Batch:            "2021",
		Faculty:          "Faculty of Computing",
		WhatsApp:         "+94770000000",
	}
}

func TestImportService_ImportMembers_RequiresEditCapability(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(newMemberRepo(t, db))

	_, err := svc.ImportMembers(context.Background(), actingViewer, []domain.ImportRow{validImportRow("S/2021/001")})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestImportService_ImportMembers_SingleValidRow(t *testing.T) {
	db := newTestDB(t)
	repo := newMemberRepo(t, db)
	svc := NewImportService(repo)

	result, err := svc.ImportMembers(context.Background(), actingEditor, []domain.ImportRow{validImportRow("S/2021/001")})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	assert.NotNil(t, result.Errors)

	member, err := repo.FindByRegNo(context.Background(), "S/2021/001")
	require.NoError(t, err)
	assert.Equal(t, 0, member.TotalPoints)
	assert.Nil(t, member.MyLCINum)
}

func TestImportService_ImportMembers_RowNumbersStartAtTwo(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(newMemberRepo(t, db))

	rows := []domain.ImportRow{
		{RegNo: "", FullName: "Missing RegNo", NameWithInitials: "M. RegNo", Batch: "2021", Faculty: "Faculty of Computing", WhatsApp: "+94770000000"},
		{RegNo: "S/2021/002"},
	}

	result, err := svc.ImportMembers(context.Background(), actingEditor, rows)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)

	// Data row 0 sits on spreadsheet row 2, just below the header.
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Registration number is required", result.Errors[0].Error)

	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Equal(t,
		"Full name is required, Name with initials is required, Batch is required, Faculty is required, WhatsApp number is required",
		result.Errors[1].Error)
}

func TestImportService_ImportMembers_RejectsExistingMember(t *testing.T) {
	db := newTestDB(t)
	repo := newMemberRepo(t, db)
	svc := NewImportService(repo)

	createMember(t, repo, "S/2021/001", "John Smith")

	result, err := svc.ImportMembers(context.Background(), actingEditor, []domain.ImportRow{
		validImportRow("S/2021/001"),
		validImportRow("S/2021/002"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Member with registration number S/2021/001 already exists", result.Errors[0].Error)

	// The batch kept going past the rejected row.
	_, err = repo.FindByRegNo(context.Background(), "S/2021/002")
	assert.NoError(t, err)
}

func TestImportService_ImportMembers_TrimsWhitespace(t *testing.T) {
	db := newTestDB(t)
	repo := newMemberRepo(t, db)
	svc := NewImportService(repo)

	row := domain.ImportRow{
		RegNo:            "  S/2021/001  ",
		FullName:         " John Smith ",
		NameWithInitials: " J. Smith ",
		Batch:            " 2021 ",
		Faculty:          " Faculty of Computing ",
		WhatsApp:         " +94770000000 ",
		MyLCINum:         " 12345678 ",
	}

	result, err := svc.ImportMembers(context.Background(), actingEditor, []domain.ImportRow{row})
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	member, err := repo.FindByRegNo(context.Background(), "S/2021/001")
	require.NoError(t, err)

	assert.Equal(t, "John Smith", member.FullName)
	require.NotNil(t, member.MyLCINum)
	assert.Equal(t, "12345678", *member.MyLCINum)
}

func TestImportService_ImportMembers_EmptyBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(newMemberRepo(t, db))

	result, err := svc.ImportMembers(context.Background(), actingEditor, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
}
