package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

type stubPhotoStore struct {
	lastKey         string
	lastContentType string
}

func (s *stubPhotoStore) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	s.lastKey = key
	s.lastContentType = contentType
	_, _ = io.Copy(io.Discard, body)

	return "https://photos.example.com/" + key, nil
}

func TestMemberService_CreateMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(newMemberRepo(t, db), &stubPhotoStore{})

	t.Run("viewer is denied", func(t *testing.T) {
		_, err := svc.CreateMember(context.Background(), actingViewer, domain.Member{RegNo: "S/2021/001"})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("editor can create and markup is stripped", func(t *testing.T) {
		created, err := svc.CreateMember(context.Background(), actingEditor, domain.Member{
			RegNo:            "S/2021/001",
			FullName:         "<b>John</b> Smith",
			NameWithInitials: "J. Smith",
			Batch:            "2021",
			Faculty:          "Faculty of Computing",
			WhatsApp:         "+94770000000",
		})
		require.NoError(t, err)

		assert.Equal(t, "John Smith", created.FullName)
	})

	t.Run("duplicate registration number rejected", func(t *testing.T) {
		_, err := svc.CreateMember(context.Background(), actingEditor, domain.Member{
			RegNo:            "S/2021/001",
			FullName:         "Someone Else",
			NameWithInitials: "S. Else",
			Batch:            "2021",
			Faculty:          "Faculty of Computing",
			WhatsApp:         "+94771111111",
		})
		assert.ErrorIs(t, err, ErrMemberRegNoExists)
	})
}

func TestMemberService_UpdateMember(t *testing.T) {
	db := newTestDB(t)
	repo := newMemberRepo(t, db)
	svc := NewMemberService(repo, &stubPhotoStore{})

	createMember(t, repo, "S/2021/001", "John Smith")

	t.Run("viewer is denied", func(t *testing.T) {
		name := "New Name"
		_, err := svc.UpdateMember(context.Background(), actingViewer, "S/2021/001", domain.MemberUpdate{FullName: &name})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("editor can update", func(t *testing.T) {
		name := "John A. Smith"
		updated, err := svc.UpdateMember(context.Background(), actingEditor, "S/2021/001", domain.MemberUpdate{FullName: &name})
		require.NoError(t, err)

		assert.Equal(t, "John A. Smith", updated.FullName)
		assert.Equal(t, "S/2021/001", updated.RegNo)
	})

	t.Run("unknown member", func(t *testing.T) {
		name := "Nobody"
		_, err := svc.UpdateMember(context.Background(), actingEditor, "S/9999/999", domain.MemberUpdate{FullName: &name})
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestMemberService_SearchMembers(t *testing.T) {
	db := newTestDB(t)
	repo := newMemberRepo(t, db)
	svc := NewMemberService(repo, &stubPhotoStore{})

	createMember(t, repo, "S/2021/001", "John Smith")
	createMember(t, repo, "S/2021/002", "Jane Johnson")

	t.Run("matches by name", func(t *testing.T) {
		found, err := svc.SearchMembers(context.Background(), "smith")
		require.NoError(t, err)

		require.Len(t, found, 1)
		assert.Equal(t, "S/2021/001", found[0].RegNo)
	})

	t.Run("breaking characters are stripped before matching", func(t *testing.T) {
		found, err := svc.SearchMembers(context.Background(), "Smith),full_name.eq.x")
		require.NoError(t, err)

		// Sanitizes to "Smithfull_nameeqx", which matches nothing.
		assert.Empty(t, found)
	})

	t.Run("term that sanitizes to nothing returns empty without querying", func(t *testing.T) {
		found, err := svc.SearchMembers(context.Background(), "%*,.")
		require.NoError(t, err)

		assert.NotNil(t, found)
		assert.Empty(t, found)
	})
}

func TestMemberService_GetTopMembers_DefaultsLimit(t *testing.T) {
	db := newTestDB(t)
	repo := newMemberRepo(t, db)
	svc := NewMemberService(repo, &stubPhotoStore{})

	for _, regNo := range []string{"S/2021/001", "S/2021/002", "S/2021/003", "S/2021/004"} {
		createMember(t, repo, regNo, "Member "+regNo)
	}

	members, err := svc.GetTopMembers(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, members, 3)
}

func TestMemberService_ReconcileTotals_RequiresSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(newMemberRepo(t, db), &stubPhotoStore{})

	assert.ErrorIs(t, svc.ReconcileTotals(context.Background(), actingEditor), ErrPermissionDenied)
	assert.NoError(t, svc.ReconcileTotals(context.Background(), actingAdmin))
}

func TestMemberService_UploadMemberPhoto(t *testing.T) {
	db := newTestDB(t)
	photos := &stubPhotoStore{}
	svc := NewMemberService(newMemberRepo(t, db), photos)

	t.Run("viewer is denied", func(t *testing.T) {
		_, err := svc.UploadMemberPhoto(context.Background(), actingViewer, "me.jpg", "image/jpeg", strings.NewReader("data"))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("editor uploads under a random key keeping the extension", func(t *testing.T) {
		url, err := svc.UploadMemberPhoto(context.Background(), actingEditor, "me.jpg", "image/jpeg", strings.NewReader("data"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(photos.lastKey, "member-photos/"))
		assert.True(t, strings.HasSuffix(photos.lastKey, ".jpg"))
		assert.Equal(t, "image/jpeg", photos.lastContentType)
		assert.Equal(t, "https://photos.example.com/"+photos.lastKey, url)
	})
}
