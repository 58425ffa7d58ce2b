package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"commentboard/api/internal/apperr"
	"commentboard/api/internal/models"
)

func newCommentFixture() (*CommentService, *fakeCommentStore, *fakeUserStore) {
	comments := &fakeCommentStore{}
	users := newFakeUserStore()
	return NewCommentService(comments, users, zerolog.Nop()), comments, users
}

func seedUser(users *fakeUserStore, id, name string) {
	users.users[id] = models.User{ID: id, Name: name, Email: name + "@x.com"}
}

func TestCommentCreate_TrimsContent(t *testing.T) {
	t.Parallel()
	svc, _, users := newCommentFixture()
	seedUser(users, "u1", "A")

	comment, err := svc.Create(context.Background(), "u1", "  hi  ")
	require.NoError(t, err)
	require.Equal(t, "hi", comment.Content)
	require.Equal(t, "A", comment.AuthorName)
	require.NotEmpty(t, comment.ID)

	// The returned comment carries the store-assigned timestamp, matching
	// what a later list reports for the same row.
	require.False(t, comment.CreatedAt.IsZero())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, comment.CreatedAt, list[0].CreatedAt)
}

func TestCommentCreate_RejectsEmptyContent(t *testing.T) {
	t.Parallel()
	svc, _, users := newCommentFixture()
	seedUser(users, "u1", "A")

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Create(context.Background(), "u1", content)
		require.Error(t, err)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestCommentList_NewestFirst(t *testing.T) {
	t.Parallel()
	svc, _, users := newCommentFixture()
	seedUser(users, "u1", "A")

	first, err := svc.Create(context.Background(), "u1", "first")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "u1", "second")
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestCommentDelete_NotFound(t *testing.T) {
	t.Parallel()
	svc, _, _ := newCommentFixture()

	err := svc.Delete(context.Background(), "missing", "u1")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCommentDelete_OwnerOnly(t *testing.T) {
	t.Parallel()
	svc, _, users := newCommentFixture()
	seedUser(users, "u1", "A")
	seedUser(users, "u2", "B")

	comment, err := svc.Create(context.Background(), "u1", "mine")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), comment.ID, "u2")
	require.Error(t, err)
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.Delete(context.Background(), comment.ID, "u1"))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
