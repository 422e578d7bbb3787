package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/pkg/apperr"
)

func TestCommentService_ReplyDepth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	author := env.addUser(t, "ana")
	replier := env.addUser(t, "bob")
	event := env.addEvent(t, author, domain.EventScheduled)

	root, err := env.commentSvc.AddComment(ctx, author.ID, domain.CreateComment{EventID: event.ID, Text: "see you there"})
	require.NoError(t, err)
	assert.False(t, root.IsReply())
	assert.Equal(t, "ana", root.Nick)

	reply, err := env.commentSvc.AddComment(ctx, replier.ID, domain.CreateComment{EventID: event.ID, Text: "me too", ParentID: &root.ID})
	require.NoError(t, err)
	assert.True(t, reply.IsReply())
	assert.Equal(t, 1, env.notifier.pushesTo(author.ID, notifyCommentReply))

	stored, err := env.comments.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AnswersCount)

	_, err = env.commentSvc.AddComment(ctx, author.ID, domain.CreateComment{EventID: event.ID, Text: "nested", ParentID: &reply.ID})
	assert.ErrorIs(t, err, ErrCommentsCannotExceedLevelOneResponses)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	_, err = env.commentSvc.AddComment(ctx, author.ID, domain.CreateComment{EventID: event.ID, Text: "self reply", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, env.notifier.pushesTo(author.ID, notifyCommentReply), "no push for replying to yourself")

	assert.Equal(t, float64(2), env.insignias.score(author.ID, domain.CriteriaComments))
	assert.Equal(t, float64(1), env.insignias.score(replier.ID, domain.CriteriaComments))
}

func TestCommentService_AddCommentNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	user := env.addUser(t, "ana")
	event := env.addEvent(t, user, domain.EventScheduled)
	other := env.addEvent(t, user, domain.EventScheduled)

	_, err := env.commentSvc.AddComment(ctx, user.ID, domain.CreateComment{EventID: uuid.New(), Text: "hi"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = env.commentSvc.AddComment(ctx, uuid.New(), domain.CreateComment{EventID: event.ID, Text: "hi"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	missing := uuid.New()
	_, err = env.commentSvc.AddComment(ctx, user.ID, domain.CreateComment{EventID: event.ID, Text: "hi", ParentID: &missing})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	root, err := env.commentSvc.AddComment(ctx, user.ID, domain.CreateComment{EventID: other.ID, Text: "hi"})
	require.NoError(t, err)
	_, err = env.commentSvc.AddComment(ctx, user.ID, domain.CreateComment{EventID: event.ID, Text: "hi", ParentID: &root.ID})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_UpAndDown(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	author := env.addUser(t, "ana")
	fan := env.addUser(t, "bob")
	event := env.addEvent(t, author, domain.EventScheduled)

	c, err := env.commentSvc.AddComment(ctx, author.ID, domain.CreateComment{EventID: event.ID, Text: "hi"})
	require.NoError(t, err)

	err = env.commentSvc.DownComment(ctx, c.ID, fan.ID)
	assert.ErrorIs(t, err, ErrCannotRemoveUpIfNotMade)

	require.NoError(t, env.commentSvc.UpComment(ctx, c.ID, fan.ID))
	err = env.commentSvc.UpComment(ctx, c.ID, fan.ID)
	assert.ErrorIs(t, err, ErrUserHasAlreadyUpvoted)
	assert.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))
	assert.Equal(t, float64(1), env.insignias.score(author.ID, domain.CriteriaUpvotesReceived))

	require.NoError(t, env.commentSvc.DownComment(ctx, c.ID, fan.ID))
	stored, err := env.comments.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Ups)
	assert.Equal(t, float64(0), env.insignias.score(author.ID, domain.CriteriaUpvotesReceived))

	assert.ErrorIs(t, env.commentSvc.UpComment(ctx, uuid.New(), fan.ID), ErrCommentNotFound)
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	author := env.addUser(t, "ana")
	other := env.addUser(t, "bob")
	event := env.addEvent(t, author, domain.EventScheduled)

	root, err := env.commentSvc.AddComment(ctx, author.ID, domain.CreateComment{EventID: event.ID, Text: "root"})
	require.NoError(t, err)
	first, err := env.commentSvc.AddComment(ctx, other.ID, domain.CreateComment{EventID: event.ID, Text: "first", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = env.commentSvc.AddComment(ctx, other.ID, domain.CreateComment{EventID: event.ID, Text: "second", ParentID: &root.ID})
	require.NoError(t, err)

	err = env.commentSvc.DeleteComment(ctx, root.ID, other.ID)
	assert.ErrorIs(t, err, ErrCommentNotOwned)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	require.NoError(t, env.commentSvc.DeleteComment(ctx, first.ID, other.ID))
	stored, err := env.comments.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AnswersCount)
	assert.Equal(t, float64(1), env.insignias.score(other.ID, domain.CriteriaComments))

	require.NoError(t, env.commentSvc.DeleteComment(ctx, root.ID, author.ID))
	comments, err := env.commentSvc.GetCommentsFromTheEvent(ctx, event.ID, firstPage())
	require.NoError(t, err)
	require.Len(t, comments, 1, "replies of a deleted comment are kept")
	assert.Equal(t, "second", comments[0].Text)

	assert.ErrorIs(t, env.commentSvc.DeleteComment(ctx, root.ID, author.ID), ErrCommentNotFound)
}

func TestCommentService_Listing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	user := env.addUser(t, "ana")
	event := env.addEvent(t, user, domain.EventScheduled)

	root, err := env.commentSvc.AddComment(ctx, user.ID, domain.CreateComment{EventID: event.ID, Text: "0"})
	require.NoError(t, err)
	for _, text := range []string{"1", "2", "3"} {
		_, err := env.commentSvc.AddComment(ctx, user.ID, domain.CreateComment{EventID: event.ID, Text: text, ParentID: &root.ID})
		require.NoError(t, err)
	}

	page, err := env.commentSvc.GetCommentsFromTheEvent(ctx, event.ID, domain.Page{Number: 1, Size: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "3", page[0].Text)

	page, err = env.commentSvc.GetCommentsFromTheEvent(ctx, event.ID, domain.Page{Number: 2, Size: 3})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "0", page[0].Text)

	replies, err := env.commentSvc.GetReplies(ctx, root.ID, firstPage())
	require.NoError(t, err)
	assert.Len(t, replies, 3)

	_, err = env.commentSvc.GetCommentsFromTheEvent(ctx, event.ID, domain.Page{Number: 1, Size: 0})
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = env.commentSvc.GetCommentsFromTheEvent(ctx, uuid.New(), firstPage())
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = env.commentSvc.GetReplies(ctx, uuid.New(), firstPage())
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
