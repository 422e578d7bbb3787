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

func userIDs(users []domain.User) []uuid.UUID {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func TestFollowService_SendAndAccept(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	a := env.addUser(t, "ana")
	b := env.addUser(t, "bob")

	f, err := env.followSvc.SendFollowRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowPending, f.Status)
	assert.Equal(t, 1, env.notifier.pushesTo(b.ID, notifyFollowRequest))
	assert.Equal(t, []string{b.Email}, env.notifier.mails)

	pending, err := env.followSvc.PendingRequests(ctx, b.ID, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, userIDs(pending))

	sent, err := env.followSvc.SentRequests(ctx, a.ID, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, userIDs(sent))

	require.NoError(t, env.followSvc.AcceptFollowRequest(ctx, b.ID, a.ID))
	assert.Equal(t, 1, env.notifier.pushesTo(a.ID, notifyFollowAccepted))

	following, err := env.followSvc.Following(ctx, a.ID, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, userIDs(following))

	followers, err := env.followSvc.Followers(ctx, b.ID, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, userIDs(followers))

	pending, err = env.followSvc.PendingRequests(ctx, b.ID, firstPage())
	require.NoError(t, err)
	assert.Empty(t, pending)
	sent, err = env.followSvc.SentRequests(ctx, a.ID, firstPage())
	require.NoError(t, err)
	assert.Empty(t, sent)

	rel, err := env.followSvc.Relationship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipFollowing, rel)

	rel, err = env.followSvc.Relationship(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipNone, rel, "reverse direction is independent")

	assert.Equal(t, float64(1), env.insignias.score(b.ID, domain.CriteriaFollowers))

	err = env.followSvc.AcceptFollowRequest(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrFollowRequestNotFound)
}

func TestFollowService_SendFollowRequestErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	a := env.addUser(t, "ana")
	b := env.addUser(t, "bob")

	_, err := env.followSvc.SendFollowRequest(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrCannotFollowYourself)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = env.followSvc.SendFollowRequest(ctx, a.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.followSvc.SendFollowRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = env.followSvc.SendFollowRequest(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrFollowRequestAlreadySent)
	assert.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))

	require.NoError(t, env.followSvc.AcceptFollowRequest(ctx, b.ID, a.ID))
	_, err = env.followSvc.SendFollowRequest(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowService_CancelAndReject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	a := env.addUser(t, "ana")
	b := env.addUser(t, "bob")

	_, err := env.followSvc.SendFollowRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, env.followSvc.CancelFollowRequest(ctx, a.ID, b.ID))

	for _, pair := range [][2]uuid.UUID{{a.ID, b.ID}, {b.ID, a.ID}} {
		rel, err := env.followSvc.Relationship(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, domain.RelationshipNone, rel)
	}
	assert.ErrorIs(t, env.followSvc.CancelFollowRequest(ctx, a.ID, b.ID), ErrFollowRequestNotFound)

	_, err = env.followSvc.SendFollowRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	rel, err := env.followSvc.Relationship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipPending, rel)

	require.NoError(t, env.followSvc.RejectFollowRequest(ctx, b.ID, a.ID))
	rel, err = env.followSvc.Relationship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipNone, rel)
	assert.ErrorIs(t, env.followSvc.RejectFollowRequest(ctx, b.ID, a.ID), ErrFollowRequestNotFound)

	assert.Equal(t, float64(0), env.insignias.score(b.ID, domain.CriteriaFollowers))
}

func TestFollowService_RemoveFollowingAndFollower(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	a := env.addUser(t, "ana")
	b := env.addUser(t, "bob")

	follow := func(from, to domain.User) {
		_, err := env.followSvc.SendFollowRequest(ctx, from.ID, to.ID)
		require.NoError(t, err)
		require.NoError(t, env.followSvc.AcceptFollowRequest(ctx, to.ID, from.ID))
	}

	follow(a, b)
	follow(b, a)

	require.NoError(t, env.followSvc.RemoveFollowing(ctx, a.ID, b.ID))
	rel, err := env.followSvc.Relationship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipNone, rel)

	rel, err = env.followSvc.Relationship(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipFollowing, rel, "unfollow is unidirectional")
	assert.Equal(t, float64(0), env.insignias.score(b.ID, domain.CriteriaFollowers))

	require.NoError(t, env.followSvc.RemoveFollowing(ctx, a.ID, b.ID), "no edge is a no-op")
	assert.Equal(t, float64(0), env.insignias.score(b.ID, domain.CriteriaFollowers))

	require.NoError(t, env.followSvc.RemoveFollower(ctx, a.ID, b.ID))
	rel, err = env.followSvc.Relationship(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipNone, rel)

	followers, following, err := env.followSvc.Counts(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, followers)
	assert.Zero(t, following)
}

func TestFollowService_MutualFollowers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	viewer := env.addUser(t, "viewer")
	friend := env.addUser(t, "friend")
	fan := env.addUser(t, "fan")
	idol := env.addUser(t, "idol")

	follow := func(from, to domain.User) {
		_, err := env.followSvc.SendFollowRequest(ctx, from.ID, to.ID)
		require.NoError(t, err)
		require.NoError(t, env.followSvc.AcceptFollowRequest(ctx, to.ID, from.ID))
	}
	follow(viewer, friend)
	follow(friend, viewer)
	follow(fan, viewer)
	follow(viewer, idol)

	mutual, err := env.followSvc.MutualFollowers(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{friend.ID}, mutual)

	followers, following, err := env.followSvc.Counts(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)
	assert.Equal(t, int64(2), following)
}

func TestFollowService_InvalidPage(t *testing.T) {
	env := newTestEnv()
	_, err := env.followSvc.Followers(context.Background(), uuid.New(), domain.Page{Number: 0, Size: 10})
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = env.followSvc.Following(context.Background(), uuid.New(), domain.Page{Number: 1, Size: 101})
	assert.ErrorIs(t, err, ErrInvalidPage)
}
