package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

type stubUserDAO struct {
	UserDAO
	saved dao.User
	err   error
}

func (s *stubUserDAO) Upsert(_ context.Context, user dao.User) (dao.User, error) {
	s.saved = user
	return user, s.err
}

func (s *stubUserDAO) FindByID(context.Context, uuid.UUID) (dao.User, error) {
	return dao.User{}, s.err
}

func TestUserRepositoryUpsertDefaultsAccountType(t *testing.T) {
	stub := &stubUserDAO{}
	repo := NewUserRepository(stub)

	user, err := repo.Upsert(context.Background(), domain.User{ID: uuid.New(), Nick: "ana"})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeUser, stub.saved.AccountType)
	assert.Equal(t, "ana", user.Nick)
}

func TestUserRepositoryKeepsSentinels(t *testing.T) {
	repo := NewUserRepository(&stubUserDAO{err: dao.ErrUserNotFound})

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "r.dao.FindByID")
}

type stubFollowDAO struct {
	FollowDAO
	inserted      dao.Follow
	limit, offset int
	err           error
}

func (s *stubFollowDAO) Insert(_ context.Context, follow dao.Follow) (dao.Follow, error) {
	s.inserted = follow
	return follow, s.err
}

func (s *stubFollowDAO) FindFollowerIDs(_ context.Context, _ uuid.UUID, _ string, limit, offset int) ([]uuid.UUID, error) {
	s.limit, s.offset = limit, offset
	return nil, s.err
}

func TestFollowRepositoryCreate(t *testing.T) {
	stub := &stubFollowDAO{}
	repo := NewFollowRepository(stub)
	follower, following := uuid.New(), uuid.New()

	f, err := repo.Create(context.Background(), domain.Follow{
		FollowerID:  follower,
		FollowingID: following,
		Status:      domain.FollowPending,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FollowPending), stub.inserted.Status)
	assert.Equal(t, domain.FollowPending, f.Status)
	assert.Equal(t, follower, f.FollowerID)

	stub.err = dao.ErrFollowExists
	_, err = repo.Create(context.Background(), domain.Follow{})
	assert.ErrorIs(t, err, ErrFollowExists)
}

func TestFollowRepositoryPaging(t *testing.T) {
	stub := &stubFollowDAO{}
	repo := NewFollowRepository(stub)

	_, err := repo.FindFollowerIDs(context.Background(), uuid.New(), domain.FollowAccepted, domain.Page{Number: 3, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, stub.limit)
	assert.Equal(t, 20, stub.offset)
}
