package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

var (
	ErrFollowExists   = dao.ErrFollowExists
	ErrFollowNotFound = dao.ErrFollowNotFound
)

type FollowDAO interface {
	Insert(ctx context.Context, follow dao.Follow) (dao.Follow, error)
	Find(ctx context.Context, followerID, followingID uuid.UUID) (dao.Follow, error)
	UpdateStatus(ctx context.Context, followerID, followingID uuid.UUID, from, to string) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID, status string) error
	FindFollowerIDs(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]uuid.UUID, error)
	FindFollowingIDs(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]uuid.UUID, error)
	FindMutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, int64, error)
}

type FollowRepository struct {
	dao FollowDAO
}

func NewFollowRepository(dao FollowDAO) *FollowRepository {
	return &FollowRepository{
		dao: dao,
	}
}

func (r *FollowRepository) Create(ctx context.Context, f domain.Follow) (domain.Follow, error) {
	created, err := r.dao.Insert(ctx, dao.Follow{
		FollowerID:  f.FollowerID,
		FollowingID: f.FollowingID,
		Status:      string(f.Status),
	})
	if err != nil {
		return domain.Follow{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FollowRepository) Find(ctx context.Context, followerID, followingID uuid.UUID) (domain.Follow, error) {
	found, err := r.dao.Find(ctx, followerID, followingID)
	if err != nil {
		return domain.Follow{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FollowRepository) UpdateStatus(ctx context.Context, followerID, followingID uuid.UUID, from, to domain.FollowStatus) error {
	if err := r.dao.UpdateStatus(ctx, followerID, followingID, string(from), string(to)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID, status domain.FollowStatus) error {
	if err := r.dao.Delete(ctx, followerID, followingID, string(status)); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FollowRepository) FindFollowerIDs(ctx context.Context, userID uuid.UUID, status domain.FollowStatus, page domain.Page) ([]uuid.UUID, error) {
	ids, err := r.dao.FindFollowerIDs(ctx, userID, string(status), page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFollowerIDs -> %w", err)
	}

	return ids, nil
}

func (r *FollowRepository) FindFollowingIDs(ctx context.Context, userID uuid.UUID, status domain.FollowStatus, page domain.Page) ([]uuid.UUID, error) {
	ids, err := r.dao.FindFollowingIDs(ctx, userID, string(status), page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFollowingIDs -> %w", err)
	}

	return ids, nil
}

func (r *FollowRepository) FindMutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.dao.FindMutualIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMutualIDs -> %w", err)
	}

	return ids, nil
}

func (r *FollowRepository) Count(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	followers, following, err := r.dao.Count(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return followers, following, nil
}

func (r *FollowRepository) daoToDomain(f dao.Follow) domain.Follow {
	return domain.Follow{
		FollowerID:  f.FollowerID,
		FollowingID: f.FollowingID,
		Status:      domain.FollowStatus(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
