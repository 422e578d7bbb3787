package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFollowExists   = errors.New("follow already exists")
	ErrFollowNotFound = errors.New("follow not found")
)

// Follow is a directed edge. The composite primary key guarantees at most
// one edge, pending or accepted, per ordered pair.
type Follow struct {
	FollowerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	FollowingID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Status      string    `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FollowDAO struct {
	db *gorm.DB
}

func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{
		db: db,
	}
}

func (d *FollowDAO) Insert(ctx context.Context, follow Follow) (Follow, error) {
	result := d.db.WithContext(ctx).Create(&follow)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Follow{}, ErrFollowExists
		}

		return Follow{}, result.Error
	}

	return follow, nil
}

func (d *FollowDAO) Find(ctx context.Context, followerID, followingID uuid.UUID) (Follow, error) {
	var follow Follow

	result := d.db.WithContext(ctx).First(&follow, "follower_id = ? AND following_id = ?", followerID, followingID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Follow{}, ErrFollowNotFound
		}

		return Follow{}, result.Error
	}

	return follow, nil
}

// UpdateStatus moves the edge from one status to another. It fails with
// ErrFollowNotFound unless the edge currently has status from.
func (d *FollowDAO) UpdateStatus(ctx context.Context, followerID, followingID uuid.UUID, from, to string) error {
	result := d.db.WithContext(ctx).Model(&Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}

	return nil
}

func (d *FollowDAO) Delete(ctx context.Context, followerID, followingID uuid.UUID, status string) error {
	result := d.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, status).
		Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}

	return nil
}

// FindFollowerIDs lists who points at userID with the given status:
// followers when accepted, incoming requests when pending.
func (d *FollowDAO) FindFollowerIDs(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	result := d.db.WithContext(ctx).Model(&Follow{}).
		Where("following_id = ? AND status = ?", userID, status).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Pluck("follower_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// FindFollowingIDs lists who userID points at with the given status:
// followed users when accepted, sent requests when pending.
func (d *FollowDAO) FindFollowingIDs(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	result := d.db.WithContext(ctx).Model(&Follow{}).
		Where("follower_id = ? AND status = ?", userID, status).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Pluck("following_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// FindMutualIDs returns the users that follow userID and are followed back.
func (d *FollowDAO) FindMutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	result := d.db.WithContext(ctx).Table("follows AS incoming").
		Joins("JOIN follows AS outgoing ON outgoing.follower_id = incoming.following_id AND outgoing.following_id = incoming.follower_id").
		Where("incoming.following_id = ? AND incoming.status = ? AND outgoing.status = ?", userID, "accepted", "accepted").
		Pluck("incoming.follower_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *FollowDAO) Count(ctx context.Context, userID uuid.UUID) (followers int64, following int64, err error) {
	if err = d.db.WithContext(ctx).Model(&Follow{}).
		Where("following_id = ? AND status = ?", userID, "accepted").
		Count(&followers).Error; err != nil {
		return 0, 0, err
	}

	if err = d.db.WithContext(ctx).Model(&Follow{}).
		Where("follower_id = ? AND status = ?", userID, "accepted").
		Count(&following).Error; err != nil {
		return 0, 0, err
	}

	return followers, following, nil
}
