package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPresenceExists   = errors.New("presence already exists")
	ErrPresenceNotFound = errors.New("presence not found")
)

type Presence struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_presence_event_user,priority:1"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_presence_event_user,priority:2;index"`
	Nick        string    `gorm:"not null"`
	AccountType string    `gorm:"not null"`
	Public      bool      `gorm:"not null"`
	Status      string    `gorm:"not null"`
	CreatedAt   time.Time
}

type PresenceDAO struct {
	db *gorm.DB
}

func NewPresenceDAO(db *gorm.DB) *PresenceDAO {
	return &PresenceDAO{
		db: db,
	}
}

func (d *PresenceDAO) Insert(ctx context.Context, presence Presence) (Presence, error) {
	if presence.ID == uuid.Nil {
		presence.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Create(&presence)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Presence{}, ErrPresenceExists
		}

		return Presence{}, result.Error
	}

	return presence, nil
}

func (d *PresenceDAO) Find(ctx context.Context, eventID, userID uuid.UUID) (Presence, error) {
	var presence Presence

	result := d.db.WithContext(ctx).First(&presence, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Presence{}, ErrPresenceNotFound
		}

		return Presence{}, result.Error
	}

	return presence, nil
}

func (d *PresenceDAO) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	result := d.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&Presence{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPresenceNotFound
	}

	return nil
}

func (d *PresenceDAO) UpdateStatus(ctx context.Context, eventID, userID uuid.UUID, status string) error {
	result := d.db.WithContext(ctx).Model(&Presence{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPresenceNotFound
	}

	return nil
}

func (d *PresenceDAO) FindByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]Presence, error) {
	var presences []Presence

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&presences)
	if result.Error != nil {
		return nil, result.Error
	}

	return presences, nil
}

func (d *PresenceDAO) FindByEventAndUsers(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) ([]Presence, error) {
	var presences []Presence
	if len(userIDs) == 0 {
		return presences, nil
	}

	result := d.db.WithContext(ctx).Where("event_id = ? AND user_id IN ?", eventID, userIDs).
		Order("nick").Find(&presences)
	if result.Error != nil {
		return nil, result.Error
	}

	return presences, nil
}

func (d *PresenceDAO) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Presence{}).Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
