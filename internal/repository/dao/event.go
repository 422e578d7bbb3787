package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrVoteExists    = errors.New("vote already exists")
	ErrVoteNotFound  = errors.New("vote not found")
)

type Event struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null"`
	Description    string
	Address        string
	Status         string      `gorm:"not null;index"`
	PresencesCount int         `gorm:"not null;default:0"`
	Votes          []EventVote `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	OccursAt       time.Time   `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type EventVote struct {
	EventID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Rating    int       `gorm:"not null"`
	CreatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uuid.UUID) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("Votes").First(&event, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Find(ctx context.Context, status string, limit, offset int) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Order("occurs_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *EventDAO) IncrementPresences(ctx context.Context, id uuid.UUID, delta int) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).
		Update("presences_count", gorm.Expr("presences_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) InsertVote(ctx context.Context, vote EventVote) (EventVote, error) {
	result := d.db.WithContext(ctx).Create(&vote)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return EventVote{}, ErrVoteExists
		}

		return EventVote{}, result.Error
	}

	return vote, nil
}

func (d *EventDAO) FindVote(ctx context.Context, eventID, userID uuid.UUID) (EventVote, error) {
	var vote EventVote

	result := d.db.WithContext(ctx).First(&vote, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventVote{}, ErrVoteNotFound
		}

		return EventVote{}, result.Error
	}

	return vote, nil
}
