package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrUpExists        = errors.New("up already exists")
	ErrUpNotFound      = errors.New("up not found")
)

type Comment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null"`
	Nick         string     `gorm:"not null"`
	ImageProfile string
	Text         string      `gorm:"not null"`
	ParentID     *uuid.UUID  `gorm:"type:uuid;index"`
	Ups          []CommentUp `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	AnswersCount int         `gorm:"not null;default:0"`
	CreatedAt    time.Time   `gorm:"index"`
}

type CommentUp struct {
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

func (d *CommentDAO) Insert(ctx context.Context, comment Comment) (Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Omit("Ups").Create(&comment)
	if result.Error != nil {
		return Comment{}, result.Error
	}

	return comment, nil
}

func (d *CommentDAO) FindByID(ctx context.Context, id uuid.UUID) (Comment, error) {
	var comment Comment

	result := d.db.WithContext(ctx).Preload("Ups").First(&comment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Comment{}, ErrCommentNotFound
		}

		return Comment{}, result.Error
	}

	return comment, nil
}

func (d *CommentDAO) Delete(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (d *CommentDAO) IncrementAnswers(ctx context.Context, id uuid.UUID, delta int) error {
	result := d.db.WithContext(ctx).Model(&Comment{}).Where("id = ?", id).
		Update("answers_count", gorm.Expr("answers_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (d *CommentDAO) InsertUp(ctx context.Context, commentID, userID uuid.UUID) error {
	result := d.db.WithContext(ctx).Create(&CommentUp{CommentID: commentID, UserID: userID})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrUpExists
		}

		return result.Error
	}

	return nil
}

func (d *CommentDAO) DeleteUp(ctx context.Context, commentID, userID uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&CommentUp{}, "comment_id = ? AND user_id = ?", commentID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUpNotFound
	}

	return nil
}

func (d *CommentDAO) FindByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]Comment, error) {
	var comments []Comment

	result := d.db.WithContext(ctx).Preload("Ups").Where("event_id = ?", eventID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

func (d *CommentDAO) FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]Comment, error) {
	var comments []Comment

	result := d.db.WithContext(ctx).Preload("Ups").Where("parent_id = ?", parentID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}
