package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

var (
	ErrCommentNotFound = dao.ErrCommentNotFound
	ErrUpExists        = dao.ErrUpExists
	ErrUpNotFound      = dao.ErrUpNotFound
)

type CommentDAO interface {
	Insert(ctx context.Context, comment dao.Comment) (dao.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementAnswers(ctx context.Context, id uuid.UUID, delta int) error
	InsertUp(ctx context.Context, commentID, userID uuid.UUID) error
	DeleteUp(ctx context.Context, commentID, userID uuid.UUID) error
	FindByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]dao.Comment, error)
	FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]dao.Comment, error)
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	created, err := r.dao.Insert(ctx, dao.Comment{
		ID:           c.ID,
		EventID:      c.EventID,
		UserID:       c.UserID,
		Nick:         c.Nick,
		ImageProfile: c.ImageProfile,
		Text:         c.Text,
		ParentID:     c.ParentID,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Comment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CommentRepository) IncrementAnswers(ctx context.Context, id uuid.UUID, delta int) error {
	if err := r.dao.IncrementAnswers(ctx, id, delta); err != nil {
		return fmt.Errorf("r.dao.IncrementAnswers -> %w", err)
	}

	return nil
}

func (r *CommentRepository) AddUp(ctx context.Context, commentID, userID uuid.UUID) error {
	if err := r.dao.InsertUp(ctx, commentID, userID); err != nil {
		return fmt.Errorf("r.dao.InsertUp -> %w", err)
	}

	return nil
}

func (r *CommentRepository) RemoveUp(ctx context.Context, commentID, userID uuid.UUID) error {
	if err := r.dao.DeleteUp(ctx, commentID, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteUp -> %w", err)
	}

	return nil
}

func (r *CommentRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Comment, error) {
	found, err := r.dao.FindByEvent(ctx, eventID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *CommentRepository) FindReplies(ctx context.Context, parentID uuid.UUID, page domain.Page) ([]domain.Comment, error) {
	found, err := r.dao.FindReplies(ctx, parentID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindReplies -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *CommentRepository) daosToDomain(comments []dao.Comment) []domain.Comment {
	result := make([]domain.Comment, len(comments))
	for i, c := range comments {
		result[i] = r.daoToDomain(c)
	}
	return result
}

func (r *CommentRepository) daoToDomain(c dao.Comment) domain.Comment {
	ups := make([]uuid.UUID, len(c.Ups))
	for i, up := range c.Ups {
		ups[i] = up.UserID
	}

	return domain.Comment{
		ID:           c.ID,
		EventID:      c.EventID,
		UserID:       c.UserID,
		Nick:         c.Nick,
		ImageProfile: c.ImageProfile,
		Text:         c.Text,
		ParentID:     c.ParentID,
		Ups:          ups,
		AnswersCount: c.AnswersCount,
		CreatedAt:    c.CreatedAt,
	}
}
