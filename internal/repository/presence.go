package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

var (
	ErrPresenceExists   = dao.ErrPresenceExists
	ErrPresenceNotFound = dao.ErrPresenceNotFound
)

type PresenceDAO interface {
	Insert(ctx context.Context, presence dao.Presence) (dao.Presence, error)
	Find(ctx context.Context, eventID, userID uuid.UUID) (dao.Presence, error)
	Delete(ctx context.Context, eventID, userID uuid.UUID) error
	UpdateStatus(ctx context.Context, eventID, userID uuid.UUID, status string) error
	FindByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]dao.Presence, error)
	FindByEventAndUsers(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) ([]dao.Presence, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type PresenceRepository struct {
	dao PresenceDAO
}

func NewPresenceRepository(dao PresenceDAO) *PresenceRepository {
	return &PresenceRepository{
		dao: dao,
	}
}

func (r *PresenceRepository) Create(ctx context.Context, p domain.Presence) (domain.Presence, error) {
	created, err := r.dao.Insert(ctx, dao.Presence{
		ID:          p.ID,
		EventID:     p.EventID,
		UserID:      p.UserID,
		Nick:        p.Nick,
		AccountType: p.AccountType,
		Public:      p.Public,
		Status:      string(p.Status),
	})
	if err != nil {
		return domain.Presence{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PresenceRepository) Find(ctx context.Context, eventID, userID uuid.UUID) (domain.Presence, error) {
	found, err := r.dao.Find(ctx, eventID, userID)
	if err != nil {
		return domain.Presence{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PresenceRepository) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *PresenceRepository) UpdateStatus(ctx context.Context, eventID, userID uuid.UUID, status domain.PresenceStatus) error {
	if err := r.dao.UpdateStatus(ctx, eventID, userID, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *PresenceRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Presence, error) {
	found, err := r.dao.FindByEvent(ctx, eventID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *PresenceRepository) FindByEventAndUsers(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) ([]domain.Presence, error) {
	found, err := r.dao.FindByEventAndUsers(ctx, eventID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndUsers -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *PresenceRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := r.dao.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUser -> %w", err)
	}

	return count, nil
}

func (r *PresenceRepository) daosToDomain(presences []dao.Presence) []domain.Presence {
	result := make([]domain.Presence, len(presences))
	for i, p := range presences {
		result[i] = r.daoToDomain(p)
	}
	return result
}

func (r *PresenceRepository) daoToDomain(p dao.Presence) domain.Presence {
	return domain.Presence{
		ID:          p.ID,
		EventID:     p.EventID,
		UserID:      p.UserID,
		Nick:        p.Nick,
		AccountType: p.AccountType,
		Public:      p.Public,
		Status:      domain.PresenceStatus(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}
