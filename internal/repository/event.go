package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
	ErrVoteExists    = dao.ErrVoteExists
	ErrVoteNotFound  = dao.ErrVoteNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Event, error)
	Find(ctx context.Context, status string, limit, offset int) ([]dao.Event, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (dao.Event, error)
	IncrementPresences(ctx context.Context, id uuid.UUID, delta int) error
	InsertVote(ctx context.Context, vote dao.EventVote) (dao.EventVote, error)
	FindVote(ctx context.Context, eventID, userID uuid.UUID) (dao.EventVote, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		ID:          event.ID,
		CreatorID:   event.CreatorID,
		Name:        event.Name,
		Description: event.Description,
		Address:     event.Address,
		Status:      string(event.Status),
		OccursAt:    event.OccursAt,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) Find(ctx context.Context, status domain.EventStatus, page domain.Page) ([]domain.Event, error) {
	found, err := r.dao.Find(ctx, string(status), page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	if patch.OccursAt != nil {
		fields["occurs_at"] = *patch.OccursAt
	}
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) IncrementPresences(ctx context.Context, id uuid.UUID, delta int) error {
	if err := r.dao.IncrementPresences(ctx, id, delta); err != nil {
		return fmt.Errorf("r.dao.IncrementPresences -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateVote(ctx context.Context, vote domain.EventVote) (domain.EventVote, error) {
	created, err := r.dao.InsertVote(ctx, dao.EventVote{
		EventID: vote.EventID,
		UserID:  vote.UserID,
		Rating:  vote.Rating,
	})
	if err != nil {
		return domain.EventVote{}, fmt.Errorf("r.dao.InsertVote -> %w", err)
	}

	return r.voteDaoToDomain(created), nil
}

func (r *EventRepository) FindVote(ctx context.Context, eventID, userID uuid.UUID) (domain.EventVote, error) {
	found, err := r.dao.FindVote(ctx, eventID, userID)
	if err != nil {
		return domain.EventVote{}, fmt.Errorf("r.dao.FindVote -> %w", err)
	}

	return r.voteDaoToDomain(found), nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	votes := make([]domain.EventVote, len(e.Votes))
	for i, v := range e.Votes {
		votes[i] = r.voteDaoToDomain(v)
	}

	return domain.Event{
		ID:             e.ID,
		CreatorID:      e.CreatorID,
		Name:           e.Name,
		Description:    e.Description,
		Address:        e.Address,
		Status:         domain.EventStatus(e.Status),
		PresencesCount: e.PresencesCount,
		Votes:          votes,
		AverageScore:   domain.AverageScore(votes),
		OccursAt:       e.OccursAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *EventRepository) voteDaoToDomain(v dao.EventVote) domain.EventVote {
	return domain.EventVote{
		EventID:   v.EventID,
		UserID:    v.UserID,
		Rating:    v.Rating,
		CreatedAt: v.CreatedAt,
	}
}
