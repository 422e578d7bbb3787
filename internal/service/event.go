package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository"
)

type EventService struct {
	repo     EventRepository
	userRepo UserRepository
	ledger   PointsLedger
}

func NewEventService(repo EventRepository, userRepo UserRepository, ledger PointsLedger) *EventService {
	return &EventService{
		repo:     repo,
		userRepo: userRepo,
		ledger:   ledger,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, creatorID uuid.UUID, event domain.Event) (domain.Event, error) {
	if _, err := s.userRepo.FindByID(ctx, creatorID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Event{}, ErrUserNotFound
		}

		return domain.Event{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	event.ID = uuid.Nil
	event.CreatorID = creatorID
	event.Status = domain.EventScheduled
	event.PresencesCount = 0
	event.Votes = nil

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err := s.ledger.AddPoints(ctx, creatorID, domain.CriteriaEventsCreated, 1); err != nil {
		return domain.Event{}, fmt.Errorf("s.ledger.AddPoints -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return findEvent(ctx, s.repo, id)
}

// UpdateEvent applies patch when actorID created the event.
func (s *EventService) UpdateEvent(ctx context.Context, actorID, id uuid.UUID, patch domain.EventPatch) (domain.Event, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.Event{}, ErrInvalidEventStatus
	}

	event, err := findEvent(ctx, s.repo, id)
	if err != nil {
		return domain.Event{}, err
	}
	if event.CreatorID != actorID {
		return domain.Event{}, ErrNotEventCreator
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// ListEvents returns events newest first. An empty status lists every
// event.
func (s *EventService) ListEvents(ctx context.Context, status domain.EventStatus, page domain.Page) ([]domain.Event, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidEventStatus
	}

	events, err := s.repo.Find(ctx, status, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return events, nil
}

func findEvent(ctx context.Context, repo EventRepository, id uuid.UUID) (domain.Event, error) {
	event, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}
