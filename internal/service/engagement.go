package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/metrics"
	"github.com/sanisamoj/Borai-sub000/internal/repository"
)

type PresenceRepository interface {
	Create(ctx context.Context, p domain.Presence) (domain.Presence, error)
	Find(ctx context.Context, eventID, userID uuid.UUID) (domain.Presence, error)
	Delete(ctx context.Context, eventID, userID uuid.UUID) error
	UpdateStatus(ctx context.Context, eventID, userID uuid.UUID, status domain.PresenceStatus) error
	FindByEvent(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Presence, error)
	FindByEventAndUsers(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) ([]domain.Presence, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type MutualFollowersFinder interface {
	MutualFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// EngagementService handles presences and ratings on events.
type EngagementService struct {
	presenceRepo PresenceRepository
	eventRepo    EventRepository
	userRepo     UserRepository
	follows      MutualFollowersFinder
	ledger       PointsLedger
}

func NewEngagementService(presenceRepo PresenceRepository, eventRepo EventRepository, userRepo UserRepository, follows MutualFollowersFinder, ledger PointsLedger) *EngagementService {
	return &EngagementService{
		presenceRepo: presenceRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		follows:      follows,
		ledger:       ledger,
	}
}

// MarkPresence snapshots the user's nick, account type and public flag into
// a new presence.
func (s *EngagementService) MarkPresence(ctx context.Context, userID, eventID uuid.UUID) (domain.Presence, error) {
	if _, err := findEvent(ctx, s.eventRepo, eventID); err != nil {
		return domain.Presence{}, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Presence{}, ErrUserNotFound
		}

		return domain.Presence{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	_, err = s.presenceRepo.Find(ctx, eventID, userID)
	if err == nil {
		return domain.Presence{}, ErrPresenceAlreadyMarked
	}
	if !errors.Is(err, repository.ErrPresenceNotFound) {
		return domain.Presence{}, fmt.Errorf("s.presenceRepo.Find -> %w", err)
	}

	created, err := s.presenceRepo.Create(ctx, domain.Presence{
		EventID:     eventID,
		UserID:      userID,
		Nick:        user.Nick,
		AccountType: user.AccountType,
		Public:      user.Public,
		Status:      domain.PresenceMarked,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPresenceExists) {
			return domain.Presence{}, ErrPresenceAlreadyMarked
		}

		return domain.Presence{}, fmt.Errorf("s.presenceRepo.Create -> %w", err)
	}

	if err := s.eventRepo.IncrementPresences(ctx, eventID, 1); err != nil {
		return domain.Presence{}, fmt.Errorf("s.eventRepo.IncrementPresences -> %w", err)
	}
	metrics.PresencesMarked.Inc()

	if err := s.ledger.AddPoints(ctx, userID, domain.CriteriaPresences, 1); err != nil {
		return domain.Presence{}, fmt.Errorf("s.ledger.AddPoints -> %w", err)
	}

	return created, nil
}

func (s *EngagementService) UnmarkPresence(ctx context.Context, userID, eventID uuid.UUID) error {
	if err := s.presenceRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrPresenceNotFound) {
			return ErrPresenceNotFound
		}

		return fmt.Errorf("s.presenceRepo.Delete -> %w", err)
	}

	if err := s.eventRepo.IncrementPresences(ctx, eventID, -1); err != nil {
		return fmt.Errorf("s.eventRepo.IncrementPresences -> %w", err)
	}

	if err := s.ledger.RemovePoints(ctx, userID, domain.CriteriaPresences, 1); err != nil {
		return fmt.Errorf("s.ledger.RemovePoints -> %w", err)
	}

	return nil
}

// SubmitEventVote rates a completed event the user attended. A user votes
// at most once per event.
func (s *EngagementService) SubmitEventVote(ctx context.Context, userID, eventID uuid.UUID, rating int) (domain.EventVote, error) {
	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return domain.EventVote{}, err
	}

	presence, err := s.presenceRepo.Find(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPresenceNotFound) {
			return domain.EventVote{}, ErrUserDidNotAttendEvent
		}

		return domain.EventVote{}, fmt.Errorf("s.presenceRepo.Find -> %w", err)
	}
	if presence.Status == domain.PresenceDidNotAttend {
		return domain.EventVote{}, ErrUserDidNotAttendEvent
	}

	if event.Status != domain.EventCompleted {
		return domain.EventVote{}, ErrEventNotEnded
	}

	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.EventVote{}, ErrInvalidRating
	}

	_, err = s.eventRepo.FindVote(ctx, eventID, userID)
	if err == nil {
		return domain.EventVote{}, ErrUserAlreadyVoted
	}
	if !errors.Is(err, repository.ErrVoteNotFound) {
		return domain.EventVote{}, fmt.Errorf("s.eventRepo.FindVote -> %w", err)
	}

	vote, err := s.eventRepo.CreateVote(ctx, domain.EventVote{
		EventID: eventID,
		UserID:  userID,
		Rating:  rating,
	})
	if err != nil {
		if errors.Is(err, repository.ErrVoteExists) {
			return domain.EventVote{}, ErrUserAlreadyVoted
		}

		return domain.EventVote{}, fmt.Errorf("s.eventRepo.CreateVote -> %w", err)
	}
	metrics.EventVotes.Inc()

	if err := s.ledger.AddPoints(ctx, userID, domain.CriteriaRatings, 1); err != nil {
		return domain.EventVote{}, fmt.Errorf("s.ledger.AddPoints -> %w", err)
	}

	return vote, nil
}

func (s *EngagementService) GetPresences(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Presence, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	if _, err := findEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}

	presences, err := s.presenceRepo.FindByEvent(ctx, eventID, page)
	if err != nil {
		return nil, fmt.Errorf("s.presenceRepo.FindByEvent -> %w", err)
	}

	return presences, nil
}

// SetPresenceStatus lets the event creator confirm whether a user attended.
func (s *EngagementService) SetPresenceStatus(ctx context.Context, actorID, eventID, userID uuid.UUID, status domain.PresenceStatus) error {
	if !status.IsValid() {
		return ErrInvalidPresenceStatus
	}

	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != actorID {
		return ErrNotEventCreator
	}

	if err := s.presenceRepo.UpdateStatus(ctx, eventID, userID, status); err != nil {
		if errors.Is(err, repository.ErrPresenceNotFound) {
			return ErrPresenceNotFound
		}

		return fmt.Errorf("s.presenceRepo.UpdateStatus -> %w", err)
	}

	return nil
}

// FriendsAttending returns the presences on the event of the viewer's
// mutual followers.
func (s *EngagementService) FriendsAttending(ctx context.Context, viewerID, eventID uuid.UUID) ([]domain.Presence, error) {
	if _, err := findEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}

	mutual, err := s.follows.MutualFollowers(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("s.follows.MutualFollowers -> %w", err)
	}
	if len(mutual) == 0 {
		return []domain.Presence{}, nil
	}

	presences, err := s.presenceRepo.FindByEventAndUsers(ctx, eventID, mutual)
	if err != nil {
		return nil, fmt.Errorf("s.presenceRepo.FindByEventAndUsers -> %w", err)
	}

	return presences, nil
}
