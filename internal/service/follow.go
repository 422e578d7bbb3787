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

type FollowRepository interface {
	Create(ctx context.Context, f domain.Follow) (domain.Follow, error)
	Find(ctx context.Context, followerID, followingID uuid.UUID) (domain.Follow, error)
	UpdateStatus(ctx context.Context, followerID, followingID uuid.UUID, from, to domain.FollowStatus) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID, status domain.FollowStatus) error
	FindFollowerIDs(ctx context.Context, userID uuid.UUID, status domain.FollowStatus, page domain.Page) ([]uuid.UUID, error)
	FindFollowingIDs(ctx context.Context, userID uuid.UUID, status domain.FollowStatus, page domain.Page) ([]uuid.UUID, error)
	FindMutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, int64, error)
}

// FollowService manages the directed follow graph. Each ordered pair of
// users has at most one edge, pending or accepted.
type FollowService struct {
	repo     FollowRepository
	userRepo UserRepository
	ledger   PointsLedger
	notifier Notifier
}

func NewFollowService(repo FollowRepository, userRepo UserRepository, ledger PointsLedger, notifier Notifier) *FollowService {
	return &FollowService{
		repo:     repo,
		userRepo: userRepo,
		ledger:   ledger,
		notifier: notifier,
	}
}

func (s *FollowService) SendFollowRequest(ctx context.Context, followerID, followingID uuid.UUID) (domain.Follow, error) {
	if followerID == followingID {
		return domain.Follow{}, ErrCannotFollowYourself
	}

	requester, err := s.findUser(ctx, followerID)
	if err != nil {
		return domain.Follow{}, err
	}
	target, err := s.findUser(ctx, followingID)
	if err != nil {
		return domain.Follow{}, err
	}

	existing, err := s.repo.Find(ctx, followerID, followingID)
	switch {
	case err == nil && existing.Status == domain.FollowAccepted:
		return domain.Follow{}, ErrAlreadyFollowing
	case err == nil:
		return domain.Follow{}, ErrFollowRequestAlreadySent
	case !errors.Is(err, repository.ErrFollowNotFound):
		return domain.Follow{}, fmt.Errorf("s.repo.Find -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      domain.FollowPending,
	})
	if err != nil {
		if errors.Is(err, repository.ErrFollowExists) {
			return domain.Follow{}, ErrFollowRequestAlreadySent
		}

		return domain.Follow{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	metrics.IncFollowTransition("request_sent")

	text := fmt.Sprintf("%s wants to follow you", requester.Nick)
	s.notifier.Push(target.ID, notifyFollowRequest, text)
	s.notifier.Mail(target.Email, "New follow request", fmt.Sprintf("<p>%s</p>", text))

	return created, nil
}

// AcceptFollowRequest is called by userID to accept the pending request
// sent by requesterID.
func (s *FollowService) AcceptFollowRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	err = s.repo.UpdateStatus(ctx, requesterID, userID, domain.FollowPending, domain.FollowAccepted)
	if err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return ErrFollowRequestNotFound
		}

		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}
	metrics.IncFollowTransition("accepted")

	s.notifier.Push(requesterID, notifyFollowAccepted, fmt.Sprintf("%s accepted your follow request", user.Nick))

	if err := s.ledger.AddPoints(ctx, userID, domain.CriteriaFollowers, 1); err != nil {
		return fmt.Errorf("s.ledger.AddPoints -> %w", err)
	}

	return nil
}

// RejectFollowRequest is called by userID to drop the pending request sent
// by requesterID.
func (s *FollowService) RejectFollowRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	if err := s.deletePending(ctx, requesterID, userID); err != nil {
		return err
	}
	metrics.IncFollowTransition("rejected")

	return nil
}

// CancelFollowRequest withdraws the pending request followerID sent to
// followingID.
func (s *FollowService) CancelFollowRequest(ctx context.Context, followerID, followingID uuid.UUID) error {
	if err := s.deletePending(ctx, followerID, followingID); err != nil {
		return err
	}
	metrics.IncFollowTransition("cancelled")

	return nil
}

// RemoveFollowing makes followerID stop following followingID. Removing an
// edge that does not exist is a no-op.
func (s *FollowService) RemoveFollowing(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.removeEdge(ctx, followerID, followingID)
}

// RemoveFollower makes followerID stop following userID.
func (s *FollowService) RemoveFollower(ctx context.Context, userID, followerID uuid.UUID) error {
	return s.removeEdge(ctx, followerID, userID)
}

func (s *FollowService) Relationship(ctx context.Context, followerID, followingID uuid.UUID) (domain.Relationship, error) {
	f, err := s.repo.Find(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return domain.RelationshipNone, nil
		}

		return "", fmt.Errorf("s.repo.Find -> %w", err)
	}

	if f.Status == domain.FollowPending {
		return domain.RelationshipPending, nil
	}

	return domain.RelationshipFollowing, nil
}

func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	ids, err := s.repo.FindFollowerIDs(ctx, userID, domain.FollowAccepted, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFollowerIDs -> %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

func (s *FollowService) Following(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	ids, err := s.repo.FindFollowingIDs(ctx, userID, domain.FollowAccepted, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFollowingIDs -> %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

// PendingRequests lists the users waiting for userID to accept them.
func (s *FollowService) PendingRequests(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	ids, err := s.repo.FindFollowerIDs(ctx, userID, domain.FollowPending, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFollowerIDs -> %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

// SentRequests lists the users userID is waiting on.
func (s *FollowService) SentRequests(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	ids, err := s.repo.FindFollowingIDs(ctx, userID, domain.FollowPending, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFollowingIDs -> %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

// MutualFollowers returns the users that both follow and are followed by
// userID.
func (s *FollowService) MutualFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.repo.FindMutualIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMutualIDs -> %w", err)
	}

	return ids, nil
}

func (s *FollowService) Counts(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	followers, following, err := s.repo.Count(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("s.repo.Count -> %w", err)
	}

	return followers, following, nil
}

func (s *FollowService) deletePending(ctx context.Context, followerID, followingID uuid.UUID) error {
	if err := s.repo.Delete(ctx, followerID, followingID, domain.FollowPending); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return ErrFollowRequestNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *FollowService) removeEdge(ctx context.Context, followerID, followingID uuid.UUID) error {
	if err := s.repo.Delete(ctx, followerID, followingID, domain.FollowAccepted); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return nil
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	metrics.IncFollowTransition("unfollowed")

	if err := s.ledger.RemovePoints(ctx, followingID, domain.CriteriaFollowers, 1); err != nil {
		return fmt.Errorf("s.ledger.RemovePoints -> %w", err)
	}

	return nil
}

func (s *FollowService) findUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return user, nil
}

// usersByIDs loads the users keeping the order of ids.
func (s *FollowService) usersByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	found, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByIDs -> %w", err)
	}

	byID := make(map[uuid.UUID]domain.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}

	return users, nil
}
