package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository"
)

type FollowCounter interface {
	Counts(ctx context.Context, userID uuid.UUID) (int64, int64, error)
}

type PresenceCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type VisibleInsigniaLister interface {
	GetVisibleInsignias(ctx context.Context, userID uuid.UUID) ([]domain.Insignia, error)
}

type UserService struct {
	repo      UserRepository
	follows   FollowCounter
	presences PresenceCounter
	insignias VisibleInsigniaLister
}

func NewUserService(repo UserRepository, follows FollowCounter, presences PresenceCounter, insignias VisibleInsigniaLister) *UserService {
	return &UserService{
		repo:      repo,
		follows:   follows,
		presences: presences,
		insignias: insignias,
	}
}

// UpsertProfile stores the profile of the authenticated user. The account
// type of an existing user is never changed here.
func (s *UserService) UpsertProfile(ctx context.Context, userID uuid.UUID, user domain.User) (domain.User, error) {
	user.ID = userID
	user.AccountType = domain.AccountTypeUser

	saved, err := s.repo.Upsert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserNickExists) {
			return domain.User{}, ErrNickAlreadyInUse
		}

		return domain.User{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return saved, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (domain.UserProfile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.UserProfile{}, err
	}

	followers, following, err := s.follows.Counts(ctx, id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("s.follows.Counts -> %w", err)
	}

	presences, err := s.presences.CountByUser(ctx, id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("s.presences.CountByUser -> %w", err)
	}

	visible, err := s.insignias.GetVisibleInsignias(ctx, id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("s.insignias.GetVisibleInsignias -> %w", err)
	}

	// Email is private to the owner.
	user.Email = ""

	return domain.UserProfile{
		User:             user,
		Followers:        followers,
		Following:        following,
		Presences:        presences,
		VisibleInsignias: visible,
	}, nil
}
