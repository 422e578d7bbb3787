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

const DefaultMaxVisibleInsignias = 7

type InsigniaRepository interface {
	Create(ctx context.Context, insignia domain.Insignia) (domain.Insignia, error)
	FindAll(ctx context.Context) ([]domain.Insignia, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Insignia, error)
	FindReached(ctx context.Context, criteria domain.InsigniaCriteria, score float64) ([]domain.Insignia, error)
	IncrementPoints(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) (float64, error)
	FindPoints(ctx context.Context, userID uuid.UUID) (map[domain.InsigniaCriteria]float64, error)
	Grant(ctx context.Context, userID uuid.UUID, insigniaIDs []uuid.UUID) error
	FindOwned(ctx context.Context, userID uuid.UUID) ([]domain.OwnedInsignia, error)
	SetVisible(ctx context.Context, userID, insigniaID uuid.UUID, visible bool) error
}

// AchievementService owns the points ledger and the insignia catalog.
type AchievementService struct {
	repo       InsigniaRepository
	userRepo   UserRepository
	notifier   Notifier
	maxVisible int
}

func NewAchievementService(repo InsigniaRepository, userRepo UserRepository, notifier Notifier, maxVisible int) *AchievementService {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisibleInsignias
	}

	return &AchievementService{
		repo:       repo,
		userRepo:   userRepo,
		notifier:   notifier,
		maxVisible: maxVisible,
	}
}

// AddPoints increments the user's score for criteria and then grants every
// insignia the new score reaches.
func (s *AchievementService) AddPoints(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) error {
	if err := validatePoints(criteria, delta); err != nil {
		return err
	}

	score, err := s.repo.IncrementPoints(ctx, userID, criteria, delta)
	if err != nil {
		return fmt.Errorf("s.repo.IncrementPoints -> %w", err)
	}
	metrics.ObservePoints(string(criteria), delta)

	if _, err := s.EvaluateAndUnlock(ctx, userID, criteria, score); err != nil {
		return fmt.Errorf("s.EvaluateAndUnlock -> %w", err)
	}

	return nil
}

// RemovePoints decrements the score. The score may go below zero and
// insignias already granted are kept.
func (s *AchievementService) RemovePoints(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) error {
	if err := validatePoints(criteria, delta); err != nil {
		return err
	}

	if _, err := s.repo.IncrementPoints(ctx, userID, criteria, -delta); err != nil {
		return fmt.Errorf("s.repo.IncrementPoints -> %w", err)
	}
	metrics.ObservePoints(string(criteria), -delta)

	return nil
}

func (s *AchievementService) GetUserPoints(ctx context.Context, userID uuid.UUID) (domain.InsigniaPoints, error) {
	stored, err := s.repo.FindPoints(ctx, userID)
	if err != nil {
		return domain.InsigniaPoints{}, fmt.Errorf("s.repo.FindPoints -> %w", err)
	}

	points := make(map[domain.InsigniaCriteria]float64, len(domain.AllCriteria))
	for _, c := range domain.AllCriteria {
		points[c] = stored[c]
	}

	return domain.InsigniaPoints{UserID: userID, Points: points}, nil
}

// EvaluateAndUnlock grants the insignias of criteria whose quantity is at
// most score and returns the ones the user did not own before.
func (s *AchievementService) EvaluateAndUnlock(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, score float64) ([]domain.Insignia, error) {
	reached, err := s.repo.FindReached(ctx, criteria, score)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindReached -> %w", err)
	}
	if len(reached) == 0 {
		return nil, nil
	}

	owned, err := s.repo.FindOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOwned -> %w", err)
	}
	ownedIDs := make(map[uuid.UUID]struct{}, len(owned))
	for _, o := range owned {
		ownedIDs[o.ID] = struct{}{}
	}

	var unlocked []domain.Insignia
	var ids []uuid.UUID
	for _, insignia := range reached {
		if _, ok := ownedIDs[insignia.ID]; ok {
			continue
		}
		unlocked = append(unlocked, insignia)
		ids = append(ids, insignia.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := s.repo.Grant(ctx, userID, ids); err != nil {
		return nil, fmt.Errorf("s.repo.Grant -> %w", err)
	}

	metrics.InsigniasUnlocked.Add(float64(len(unlocked)))
	for _, insignia := range unlocked {
		s.notifier.Push(userID, notifyInsigniaUnlocked, fmt.Sprintf("You unlocked the insignia %s", insignia.Name))
	}

	return unlocked, nil
}

func (s *AchievementService) AddVisibleInsignia(ctx context.Context, userID, insigniaID uuid.UUID) error {
	owned, err := s.repo.FindOwned(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindOwned -> %w", err)
	}

	target, ok := findOwned(owned, insigniaID)
	if !ok {
		return ErrNotOwned
	}
	if target.Visible {
		return nil
	}

	visible := 0
	for _, o := range owned {
		if o.Visible {
			visible++
		}
	}
	if visible >= s.maxVisible {
		return ErrVisibleLimitReached
	}

	if err := s.repo.SetVisible(ctx, userID, insigniaID, true); err != nil {
		if errors.Is(err, repository.ErrNotOwned) {
			return ErrNotOwned
		}

		return fmt.Errorf("s.repo.SetVisible -> %w", err)
	}

	return nil
}

func (s *AchievementService) RemoveVisibleInsignia(ctx context.Context, userID, insigniaID uuid.UUID) error {
	owned, err := s.repo.FindOwned(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindOwned -> %w", err)
	}

	target, ok := findOwned(owned, insigniaID)
	if !ok || !target.Visible {
		return ErrInsigniaNotVisible
	}

	if err := s.repo.SetVisible(ctx, userID, insigniaID, false); err != nil {
		if errors.Is(err, repository.ErrNotOwned) {
			return ErrInsigniaNotVisible
		}

		return fmt.Errorf("s.repo.SetVisible -> %w", err)
	}

	return nil
}

// RegisterInsignia adds a definition to the catalog. Only admins may do it.
func (s *AchievementService) RegisterInsignia(ctx context.Context, actorID uuid.UUID, insignia domain.Insignia) (domain.Insignia, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Insignia{}, ErrUserNotFound
		}

		return domain.Insignia{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !actor.IsAdmin() {
		return domain.Insignia{}, ErrAdminOnly
	}

	if err := validatePoints(insignia.Criteria, insignia.Quantity); err != nil {
		return domain.Insignia{}, err
	}

	created, err := s.repo.Create(ctx, insignia)
	if err != nil {
		if errors.Is(err, repository.ErrInsigniaExists) {
			return domain.Insignia{}, ErrInsigniaAlreadyExists
		}

		return domain.Insignia{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AchievementService) GetAllInsignias(ctx context.Context) ([]domain.Insignia, error) {
	insignias, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return insignias, nil
}

func (s *AchievementService) GetInsignia(ctx context.Context, id uuid.UUID) (domain.Insignia, error) {
	insignia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInsigniaNotFound) {
			return domain.Insignia{}, ErrInsigniaNotFound
		}

		return domain.Insignia{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return insignia, nil
}

func (s *AchievementService) GetUserInsignias(ctx context.Context, userID uuid.UUID) ([]domain.OwnedInsignia, error) {
	owned, err := s.repo.FindOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOwned -> %w", err)
	}

	return owned, nil
}

func (s *AchievementService) GetVisibleInsignias(ctx context.Context, userID uuid.UUID) ([]domain.Insignia, error) {
	owned, err := s.repo.FindOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOwned -> %w", err)
	}

	visible := []domain.Insignia{}
	for _, o := range owned {
		if o.Visible {
			visible = append(visible, o.Insignia)
		}
	}

	return visible, nil
}

func validatePoints(criteria domain.InsigniaCriteria, delta float64) error {
	if !criteria.IsValid() {
		return ErrUnknownCriteria
	}
	if delta <= 0 {
		return ErrInvalidPoints
	}
	return nil
}

func findOwned(owned []domain.OwnedInsignia, insigniaID uuid.UUID) (domain.OwnedInsignia, bool) {
	for _, o := range owned {
		if o.ID == insigniaID {
			return o, true
		}
	}
	return domain.OwnedInsignia{}, false
}
