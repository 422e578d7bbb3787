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

type CommentRepository interface {
	Create(ctx context.Context, c domain.Comment) (domain.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementAnswers(ctx context.Context, id uuid.UUID, delta int) error
	AddUp(ctx context.Context, commentID, userID uuid.UUID) error
	RemoveUp(ctx context.Context, commentID, userID uuid.UUID) error
	FindByEvent(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Comment, error)
	FindReplies(ctx context.Context, parentID uuid.UUID, page domain.Page) ([]domain.Comment, error)
}

// CommentService manages event comments. Threads are at most two levels
// deep: a root comment and its replies.
type CommentService struct {
	repo      CommentRepository
	eventRepo EventRepository
	userRepo  UserRepository
	ledger    PointsLedger
	notifier  Notifier
}

func NewCommentService(repo CommentRepository, eventRepo EventRepository, userRepo UserRepository, ledger PointsLedger, notifier Notifier) *CommentService {
	return &CommentService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		notifier:  notifier,
	}
}

func (s *CommentService) AddComment(ctx context.Context, userID uuid.UUID, req domain.CreateComment) (domain.Comment, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Comment{}, ErrUserNotFound
		}

		return domain.Comment{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if _, err := s.eventRepo.FindByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Comment{}, ErrEventNotFound
		}

		return domain.Comment{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	var parent domain.Comment
	if req.ParentID != nil {
		parent, err = s.findComment(ctx, *req.ParentID)
		if err != nil {
			return domain.Comment{}, err
		}
		if parent.EventID != req.EventID {
			return domain.Comment{}, ErrCommentNotFound
		}
		if parent.IsReply() {
			return domain.Comment{}, ErrCommentsCannotExceedLevelOneResponses
		}
	}

	created, err := s.repo.Create(ctx, domain.Comment{
		EventID:      req.EventID,
		UserID:       user.ID,
		Nick:         user.Nick,
		ImageProfile: user.ImageProfile,
		Text:         req.Text,
		ParentID:     req.ParentID,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	metrics.CommentsCreated.Inc()

	if created.IsReply() {
		if err := s.repo.IncrementAnswers(ctx, parent.ID, 1); err != nil {
			return domain.Comment{}, fmt.Errorf("s.repo.IncrementAnswers -> %w", err)
		}
		if parent.UserID != user.ID {
			s.notifier.Push(parent.UserID, notifyCommentReply, fmt.Sprintf("%s replied to your comment", user.Nick))
		}
	}

	if err := s.ledger.AddPoints(ctx, user.ID, domain.CriteriaComments, 1); err != nil {
		return domain.Comment{}, fmt.Errorf("s.ledger.AddPoints -> %w", err)
	}

	return created, nil
}

func (s *CommentService) UpComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.HasUp(userID) {
		return ErrUserHasAlreadyUpvoted
	}

	if err := s.repo.AddUp(ctx, commentID, userID); err != nil {
		if errors.Is(err, repository.ErrUpExists) {
			return ErrUserHasAlreadyUpvoted
		}

		return fmt.Errorf("s.repo.AddUp -> %w", err)
	}

	if err := s.ledger.AddPoints(ctx, comment.UserID, domain.CriteriaUpvotesReceived, 1); err != nil {
		return fmt.Errorf("s.ledger.AddPoints -> %w", err)
	}

	return nil
}

func (s *CommentService) DownComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !comment.HasUp(userID) {
		return ErrCannotRemoveUpIfNotMade
	}

	if err := s.repo.RemoveUp(ctx, commentID, userID); err != nil {
		if errors.Is(err, repository.ErrUpNotFound) {
			return ErrCannotRemoveUpIfNotMade
		}

		return fmt.Errorf("s.repo.RemoveUp -> %w", err)
	}

	if err := s.ledger.RemovePoints(ctx, comment.UserID, domain.CriteriaUpvotesReceived, 1); err != nil {
		return fmt.Errorf("s.ledger.RemovePoints -> %w", err)
	}

	return nil
}

// DeleteComment removes only the comment itself. Replies of a deleted root
// comment are kept.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrCommentNotOwned
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if comment.IsReply() {
		err := s.repo.IncrementAnswers(ctx, *comment.ParentID, -1)
		if err != nil && !errors.Is(err, repository.ErrCommentNotFound) {
			return fmt.Errorf("s.repo.IncrementAnswers -> %w", err)
		}
	}

	if err := s.ledger.RemovePoints(ctx, userID, domain.CriteriaComments, 1); err != nil {
		return fmt.Errorf("s.ledger.RemovePoints -> %w", err)
	}

	return nil
}

// GetCommentsFromTheEvent lists every comment of the event, replies
// included, newest first.
func (s *CommentService) GetCommentsFromTheEvent(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Comment, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	comments, err := s.repo.FindByEvent(ctx, eventID, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return comments, nil
}

func (s *CommentService) GetReplies(ctx context.Context, commentID uuid.UUID, page domain.Page) ([]domain.Comment, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	if _, err := s.findComment(ctx, commentID); err != nil {
		return nil, err
	}

	replies, err := s.repo.FindReplies(ctx, commentID, page)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindReplies -> %w", err)
	}

	return replies, nil
}

func (s *CommentService) findComment(ctx context.Context, id uuid.UUID) (domain.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domain.Comment{}, ErrCommentNotFound
		}

		return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return comment, nil
}
