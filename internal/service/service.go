package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

// Notifier delivers best-effort messages. Implementations must not block
// the caller on delivery and never report failures.
type Notifier interface {
	Push(userID uuid.UUID, kind, text string)
	Mail(to, subject, html string)
}

// PointsLedger is the part of AchievementService the activity services
// feed.
type PointsLedger interface {
	AddPoints(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) error
	RemovePoints(ctx context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) error
}

type UserRepository interface {
	Upsert(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	Find(ctx context.Context, status domain.EventStatus, page domain.Page) ([]domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error)
	IncrementPresences(ctx context.Context, id uuid.UUID, delta int) error
	CreateVote(ctx context.Context, vote domain.EventVote) (domain.EventVote, error)
	FindVote(ctx context.Context, eventID, userID uuid.UUID) (domain.EventVote, error)
}

const (
	notifyFollowRequest    = "follow_request"
	notifyFollowAccepted   = "follow_accepted"
	notifyCommentReply     = "comment_reply"
	notifyInsigniaUnlocked = "insignia_unlocked"
)

func validatePage(page domain.Page) error {
	if !page.IsValid() {
		return ErrInvalidPage
	}
	return nil
}
