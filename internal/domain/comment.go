package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment on an event. A comment with a ParentID is a reply; replies of
// replies are not allowed.
type Comment struct {
	ID           uuid.UUID   `json:"id"`
	EventID      uuid.UUID   `json:"event_id"`
	UserID       uuid.UUID   `json:"user_id"`
	Nick         string      `json:"nick"`
	ImageProfile string      `json:"image_profile"`
	Text         string      `json:"text"`
	ParentID     *uuid.UUID  `json:"parent_id,omitempty"`
	Ups          []uuid.UUID `json:"ups"`
	AnswersCount int         `json:"answers_count"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (c Comment) IsReply() bool {
	return c.ParentID != nil
}

func (c Comment) HasUp(userID uuid.UUID) bool {
	for _, id := range c.Ups {
		if id == userID {
			return true
		}
	}
	return false
}

type CreateComment struct {
	EventID  uuid.UUID
	Text     string
	ParentID *uuid.UUID
}
