package domain

import (
	"time"

	"github.com/google/uuid"
)

type PresenceStatus string

const (
	PresenceMarked       PresenceStatus = "marked_present"
	PresenceAttended     PresenceStatus = "attended"
	PresenceDidNotAttend PresenceStatus = "did_not_attend"
)

func (s PresenceStatus) IsValid() bool {
	switch s {
	case PresenceMarked, PresenceAttended, PresenceDidNotAttend:
		return true
	}
	return false
}

// Presence records that a user marked attendance at an event. Nick,
// AccountType and Public are copied from the user when the presence is
// created and are never refreshed afterwards.
type Presence struct {
	ID          uuid.UUID      `json:"id"`
	EventID     uuid.UUID      `json:"event_id"`
	UserID      uuid.UUID      `json:"user_id"`
	Nick        string         `json:"nick"`
	AccountType string         `json:"account_type"`
	Public      bool           `json:"public"`
	Status      PresenceStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}
