package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventScheduled, EventOngoing, EventCompleted:
		return true
	}
	return false
}

type Event struct {
	ID             uuid.UUID   `json:"id"`
	CreatorID      uuid.UUID   `json:"creator_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Address        string      `json:"address"`
	Status         EventStatus `json:"status"`
	PresencesCount int         `json:"presences_count"`
	Votes          []EventVote `json:"votes"`
	AverageScore   float64     `json:"average_score"`
	OccursAt       time.Time   `json:"occurs_at"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// EventPatch holds the attributes a creator may edit. Nil fields are left
// untouched.
type EventPatch struct {
	Name        *string
	Description *string
	Address     *string
	OccursAt    *time.Time
	Status      *EventStatus
}

type EventVote struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// AverageScore is the arithmetic mean of the vote ratings, zero when there
// are no votes.
func AverageScore(votes []EventVote) float64 {
	if len(votes) == 0 {
		return 0
	}
	sum := 0
	for _, v := range votes {
		sum += v.Rating
	}
	return float64(sum) / float64(len(votes))
}
