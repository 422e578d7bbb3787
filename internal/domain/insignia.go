package domain

import (
	"time"

	"github.com/google/uuid"
)

type InsigniaCriteria string

const (
	CriteriaPresences       InsigniaCriteria = "presences"
	CriteriaComments        InsigniaCriteria = "comments"
	CriteriaRatings         InsigniaCriteria = "ratings"
	CriteriaEventsCreated   InsigniaCriteria = "events_created"
	CriteriaFollowers       InsigniaCriteria = "followers"
	CriteriaUpvotesReceived InsigniaCriteria = "upvotes_received"
)

var AllCriteria = []InsigniaCriteria{
	CriteriaPresences,
	CriteriaComments,
	CriteriaRatings,
	CriteriaEventsCreated,
	CriteriaFollowers,
	CriteriaUpvotesReceived,
}

func (c InsigniaCriteria) IsValid() bool {
	for _, known := range AllCriteria {
		if c == known {
			return true
		}
	}
	return false
}

// Insignia is a badge definition. It is unlocked for a user once the user's
// points for Criteria reach Quantity.
type Insignia struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Criteria    InsigniaCriteria `json:"criteria"`
	Quantity    float64          `json:"quantity"`
	CreatedAt   time.Time        `json:"created_at"`
}

type OwnedInsignia struct {
	Insignia
	Visible    bool      `json:"visible"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// InsigniaPoints maps every criteria to the user's accumulated score.
type InsigniaPoints struct {
	UserID uuid.UUID                    `json:"user_id"`
	Points map[InsigniaCriteria]float64 `json:"points"`
}
