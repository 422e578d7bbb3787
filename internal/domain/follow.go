package domain

import (
	"time"

	"github.com/google/uuid"
)

type FollowStatus string

const (
	FollowPending  FollowStatus = "pending"
	FollowAccepted FollowStatus = "accepted"
)

// Follow is one directed edge of the follow graph. A pending edge is a
// follow request from FollowerID to FollowingID.
type Follow struct {
	FollowerID  uuid.UUID    `json:"follower_id"`
	FollowingID uuid.UUID    `json:"following_id"`
	Status      FollowStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Relationship string

const (
	RelationshipNone      Relationship = "none"
	RelationshipPending   Relationship = "pending"
	RelationshipFollowing Relationship = "following"
)
