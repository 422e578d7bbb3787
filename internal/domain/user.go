package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AccountTypeUser  = "user"
	AccountTypeAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Nick         string    `json:"nick"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	ImageProfile string    `json:"image_profile"`
	AccountType  string    `json:"account_type"`
	Public       bool      `json:"public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.AccountType == AccountTypeAdmin
}

// UserProfile is the public view of a user with counts derived from the
// follow graph and presence records.
type UserProfile struct {
	User
	Followers        int64      `json:"followers"`
	Following        int64      `json:"following"`
	Presences        int64      `json:"presences"`
	VisibleInsignias []Insignia `json:"visible_insignias"`
}
