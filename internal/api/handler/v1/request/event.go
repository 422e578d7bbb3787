package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var eventStatuses = []interface{}{"scheduled", "ongoing", "completed"}

type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	OccursAt    time.Time `json:"occurs_at"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.OccursAt, validation.Required),
	)
}

// UpdateEventRequest only changes the fields that are present.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Address     *string    `json:"address"`
	OccursAt    *time.Time `json:"occurs_at"`
	Status      *string    `json:"status"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
	)
}

type VoteRequest struct {
	Rating int `json:"rating"`
}

func (req *VoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required),
	)
}

type PresenceStatusRequest struct {
	Status string `json:"status"`
}

func (req *PresenceStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("marked_present", "attended", "did_not_attend")),
	)
}
