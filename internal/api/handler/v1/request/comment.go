package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateCommentRequest struct {
	Text     string `json:"text"`
	ParentID string `json:"parent_id,omitempty"`
}

func (req *CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Text, validation.Required, validation.Length(1, 1000)),
		validation.Field(&req.ParentID, is.UUID),
	)
}
