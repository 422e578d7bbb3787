package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpsertProfileRequest struct {
	Nick         string `json:"nick"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	ImageProfile string `json:"image_profile"`

	// Public falls back to the account flag from the token when omitted.
	Public *bool `json:"public"`
}

func (req *UpsertProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nick, validation.Required, matches(nickExp, errInvalidNick)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Name, validation.Length(0, 80)),
		validation.Field(&req.Bio, validation.Length(0, 300)),
		validation.Field(&req.ImageProfile, is.URL),
	)
}
