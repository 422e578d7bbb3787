package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateInsigniaRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Criteria    string  `json:"criteria"`
	Quantity    float64 `json:"quantity"`
}

func (req *CreateInsigniaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, matches(insigniaNameExp, errInvalidInsigniaName)),
		validation.Field(&req.Description, validation.Length(0, 300)),
		validation.Field(&req.Image, is.URL),
		validation.Field(&req.Criteria, validation.Required),
		validation.Field(&req.Quantity, validation.Required),
	)
}
