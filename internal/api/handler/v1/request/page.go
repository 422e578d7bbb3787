package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

type PageQuery struct {
	PageNumber int `form:"page_number"`
	PageSize   int `form:"page_size"`
}

func (q *PageQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.PageNumber, validation.Min(0)),
		validation.Field(&q.PageSize, validation.Min(0), validation.Max(domain.MaxPageSize)),
	)
}

// Page fills in the defaults for missing values.
func (q *PageQuery) Page() domain.Page {
	page := domain.Page{Number: q.PageNumber, Size: q.PageSize}
	if page.Number == 0 {
		page.Number = 1
	}
	if page.Size == 0 {
		page.Size = domain.DefaultPageSize
	}
	return page
}
