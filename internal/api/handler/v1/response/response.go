package response

import (
	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

type Message struct {
	Message string `json:"message"`
}

type RelationshipResponse struct {
	UserID       string              `json:"user_id"`
	Relationship domain.Relationship `json:"relationship"`
}

type Page[T any] struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	Items      []T `json:"items"`
}

func NewPage[T any](page domain.Page, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		PageNumber: page.Number,
		PageSize:   page.Size,
		Items:      items,
	}
}
