package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

func TestUpsertProfileRequest_Nick(t *testing.T) {
	tests := []struct {
		nick  string
		valid bool
	}{
		{"ana", true},
		{"ana.maria_92", true},
		{"a.b.c", true},
		{"an", false},
		{".ana", false},
		{"ana.", false},
		{"ana..maria", false},
		{"ana maria", false},
		{"ana-maria", false},
		{"abcdefghijklmnopqrstuvwxyz12345", false},
	}
	for _, tt := range tests {
		t.Run(tt.nick, func(t *testing.T) {
			req := UpsertProfileRequest{Nick: tt.nick}
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUpsertProfileRequest_Fields(t *testing.T) {
	req := UpsertProfileRequest{Nick: "ana", Email: "not-an-email"}
	assert.Error(t, req.Validate())

	req = UpsertProfileRequest{Nick: "ana", Email: "ana@example.com", ImageProfile: "https://cdn.example.com/a.png"}
	assert.NoError(t, req.Validate())
}

func TestCreateInsigniaRequest_Validate(t *testing.T) {
	valid := CreateInsigniaRequest{Name: "Night Owl", Criteria: "presences", Quantity: 10}
	assert.NoError(t, valid.Validate())

	for _, name := range []string{"X", " padded", "padded ", "bad!name"} {
		req := valid
		req.Name = name
		assert.Error(t, req.Validate(), name)
	}

	req := valid
	req.Quantity = 0
	assert.Error(t, req.Validate())
}

func TestUpdateEventRequest_Validate(t *testing.T) {
	status := "completed"
	assert.NoError(t, (&UpdateEventRequest{Status: &status}).Validate())
	assert.NoError(t, (&UpdateEventRequest{}).Validate())

	bad := "cancelled"
	assert.Error(t, (&UpdateEventRequest{Status: &bad}).Validate())

	empty := ""
	assert.Error(t, (&UpdateEventRequest{Name: &empty}).Validate())
}

func TestCreateCommentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateCommentRequest{Text: "hi"}).Validate())
	assert.NoError(t, (&CreateCommentRequest{Text: "hi", ParentID: "3f1c0a8e-1b7e-4a3d-9d55-0c5a3f4c2b11"}).Validate())
	assert.Error(t, (&CreateCommentRequest{Text: ""}).Validate())
	assert.Error(t, (&CreateCommentRequest{Text: "hi", ParentID: "42"}).Validate())
}

func TestPageQuery(t *testing.T) {
	q := PageQuery{}
	assert.NoError(t, q.Validate())
	assert.Equal(t, domain.Page{Number: 1, Size: domain.DefaultPageSize}, q.Page())

	q = PageQuery{PageNumber: 3, PageSize: 50}
	assert.NoError(t, q.Validate())
	assert.Equal(t, domain.Page{Number: 3, Size: 50}, q.Page())

	assert.Error(t, (&PageQuery{PageSize: 101}).Validate())
	assert.Error(t, (&PageQuery{PageNumber: -1}).Validate())
}
