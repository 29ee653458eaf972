package apperror_test

import (
	"testing"

	"go-directory/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type namedRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=10"`
	Title *string `json:"title" validate:"omitempty,notblank"`
}

func TestValidateStruct_NotBlank(t *testing.T) {
	blank := "  \t"
	set := "Lead"

	tests := []struct {
		name    string
		req     namedRequest
		field   string
		wantErr bool
	}{
		{"valid", namedRequest{Name: "Acme", Title: &set}, "", false},
		{"absent optional", namedRequest{Name: "Acme"}, "", false},
		{"whitespace required", namedRequest{Name: "   "}, "name", true},
		{"whitespace optional", namedRequest{Name: "Acme", Title: &blank}, "title", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperror.ValidateStruct(tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
			details := apperror.ToHTTP(err).Details.(map[string]string)
			assert.Equal(t, "required", details[tt.field])
		})
	}
}
