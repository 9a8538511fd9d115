package requests

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	require.NoError(t, RegisterValidators())

	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{name: "register ok", value: RegisterRequest{Email: "a@b.co", Password: "pw"}, valid: true},
		{name: "register bad email", value: RegisterRequest{Email: "nope", Password: "pw"}},
		{name: "register blank password", value: RegisterRequest{Email: "a@b.co", Password: "  "}},
		{name: "batch ok", value: BatchDeleteRequest{ReportNo: []string{"12J000000001"}}, valid: true},
		{name: "batch empty", value: BatchDeleteRequest{ReportNo: []string{}}},
		{name: "batch blank item", value: BatchDeleteRequest{ReportNo: []string{"12J000000001", " "}}},
		{name: "list ok", value: ListReportsQuery{Page: 1, Size: 100}, valid: true},
		{name: "list oversize", value: ListReportsQuery{Page: 1, Size: 101}},
		{name: "list page zero", value: ListReportsQuery{Page: 0, Size: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
