package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerQuery(t *testing.T) {
	s := NewSanitizer("report-api")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "plain", raw: "q=12J&page=2", want: "q=12J&page=2"},
		{name: "token", raw: "token=eyJhbGciOi.abc.def", want: "token=[REDACTED]"},
		{name: "mixed case key", raw: "page=1&Password=hunter2", want: "page=1&Password=[REDACTED]"},
		{name: "flag without value", raw: "token", want: "token=[REDACTED]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Query(tt.raw))
		})
	}
}

func TestSanitizerHashesEmails(t *testing.T) {
	s := NewSanitizer("report-api")

	got := s.Query("q=user%40example.com&size=5")
	assert.True(t, strings.HasPrefix(got, "q=[EMAIL:"))
	assert.True(t, strings.HasSuffix(got, "]&size=5"))
	assert.NotContains(t, got, "example.com")

	assert.Equal(t, s.Email("User@Example.com"), s.Email("user@example.com"))
	assert.NotEqual(t, s.Email("a@example.com"), s.Email("b@example.com"))
	assert.NotEqual(t, s.Email("a@example.com"), NewSanitizer("other").Email("a@example.com"))
	assert.Equal(t, "no address here", s.Email("no address here"))
}
