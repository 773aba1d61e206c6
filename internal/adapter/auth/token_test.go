package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenMatches(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"bare token", "secret", true},
		{"bearer token", "Bearer secret", true},
		{"surrounding spaces", "Bearer  secret ", true},
		{"wrong token", "Bearer other", false},
		{"prefix of token", "secr", false},
		{"empty header", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenMatches(tt.header, "secret"))
		})
	}
}

func TestEnabled(t *testing.T) {
	assert.True(t, Enabled("secret"))
	assert.False(t, Enabled(""))
}
