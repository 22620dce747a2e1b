package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]string
		want   string
	}{
		{
			name:   "sub preferred",
			claims: map[string]string{"sub": "user-1", "cognito:username": "alice"},
			want:   "user-1",
		},
		{
			name:   "falls back to cognito username",
			claims: map[string]string{"cognito:username": "alice"},
			want:   "alice",
		},
		{
			name:   "empty sub falls back",
			claims: map[string]string{"sub": "", "cognito:username": "alice"},
			want:   "alice",
		},
		{
			name:   "no identity claims",
			claims: map[string]string{"email": "alice@example.com"},
			want:   "",
		},
		{
			name:   "nil claims",
			claims: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IdentityFromClaims(tt.claims))
		})
	}
}
