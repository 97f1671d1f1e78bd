package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("tune-up-2024")
	require.NoError(t, err)
	assert.NotEqual(t, "tune-up-2024", hash)
	assert.Contains(t, hash, "$2a$")

	assert.True(t, VerifyPassword(hash, "tune-up-2024"))
	assert.False(t, VerifyPassword(hash, "tune-up-2025"))
	assert.False(t, VerifyPassword("not-a-hash", "tune-up-2024"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "Too short", password: "short", wantErr: true},
		{name: "Exactly minimum", password: "12345678"},
		{name: "Multibyte counts runes", password: "ñññññññ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
