package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		username string
		role     string
		userUID  string
		gymUID   string
	}{
		{
			name:     "gym owner",
			username: "owner_user",
			role:     "owner",
			userUID:  "6b9a2c1e-1111-2222-3333-444455556666",
			gymUID:   "9f8e7d6c-1111-2222-3333-444455556666",
		},
		{
			name:     "staff member",
			username: "staff1",
			role:     "staff",
			userUID:  "6b9a2c1e-1111-2222-3333-444455557777",
			gymUID:   "9f8e7d6c-1111-2222-3333-444455556666",
		},
		{
			name:     "super admin without gym",
			username: "root",
			role:     "super_admin",
			userUID:  "6b9a2c1e-1111-2222-3333-444455558888",
			gymUID:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.username, tt.role, tt.userUID, tt.gymUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.gymUID, claims.GymUID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not.a.token"},
		{
			name: "token signed with different key",
			token: func() string {
				other := NewJWTMaker("completely_different_key", 15*time.Minute)
				token, err := other.GenerateToken("user", "owner", "uid", "gym")
				require.NoError(t, err)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", -time.Minute)

	token, err := maker.GenerateToken("user", "owner", "uid", "gym")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.Error(t, err)
	assert.Nil(t, claims)
}
