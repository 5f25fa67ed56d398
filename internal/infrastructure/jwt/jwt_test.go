package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")

	tok, err := s.GenerateJWT("u-123", "alice", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	require.NotNil(t, claims)

	assert.Equal(t, "u-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateToken_Table(t *testing.T) {
	makeToken := func(secret string, exp time.Duration) string {
		tok, err := New(secret).GenerateJWT("user-42", "bob", "user", exp)
		require.NoError(t, err)
		return tok
	}
	foreign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return tok
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		secret  string
		token   string
		wantErr error
	}{
		{
			name:   "valid token",
			secret: "k1",
			token:  makeToken("k1", 5*time.Minute),
		},
		{
			name:    "signature mismatch",
			secret:  "k2",
			token:   makeToken("k1", 5*time.Minute),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired token",
			secret:  "k1",
			token:   makeToken("k1", -1*time.Minute),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token string",
			secret:  "k1",
			token:   "not-a-jwt",
			wantErr: ErrInvalidToken,
		},
		{
			name:   "foreign issuer",
			secret: "k1",
			token: foreign(Claims{UserID: "x", RegisteredClaims: jwt.RegisteredClaims{
				Issuer: "someone-else", ExpiresAt: future,
			}}, jwt.SigningMethodHS256, []byte("k1")),
			wantErr: ErrInvalidToken,
		},
		{
			name:   "unsigned token",
			secret: "k1",
			token: foreign(Claims{UserID: "x", RegisteredClaims: jwt.RegisteredClaims{
				Issuer: issuer, ExpiresAt: future,
			}}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
			wantErr: ErrInvalidToken,
		},
		{
			name:   "missing user id",
			secret: "k1",
			token: foreign(Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer: issuer, ExpiresAt: future,
			}}, jwt.SigningMethodHS256, []byte("k1")),
			wantErr: ErrInvalidClaims,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			claims, err := New(tt.secret).ValidateToken(tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-42", claims.UserID)
			assert.Equal(t, "bob", claims.Username)
			assert.Equal(t, "user", claims.Role)
		})
	}
}
