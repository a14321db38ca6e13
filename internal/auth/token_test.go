package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := NewTokenService("super-secret", time.Hour)

	tok, err := s.Issue("user-123")
	require.NoError(t, err)

	userID, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	t.Parallel()

	s := NewTokenService("super-secret", time.Hour)

	first, err := s.Issue("u1")
	require.NoError(t, err)
	second, err := s.Issue("u1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	s := NewTokenService("secret", -1*time.Second)

	tok, err := s.Issue("u1")
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u3"})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenService("k", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingUserID(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenService("k", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("k", time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_CarriesUserIDClaim(t *testing.T) {
	t.Parallel()

	s := NewTokenService("super-secret", time.Hour)

	tok, err := s.Issue("user-123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.NotContains(t, claims, "_id")
}
