package api

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, c jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseSession(t *testing.T) {
	exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	tok := signed(t, jwt.MapClaims{
		"sub":   "42",
		"name":  "Budi",
		"email": "budi@univ.ac.id",
		"role":  "Pimpinan",
		"exp":   exp.Unix(),
	})

	s, err := ParseSession("Bearer " + tok)

	require.NoError(t, err)
	assert.Equal(t, "42", s.Subject)
	assert.Equal(t, "Budi", s.Name)
	assert.Equal(t, RolePimpinan, s.Role)
	assert.True(t, s.ExpiresAt.Equal(exp))
	assert.False(t, s.Expired(exp.Add(-time.Minute)))
	assert.True(t, s.Expired(exp.Add(time.Minute)))
}

func TestParseSessionDefaultsRole(t *testing.T) {
	s, err := ParseSession(signed(t, jwt.MapClaims{"sub": "1"}))
	require.NoError(t, err)
	assert.Equal(t, RoleUser, s.Role)
	assert.False(t, s.Expired(time.Now()), "no exp claim never expires")
}

func TestParseSessionErrors(t *testing.T) {
	_, err := ParseSession("")
	assert.Error(t, err)
	_, err = ParseSession("not-a-jwt")
	assert.Error(t, err)
}
