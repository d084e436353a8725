package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJwt() *Jwt {
	return NewJwt(Config{
		TokenExpire:        time.Second * 600,
		RefreshTokenExpire: time.Second * 6000,
		Key:                "afweaf",
	})
}

func TestJwt(t *testing.T) {
	j := newJwt()
	s, ts, err := j.CreateToken(TokenPayload{
		UserId:   23,
		Username: "fwafwef",
	})
	require.NoError(t, err)
	assert.Greater(t, ts, time.Now().Unix())

	tp, err := j.ValidateToken(s)
	require.NoError(t, err)
	assert.Equal(t, "fwafwef", tp.Username)
	assert.Equal(t, int64(23), tp.UserId)
}

func TestJwtWrongKey(t *testing.T) {
	s, _, err := newJwt().CreateToken(TokenPayload{Username: "a"})
	require.NoError(t, err)

	_, err = NewJwt(Config{Key: "other", TokenExpire: time.Minute}).ValidateToken(s)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	assert.True(t, Error.Has(err))
}

func TestJwtExpired(t *testing.T) {
	j := NewJwt(Config{Key: "k", TokenExpire: -time.Minute})
	s, _, err := j.CreateToken(TokenPayload{Username: "a"})
	require.NoError(t, err)
	_, err = j.ValidateToken(s)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJwtRefresh(t *testing.T) {
	j := newJwt()
	refresh, _, err := j.CreateRefreshToken(TokenPayload{UserId: 1, Username: "a"})
	require.NoError(t, err)

	_, err = j.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrRefreshToken)

	access, _, err := j.RefreshToken(refresh)
	require.NoError(t, err)
	tp, err := j.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "a", tp.Username)

	_, _, err = j.RefreshToken(access)
	assert.ErrorIs(t, err, ErrRefreshToken)
}
