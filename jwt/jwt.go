// Package jwt 通讯录 http 接口使用的 HS256 令牌
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/errs"
)

// Error jwt 错误类
var Error = errs.Class("jwt")

// ErrRefreshToken 刷新令牌不能用于访问接口，反之亦然
var ErrRefreshToken = errors.New("token type mismatch")

type Config struct {
	Key                string        `help:"签名密钥,为空时http接口不校验令牌" default:""`
	TokenExpire        time.Duration `help:"访问令牌有效期" default:"2h"`
	RefreshTokenExpire time.Duration `help:"刷新令牌有效期" default:"168h"`
}

// TokenPayload 令牌中携带的用户信息
type TokenPayload struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
}

type claims struct {
	TokenPayload
	Refresh bool `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

type Jwt struct {
	config Config
	key    []byte
}

func NewJwt(conf Config) *Jwt {
	return &Jwt{
		config: conf,
		key:    []byte(conf.Key),
	}
}

// CreateToken 签发访问令牌，返回令牌和过期时间戳
func (j *Jwt) CreateToken(payload TokenPayload) (string, int64, error) {
	return j.create(payload, false, j.config.TokenExpire)
}

// CreateRefreshToken 签发刷新令牌
func (j *Jwt) CreateRefreshToken(payload TokenPayload) (string, int64, error) {
	return j.create(payload, true, j.config.RefreshTokenExpire)
}

// ValidateToken 校验访问令牌
func (j *Jwt) ValidateToken(token string) (*TokenPayload, error) {
	return j.validate(token, false)
}

// RefreshToken 用刷新令牌换一个新的访问令牌
func (j *Jwt) RefreshToken(refreshToken string) (string, int64, error) {
	payload, err := j.validate(refreshToken, true)
	if err != nil {
		return "", 0, err
	}
	return j.CreateToken(*payload)
}

func (j *Jwt) create(payload TokenPayload, refresh bool, expire time.Duration) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(expire)
	c := claims{
		TokenPayload: payload,
		Refresh:      refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.key)
	if err != nil {
		return "", 0, Error.Wrap(err)
	}
	return s, expiresAt.Unix(), nil
}

func (j *Jwt) validate(token string, refresh bool) (*TokenPayload, error) {
	c := &claims{}
	t, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if !t.Valid {
		return nil, Error.New("invalid token")
	}
	if c.Refresh != refresh {
		return nil, Error.Wrap(fmt.Errorf("%w: refresh=%t", ErrRefreshToken, c.Refresh))
	}
	return &c.TokenPayload, nil
}
