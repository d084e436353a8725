package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opdss/addressbook/jwt"
)

// PayloadKey 校验通过后令牌信息在 gin.Context 中的键
const PayloadKey = "jwt_payload"

var errMissingToken = errors.New("missing bearer token")

// Auth 校验 Authorization: Bearer <token>
func Auth(j *jwt.Jwt) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			abort(c, http.StatusUnauthorized, errMissingToken)
			return
		}
		payload, err := j.ValidateToken(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, err)
			return
		}
		c.Set(PayloadKey, payload)
		c.Next()
	}
}
