package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/movielog/movielog/pkg/helpers"
	"github.com/movielog/movielog/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token cookie and ensures an active session
// exists in Redis. It sets userID, userName and userEmail in the Gin
// context on success. Unauthenticated requests get a 401 whose meta carries
// the path they were after, so a client can log in and come back (the
// "next" redirect target).
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			abortToLogin(c, "please log in")
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			abortToLogin(c, "session expired, please log in again")
			return
		}

		// The session hash is the source of truth; a token with a stale
		// session id is rejected.
		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			abortToLogin(c, "session expired, please log in again")
			return
		}

		c.Set(CtxUserIDKey, data["user_id"])
		c.Set("userName", data["username"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}

func abortToLogin(c *gin.Context, msg string) {
	next := c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		next += "?" + q
	}
	loginURL := "/login?next=" + url.QueryEscape(next)
	c.Header("Location", loginURL)
	response.AbortError[any](c, http.StatusUnauthorized, msg, nil, gin.H{"redirect": loginURL})
}
