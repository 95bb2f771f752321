package auth

import (
	"errors"
	"strings"

	"twitterclone/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

var errMalformedHeader = errors.New("malformed authorization header")

// OptionalAuthMiddleware inspects for a token and records the viewer in the request context,
// but does not fail if the token is missing or invalid. Resolvers that need a user decide
// what to do with an invalid token through RequireUserID.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var viewer Viewer

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				userID, err := jwt.ParseToken(parts[1], secret)
				if err != nil {
					viewer.TokenErr = err
				} else {
					viewer.UserID = userID
				}
			} else {
				viewer.TokenErr = errMalformedHeader
			}
		}

		c.Request = c.Request.WithContext(WithViewer(c.Request.Context(), viewer))
		c.Next()
	}
}
