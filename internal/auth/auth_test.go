package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serveWithHeader(t *testing.T, header string) Viewer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got Viewer
	router := gin.New()
	router.Use(OptionalAuthMiddleware("secret"))
	router.GET("/", func(c *gin.Context) {
		got = ViewerFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestOptionalAuthMiddleware(t *testing.T) {
	token, err := jwt.GenerateToken(7, "secret", time.Hour)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		v := serveWithHeader(t, "Bearer "+token)
		require.Equal(t, uint(7), v.UserID)
		require.NoError(t, v.TokenErr)
	})

	t.Run("anonymous", func(t *testing.T) {
		v := serveWithHeader(t, "")
		require.Zero(t, v.UserID)
		require.NoError(t, v.TokenErr)
	})

	t.Run("invalid token", func(t *testing.T) {
		v := serveWithHeader(t, "Bearer garbage")
		require.Zero(t, v.UserID)
		require.Error(t, v.TokenErr)
	})

	t.Run("malformed header", func(t *testing.T) {
		v := serveWithHeader(t, "Token "+token)
		require.ErrorIs(t, v.TokenErr, errMalformedHeader)
	})
}

func TestRequireUserID(t *testing.T) {
	_, err := RequireUserID(context.Background())
	require.True(t, apperr.Is(err, apperr.KindUnauthenticated))

	ctx := WithViewer(context.Background(), Viewer{TokenErr: jwt.ErrInvalidToken})
	_, err = RequireUserID(ctx)
	require.True(t, apperr.Is(err, apperr.KindInvalidToken))

	ctx = WithViewer(context.Background(), Viewer{UserID: 3})
	id, err := RequireUserID(ctx)
	require.NoError(t, err)
	require.Equal(t, uint(3), id)
	require.Equal(t, uint(3), UserID(ctx))
}
