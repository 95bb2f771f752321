package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"twitterclone/backend/internal/apperr"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
)

// GraphQLRequest is the body of a GraphQL call.
type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required" example:"{ me { id username } }"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// GraphQL godoc
// @Summary      Execute a GraphQL operation
// @Description  Runs a query or mutation against the schema. Errors carry extensions.code.
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GraphQLRequest true "GraphQL request"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /graphql [post]
func GraphQL(schema *graphql.Schema, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GraphQLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		resp := schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)

		for _, qe := range resp.Errors {
			if qe.ResolverError == nil || !apperr.Is(qe.ResolverError, apperr.KindInternal) {
				continue
			}
			log.Error("resolver failed",
				"request_id", RequestIDFrom(c),
				"path", qe.Path,
				"error", errors.Unwrap(qe.ResolverError),
			)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// Ping godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "pong"}"
// @Router       /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
