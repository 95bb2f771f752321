package handler

import (
	"log/slog"

	"twitterclone/backend/internal/auth"
	"twitterclone/backend/internal/loader"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig carries what the routes need.
type RouterConfig struct {
	Schema        *graphql.Schema
	Source        loader.Source
	LoaderOptions loader.Options
	JWTSecret     string
	Log           *slog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(cfg.Log))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", Ping)

	router.POST("/graphql",
		auth.OptionalAuthMiddleware(cfg.JWTSecret),
		Session(cfg.Source, cfg.LoaderOptions),
		GraphQL(cfg.Schema, cfg.Log),
	)

	return router
}
