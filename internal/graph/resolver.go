// Package graph exposes the API as a GraphQL schema. Field resolvers read through the
// request's loaders so nested fields cost one query per field kind, not one per row.
package graph

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/auth"
	"twitterclone/backend/internal/feed"
	"twitterclone/backend/internal/loader"
	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/service"
	"twitterclone/backend/internal/store"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

const (
	trendingWindow   = 7 * 24 * time.Hour
	trendingLimit    = 10
	suggestionsLimit = 2
	timestampLayout  = time.RFC3339Nano
)

// Resolver is the root of the schema.
type Resolver struct {
	store  *store.Store
	feed   *feed.Engine
	tweets *service.TweetService
	social *service.SocialService
	auth   *service.AuthService
}

func NewResolver(s *store.Store, engine *feed.Engine, tweets *service.TweetService, social *service.SocialService, authSvc *service.AuthService) *Resolver {
	return &Resolver{store: s, feed: engine, tweets: tweets, social: social, auth: authSvc}
}

// NewSchema parses the schema and binds it to r.
func NewSchema(r *Resolver, maxParallelism int) (*graphql.Schema, error) {
	opts := []graphql.SchemaOpt{}
	if maxParallelism > 0 {
		opts = append(opts, graphql.MaxParallelism(maxParallelism))
	}
	return graphql.ParseSchema(schemaSDL, r, opts...)
}

// public returns err as an *apperr.Error so the executor renders its code. Anything outside
// the taxonomy becomes INTERNAL; the handler logs the cause.
func public(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Internal(err)
}

// viewer returns the authenticated caller and checks the account still exists.
func viewer(ctx context.Context) (uint, error) {
	id, err := auth.RequireUserID(ctx)
	if err != nil {
		return 0, err
	}
	user, err := loader.For(ctx).User(ctx, id)
	if err != nil {
		return 0, public(err)
	}
	if user == nil {
		return 0, apperr.Unauthenticated()
	}
	return id, nil
}

func toID(v int32) uint {
	if v < 0 {
		return 0
	}
	return uint(v)
}

func page(limit, offset *int32) feed.Page {
	var p feed.Page
	if limit != nil {
		p.Limit = int(*limit)
	}
	if offset != nil {
		p.Offset = int(*offset)
	}
	return p
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func entryResolvers(ctx context.Context, res *feed.Result) []*tweetResolver {
	loaders := loader.For(ctx)
	out := make([]*tweetResolver, 0, len(res.Entries))
	for i := range res.Entries {
		entry := res.Entries[i]
		loaders.PrimeTweet(ctx, entry.Tweet)
		out = append(out, &tweetResolver{
			tweet:         &entry.Tweet.Tweet,
			counts:        &entry.Tweet.TweetCounts,
			likeAuthor:    entry.LikeAuthor,
			retweetAuthor: entry.RetweetAuthor,
		})
	}
	return out
}

func listResolvers(tweets []*models.TweetWithCounts) []*tweetResolver {
	out := make([]*tweetResolver, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, &tweetResolver{tweet: &t.Tweet, counts: &t.TweetCounts})
	}
	return out
}

func usersResolvers(users []*models.User) []*userResolver {
	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, &userResolver{user: u})
	}
	return out
}
