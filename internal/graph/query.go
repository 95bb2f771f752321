package graph

import (
	"context"
	"time"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/feed"
	"twitterclone/backend/internal/loader"
)

func (r *Resolver) Feed(ctx context.Context, args struct {
	Limit  *int32
	Offset *int32
}) ([]*tweetResolver, error) {
	userID, err := viewer(ctx)
	if err != nil {
		return nil, err
	}

	following, err := loader.For(ctx).FollowingIDs(ctx, userID)
	if err != nil {
		return nil, public(err)
	}

	res, err := r.feed.Home(ctx, userID, following, page(args.Limit, args.Offset))
	if err != nil {
		return nil, public(err)
	}
	return entryResolvers(ctx, res), nil
}

func (r *Resolver) Tweets(ctx context.Context, args struct {
	UserID int32
	Limit  *int32
	Offset *int32
	Filter *string
}) ([]*tweetResolver, error) {
	var filter feed.Filter
	if args.Filter != nil {
		filter = feed.Filter(*args.Filter)
	}

	res, err := r.feed.Profile(ctx, toID(args.UserID), filter, page(args.Limit, args.Offset))
	if err != nil {
		return nil, public(err)
	}
	return entryResolvers(ctx, res), nil
}

func (r *Resolver) Tweet(ctx context.Context, args struct{ ID int32 }) (*tweetResolver, error) {
	t, err := loader.For(ctx).Tweet(ctx, toID(args.ID))
	if err != nil {
		return nil, public(err)
	}
	if t == nil {
		return nil, apperr.NotFound("Tweet")
	}
	return &tweetResolver{tweet: &t.Tweet}, nil
}

func (r *Resolver) Comments(ctx context.Context, args struct{ ParentID int32 }) ([]*tweetResolver, error) {
	comments, err := r.store.CommentsWithCounts(ctx, toID(args.ParentID))
	if err != nil {
		return nil, public(err)
	}
	return listResolvers(comments), nil
}

func (r *Resolver) User(ctx context.Context, args struct{ Username string }) (*userResolver, error) {
	user, err := r.store.UserByUsername(ctx, args.Username)
	if err != nil {
		return nil, public(err)
	}
	return &userResolver{user: user}, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	userID, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	user, err := loader.For(ctx).User(ctx, userID)
	if err != nil {
		return nil, public(err)
	}
	return &userResolver{user: user}, nil
}

func (r *Resolver) TrendingHashtags(ctx context.Context) ([]*hashtagResolver, error) {
	trends, err := r.store.TrendingHashtags(ctx, time.Now().Add(-trendingWindow), trendingLimit)
	if err != nil {
		return nil, public(err)
	}

	out := make([]*hashtagResolver, 0, len(trends))
	for _, h := range trends {
		out = append(out, &hashtagResolver{h: h})
	}
	return out, nil
}

func (r *Resolver) FollowersSuggestions(ctx context.Context) ([]*userResolver, error) {
	userID, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	users, err := r.store.FollowersSuggestions(ctx, userID, suggestionsLimit)
	if err != nil {
		return nil, public(err)
	}
	return usersResolvers(users), nil
}
