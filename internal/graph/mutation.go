package graph

import (
	"context"

	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/service"
	"twitterclone/backend/internal/validation"
)

type registerPayload struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
}

type loginPayload struct {
	Email    string
	Password string
}

type addTweetPayload struct {
	Body       string
	Hashtags   *[]string
	URL        *string
	Media      *string
	ParentID   *int32
	Type       *string
	Visibility *string
}

func (p addTweetPayload) input() validation.AddTweetInput {
	in := validation.AddTweetInput{
		Body:  p.Body,
		URL:   p.URL,
		Media: p.Media,
	}
	if p.Hashtags != nil {
		in.Hashtags = *p.Hashtags
	}
	if p.ParentID != nil {
		id := toID(*p.ParentID)
		in.ParentID = &id
	}
	if p.Type != nil {
		t := models.TweetType(*p.Type)
		in.Type = &t
	}
	if p.Visibility != nil {
		v := models.Visibility(*p.Visibility)
		in.Visibility = &v
	}
	return in
}

func (r *Resolver) Register(ctx context.Context, args struct{ Input registerPayload }) (*authResolver, error) {
	res, err := r.auth.Register(ctx, validation.RegisterInput{
		Username:    args.Input.Username,
		DisplayName: args.Input.DisplayName,
		Email:       args.Input.Email,
		Password:    args.Input.Password,
	})
	if err != nil {
		return nil, public(err)
	}
	return &authResolver{res: res}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct{ Input loginPayload }) (*authResolver, error) {
	res, err := r.auth.Login(ctx, validation.LoginInput{Email: args.Input.Email, Password: args.Input.Password})
	if err != nil {
		return nil, public(err)
	}
	return &authResolver{res: res}, nil
}

func (r *Resolver) AddTweet(ctx context.Context, args struct{ Payload addTweetPayload }) (*tweetResolver, error) {
	userID, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	t, err := r.tweets.AddTweet(ctx, userID, args.Payload.input())
	if err != nil {
		return nil, public(err)
	}
	return &tweetResolver{tweet: &t.Tweet, counts: &t.TweetCounts}, nil
}

func (r *Resolver) DeleteTweet(ctx context.Context, args struct{ ID int32 }) (int32, error) {
	userID, err := viewer(ctx)
	if err != nil {
		return 0, err
	}
	n, err := r.tweets.DeleteTweet(ctx, userID, toID(args.ID))
	if err != nil {
		return 0, public(err)
	}
	return int32(n), nil
}

type tweetIDArgs struct {
	TweetID int32
}

func (r *Resolver) ToggleLike(ctx context.Context, args tweetIDArgs) (string, error) {
	return r.toggle(ctx, "Like", args.TweetID, r.social.ToggleLike)
}

func (r *Resolver) ToggleRetweet(ctx context.Context, args tweetIDArgs) (string, error) {
	return r.toggle(ctx, "Retweet", args.TweetID, r.social.ToggleRetweet)
}

func (r *Resolver) ToggleBookmark(ctx context.Context, args tweetIDArgs) (string, error) {
	return r.toggle(ctx, "Bookmark", args.TweetID, r.social.ToggleBookmark)
}

func (r *Resolver) ToggleFollow(ctx context.Context, args struct{ FollowingID int32 }) (string, error) {
	return r.toggle(ctx, "Follow", args.FollowingID, r.social.ToggleFollow)
}

func (r *Resolver) toggle(ctx context.Context, what string, target int32, fn func(context.Context, uint, uint) (service.ToggleResult, error)) (string, error) {
	userID, err := viewer(ctx)
	if err != nil {
		return "", err
	}
	res, err := fn(ctx, userID, toID(target))
	if err != nil {
		return "", public(err)
	}
	return what + " " + string(res), nil
}

type authResolver struct {
	res *service.AuthResult
}

func (a *authResolver) Token() string { return a.res.Token }

func (a *authResolver) User() *userResolver { return &userResolver{user: a.res.User, self: true} }
