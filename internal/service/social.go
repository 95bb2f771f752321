package service

import (
	"context"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/loader"
	"twitterclone/backend/internal/store"
)

// ToggleResult tells whether a toggle created or removed its row.
type ToggleResult string

const (
	Added   ToggleResult = "added"
	Removed ToggleResult = "removed"
)

func toggleResult(added bool) ToggleResult {
	if added {
		return Added
	}
	return Removed
}

type SocialService struct {
	store *store.Store
}

func NewSocialService(s *store.Store) *SocialService {
	return &SocialService{store: s}
}

func (s *SocialService) ToggleLike(ctx context.Context, userID, tweetID uint) (ToggleResult, error) {
	return s.toggle(ctx, store.Likes, userID, tweetID)
}

func (s *SocialService) ToggleRetweet(ctx context.Context, userID, tweetID uint) (ToggleResult, error) {
	return s.toggle(ctx, store.Retweets, userID, tweetID)
}

func (s *SocialService) ToggleBookmark(ctx context.Context, userID, tweetID uint) (ToggleResult, error) {
	return s.toggle(ctx, store.Bookmarks, userID, tweetID)
}

func (s *SocialService) toggle(ctx context.Context, e store.Engagement, userID, tweetID uint) (ToggleResult, error) {
	ok, err := s.store.TweetExists(ctx, tweetID)
	if err != nil {
		return "", apperr.Wrapf(err, "check tweet %d", tweetID)
	}
	if !ok {
		return "", apperr.NotFound("Tweet")
	}

	added, err := s.store.Toggle(ctx, e, userID, tweetID)
	if err != nil {
		return "", apperr.Internal(err)
	}

	loader.For(ctx).ForgetEngagement(ctx, e, loader.TweetUserKey{TweetID: tweetID, UserID: userID})
	return toggleResult(added), nil
}

// ToggleFollow follows or unfollows followingID.
func (s *SocialService) ToggleFollow(ctx context.Context, userID, followingID uint) (ToggleResult, error) {
	if userID == followingID {
		return "", apperr.Validation([]apperr.FieldError{{Field: "following_id", Message: "You cannot follow yourself"}})
	}

	ok, err := s.store.UserExists(ctx, followingID)
	if err != nil {
		return "", apperr.Wrapf(err, "check user %d", followingID)
	}
	if !ok {
		return "", apperr.NotFound("User")
	}

	added, err := s.store.ToggleFollow(ctx, userID, followingID)
	if err != nil {
		return "", apperr.Internal(err)
	}

	loader.For(ctx).ForgetFollow(ctx, userID, followingID)
	return toggleResult(added), nil
}
