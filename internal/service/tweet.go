// Package service holds the mutations. Inputs are validated before anything is written, and
// loader entries made stale by a mutation are evicted before it returns.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/loader"
	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/preview"
	"twitterclone/backend/internal/store"
	"twitterclone/backend/internal/validation"

	"gorm.io/gorm"
)

// PreviewQueue schedules link preview fetches. *preview.Queue implements it.
type PreviewQueue interface {
	Enqueue(r preview.Request) bool
}

type TweetService struct {
	store    *store.Store
	previews PreviewQueue
	log      *slog.Logger
}

func NewTweetService(s *store.Store, previews PreviewQueue, log *slog.Logger) *TweetService {
	return &TweetService{store: s, previews: previews, log: log}
}

// AddTweet creates a tweet or a comment for userID and returns it with its counters. A
// retweet is recorded as a retweet of the parent, and the parent is returned.
func (s *TweetService) AddTweet(ctx context.Context, userID uint, in validation.AddTweetInput) (*models.TweetWithCounts, error) {
	if err := validation.Check(validation.AddTweet(in)); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		ok, err := s.store.TweetExists(ctx, *in.ParentID)
		if err != nil {
			return nil, apperr.Wrapf(err, "check parent %d", *in.ParentID)
		}
		if !ok {
			return nil, apperr.NotFound("Tweet")
		}
	}

	if in.Type != nil && *in.Type == models.TweetTypeRetweet {
		return s.retweet(ctx, userID, *in.ParentID)
	}

	tweet := models.Tweet{
		Body:       in.Body,
		UserID:     userID,
		ParentID:   in.ParentID,
		Type:       models.TweetTypeTweet,
		Visibility: models.VisibilityPublic,
	}
	if in.Type != nil {
		tweet.Type = *in.Type
	}
	if in.Visibility != nil {
		tweet.Visibility = *in.Visibility
	}

	err := s.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tweet).Error; err != nil {
			return fmt.Errorf("insert tweet: %w", err)
		}
		if in.Media != nil {
			media := models.Media{URL: *in.Media, TweetID: tweet.ID, UserID: userID}
			if err := tx.Create(&media).Error; err != nil {
				return fmt.Errorf("insert media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	for _, tag := range validation.UniqueHashtags(in.Hashtags) {
		if err := s.store.LinkHashtag(ctx, tweet.ID, tag); err != nil {
			s.log.Warn("hashtag link failed", "tweet_id", tweet.ID, "hashtag", tag, "error", err)
		}
	}

	// The preview lands after this request's loaders are gone, so no Done hook is needed here.
	if in.URL != nil && in.Media == nil {
		s.previews.Enqueue(preview.Request{URL: *in.URL, TweetID: tweet.ID})
	}
	loader.For(ctx).ForgetTweet(ctx, tweet.ID, tweet.ParentID)

	created, err := s.store.TweetWithCounts(ctx, tweet.ID)
	if err != nil {
		return nil, apperr.Wrapf(err, "reload tweet %d", tweet.ID)
	}
	return created, nil
}

func (s *TweetService) retweet(ctx context.Context, userID, parentID uint) (*models.TweetWithCounts, error) {
	if err := s.store.Engage(ctx, store.Retweets, userID, parentID); err != nil {
		return nil, apperr.Internal(err)
	}
	loader.For(ctx).ForgetEngagement(ctx, store.Retweets, loader.TweetUserKey{TweetID: parentID, UserID: userID})

	parent, err := s.store.TweetWithCounts(ctx, parentID)
	if err != nil {
		return nil, apperr.Wrapf(err, "reload tweet %d", parentID)
	}
	return parent, nil
}

// DeleteTweet removes a tweet owned by userID together with everything attached to it. It
// returns the number of deleted tweets; a missing or foreign tweet is NOT_FOUND.
func (s *TweetService) DeleteTweet(ctx context.Context, userID, tweetID uint) (int64, error) {
	db := s.store.DB().WithContext(ctx)

	var tweet models.Tweet
	err := db.Where("id = ? AND user_id = ?", tweetID, userID).First(&tweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("Tweet")
	}
	if err != nil {
		return 0, apperr.Wrapf(err, "load tweet %d", tweetID)
	}

	res := db.Where("id = ? AND user_id = ?", tweetID, userID).Delete(&models.Tweet{})
	if res.Error != nil {
		return 0, apperr.Wrapf(res.Error, "delete tweet %d", tweetID)
	}
	if res.RowsAffected == 0 {
		return 0, apperr.NotFound("Tweet")
	}

	loader.For(ctx).ForgetTweet(ctx, tweet.ID, tweet.ParentID)
	return res.RowsAffected, nil
}
