package store

import (
	"context"
	"fmt"
	"time"

	"twitterclone/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkHashtag upserts the hashtag text and links it to tweetID. Linking twice is a no-op.
func (s *Store) LinkHashtag(ctx context.Context, tweetID uint, tag string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hashtag := models.Hashtag{Hashtag: tag}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hashtag"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&hashtag).Error
		if err != nil {
			return fmt.Errorf("upsert hashtag %s: %w", tag, err)
		}

		// The upsert does not report the id of an existing row on every dialect.
		var stored models.Hashtag
		if err := tx.Where("hashtag = ?", tag).First(&stored).Error; err != nil {
			return fmt.Errorf("reload hashtag %s: %w", tag, err)
		}

		link := models.HashtagTweet{HashtagID: stored.ID, TweetID: tweetID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("link hashtag %s to tweet %d: %w", tag, tweetID, err)
		}
		return nil
	})
}

// TrendingHashtags ranks hashtags by the number of tweets linked to them since the given time.
func (s *Store) TrendingHashtags(ctx context.Context, since time.Time, limit int) ([]models.TrendingHashtag, error) {
	var trends []models.TrendingHashtag
	err := s.db.WithContext(ctx).
		Table("hashtags").
		Select("hashtags.id, hashtags.hashtag, COUNT(hashtag_tweets.tweet_id) AS tweets_count").
		Joins("JOIN hashtag_tweets ON hashtag_tweets.hashtag_id = hashtags.id").
		Where("hashtag_tweets.created_at >= ?", since).
		Group("hashtags.id, hashtags.hashtag").
		Order("tweets_count DESC, hashtags.id ASC").
		Limit(limit).
		Scan(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("load trending hashtags: %w", err)
	}
	return trends, nil
}
