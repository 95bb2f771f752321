// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"twitterclone/backend/internal/database"
	"twitterclone/backend/internal/models"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh, migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", ulid.Make())
	db, err := database.Open(dsn, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Clock hands out strictly increasing UTC timestamps so fixtures have a known order.
type Clock struct {
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Next advances the clock by one minute and returns the new time.
func (c *Clock) Next() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		DisplayName:  username + " display",
		Email:        username + "@test.fr",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTweet inserts a tweet. Pass a nil parent for a plain tweet; with a parent the tweet is a comment.
func CreateTweet(t *testing.T, db *gorm.DB, author *models.User, parent *models.Tweet, at time.Time) *models.Tweet {
	t.Helper()
	tweet := &models.Tweet{
		Body:       fmt.Sprintf("tweet by %s", author.Username),
		UserID:     author.ID,
		Type:       models.TweetTypeTweet,
		Visibility: models.VisibilityPublic,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	if parent != nil {
		tweet.ParentID = &parent.ID
		tweet.Type = models.TweetTypeComment
	}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}

func Like(t *testing.T, db *gorm.DB, user *models.User, tweet *models.Tweet, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Like{UserID: user.ID, TweetID: tweet.ID, CreatedAt: at}).Error)
}

func Retweet(t *testing.T, db *gorm.DB, user *models.User, tweet *models.Tweet, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Retweet{UserID: user.ID, TweetID: tweet.ID, CreatedAt: at}).Error)
}

func Bookmark(t *testing.T, db *gorm.DB, user *models.User, tweet *models.Tweet) {
	t.Helper()
	require.NoError(t, db.Create(&models.Bookmark{UserID: user.ID, TweetID: tweet.ID}).Error)
}

func Follow(t *testing.T, db *gorm.DB, follower, following *models.User) {
	t.Helper()
	require.NoError(t, db.Create(&models.Follow{FollowerID: follower.ID, FollowingID: following.ID}).Error)
}

func Media(t *testing.T, db *gorm.DB, tweet *models.Tweet) *models.Media {
	t.Helper()
	media := &models.Media{URL: fmt.Sprintf("https://cdn.test/%d.png", tweet.ID), TweetID: tweet.ID, UserID: tweet.UserID}
	require.NoError(t, db.Create(media).Error)
	return media
}
