// Package store is the gorm-backed repository behind the loaders, the feed engine and the
// mutations. Batch methods take a slice of keys and return a map; keys without a row are absent.
package store

import (
	"context"
	"errors"
	"fmt"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for transactions spanning several tables.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// countsSelect hydrates tweets rows with their global counters.
const countsSelect = `tweets.*,
	(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS likes_count,
	(SELECT COUNT(*) FROM retweets WHERE retweets.tweet_id = tweets.id) AS retweets_count,
	(SELECT COUNT(*) FROM tweets AS c WHERE c.parent_id = tweets.id AND c.type = 'comment') AS comments_count,
	(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.tweet_id = tweets.id) AS bookmarks_count`

func (s *Store) UsersByIDs(ctx context.Context, ids []uint) (map[uint]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	out := make(map[uint]*models.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// UserByUsername returns a NOT_FOUND error when no user has that username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	return &user, nil
}

// UserByLogin finds a user by email or username.
func (s *Store) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ? OR username = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user by login: %w", err)
	}
	return &user, nil
}

func (s *Store) UserExists(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, &models.User{}, id)
}

func (s *Store) TweetExists(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, &models.Tweet{}, id)
}

func (s *Store) exists(ctx context.Context, model any, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// TweetsWithCounts loads tweets by id together with their counters.
func (s *Store) TweetsWithCounts(ctx context.Context, ids []uint) (map[uint]*models.TweetWithCounts, error) {
	var rows []*models.TweetWithCounts
	err := s.db.WithContext(ctx).
		Table("tweets").
		Select(countsSelect).
		Where("tweets.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load tweets: %w", err)
	}

	out := make(map[uint]*models.TweetWithCounts, len(rows))
	for _, t := range rows {
		out[t.ID] = t
	}
	return out, nil
}

// TweetWithCounts returns a NOT_FOUND error when the tweet does not exist.
func (s *Store) TweetWithCounts(ctx context.Context, id uint) (*models.TweetWithCounts, error) {
	tweets, err := s.TweetsWithCounts(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	t, ok := tweets[id]
	if !ok {
		return nil, apperr.NotFound("Tweet")
	}
	return t, nil
}

// CommentsWithCounts lists the comments of a tweet, newest first.
func (s *Store) CommentsWithCounts(ctx context.Context, parentID uint) ([]*models.TweetWithCounts, error) {
	var rows []*models.TweetWithCounts
	err := s.db.WithContext(ctx).
		Table("tweets").
		Select(countsSelect).
		Where("tweets.parent_id = ? AND tweets.type = ?", parentID, models.TweetTypeComment).
		Order("tweets.created_at DESC, tweets.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load comments of %d: %w", parentID, err)
	}
	return rows, nil
}

func (s *Store) MediaByTweetIDs(ctx context.Context, tweetIDs []uint) (map[uint]*models.Media, error) {
	var medias []*models.Media
	if err := s.db.WithContext(ctx).Where("tweet_id IN ?", tweetIDs).Find(&medias).Error; err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}

	out := make(map[uint]*models.Media, len(medias))
	for _, m := range medias {
		out[m.TweetID] = m
	}
	return out, nil
}

type previewRow struct {
	models.Preview
	TweetID uint
}

// PreviewsByTweetIDs joins through preview_tweets. A tweet linked to several previews keeps the
// most recently linked one.
func (s *Store) PreviewsByTweetIDs(ctx context.Context, tweetIDs []uint) (map[uint]*models.Preview, error) {
	var rows []previewRow
	err := s.db.WithContext(ctx).
		Table("previews").
		Select("previews.*, preview_tweets.tweet_id AS tweet_id").
		Joins("JOIN preview_tweets ON preview_tweets.preview_id = previews.id").
		Where("preview_tweets.tweet_id IN ?", tweetIDs).
		Order("preview_tweets.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load previews: %w", err)
	}

	out := make(map[uint]*models.Preview, len(rows))
	for i := range rows {
		p := rows[i].Preview
		out[rows[i].TweetID] = &p
	}
	return out, nil
}

// FollowingIDs returns, per follower, the ids of the users they follow.
func (s *Store) FollowingIDs(ctx context.Context, followerIDs []uint) (map[uint][]uint, error) {
	var follows []models.Follow
	err := s.db.WithContext(ctx).
		Select("follower_id", "following_id").
		Where("follower_id IN ?", followerIDs).
		Order("following_id").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("load followings: %w", err)
	}

	out := make(map[uint][]uint, len(followerIDs))
	for _, f := range follows {
		out[f.FollowerID] = append(out[f.FollowerID], f.FollowingID)
	}
	return out, nil
}
