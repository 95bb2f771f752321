package store

import (
	"context"
	"fmt"

	"twitterclone/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engagement names one of the (user, tweet) join tables.
type Engagement string

const (
	Likes     Engagement = "likes"
	Retweets  Engagement = "retweets"
	Bookmarks Engagement = "bookmarks"
)

func (e Engagement) row(userID, tweetID uint) any {
	switch e {
	case Likes:
		return &models.Like{UserID: userID, TweetID: tweetID}
	case Retweets:
		return &models.Retweet{UserID: userID, TweetID: tweetID}
	default:
		return &models.Bookmark{UserID: userID, TweetID: tweetID}
	}
}

// EngagedTweetIDs reports which of tweetIDs userID has engaged with through e.
func (s *Store) EngagedTweetIDs(ctx context.Context, e Engagement, userID uint, tweetIDs []uint) (map[uint]bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Table(string(e)).
		Where("user_id = ? AND tweet_id IN ?", userID, tweetIDs).
		Pluck("tweet_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load %s of user %d: %w", e, userID, err)
	}

	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// EngagementCounts counts the rows of e per tweet.
func (s *Store) EngagementCounts(ctx context.Context, e Engagement, tweetIDs []uint) (map[uint]int64, error) {
	return s.groupCount(ctx, s.db.Table(string(e)), "tweet_id", tweetIDs)
}

// CommentCounts counts the comments per parent tweet.
func (s *Store) CommentCounts(ctx context.Context, tweetIDs []uint) (map[uint]int64, error) {
	q := s.db.Table("tweets").Where("type = ?", models.TweetTypeComment)
	return s.groupCount(ctx, q, "parent_id", tweetIDs)
}

// FollowersCounts counts, per user, the users following them.
func (s *Store) FollowersCounts(ctx context.Context, userIDs []uint) (map[uint]int64, error) {
	return s.groupCount(ctx, s.db.Table("follows"), "following_id", userIDs)
}

// FollowingsCounts counts, per user, the users they follow.
func (s *Store) FollowingsCounts(ctx context.Context, userIDs []uint) (map[uint]int64, error) {
	return s.groupCount(ctx, s.db.Table("follows"), "follower_id", userIDs)
}

type keyCount struct {
	GroupKey uint
	N        int64
}

func (s *Store) groupCount(ctx context.Context, q *gorm.DB, column string, keys []uint) (map[uint]int64, error) {
	var rows []keyCount
	err := q.WithContext(ctx).
		Select(column+" AS group_key, COUNT(*) AS n").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}

	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.GroupKey] = r.N
	}
	return out, nil
}

// Toggle removes the (userID, tweetID) row of e when present and inserts it otherwise. It
// returns true when the row now exists. A concurrent insert of the same row counts as added.
func (s *Store) Toggle(ctx context.Context, e Engagement, userID, tweetID uint) (bool, error) {
	db := s.db.WithContext(ctx)

	res := db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).Delete(e.row(0, 0))
	if res.Error != nil {
		return false, fmt.Errorf("delete %s row: %w", e, res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(e.row(userID, tweetID)).Error; err != nil {
		return false, fmt.Errorf("insert %s row: %w", e, err)
	}
	return true, nil
}

// ToggleFollow is Toggle for follow edges.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	db := s.db.WithContext(ctx)

	res := db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete follow: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
		return false, fmt.Errorf("insert follow: %w", err)
	}
	return true, nil
}

// Engage records the (userID, tweetID) row of e, doing nothing when it already exists.
func (s *Store) Engage(ctx context.Context, e Engagement, userID, tweetID uint) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(e.row(userID, tweetID)).Error
	if err != nil {
		return fmt.Errorf("insert %s row: %w", e, err)
	}
	return nil
}
