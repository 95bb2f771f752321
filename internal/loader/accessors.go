package loader

import (
	"context"

	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/store"
)

// User returns nil when the user does not exist.
func (l *Loaders) User(ctx context.Context, id uint) (*models.User, error) {
	return l.users.Load(ctx, id)()
}

// Tweet returns the tweet with its counters, or nil when it does not exist.
func (l *Loaders) Tweet(ctx context.Context, id uint) (*models.TweetWithCounts, error) {
	return l.tweets.Load(ctx, id)()
}

// PrimeTweet seeds the tweet cache with a row hydrated elsewhere.
func (l *Loaders) PrimeTweet(ctx context.Context, t *models.TweetWithCounts) {
	if l == nil {
		return
	}
	l.tweets.Prime(ctx, t.ID, t)
}

func (l *Loaders) Media(ctx context.Context, tweetID uint) (*models.Media, error) {
	return l.media.Load(ctx, tweetID)()
}

func (l *Loaders) Preview(ctx context.Context, tweetID uint) (*models.Preview, error) {
	return l.previews.Load(ctx, tweetID)()
}

// Engaged reports whether key.UserID liked, retweeted or bookmarked key.TweetID.
func (l *Loaders) Engaged(ctx context.Context, e store.Engagement, key TweetUserKey) (bool, error) {
	return l.engaged[e].Load(ctx, key)()
}

// EngagementCount counts the likes, retweets or bookmarks of a tweet.
func (l *Loaders) EngagementCount(ctx context.Context, e store.Engagement, tweetID uint) (int64, error) {
	return l.counts[e].Load(ctx, tweetID)()
}

func (l *Loaders) CommentsCount(ctx context.Context, tweetID uint) (int64, error) {
	return l.comments.Load(ctx, tweetID)()
}

func (l *Loaders) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	return l.followers.Load(ctx, userID)()
}

func (l *Loaders) FollowingsCount(ctx context.Context, userID uint) (int64, error) {
	return l.followings.Load(ctx, userID)()
}

// FollowingIDs lists the users followerID follows.
func (l *Loaders) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return l.followingIDs.Load(ctx, followerID)()
}

// IsFollowing reports whether followerID follows followingID.
func (l *Loaders) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	ids, err := l.FollowingIDs(ctx, followerID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == followingID {
			return true, nil
		}
	}
	return false, nil
}

// The Forget methods evict entries a mutation made stale. They are no-ops on a nil set.

func (l *Loaders) ForgetEngagement(ctx context.Context, e store.Engagement, key TweetUserKey) {
	if l == nil {
		return
	}
	l.engaged[e].Clear(ctx, key)
	l.counts[e].Clear(ctx, key.TweetID)
	l.tweets.Clear(ctx, key.TweetID)
}

func (l *Loaders) ForgetFollow(ctx context.Context, followerID, followingID uint) {
	if l == nil {
		return
	}
	l.followingIDs.Clear(ctx, followerID)
	l.followings.Clear(ctx, followerID)
	l.followers.Clear(ctx, followingID)
}

// ForgetTweet evicts a tweet and the comment count of its parent.
func (l *Loaders) ForgetTweet(ctx context.Context, id uint, parentID *uint) {
	if l == nil {
		return
	}
	l.tweets.Clear(ctx, id)
	if parentID != nil {
		l.tweets.Clear(ctx, *parentID)
		l.comments.Clear(ctx, *parentID)
	}
}
