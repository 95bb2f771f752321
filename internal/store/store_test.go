package store

import (
	"context"
	"testing"
	"time"

	"twitterclone/backend/internal/apperr"
	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTweetsWithCounts(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	clock := testutil.NewClock()

	john := testutil.CreateUser(t, db, "john")
	jane := testutil.CreateUser(t, db, "jane")
	bob := testutil.CreateUser(t, db, "bob")

	tweet := testutil.CreateTweet(t, db, john, nil, clock.Next())
	other := testutil.CreateTweet(t, db, jane, nil, clock.Next())
	testutil.CreateTweet(t, db, jane, tweet, clock.Next())
	testutil.CreateTweet(t, db, bob, tweet, clock.Next())

	testutil.Like(t, db, jane, tweet, clock.Next())
	testutil.Like(t, db, bob, tweet, clock.Next())
	testutil.Like(t, db, john, tweet, clock.Next())
	testutil.Retweet(t, db, jane, tweet, clock.Next())
	testutil.Bookmark(t, db, bob, tweet)

	tweets, err := s.TweetsWithCounts(ctx, []uint{tweet.ID, other.ID, 999})
	require.NoError(t, err)
	require.Len(t, tweets, 2)

	got := tweets[tweet.ID]
	require.Equal(t, tweet.Body, got.Body)
	require.Equal(t, models.TweetCounts{LikesCount: 3, RetweetsCount: 1, CommentsCount: 2, BookmarksCount: 1}, got.TweetCounts)
	require.True(t, got.CreatedAt.Equal(tweet.CreatedAt))
	require.Equal(t, models.TweetCounts{}, tweets[other.ID].TweetCounts)

	_, err = s.TweetWithCounts(ctx, 999)
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	comments, err := s.CommentsWithCounts(ctx, tweet.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, bob.ID, comments[0].UserID)
}

func TestEngagement(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	clock := testutil.NewClock()

	john := testutil.CreateUser(t, db, "john")
	jane := testutil.CreateUser(t, db, "jane")
	first := testutil.CreateTweet(t, db, john, nil, clock.Next())
	second := testutil.CreateTweet(t, db, john, nil, clock.Next())

	added, err := s.Toggle(ctx, Likes, jane.ID, first.ID)
	require.NoError(t, err)
	require.True(t, added)

	liked, err := s.EngagedTweetIDs(ctx, Likes, jane.ID, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Equal(t, map[uint]bool{first.ID: true}, liked)

	counts, err := s.EngagementCounts(ctx, Likes, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Equal(t, map[uint]int64{first.ID: 1}, counts)

	added, err = s.Toggle(ctx, Likes, jane.ID, first.ID)
	require.NoError(t, err)
	require.False(t, added)

	var n int64
	require.NoError(t, db.Model(&models.Like{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestToggleTreatsConcurrentInsertAsAdded(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	john := testutil.CreateUser(t, db, "john")
	jane := testutil.CreateUser(t, db, "jane")
	tweet := testutil.CreateTweet(t, db, john, nil, time.Now())

	// Another request likes the tweet after Toggle found no row and before it inserts one.
	err := db.Callback().Create().Before("gorm:create").Register("test:concurrent_like", func(tx *gorm.DB) {
		if tx.Statement.Table != "likes" {
			return
		}
		err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO likes (user_id, tweet_id, created_at) VALUES (?, ?, ?)", jane.ID, tweet.ID, time.Now()).Error
		require.NoError(t, err)
	})
	require.NoError(t, err)

	added, err := s.Toggle(ctx, Likes, jane.ID, tweet.ID)
	require.NoError(t, err)
	require.True(t, added)

	var n int64
	require.NoError(t, db.Model(&models.Like{}).Where("user_id = ? AND tweet_id = ?", jane.ID, tweet.ID).Count(&n).Error)
	require.Equal(t, int64(1), n)
}

func TestFollows(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	john := testutil.CreateUser(t, db, "john")
	jane := testutil.CreateUser(t, db, "jane")
	bob := testutil.CreateUser(t, db, "bob")
	alice := testutil.CreateUser(t, db, "alice")

	testutil.Follow(t, db, john, jane)
	testutil.Follow(t, db, bob, jane)
	testutil.Follow(t, db, john, bob)

	ids, err := s.FollowingIDs(ctx, []uint{john.ID, alice.ID})
	require.NoError(t, err)
	require.Equal(t, map[uint][]uint{john.ID: {jane.ID, bob.ID}}, ids)

	followers, err := s.FollowersCounts(ctx, []uint{jane.ID, bob.ID})
	require.NoError(t, err)
	require.Equal(t, map[uint]int64{jane.ID: 2, bob.ID: 1}, followers)

	followings, err := s.FollowingsCounts(ctx, []uint{john.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), followings[john.ID])

	suggestions, err := s.FollowersSuggestions(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	require.Equal(t, jane.ID, suggestions[0].ID)
	require.Equal(t, bob.ID, suggestions[1].ID)

	suggestions, err = s.FollowersSuggestions(ctx, john.ID, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, alice.ID, suggestions[0].ID)

	added, err := s.ToggleFollow(ctx, alice.ID, john.ID)
	require.NoError(t, err)
	require.True(t, added)
	added, err = s.ToggleFollow(ctx, alice.ID, john.ID)
	require.NoError(t, err)
	require.False(t, added)
}

func TestLinkHashtagIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	clock := testutil.NewClock()

	john := testutil.CreateUser(t, db, "john")
	first := testutil.CreateTweet(t, db, john, nil, clock.Next())
	second := testutil.CreateTweet(t, db, john, nil, clock.Next())

	require.NoError(t, s.LinkHashtag(ctx, first.ID, "#golang"))
	require.NoError(t, s.LinkHashtag(ctx, second.ID, "#golang"))
	require.NoError(t, s.LinkHashtag(ctx, second.ID, "#golang"))
	require.NoError(t, s.LinkHashtag(ctx, second.ID, "#sql"))

	var hashtags, links int64
	require.NoError(t, db.Model(&models.Hashtag{}).Count(&hashtags).Error)
	require.NoError(t, db.Model(&models.HashtagTweet{}).Count(&links).Error)
	require.Equal(t, int64(2), hashtags)
	require.Equal(t, int64(3), links)

	trends, err := s.TrendingHashtags(ctx, time.Now().Add(-7*24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, trends, 2)
	require.Equal(t, "#golang", trends[0].Hashtag)
	require.Equal(t, int64(2), trends[0].TweetsCount)

	trends, err = s.TrendingHashtags(ctx, time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	require.Empty(t, trends)
}

func TestSavePreview(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	clock := testutil.NewClock()

	john := testutil.CreateUser(t, db, "john")
	first := testutil.CreateTweet(t, db, john, nil, clock.Next())
	second := testutil.CreateTweet(t, db, john, nil, clock.Next())

	saved, err := s.SavePreview(ctx, first.ID, models.Preview{URL: "https://go.dev", Title: "Go"})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	again, err := s.SavePreview(ctx, second.ID, models.Preview{URL: "https://go.dev", Title: "The Go Programming Language"})
	require.NoError(t, err)
	require.Equal(t, saved.ID, again.ID)

	previews, err := s.PreviewsByTweetIDs(ctx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, previews, 2)
	require.Equal(t, "The Go Programming Language", previews[first.ID].Title)
	require.Equal(t, saved.ID, previews[second.ID].ID)

	media := testutil.Media(t, db, first)
	medias, err := s.MediaByTweetIDs(ctx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Equal(t, map[uint]*models.Media{first.ID: medias[first.ID]}, medias)
	require.Equal(t, media.URL, medias[first.ID].URL)
}

func TestUsers(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	john := testutil.CreateUser(t, db, "john")

	users, err := s.UsersByIDs(ctx, []uint{john.ID, 42})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "john", users[john.ID].Username)

	_, err = s.UserByUsername(ctx, "nobody")
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	byEmail, err := s.UserByLogin(ctx, "john@test.fr")
	require.NoError(t, err)
	require.Equal(t, john.ID, byEmail.ID)

	missing, err := s.UserByLogin(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	ok, err := s.UserExists(ctx, john.ID)
	require.NoError(t, err)
	require.True(t, ok)
}
