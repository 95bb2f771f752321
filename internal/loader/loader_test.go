package loader

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource records the batches of the users, engagement and count loaders.
type fakeSource struct {
	mu      sync.Mutex
	batches [][]uint
	err     error
}

// record stores a batch and returns how many batches were served so far.
func (f *fakeSource) record(ids []uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := append([]uint(nil), ids...)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	f.batches = append(f.batches, keys)
	return len(f.batches)
}

func (f *fakeSource) calls() [][]uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]uint(nil), f.batches...)
}

func (f *fakeSource) UsersByIDs(_ context.Context, ids []uint) (map[uint]*models.User, error) {
	f.record(ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uint]*models.User)
	for _, id := range ids {
		if id <= 5 {
			out[id] = &models.User{ID: id}
		}
	}
	return out, nil
}

func (f *fakeSource) EngagedTweetIDs(_ context.Context, _ store.Engagement, userID uint, tweetIDs []uint) (map[uint]bool, error) {
	f.record(append([]uint{userID * 1000}, tweetIDs...))
	out := make(map[uint]bool)
	for _, id := range tweetIDs {
		if id%2 == 0 {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeSource) EngagementCounts(_ context.Context, _ store.Engagement, tweetIDs []uint) (map[uint]int64, error) {
	served := f.record(tweetIDs)
	out := make(map[uint]int64)
	for _, id := range tweetIDs {
		out[id] = int64(served)
	}
	return out, nil
}

func (f *fakeSource) TweetsWithCounts(context.Context, []uint) (map[uint]*models.TweetWithCounts, error) {
	return nil, nil
}

func (f *fakeSource) MediaByTweetIDs(context.Context, []uint) (map[uint]*models.Media, error) {
	return nil, nil
}

func (f *fakeSource) PreviewsByTweetIDs(context.Context, []uint) (map[uint]*models.Preview, error) {
	return nil, nil
}

func (f *fakeSource) CommentCounts(context.Context, []uint) (map[uint]int64, error) {
	return nil, nil
}

func (f *fakeSource) FollowersCounts(context.Context, []uint) (map[uint]int64, error) {
	return nil, nil
}

func (f *fakeSource) FollowingsCounts(context.Context, []uint) (map[uint]int64, error) {
	return nil, nil
}

func (f *fakeSource) FollowingIDs(context.Context, []uint) (map[uint][]uint, error) {
	return nil, nil
}

func testOptions() Options {
	return Options{Wait: 50 * time.Millisecond}
}

func TestConcurrentLoadsShareOneBatch(t *testing.T) {
	src := &fakeSource{}
	l := New(src, testOptions())
	ctx := context.Background()

	var wg sync.WaitGroup
	users := make([]*models.User, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := l.User(ctx, uint(i%5)+1)
			assert.NoError(t, err)
			users[i] = u
		}(i)
	}
	wg.Wait()

	require.Equal(t, [][]uint{{1, 2, 3, 4, 5}}, src.calls())
	for i, u := range users {
		require.Equal(t, uint(i%5)+1, u.ID)
	}

	// A second load of a cached key does not reach the source.
	u, err := l.User(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, uint(3), u.ID)
	require.Len(t, src.calls(), 1)
}

func TestMissingKeyResolvesToNil(t *testing.T) {
	l := New(&fakeSource{}, Options{})

	u, err := l.User(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestBatchErrorFailsEveryKey(t *testing.T) {
	boom := errors.New("connection reset")
	l := New(&fakeSource{err: boom}, testOptions())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.User(ctx, uint(i)+1)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.ErrorIs(t, err, boom)
	}
}

func TestForgetForcesRefetch(t *testing.T) {
	src := &fakeSource{}
	l := New(src, Options{})
	ctx := context.Background()
	key := TweetUserKey{TweetID: 8, UserID: 1}

	n, err := l.EngagementCount(ctx, store.Likes, key.TweetID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = l.EngagementCount(ctx, store.Likes, key.TweetID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	l.ForgetEngagement(ctx, store.Likes, key)

	n, err = l.EngagementCount(ctx, store.Likes, key.TweetID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestCompositeKeysBatchPerUser(t *testing.T) {
	src := &fakeSource{}
	l := New(src, testOptions())
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make(map[uint]bool)
	var mu sync.Mutex
	for tweetID := uint(1); tweetID <= 4; tweetID++ {
		wg.Add(1)
		go func(tweetID uint) {
			defer wg.Done()
			liked, err := l.Engaged(ctx, store.Likes, TweetUserKey{TweetID: tweetID, UserID: 7})
			assert.NoError(t, err)
			mu.Lock()
			got[tweetID] = liked
			mu.Unlock()
		}(tweetID)
	}
	wg.Wait()

	require.Equal(t, [][]uint{{1, 2, 3, 4, 7000}}, src.calls())
	require.Equal(t, map[uint]bool{1: false, 2: true, 3: false, 4: true}, got)
}

func TestContext(t *testing.T) {
	require.Nil(t, For(context.Background()))

	l := New(&fakeSource{}, Options{})
	require.Same(t, l, For(WithLoaders(context.Background(), l)))

	var none *Loaders
	require.NotPanics(t, func() { none.ForgetTweet(context.Background(), 1, nil) })
}
