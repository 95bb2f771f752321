// Package loader holds the request-scoped batched loaders. Every loader coalesces the point
// lookups issued within its batch window into one call to the Source and caches the results
// until the request ends. A Loaders value must never be shared between requests.
package loader

import (
	"context"
	"time"

	"twitterclone/backend/internal/models"
	"twitterclone/backend/internal/store"

	"github.com/graph-gophers/dataloader/v7"
)

// Source is the batch backend of the loaders. *store.Store implements it.
type Source interface {
	UsersByIDs(ctx context.Context, ids []uint) (map[uint]*models.User, error)
	TweetsWithCounts(ctx context.Context, ids []uint) (map[uint]*models.TweetWithCounts, error)
	MediaByTweetIDs(ctx context.Context, tweetIDs []uint) (map[uint]*models.Media, error)
	PreviewsByTweetIDs(ctx context.Context, tweetIDs []uint) (map[uint]*models.Preview, error)
	EngagedTweetIDs(ctx context.Context, e store.Engagement, userID uint, tweetIDs []uint) (map[uint]bool, error)
	EngagementCounts(ctx context.Context, e store.Engagement, tweetIDs []uint) (map[uint]int64, error)
	CommentCounts(ctx context.Context, tweetIDs []uint) (map[uint]int64, error)
	FollowersCounts(ctx context.Context, userIDs []uint) (map[uint]int64, error)
	FollowingsCounts(ctx context.Context, userIDs []uint) (map[uint]int64, error)
	FollowingIDs(ctx context.Context, followerIDs []uint) (map[uint][]uint, error)
}

// TweetUserKey asks whether a user engaged with a tweet.
type TweetUserKey struct {
	TweetID uint
	UserID  uint
}

// Options tune every loader of a set.
type Options struct {
	Wait     time.Duration
	MaxBatch int
}

var engagements = []store.Engagement{store.Likes, store.Retweets, store.Bookmarks}

type Loaders struct {
	users        *dataloader.Loader[uint, *models.User]
	tweets       *dataloader.Loader[uint, *models.TweetWithCounts]
	media        *dataloader.Loader[uint, *models.Media]
	previews     *dataloader.Loader[uint, *models.Preview]
	engaged      map[store.Engagement]*dataloader.Loader[TweetUserKey, bool]
	counts       map[store.Engagement]*dataloader.Loader[uint, int64]
	comments     *dataloader.Loader[uint, int64]
	followers    *dataloader.Loader[uint, int64]
	followings   *dataloader.Loader[uint, int64]
	followingIDs *dataloader.Loader[uint, []uint]
}

// New builds a fresh loader set backed by src.
func New(src Source, opts Options) *Loaders {
	l := &Loaders{
		users:        newLoader(src.UsersByIDs, opts),
		tweets:       newLoader(src.TweetsWithCounts, opts),
		media:        newLoader(src.MediaByTweetIDs, opts),
		previews:     newLoader(src.PreviewsByTweetIDs, opts),
		engaged:      make(map[store.Engagement]*dataloader.Loader[TweetUserKey, bool], len(engagements)),
		counts:       make(map[store.Engagement]*dataloader.Loader[uint, int64], len(engagements)),
		comments:     newLoader(src.CommentCounts, opts),
		followers:    newLoader(src.FollowersCounts, opts),
		followings:   newLoader(src.FollowingsCounts, opts),
		followingIDs: newLoader(src.FollowingIDs, opts),
	}

	for _, e := range engagements {
		l.engaged[e] = newLoader(byUser(func(ctx context.Context, userID uint, tweetIDs []uint) (map[uint]bool, error) {
			return src.EngagedTweetIDs(ctx, e, userID, tweetIDs)
		}), opts)
		l.counts[e] = newLoader(func(ctx context.Context, tweetIDs []uint) (map[uint]int64, error) {
			return src.EngagementCounts(ctx, e, tweetIDs)
		}, opts)
	}
	return l
}

func newLoader[K comparable, V any](fetch func(context.Context, []K) (map[K]V, error), opts Options) *dataloader.Loader[K, V] {
	options := []dataloader.Option[K, V]{}
	if opts.Wait > 0 {
		options = append(options, dataloader.WithWait[K, V](opts.Wait))
	}
	if opts.MaxBatch > 0 {
		options = append(options, dataloader.WithBatchCapacity[K, V](opts.MaxBatch))
	}
	return dataloader.NewBatchedLoader(batch(fetch), options...)
}

// batch adapts a map-returning fetch to the positional results dataloader expects. Keys absent
// from the map resolve to the zero value. A fetch error fails every key of the batch.
func batch[K comparable, V any](fetch func(context.Context, []K) (map[K]V, error)) dataloader.BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) []*dataloader.Result[V] {
		// Queries already issued finish even if the client goes away.
		found, err := fetch(context.WithoutCancel(ctx), keys)

		results := make([]*dataloader.Result[V], len(keys))
		for i, key := range keys {
			if err != nil {
				results[i] = &dataloader.Result[V]{Error: err}
				continue
			}
			results[i] = &dataloader.Result[V]{Data: found[key]}
		}
		return results
	}
}

// byUser splits composite keys per user and issues one query per user. Within a request
// there is a single acting user, so this is one query per batch in practice.
func byUser(fetch func(ctx context.Context, userID uint, tweetIDs []uint) (map[uint]bool, error)) func(context.Context, []TweetUserKey) (map[TweetUserKey]bool, error) {
	return func(ctx context.Context, keys []TweetUserKey) (map[TweetUserKey]bool, error) {
		grouped := make(map[uint][]uint)
		for _, k := range keys {
			grouped[k.UserID] = append(grouped[k.UserID], k.TweetID)
		}

		out := make(map[TweetUserKey]bool, len(keys))
		for userID, tweetIDs := range grouped {
			found, err := fetch(ctx, userID, tweetIDs)
			if err != nil {
				return nil, err
			}
			for tweetID, ok := range found {
				out[TweetUserKey{TweetID: tweetID, UserID: userID}] = ok
			}
		}
		return out, nil
	}
}
