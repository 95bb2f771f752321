// Package preview fetches link previews for new tweets in the background. Mutations enqueue a
// request and return; a small worker pool fetches the page metadata, stores it and reports
// back through the request's Done callback.
package preview

import (
	"context"
	"log/slog"
	"time"

	"twitterclone/backend/internal/models"

	"golang.org/x/sync/errgroup"
)

// Metadata is what a fetcher extracts from a page.
type Metadata struct {
	Title       string
	Description *string
	Image       *string
}

// Fetcher extracts metadata from url. It returns nil metadata and no error when the page has
// nothing worth previewing.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Metadata, error)
}

// Saver stores a preview and links it to a tweet. *store.Store implements it.
type Saver interface {
	SavePreview(ctx context.Context, tweetID uint, p models.Preview) (*models.Preview, error)
}

type Request struct {
	URL     string
	TweetID uint
	// Done, when set, runs after the preview of TweetID was stored.
	Done func(tweetID uint)
}

type Options struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

type Queue struct {
	requests chan Request
	fetcher  Fetcher
	saver    Saver
	opts     Options
	log      *slog.Logger
}

func NewQueue(fetcher Fetcher, saver Saver, opts Options, log *slog.Logger) *Queue {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Queue{
		requests: make(chan Request, opts.QueueSize),
		fetcher:  fetcher,
		saver:    saver,
		opts:     opts,
		log:      log,
	}
}

// Enqueue schedules r without blocking. It reports false when the queue is full and the
// request was dropped.
func (q *Queue) Enqueue(r Request) bool {
	select {
	case q.requests <- r:
		return true
	default:
		q.log.Warn("preview queue full, dropping request", "url", r.URL, "tweet_id", r.TweetID)
		return false
	}
}

// Run processes requests until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < q.opts.Workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case r := <-q.requests:
					q.process(ctx, r)
				}
			}
		})
	}
	return g.Wait()
}

func (q *Queue) process(ctx context.Context, r Request) {
	fetchCtx, cancel := context.WithTimeout(ctx, q.opts.Timeout)
	defer cancel()

	meta, err := q.fetcher.Fetch(fetchCtx, r.URL)
	if err != nil {
		q.log.Warn("preview fetch failed", "url", r.URL, "tweet_id", r.TweetID, "error", err)
		return
	}
	if meta == nil {
		return
	}

	saved, err := q.saver.SavePreview(ctx, r.TweetID, models.Preview{
		URL:         r.URL,
		Title:       meta.Title,
		Description: meta.Description,
		Image:       meta.Image,
	})
	if err != nil {
		q.log.Error("preview save failed", "url", r.URL, "tweet_id", r.TweetID, "error", err)
		return
	}

	q.log.Debug("preview stored", "preview_id", saved.ID, "tweet_id", r.TweetID)
	if r.Done != nil {
		r.Done(r.TweetID)
	}
}

// LogFetcher declines every page. It stands in until a real scraper is plugged in.
type LogFetcher struct {
	Log *slog.Logger
}

func (f LogFetcher) Fetch(_ context.Context, url string) (*Metadata, error) {
	f.Log.Info("preview requested", "url", url)
	return nil, nil
}
