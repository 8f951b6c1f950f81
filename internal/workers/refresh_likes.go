package workers

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

// refreshLikesWorker periodically re-reads like counts from the social
// backend and pushes them into the shared count store, so every card
// showing the same artwork converges on the backend value without each
// card polling on its own.
type refreshLikesWorker struct {
	social domain.SocialGateway
	counts domain.LikeCountStore
	liked  domain.LikedArtworksStore

	ch       chan int64
	interval time.Duration
}

var _ domain.RefreshLikesWorker = (*refreshLikesWorker)(nil)

func NewRefreshLikesWorker(social domain.SocialGateway, counts domain.LikeCountStore, liked domain.LikedArtworksStore, interval time.Duration) *refreshLikesWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &refreshLikesWorker{
		social:   social,
		counts:   counts,
		liked:    liked,
		ch:       make(chan int64, 1024),
		interval: interval,
	}
}

// Send queues an object id for the next refresh round.
func (w *refreshLikesWorker) Send(objectID int64) {
	select {
	case w.ch <- objectID:
	default:
		logrus.Info("RefreshLikesWorker's channel is full, id dropped")
	}
}

func (w *refreshLikesWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	pending := make(map[int64]bool)
	for {
		select {
		case id := <-w.ch:
			pending[id] = true
		case <-ticker.C:
			w.flush(ctx, pending)
			pending = make(map[int64]bool)
		case <-ctx.Done():
			logrus.Info("shutting down RefreshLikesWorker")
			return
		}
	}
}

// flush refreshes the queued ids plus everything currently liked. Requests
// run one at a time; the social backend is small and a refresh round is
// not latency sensitive.
func (w *refreshLikesWorker) flush(ctx context.Context, pending map[int64]bool) {
	for _, item := range w.liked.Snapshot() {
		pending[item.ObjectID] = true
	}
	if len(pending) == 0 {
		return
	}

	for id := range pending {
		res, err := w.social.GetLikes(ctx, strconv.FormatInt(id, 10))
		if err != nil {
			logrus.Warnf("failed to refresh like count for %d: %v", id, err)
			continue
		}
		w.counts.Update(id, res.Likes)
	}
}
