package like

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

// Service owns the optimistic like state machine. A toggle mutates the
// shared stores synchronously, broadcasts, then reconciles against the
// social backend; a failed sync restores the exact pre-toggle snapshot.
// There is no retry queue; a failed sync is rolled back, not replayed.
type Service struct {
	liked     domain.LikedArtworksStore
	counts    domain.LikeCountStore
	social    domain.SocialGateway
	refresher domain.RefreshLikesWorker
}

var _ domain.LikeUsecase = (*Service)(nil)

// NewService will create a new like service object. refresher may be nil.
func NewService(liked domain.LikedArtworksStore, counts domain.LikeCountStore, social domain.SocialGateway, refresher domain.RefreshLikesWorker) *Service {
	return &Service{
		liked:     liked,
		counts:    counts,
		social:    social,
		refresher: refresher,
	}
}

func (s *Service) Toggle(ctx context.Context, a domain.Artwork, source domain.ToggleSource, confirmed bool) (domain.ToggleResult, error) {
	id := a.ObjectID
	if id == 0 {
		return domain.ToggleResult{}, domain.ErrBadParamInput
	}

	if s.liked.IsLiked(id) {
		return s.unlike(id, source, confirmed)
	}
	return s.like(ctx, a)
}

func (s *Service) like(ctx context.Context, a domain.Artwork) (domain.ToggleResult, error) {
	id := a.ObjectID

	// Snapshot before the optimistic mutation; restored verbatim on a
	// failed sync. An id the store never held must come back never-held,
	// not seeded with zero.
	prevCount := s.counts.Get(id)
	prevKnown := s.counts.Has(id)
	newCount := prevCount + 1

	s.counts.Update(id, newCount)
	s.liked.Add(a)

	resp, err := s.social.PostLike(ctx, domain.Like{
		ItemID: itemID(id),
		Likes:  newCount,
	})
	if err != nil {
		logrus.Errorf("failed to sync like for artwork %d, rolling back: %v", id, err)
		if prevKnown {
			s.counts.Update(id, prevCount)
		} else {
			s.counts.Delete(id)
		}
		s.liked.Remove(id)
		return domain.ToggleResult{}, err
	}

	// Reconcile with the authoritative backend count.
	if resp.Likes > 0 {
		newCount = resp.Likes
		s.counts.Update(id, newCount)
	}
	s.notifyRefresher(id)

	return domain.ToggleResult{Liked: true, Likes: newCount}, nil
}

func (s *Service) unlike(id int64, source domain.ToggleSource, confirmed bool) (domain.ToggleResult, error) {
	// Unliking from the feed is guarded; the liked list has its own
	// remove affordance and proceeds directly.
	if source == domain.SourceFeed && !confirmed {
		return domain.ToggleResult{}, domain.ErrConfirmationRequired
	}

	// Likes are monotonic display counters: membership toggles off but the
	// visible count is deliberately not decremented, and nothing is synced
	// to the backend. Product decision, not a bug.
	s.liked.Remove(id)

	return domain.ToggleResult{Liked: false, Likes: s.counts.Get(id)}, nil
}

func (s *Service) RemoveLiked(ctx context.Context, objectID int64) error {
	if !s.liked.Remove(objectID) {
		return domain.ErrNotFound
	}

	// Re-read the backend so the visible counter shows the global value.
	if _, err := s.LoadLikes(ctx, objectID); err != nil {
		logrus.Warnf("failed to refresh like count after removal of %d: %v", objectID, err)
	}
	return nil
}

func (s *Service) LoadLikes(ctx context.Context, objectID int64) (int64, error) {
	res, err := s.social.GetLikes(ctx, itemID(objectID))
	if err != nil {
		if !s.counts.Has(objectID) {
			s.counts.Update(objectID, 0)
		}
		return 0, err
	}

	s.counts.Update(objectID, res.Likes)
	s.notifyRefresher(objectID)
	return res.Likes, nil
}

func (s *Service) IsLiked(objectID int64) bool {
	return s.liked.IsLiked(objectID)
}

func (s *Service) LikedArtworks() []domain.LikedArtwork {
	return s.liked.Snapshot()
}

func (s *Service) notifyRefresher(objectID int64) {
	if s.refresher != nil {
		s.refresher.Send(objectID)
	}
}

func itemID(objectID int64) string {
	return strconv.FormatInt(objectID, 10)
}
