package store

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

// LikedArtworks is the process-wide liked-artwork membership store. The
// list is kept most-recently-liked first. An optional archive persists the
// list across restarts after every mutation.
type LikedArtworks struct {
	mu      sync.RWMutex
	items   []domain.LikedArtwork
	subs    map[int64]chan []domain.LikedArtwork
	nextID  int64
	archive domain.LikedArchive

	now func() time.Time
}

var _ domain.LikedArtworksStore = (*LikedArtworks)(nil)

// NewLikedArtworks creates the store. archive may be nil, in which case the
// list lives only in memory.
func NewLikedArtworks(archive domain.LikedArchive) *LikedArtworks {
	return &LikedArtworks{
		subs:    make(map[int64]chan []domain.LikedArtwork),
		archive: archive,
		now:     time.Now,
	}
}

func (s *LikedArtworks) Add(a domain.Artwork) bool {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ObjectID == a.ObjectID {
			s.mu.Unlock()
			return false
		}
	}

	liked := domain.LikedArtwork{
		Artwork: a,
		LikedAt: s.now(),
	}
	s.items = append([]domain.LikedArtwork{liked}, s.items...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.afterMutation(snapshot)
	return true
}

func (s *LikedArtworks) Remove(objectID int64) bool {
	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if s.items[i].ObjectID == objectID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.afterMutation(snapshot)
	return true
}

func (s *LikedArtworks) IsLiked(objectID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ObjectID == objectID {
			return true
		}
	}
	return false
}

func (s *LikedArtworks) Snapshot() []domain.LikedArtwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *LikedArtworks) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps the list wholesale without touching the archive; used to
// restore persisted state at startup.
func (s *LikedArtworks) Replace(items []domain.LikedArtwork) {
	s.mu.Lock()
	s.items = make([]domain.LikedArtwork, len(items))
	copy(s.items, items)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snapshot)
}

func (s *LikedArtworks) Subscribe() (<-chan []domain.LikedArtwork, func()) {
	ch := make(chan []domain.LikedArtwork, subscriberBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *LikedArtworks) snapshotLocked() []domain.LikedArtwork {
	res := make([]domain.LikedArtwork, len(s.items))
	copy(res, s.items)
	return res
}

func (s *LikedArtworks) afterMutation(snapshot []domain.LikedArtwork) {
	s.broadcast(snapshot)

	if s.archive != nil {
		if err := s.archive.Save(context.Background(), snapshot); err != nil {
			logrus.Errorf("failed to persist liked artworks: %v", err)
		}
	}
}

func (s *LikedArtworks) broadcast(snapshot []domain.LikedArtwork) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			logrus.Debug("liked artworks subscriber is slow, snapshot dropped")
		}
	}
}
