package store

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

// subscriberBuffer bounds the per-subscriber queue; a consumer that stops
// draining only loses intermediate snapshots, never the final one it reads.
const subscriberBuffer = 8

// LikeCounts is the process-wide like-count cache shared by every view of
// the same artwork. Mutations are synchronous; every Update broadcasts the
// full snapshot to all subscribers.
type LikeCounts struct {
	mu     sync.RWMutex
	counts map[int64]int64
	subs   map[int64]chan map[int64]int64
	nextID int64
}

var _ domain.LikeCountStore = (*LikeCounts)(nil)

func NewLikeCounts() *LikeCounts {
	return &LikeCounts{
		counts: make(map[int64]int64),
		subs:   make(map[int64]chan map[int64]int64),
	}
}

func (s *LikeCounts) Get(objectID int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[objectID]
}

func (s *LikeCounts) Has(objectID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.counts[objectID]
	return ok
}

func (s *LikeCounts) Update(objectID int64, likes int64) {
	if likes < 0 {
		likes = 0
	}

	s.mu.Lock()
	s.counts[objectID] = likes
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snapshot)
}

func (s *LikeCounts) Delete(objectID int64) {
	s.mu.Lock()
	if _, ok := s.counts[objectID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.counts, objectID)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snapshot)
}

func (s *LikeCounts) Snapshot() map[int64]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *LikeCounts) snapshotLocked() map[int64]int64 {
	res := make(map[int64]int64, len(s.counts))
	for id, likes := range s.counts {
		res[id] = likes
	}
	return res
}

func (s *LikeCounts) Subscribe() (<-chan map[int64]int64, func()) {
	ch := make(chan map[int64]int64, subscriberBuffer)

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

func (s *LikeCounts) broadcast(snapshot map[int64]int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			logrus.Debug("like count subscriber is slow, snapshot dropped")
		}
	}
}
