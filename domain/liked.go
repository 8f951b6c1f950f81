package domain

import (
	"context"
	"time"
)

// LikedArtwork is an Artwork the user added to their liked collection.
// Owned exclusively by the LikedArtworksStore; consumers only ever hold
// transient copies.
type LikedArtwork struct {
	Artwork
	LikedAt time.Time `json:"likedAt"`
}

// LikedArtworksStore is the process-wide cache of liked-artwork membership.
// Mutations are synchronous; every mutation broadcasts the full current
// snapshot to all subscribers, most-recently-liked first.
type LikedArtworksStore interface {
	// Add inserts the artwork at the front of the liked list. Adding an
	// already-present id is a no-op; reports whether the store changed.
	Add(a Artwork) bool

	// Remove deletes the artwork by id. Removing an absent id is a no-op;
	// reports whether the store changed.
	Remove(objectID int64) bool

	IsLiked(objectID int64) bool
	Snapshot() []LikedArtwork
	Len() int

	// Replace swaps the whole liked list, used when restoring persisted
	// state at startup.
	Replace(items []LikedArtwork)

	// Subscribe registers a listener that receives the complete snapshot
	// on every mutation. The returned cancel func must be called when the
	// consumer goes away.
	Subscribe() (<-chan []LikedArtwork, func())
}

// LikeCountStore is the process-wide cache of like counts per object id.
// A count is populated lazily on first view and never negative.
type LikeCountStore interface {
	Get(objectID int64) int64
	Has(objectID int64) bool

	// Update stores the count and broadcasts the full snapshot.
	Update(objectID int64, likes int64)

	// Delete removes the entry entirely, restoring never-seen state, and
	// broadcasts the full snapshot. Deleting an absent id is a no-op.
	Delete(objectID int64)

	Snapshot() map[int64]int64
	Subscribe() (<-chan map[int64]int64, func())
}

// LikedArchive persists the liked list across restarts as a serialized
// array of LikedArtwork records under a fixed key.
type LikedArchive interface {
	Load(ctx context.Context) ([]LikedArtwork, error)
	Save(ctx context.Context, items []LikedArtwork) error
}
