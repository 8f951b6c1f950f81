package domain

import "context"

// Like is the wire representation of a like record on the social backend.
type Like struct {
	ItemID string `json:"item_id"`
	Likes  int64  `json:"likes"`
}

// ToggleSource tells the like usecase which surface triggered the toggle.
// Unliking from the feed needs an explicit confirmation; the liked list has
// its own remove affordance and does not.
type ToggleSource int8

const (
	SourceFeed ToggleSource = iota
	SourceLikedList
)

func (s ToggleSource) String() string {
	switch s {
	case SourceFeed:
		return "FEED"
	case SourceLikedList:
		return "LIKED_LIST"
	default:
		return "UNKNOWN"
	}
}

// ToggleResult is the state after a toggle settled.
type ToggleResult struct {
	Liked bool
	Likes int64
}

// SocialGateway defines the contract for the likes/comments backend.
// Implementations must treat an HTTP 201 response as success even when the
// transport layer routes it through its error path.
type SocialGateway interface {
	// GetLikes returns the like record for an item. An item the backend
	// has never seen yields a zero count, not an error.
	GetLikes(ctx context.Context, itemID string) (Like, error)

	// PostLike records a like and returns the reconciled record from the
	// backend.
	PostLike(ctx context.Context, like Like) (Like, error)

	// GetComments returns all comments for an item, or an empty slice when
	// there are none.
	GetComments(ctx context.Context, itemID string) ([]Comment, error)

	// PostComment submits a comment and returns the accepted record.
	PostComment(ctx context.Context, c Comment) (Comment, error)
}

type LikeUsecase interface {
	// Toggle flips the like state of the artwork optimistically: local
	// stores are mutated and broadcast first, then the backend is synced.
	// On sync failure every local change is rolled back to the pre-toggle
	// snapshot. Returns ErrConfirmationRequired when unliking from the
	// feed without confirmed set.
	Toggle(ctx context.Context, a Artwork, source ToggleSource, confirmed bool) (ToggleResult, error)

	// RemoveLiked drops the artwork from the liked list and re-reads the
	// backend count so the visible counter shows the global value again.
	RemoveLiked(ctx context.Context, objectID int64) error

	// LoadLikes refreshes the like count of one artwork from the backend
	// and seeds the count store.
	LoadLikes(ctx context.Context, objectID int64) (int64, error)

	IsLiked(objectID int64) bool
	LikedArtworks() []LikedArtwork
}

// RefreshLikesWorker periodically re-reads like counts from the social
// backend and pushes them into the count store.
type RefreshLikesWorker interface {
	Start(ctx context.Context)

	// Send queues an object id for the next refresh round. Never blocks;
	// ids are dropped when the queue is full.
	Send(objectID int64)
}

// LikeRepository is the social backend's persistence contract for like
// counters.
type LikeRepository interface {
	// Get returns the stored count for an item, zero when absent.
	Get(ctx context.Context, itemID string) (int64, error)

	// Increment bumps the counter by one, creating it at one when absent,
	// and returns the new value.
	Increment(ctx context.Context, itemID string) (int64, error)
}
