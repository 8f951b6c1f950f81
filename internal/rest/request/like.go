package request

import "github.com/openmuse/gallery/domain"

// ToggleLike is the gallery-side toggle body.
type ToggleLike struct {
	// FromLikedList marks the toggle as coming from the liked list's
	// remove affordance, which skips the confirmation guard.
	FromLikedList bool `json:"from_liked_list"`

	// Confirmed acknowledges the destructive-action prompt when unliking
	// from the feed.
	Confirmed bool `json:"confirmed"`
}

func (r *ToggleLike) Source() domain.ToggleSource {
	if r.FromLikedList {
		return domain.SourceLikedList
	}
	return domain.SourceFeed
}

// Like is the social backend's like body.
type Like struct {
	ItemID string `json:"item_id" binding:"required"`
	Likes  int64  `json:"likes"`
}
