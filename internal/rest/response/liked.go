package response

import "github.com/openmuse/gallery/domain"

type LikedArtwork struct {
	Artwork
	LikedAt string `json:"likedAt"`
}

// NewLikedArtworksFromDomain: Domain -> Response, order preserved
// (most recently liked first).
func NewLikedArtworksFromDomain(items []domain.LikedArtwork) []LikedArtwork {
	res := make([]LikedArtwork, len(items))
	for i := range items {
		res[i] = LikedArtwork{
			Artwork: NewArtworkFromDomain(&items[i].Artwork),
			LikedAt: items[i].LikedAt.Format(DateTimeFormat),
		}
	}
	return res
}
