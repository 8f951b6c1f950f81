package response

import "github.com/openmuse/gallery/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type Artwork struct {
	ObjectID          int64  `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	Dimensions        string `json:"dimensions"`
	ObjectDate        string `json:"objectDate"`
	Department        string `json:"department,omitempty"`
	ObjectURL         string `json:"objectURL,omitempty"`
}

// NewArtworkFromDomain: Domain -> Response
func NewArtworkFromDomain(a *domain.Artwork) Artwork {
	return Artwork{
		ObjectID:          a.ObjectID,
		Title:             a.Title,
		ArtistDisplayName: a.ArtistDisplayName,
		PrimaryImage:      a.PrimaryImage,
		PrimaryImageSmall: a.PrimaryImageSmall,
		Dimensions:        a.Dimensions,
		ObjectDate:        a.ObjectDate,
		Department:        a.Department,
		ObjectURL:         a.ObjectURL,
	}
}

func NewArtworksFromDomain(as []domain.Artwork) []Artwork {
	res := make([]Artwork, len(as))
	for i := range as {
		res[i] = NewArtworkFromDomain(&as[i])
	}
	return res
}
