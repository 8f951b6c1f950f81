package domain

import (
	"context"
)

// Artwork is representing the Artwork data struct as returned by the catalog.
// An Artwork is immutable once fetched; it is only filtered or copied.
type Artwork struct {
	ObjectID          int64  `json:"objectID"`          // Unique identifier assigned by the catalog
	Title             string `json:"title"`             // Artwork title
	ArtistDisplayName string `json:"artistDisplayName"` // Attributed artist
	PrimaryImage      string `json:"primaryImage"`      // Full resolution image URL
	PrimaryImageSmall string `json:"primaryImageSmall"` // Thumbnail image URL
	Dimensions        string `json:"dimensions"`
	ObjectDate        string `json:"objectDate"`
	Department        string `json:"department"`
	Medium            string `json:"medium"`
	Culture           string `json:"culture"`
	ObjectURL         string `json:"objectURL"`
}

// Displayable reports whether the artwork is eligible for display:
// it must carry an id, a non-empty title and at least one image URL.
func (a Artwork) Displayable() bool {
	return a.ObjectID != 0 && a.Title != "" && (a.PrimaryImage != "" || a.PrimaryImageSmall != "")
}

// Department is a catalog department that artworks can be browsed by.
type Department struct {
	DepartmentID int64  `json:"departmentId"`
	DisplayName  string `json:"displayName"`
}

// ArtworkCatalog defines the contract for the third-party collection API.
// There is no retry policy at this layer; throttling and backoff belong to
// the fetch pipeline above it.
type ArtworkCatalog interface {
	// SearchIDs issues a keyword search and returns the matching object ids.
	// Returns an empty slice when nothing matches and ErrNetwork on
	// transport failure.
	SearchIDs(ctx context.Context, query string, imagesOnly bool) ([]int64, error)

	// GetObject fetches a single object by id.
	// Returns ErrNotFound when the id is unknown to the catalog. Some ids
	// returned by SearchIDs legitimately 404; callers must tolerate that.
	GetObject(ctx context.Context, id int64) (Artwork, error)

	// ListDepartments returns all catalog departments.
	ListDepartments(ctx context.Context) ([]Department, error)

	// ObjectIDsByDepartment returns the object ids belonging to a department.
	ObjectIDsByDepartment(ctx context.Context, departmentID int64) ([]int64, error)
}

// ArtworkRepository coordinates the cache and the catalog. The fetch
// pipeline only talks to this interface.
type ArtworkRepository interface {
	GetByID(ctx context.Context, id int64) (Artwork, error)

	// GetByIDs resolves a batch of ids, serving from cache where possible.
	// Ids that cannot be resolved are silently omitted from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]Artwork, error)

	SearchIDs(ctx context.Context, query string, imagesOnly bool) ([]int64, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	ObjectIDsByDepartment(ctx context.Context, departmentID int64) ([]int64, error)
}

type ArtworkCache interface {
	GetArtwork(ctx context.Context, id int64) (Artwork, error)
	GetArtworkByIDs(ctx context.Context, ids []int64) ([]Artwork, error)
	SetArtwork(ctx context.Context, a *Artwork) error
	BatchSetArtwork(ctx context.Context, as []Artwork) error

	GetDepartments(ctx context.Context) ([]Department, error)
	SetDepartments(ctx context.Context, ds []Department) error
}

type ArtworkUsecase interface {
	// FetchRandom returns up to n displayable artworks sampled from a
	// generic painting query. Fewer than n are returned only when the
	// candidate pool is exhausted.
	FetchRandom(ctx context.Context, n int) ([]Artwork, error)

	// Search returns relevance-filtered artworks for a free-text query,
	// most relevant first.
	Search(ctx context.Context, query string, n int) ([]Artwork, error)

	// FetchByDepartment returns up to n displayable artworks from a
	// department, falling back to a keyword search and finally to the
	// random sample so the result is never empty for a valid department.
	FetchByDepartment(ctx context.Context, departmentID int64, n int) ([]Artwork, error)

	ListDepartments(ctx context.Context) ([]Department, error)
	GetByID(ctx context.Context, id int64) (Artwork, error)
}
