package request

import "github.com/openmuse/gallery/domain"

// CommentDraft is the gallery-side submission body; the item id comes from
// the URL and the creation date is assigned by the usecase.
type CommentDraft struct {
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

// Comment is the social backend's comment body.
type Comment struct {
	ItemID       string `json:"item_id" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Comment      string `json:"comment" binding:"required"`
	CreationDate string `json:"creation_date"`
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ItemID:       r.ItemID,
		Username:     r.Username,
		Comment:      r.Comment,
		CreationDate: r.CreationDate,
	}
}
