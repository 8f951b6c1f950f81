package domain

import "context"

// Comment domain model. ItemID is the string form of the artwork's
// objectID; CreationDate is ISO-8601. Comments are never mutated or
// deleted once the backend accepted them.
type Comment struct {
	ItemID       string `json:"item_id"`
	Username     string `json:"username"`
	Comment      string `json:"comment"`
	CreationDate string `json:"creation_date"`
}

// FieldValidation tracks the validity of a single form field, kept for
// display purposes only.
type FieldValidation struct {
	IsValid      bool   `json:"is_valid"`
	ErrorMessage string `json:"error_message"`
}

// CommentValidation is the per-field validation state of a submission.
type CommentValidation struct {
	Username FieldValidation `json:"username"`
	Comment  FieldValidation `json:"comment"`
}

func (v CommentValidation) OK() bool {
	return v.Username.IsValid && v.Comment.IsValid
}

// CommentUsecase 评论业务逻辑接口
type CommentUsecase interface {
	// Validate checks a draft without touching the network.
	Validate(username, comment string) CommentValidation

	// Submit validates and posts a comment. Invalid drafts block the
	// submission with ErrInvalidComment before any network call. On
	// success the comment is appended to the in-memory list for the item.
	Submit(ctx context.Context, objectID int64, username, comment string) (Comment, error)

	// FetchByArtwork loads all comments for an artwork, newest first.
	FetchByArtwork(ctx context.Context, objectID int64) ([]Comment, error)
}

// CommentRepository 数据存取接口 (social backend)
type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	FetchByItem(ctx context.Context, itemID string) ([]Comment, error)
}
