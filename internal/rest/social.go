package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmuse/gallery/domain"
	"github.com/openmuse/gallery/internal/rest/request"
)

// SocialHandler is the http handler of the likes/comments backend.
type SocialHandler struct {
	Likes    domain.LikeRepository
	Comments domain.CommentRepository
}

func NewSocialHandler(likes domain.LikeRepository, comments domain.CommentRepository) *SocialHandler {
	return &SocialHandler{
		Likes:    likes,
		Comments: comments,
	}
}

// GetLikes returns the like record of an item.
func (h *SocialHandler) GetLikes(c *gin.Context) {
	itemID := c.Query("item_id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}

	likes, err := h.Likes.Get(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
			return
		}
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.Like{ItemID: itemID, Likes: likes})
}

// PostLike bumps the like counter of an item by one and answers 201 with
// the reconciled record. The count the client sends is advisory only.
func (h *SocialHandler) PostLike(c *gin.Context) {
	var req request.Like
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	likes, err := h.Likes.Increment(c.Request.Context(), req.ItemID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, domain.Like{ItemID: req.ItemID, Likes: likes})
}

// GetComments lists all comments of an item.
func (h *SocialHandler) GetComments(c *gin.Context) {
	itemID := c.Query("item_id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}

	comments, err := h.Comments.FetchByItem(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// PostComment stores a comment and answers 201 echoing the stored record.
func (h *SocialHandler) PostComment(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := req.ToDomain()
	if err := h.Comments.Store(c.Request.Context(), &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
