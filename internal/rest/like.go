package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openmuse/gallery/domain"
	"github.com/openmuse/gallery/internal/rest/request"
	"github.com/openmuse/gallery/internal/rest/response"
)

type LikeHandler struct {
	Service  domain.LikeUsecase
	Artworks domain.ArtworkUsecase
}

func NewLikeHandler(svc domain.LikeUsecase, artworks domain.ArtworkUsecase) *LikeHandler {
	return &LikeHandler{
		Service:  svc,
		Artworks: artworks,
	}
}

// Toggle flips the like state of an artwork. Unliking from the feed needs
// confirmed=true in the body; the liked list passes source=liked_list and
// skips the guard.
func (h *LikeHandler) Toggle(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)

	var req request.ToggleLike
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	art, err := h.Artworks.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res, err := h.Service.Toggle(ctx, art, req.Source(), req.Confirmed)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": res.Liked, "likes": res.Likes})
}

// GetLikes returns the current like count and membership for an artwork,
// refreshing the count store from the social backend.
func (h *LikeHandler) GetLikes(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)

	likes, err := h.Service.LoadLikes(c.Request.Context(), id)
	if err != nil {
		// A card is still rendered when the backend is down; serve zero.
		likes = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id":  strconv.FormatInt(id, 10),
		"likes":    likes,
		"is_liked": h.Service.IsLiked(id),
	})
}

// ListLiked returns the liked collection, most recently liked first.
func (h *LikeHandler) ListLiked(c *gin.Context) {
	items := h.Service.LikedArtworks()
	c.JSON(http.StatusOK, response.NewLikedArtworksFromDomain(items))
}

// RemoveLiked drops an artwork from the liked collection without a
// confirmation guard; the liked list is the remove affordance itself.
func (h *LikeHandler) RemoveLiked(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	if err := h.Service.RemoveLiked(c.Request.Context(), int64(idP)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
