package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openmuse/gallery/domain"
	"github.com/openmuse/gallery/internal/rest/request"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

// FetchByArtwork lists the comments of an artwork, newest first.
func (h *commentHandler) FetchByArtwork(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	comments, err := h.Service.FetchByArtwork(c.Request.Context(), int64(idP))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create validates and submits a comment. An invalid draft never reaches
// the social backend; the per-field validation state is returned so the
// client can display it.
func (h *commentHandler) Create(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.CommentDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.Service.Submit(c.Request.Context(), int64(idP), req.Username, req.Comment)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidComment) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      err.Error(),
				"validation": h.Service.Validate(req.Username, req.Comment),
			})
			return
		}
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
