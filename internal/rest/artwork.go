package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
	"github.com/openmuse/gallery/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageNum = 10
	PageMinNum     = 1
	PageMaxNum     = 30
)

// ArtworkHandler represent the httphandler for artworks
type ArtworkHandler struct {
	Service domain.ArtworkUsecase
}

func NewArtworkHandler(svc domain.ArtworkUsecase) *ArtworkHandler {
	return &ArtworkHandler{
		Service: svc,
	}
}

// Fetch will fetch a random batch of displayable artworks
func (h *ArtworkHandler) Fetch(c *gin.Context) {
	num := pageNum(c)

	listAr, err := h.Service.FetchRandom(c.Request.Context(), num)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewArtworksFromDomain(listAr))
}

// Search will fetch artworks relevant to the given query
func (h *ArtworkHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}
	num := pageNum(c)

	listAr, err := h.Service.Search(c.Request.Context(), query, num)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewArtworksFromDomain(listAr))
}

// GetByID will get an artwork by given id
func (h *ArtworkHandler) GetByID(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)

	art, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewArtworkFromDomain(&art))
}

// Departments will list all catalog departments
func (h *ArtworkHandler) Departments(c *gin.Context) {
	departments, err := h.Service.ListDepartments(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// FetchByDepartment will fetch artworks belonging to a department
func (h *ArtworkHandler) FetchByDepartment(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	num := pageNum(c)

	listAr, err := h.Service.FetchByDepartment(c.Request.Context(), int64(idP), num)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewArtworksFromDomain(listAr))
}

func pageNum(c *gin.Context) int {
	num, err := strconv.Atoi(c.Query("num"))
	if err != nil || num < PageMinNum || num > PageMaxNum {
		num = DefaultPageNum
	}
	return num
}

// getStatusCode will get the code of the error from the usecase layer
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case errors.Is(err, domain.ErrInternalServerError):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoArtworksFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidComment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
