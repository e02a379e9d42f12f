// Favorites HTTP handlers.
//
// This file exposes REST endpoints for favorite resources:
//   - POST   /favorites           (add)
//   - GET    /favorites/{userId}  (list, newest first)
//   - DELETE /favorites/{id}      (remove)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/nasa-image-explorer/internal/http/middleware"
	"github.com/tbourn/nasa-image-explorer/internal/services"
)

// AddFavoriteRequest is the JSON payload for saving a favorite.
type AddFavoriteRequest struct {
	UserID      string `json:"userId" example:"user_k3j4h5"`
	Title       string `json:"title" example:"Pillars of Creation"`
	URL         string `json:"url" example:"https://apod.nasa.gov/apod/image/2405/pillars.jpg"`
	Date        string `json:"date" example:"2024-05-01"`
	Explanation string `json:"explanation" example:"Columns of cold gas and dust."`
	// MediaType is "image" (default) or "video".
	MediaType string `json:"mediaType,omitempty" example:"image"`
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Save a favorite
// @Description Saves an APOD entry for a user. A user can save a given date only once.
// @Tags        Favorites
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.AddFavoriteRequest  true  "Favorite payload"
// @Success     201   {object}  domain.Favorite
// @Failure     400   {object}  handlers.ErrorResponse  "Missing fields, bad media type or already in favorites"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /favorites [post]
func (h *Handlers) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidJSON)
		return
	}

	f, err := h.favSvc.Add(c.Request.Context(), services.AddFavoriteInput{
		UserID:      req.UserID,
		Title:       req.Title,
		URL:         req.URL,
		Date:        req.Date,
		Explanation: req.Explanation,
		MediaType:   req.MediaType,
	})
	switch {
	case err == nil:
		middleware.LoggerFrom(c).Info().Str("favorite_id", f.ID).Str("date", f.Date).Msg("favorite added")
		ok(c, http.StatusCreated, f)
	case services.IsValidation(err):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, validationMessage(err))
	case errors.Is(err, services.ErrAlreadyFavorited):
		fail(c, http.StatusBadRequest, ErrCodeConflict, msgAlreadyFavorited)
	default:
		h.internal(c, ErrCodeSaveFailed, msgSaveFailed, err)
	}
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     List a user's favorites
// @Description Returns all favorites of the user, newest first. Unknown users get an empty array.
// @Tags        Favorites
// @Produce     json
// @Param       userId  path      string  true  "Opaque user id"
// @Success     200     {array}   domain.Favorite
// @Failure     400     {object}  handlers.ErrorResponse  "User ID is required"
// @Failure     500     {object}  handlers.ErrorResponse  "Internal error"
// @Router      /favorites/{userId} [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	favs, err := h.favSvc.List(c.Request.Context(), c.Param("userId"))
	switch {
	case err == nil:
		ok(c, http.StatusOK, favs)
	case services.IsValidation(err):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, validationMessage(err))
	default:
		h.internal(c, ErrCodeListFailed, msgListFailed, err)
	}
}

// RemoveFavorite godoc
// @ID          removeFavorite
// @Summary     Remove a favorite
// @Tags        Favorites
// @Produce     json
// @Param       id   path      string  true  "Favorite id (24 hex chars)"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid favorite ID"
// @Failure     404  {object}  handlers.ErrorResponse  "Favorite not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /favorites/{id} [delete]
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	err := h.favSvc.Remove(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		ok(c, http.StatusOK, MessageResponse{Message: msgFavRemoved})
	case services.IsValidation(err):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, validationMessage(err))
	case errors.Is(err, services.ErrFavoriteNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, msgFavNotFound)
	default:
		h.internal(c, ErrCodeRemoveFailed, msgRemoveFailed, err)
	}
}

// validationMessage maps a service validation error to its client message.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, services.ErrInvalidMediaType):
		return msgInvalidMediaType
	case errors.Is(err, services.ErrMissingUserID):
		return msgUserIDRequired
	case errors.Is(err, services.ErrInvalidID):
		return msgInvalidID
	default:
		return "Invalid request"
	}
}
