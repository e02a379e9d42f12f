package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/nasa-image-explorer/internal/apod"
)

// GetAPOD godoc
// @ID          getApod
// @Summary     Astronomy Picture of the Day
// @Description Proxies the NASA APOD API. Returns an object for a single date and an array for count or date ranges. Parameters are forwarded as given.
// @Tags        NASA
// @Produce     json
// @Param       date        query     string  false  "YYYY-MM-DD"
// @Param       count       query     int     false  "Random sample size"
// @Param       start_date  query     string  false  "Range start, YYYY-MM-DD"
// @Param       end_date    query     string  false  "Range end, YYYY-MM-DD"
// @Success     200         {object}  object  "Upstream payload, verbatim"
// @Failure     500         {object}  handlers.ErrorResponse  "Key not configured or upstream failure"
// @Router      /nasa/apod [get]
func (h *Handlers) GetAPOD(c *gin.Context) {
	q := apod.Query{
		Date:      c.Query("date"),
		Count:     c.Query("count"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	body, err := h.apod.Fetch(c.Request.Context(), q)
	if err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var ue *apod.UpstreamError
	switch {
	case errors.Is(err, apod.ErrMissingAPIKey):
		failDetail(c, http.StatusInternalServerError, ErrCodeConfig, msgNoAPIKey, "", err)
	case errors.As(err, &ue):
		code := ErrCodeUpstream
		if ue.Timeout {
			code = ErrCodeUpstreamTimeout
		}
		// The upstream's own message is passed through in every environment.
		failDetail(c, http.StatusInternalServerError, code, msgUpstreamFailed, ue.Message, err)
	default:
		h.internal(c, ErrCodeUpstream, msgUpstreamFailed, err)
	}
}
