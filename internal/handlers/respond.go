package handlers

import (
	"github.com/gin-gonic/gin"

	"commentboard/api/internal/apperr"
)

// respondError is the single place domain failures become HTTP responses.
// Internal errors are logged with detail and answered with a fixed body.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		h.log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	c.JSON(kind.Status(), gin.H{"error": apperr.Message(err)})
}
