package responses

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"classroom-server/services/session-api/internal/utils/platformerrors"
)

// HandleError writes an error as an HTTP response, mapping typed platform
// errors to their status codes and everything else to a 500.
func HandleError(c *gin.Context, err error) {
	logger := log.With().
		Str("path", c.Request.URL.Path).
		Logger()
	platformerrors.WriteError(c, err, logger)
}
