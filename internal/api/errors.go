package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/apperr"
	"github.com/lalith-99/flocknest/internal/repository"
)

// respondError maps a core error onto a transport status. The two
// error kinds carry the whole contract: input errors are 400, access
// errors 403. A dead session is the one access error that means
// "re-authenticate", so it gets 401. Anything unclassified is a bug,
// logged and hidden behind a 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperr.IsAccess(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.IsInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
