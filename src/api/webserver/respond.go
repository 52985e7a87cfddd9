package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentpath/talentpath/src/api/proposal"
)

func actorFrom(c *gin.Context) proposal.Actor {
	return proposal.Actor{ID: c.GetUint64("uid"), Role: c.GetString("role")}
}

// respondErr maps engine error categories to stable status codes: retryable
// causes stay distinguishable from permanent rejections.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, proposal.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
	case errors.Is(err, proposal.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"err": "forbidden"})
	case errors.Is(err, proposal.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": "invalid transition"})
	case errors.Is(err, proposal.ErrAlreadyDone):
		c.JSON(http.StatusConflict, gin.H{"err": "already done"})
	case errors.Is(err, proposal.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"err": "validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
	}
}
