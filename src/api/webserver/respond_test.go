package webserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/talentpath/talentpath/src/api/proposal"
)

func TestRespondErrStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{proposal.ErrNotFound, http.StatusNotFound},
		{proposal.ErrForbidden, http.StatusForbidden},
		{proposal.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{proposal.ErrAlreadyDone, http.StatusConflict},
		{proposal.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", proposal.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondErr(c, tt.err)
		assert.Equal(t, tt.code, w.Code, tt.err.Error())
	}
}
