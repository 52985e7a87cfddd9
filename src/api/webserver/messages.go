package webserver

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/talentpath/talentpath/src/api/proposal"
)

type Messages struct {
	engine    *proposal.Engine
	sanitizer *bluemonday.Policy
}

func NewMessages(engine *proposal.Engine) Messages {
	// Strict policy plus basic formatting; message bodies are rendered as
	// markdown on the frontend.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	sanitizer.AllowElements("ul", "ol", "li")
	return Messages{engine: engine, sanitizer: sanitizer}
}

func (m Messages) List(c *gin.Context) {
	proposalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	msgs, err := m.engine.ListMessages(c, actorFrom(c), proposalID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (m Messages) Create(c *gin.Context) {
	proposalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}

	var req struct {
		Body string `json:"body" binding:"required,min=1,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	body := m.sanitizer.Sanitize(req.Body)
	if !utf8.ValidString(body) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in message"})
		return
	}

	msg, err := m.engine.SendMessage(c, actorFrom(c), proposalID, body)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
