package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/talentpath/talentpath/src/api/proposal"
)

type Courses struct {
	engine    *proposal.Engine
	sanitizer *bluemonday.Policy
}

func NewCourses(engine *proposal.Engine) Courses {
	return Courses{engine: engine, sanitizer: bluemonday.StrictPolicy()}
}

func courseParams(c *gin.Context) (uint64, uint64, bool) {
	proposalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return 0, 0, false
	}
	courseID, err := strconv.ParseUint(c.Param("courseId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad course id"})
		return 0, 0, false
	}
	return proposalID, courseID, true
}

func (h Courses) Start(c *gin.Context) {
	proposalID, courseID, ok := courseParams(c)
	if !ok {
		return
	}
	view, err := h.engine.StartCourse(c, actorFrom(c), proposalID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h Courses) Complete(c *gin.Context) {
	proposalID, courseID, ok := courseParams(c)
	if !ok {
		return
	}
	view, err := h.engine.CompleteCourse(c, actorFrom(c), proposalID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h Courses) Notes(c *gin.Context) {
	proposalID, courseID, ok := courseParams(c)
	if !ok {
		return
	}

	var req struct {
		TalentNotes  *string    `json:"talentNotes"`
		CompanyNotes *string    `json:"companyNotes"`
		Deadline     *time.Time `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.TalentNotes != nil {
		clean := h.sanitizer.Sanitize(*req.TalentNotes)
		if len(clean) > 2000 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "notes too long"})
			return
		}
		req.TalentNotes = &clean
	}
	if req.CompanyNotes != nil {
		clean := h.sanitizer.Sanitize(*req.CompanyNotes)
		if len(clean) > 2000 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "notes too long"})
			return
		}
		req.CompanyNotes = &clean
	}

	view, err := h.engine.UpdateCourseNotes(c, actorFrom(c), proposalID, courseID, proposal.NotesInput{
		TalentNotes:  req.TalentNotes,
		CompanyNotes: req.CompanyNotes,
		Deadline:     req.Deadline,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
