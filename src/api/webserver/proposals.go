package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/talentpath/talentpath/src/api/proposal"
)

type Proposals struct {
	engine    *proposal.Engine
	sanitizer *bluemonday.Policy
	pageSize  int
}

func NewProposals(engine *proposal.Engine, pageSize int) Proposals {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return Proposals{engine: engine, sanitizer: bluemonday.StrictPolicy(), pageSize: pageSize}
}

func (p Proposals) Create(c *gin.Context) {
	var req struct {
		TalentID    uint64   `json:"talentId" binding:"required"`
		Message     string   `json:"message" binding:"max=2000"`
		BudgetRange string   `json:"budgetRange" binding:"max=64"`
		CourseIDs   []uint64 `json:"courseIds" binding:"required,min=1,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	view, err := p.engine.Create(c, actorFrom(c), proposal.CreateInput{
		TalentID:    req.TalentID,
		Message:     p.sanitizer.Sanitize(req.Message),
		BudgetRange: p.sanitizer.Sanitize(req.BudgetRange),
		CourseIDs:   req.CourseIDs,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (p Proposals) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(p.pageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = p.pageSize
	}

	views, total, err := p.engine.List(c, actorFrom(c), c.Query("status"), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"proposals": views,
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
	})
}

func (p Proposals) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}
	view, err := p.engine.Get(c, actorFrom(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (p Proposals) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}

	var req struct {
		Status      string  `json:"status" binding:"max=16"`
		Message     *string `json:"message"`
		BudgetRange *string `json:"budgetRange"`
		HireNotes   string  `json:"hiringNotes" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.Message != nil {
		clean := p.sanitizer.Sanitize(*req.Message)
		if len(clean) > 2000 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "message too long"})
			return
		}
		req.Message = &clean
	}
	if req.BudgetRange != nil {
		clean := p.sanitizer.Sanitize(*req.BudgetRange)
		req.BudgetRange = &clean
	}

	view, err := p.engine.Update(c, actorFrom(c), id, proposal.UpdateInput{
		Status:      req.Status,
		Message:     req.Message,
		BudgetRange: req.BudgetRange,
		HireNotes:   p.sanitizer.Sanitize(req.HireNotes),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
