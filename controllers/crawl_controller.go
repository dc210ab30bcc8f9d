package controllers

import (
	"hyurimbot/constants"
	"hyurimbot/dto"
	"hyurimbot/errors"
	"hyurimbot/response"
	"hyurimbot/services"
	"hyurimbot/validator"

	"github.com/gin-gonic/gin"
)

// CrawlController 크롤링 작업 API
// 작업은 큐에 적재만 하고 즉시 작업 ID를 돌려준다
type CrawlController struct {
	queue *services.JobQueue
}

func NewCrawlController(queue *services.JobQueue) *CrawlController {
	return &CrawlController{queue: queue}
}

// CrawlBasic POST /api/crawl/basic
func (cc *CrawlController) CrawlBasic(c *gin.Context) {
	var req dto.CrawlBasicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	if err := validator.ValidateCrawlBasic(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	cc.enqueue(c, constants.JobTypeBasic, req.ForestID, 0)
}

// CrawlDetailed POST /api/crawl/detailed
func (cc *CrawlController) CrawlDetailed(c *gin.Context) {
	var req dto.CrawlDetailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	if err := validator.ValidateCrawlDetailed(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	cc.enqueue(c, constants.JobTypeDetailed, req.ForestID, req.AccommodationID)
}

// CrawlDiscounts POST /api/crawl/discount-policies
func (cc *CrawlController) CrawlDiscounts(c *gin.Context) {
	var req dto.CrawlDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	if err := validator.ValidateCrawlDiscount(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	cc.enqueue(c, constants.JobTypeDiscount, req.ForestID, 0)
}

func (cc *CrawlController) enqueue(c *gin.Context, jobType string, forestID, accommodationID uint) {
	job, err := cc.queue.Enqueue(jobType, forestID, accommodationID)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.Error(c, 0, appErr.Message)
			return
		}
		response.ServerError(c)
		return
	}
	response.Accepted(c, job)
}

// GetJob GET /api/crawl/jobs/:id
func (cc *CrawlController) GetJob(c *gin.Context) {
	job, err := cc.queue.Get(c.Param("id"))
	if err != nil {
		response.NotFound(c)
		return
	}
	response.Success(c, job)
}
