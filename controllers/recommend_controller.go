package controllers

import (
	"hyurimbot/dto"
	"hyurimbot/errors"
	"hyurimbot/response"
	"hyurimbot/services"
	"hyurimbot/validator"

	"github.com/gin-gonic/gin"
)

// RecommendController 추천 API
type RecommendController struct {
	engine *services.RecommendService
}

func NewRecommendController(engine *services.RecommendService) *RecommendController {
	return &RecommendController{engine: engine}
}

// Recommend POST /api/recommend
func (rc *RecommendController) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	if err := validator.ValidateRecommend(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	results, err := rc.engine.Recommend(c.Request.Context(), req.Query, services.RecommendPrefs{
		Capacity: req.Preferences.Capacity,
		Price:    req.Preferences.Price,
		Location: req.Preferences.Location,
		TopK:     req.Preferences.TopK,
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.Error(c, 0, appErr.Message)
			return
		}
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, results, len(results))
}

// Trending GET /api/recommend/trending
func (rc *RecommendController) Trending(c *gin.Context) {
	results, err := rc.engine.Trending(c.Request.Context(), 0)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithTotal(c, results, len(results))
}

// Reload POST /api/recommend/reload (관리자)
func (rc *RecommendController) Reload(c *gin.Context) {
	if err := rc.engine.Reload(c.Request.Context()); err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}
