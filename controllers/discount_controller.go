package controllers

import (
	"strconv"

	"hyurimbot/models"
	"hyurimbot/response"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DiscountController 할인 정책 조회 API
type DiscountController struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewDiscountController(db *gorm.DB, log logger.Logger) *DiscountController {
	return &DiscountController{db: db, logger: log}
}

// GetDiscounts GET /api/discounts?forest_id=
func (dc *DiscountController) GetDiscounts(c *gin.Context) {
	query := dc.db.Model(&models.CrawledDiscountPolicy{}).Order("forest_id, policy_category, target_group")
	if v := c.Query("forest_id"); v != "" {
		forestID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "forest_id가 올바르지 않습니다")
			return
		}
		query = query.Where("forest_id = ?", forestID)
	}

	var policies []models.CrawledDiscountPolicy
	if err := query.Find(&policies).Error; err != nil {
		dc.logger.Error("할인 정책 조회 실패: %v", err)
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, policies, len(policies))
}
