package controllers

import (
	"strconv"

	"hyurimbot/models"
	"hyurimbot/response"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FacilityController 시설 목록 조회 API
type FacilityController struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewFacilityController(db *gorm.DB, log logger.Logger) *FacilityController {
	return &FacilityController{db: db, logger: log}
}

// GetFacilities GET /api/facilities?forest_id=
func (fc *FacilityController) GetFacilities(c *gin.Context) {
	query := fc.db.Model(&models.Facility{}).Order("forest_id, name")
	if v := c.Query("forest_id"); v != "" {
		forestID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "forest_id가 올바르지 않습니다")
			return
		}
		query = query.Where("forest_id = ?", forestID)
	}

	var facilities []models.Facility
	if err := query.Find(&facilities).Error; err != nil {
		fc.logger.Error("시설 조회 실패: %v", err)
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, facilities, len(facilities))
}
