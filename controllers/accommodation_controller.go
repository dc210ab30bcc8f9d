package controllers

import (
	"strconv"

	"hyurimbot/dto"
	"hyurimbot/models"
	"hyurimbot/response"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccommodationController 숙박시설 조회 API
type AccommodationController struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewAccommodationController(db *gorm.DB, log logger.Logger) *AccommodationController {
	return &AccommodationController{db: db, logger: log}
}

// GetAccommodations GET /api/accommodations?forest_id=
func (ac *AccommodationController) GetAccommodations(c *gin.Context) {
	query := ac.db.Model(&models.Accommodation{}).Order("forest_id, name")
	if v := c.Query("forest_id"); v != "" {
		forestID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "forest_id가 올바르지 않습니다")
			return
		}
		query = query.Where("forest_id = ?", forestID)
	}

	var accommodations []models.Accommodation
	if err := query.Find(&accommodations).Error; err != nil {
		ac.logger.Error("숙박시설 조회 실패: %v", err)
		response.ServerError(c)
		return
	}

	forestNames := ac.forestNames(accommodations)

	result := make([]dto.AccommodationWithStatus, 0, len(accommodations))
	for _, a := range accommodations {
		result = append(result, dto.AccommodationWithStatus{
			Accommodation: a,
			DataStatus:    a.DataStatus(),
			ForestName:    forestNames[a.ForestID],
		})
	}

	response.SuccessWithTotal(c, result, len(result))
}

func (ac *AccommodationController) forestNames(accommodations []models.Accommodation) map[uint]string {
	ids := make([]uint, 0, len(accommodations))
	seen := make(map[uint]bool)
	for _, a := range accommodations {
		if !seen[a.ForestID] {
			seen[a.ForestID] = true
			ids = append(ids, a.ForestID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var forests []models.Forest
	if err := ac.db.Where("id IN ?", ids).Find(&forests).Error; err != nil {
		ac.logger.Error("휴양림 이름 조회 실패: %v", err)
		return nil
	}

	names := make(map[uint]string, len(forests))
	for _, f := range forests {
		names[f.ID] = f.Name
	}
	return names
}
