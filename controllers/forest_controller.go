package controllers

import (
	"time"

	"hyurimbot/config"
	"hyurimbot/constants"
	"hyurimbot/dto"
	"hyurimbot/models"
	"hyurimbot/response"
	"hyurimbot/services"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const forestListCacheTTL = 60 * time.Second

// ForestController 휴양림 조회 API
type ForestController struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

func NewForestController(db *gorm.DB, rdb *redis.Client, log logger.Logger) *ForestController {
	return &ForestController{db: db, rdb: rdb, logger: log}
}

// GetForests GET /api/forests
// 휴양림마다 수집 상태를 계산해 함께 반환한다
func (fc *ForestController) GetForests(c *gin.Context) {
	if fc.rdb != nil {
		var cached []dto.ForestWithStatus
		if err := services.GetFromRedis(config.Ctx, fc.rdb, services.CacheKeyForestList, &cached); err == nil && len(cached) > 0 {
			response.SuccessWithTotal(c, cached, len(cached))
			return
		}
	}

	var forests []models.Forest
	if err := fc.db.Order("id").Find(&forests).Error; err != nil {
		fc.logger.Error("휴양림 조회 실패: %v", err)
		response.ServerError(c)
		return
	}

	accomCounts := fc.countByForest(&models.Accommodation{}, "")
	detailCounts := fc.countByForest(&models.Accommodation{}, "amenities != ''")
	policyCounts := fc.countByForest(&models.CrawledDiscountPolicy{}, "")

	result := make([]dto.ForestWithStatus, 0, len(forests))
	for _, f := range forests {
		status := constants.DataStatusNone
		if accomCounts[f.ID] > 0 {
			status = constants.DataStatusBasic
		}
		if detailCounts[f.ID] > 0 {
			status = constants.DataStatusDetailed
		}

		discountStatus := constants.DiscountStatusNone
		if policyCounts[f.ID] > 0 {
			discountStatus = constants.DiscountStatusCollected
		}

		result = append(result, dto.ForestWithStatus{
			Forest:         f,
			DataStatus:     status,
			DiscountStatus: discountStatus,
		})
	}

	if fc.rdb != nil {
		services.SetToRedis(config.Ctx, fc.rdb, services.CacheKeyForestList, result, forestListCacheTTL)
	}

	response.SuccessWithTotal(c, result, len(result))
}

// countByForest forest_id별 행 수 집계
func (fc *ForestController) countByForest(model interface{}, cond string) map[uint]int64 {
	type row struct {
		ForestID uint
		Cnt      int64
	}
	var rows []row

	query := fc.db.Model(model).Select("forest_id, COUNT(*) as cnt").Group("forest_id")
	if cond != "" {
		query = query.Where(cond)
	}
	if err := query.Scan(&rows).Error; err != nil {
		fc.logger.Error("집계 쿼리 실패: %v", err)
		return nil
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ForestID] = r.Cnt
	}
	return counts
}

// GetStats GET /api/stats
func (fc *ForestController) GetStats(c *gin.Context) {
	var stats dto.DBStats
	fc.db.Model(&models.Forest{}).Count(&stats.Forests)
	fc.db.Model(&models.Accommodation{}).Count(&stats.Accommodations)
	fc.db.Model(&models.Facility{}).Count(&stats.Facilities)
	fc.db.Model(&models.CrawledDiscountPolicy{}).Count(&stats.Discounts)

	response.Success(c, stats)
}
