package dto

// CrawlBasicRequest 기본 크롤링 요청
type CrawlBasicRequest struct {
	ForestID uint `json:"forest_id" binding:"required"`
}

// CrawlDetailedRequest 상세 크롤링 요청
type CrawlDetailedRequest struct {
	ForestID        uint `json:"forest_id" binding:"required"`
	AccommodationID uint `json:"accommodation_id" binding:"required"`
}

// CrawlDiscountRequest 할인정책 크롤링 요청
type CrawlDiscountRequest struct {
	ForestID uint `json:"forest_id" binding:"required"`
}
