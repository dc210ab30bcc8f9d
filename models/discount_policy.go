package models

import "time"

// CrawledDiscountPolicy 휴양림별 할인/감면 정책
// (forest_id, policy_category, target_group) 조합이 upsert 키
type CrawledDiscountPolicy struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ForestID          uint      `json:"forest_id" gorm:"uniqueIndex:idx_policy_key;not null"`
	PolicyCategory    string    `json:"policy_category" gorm:"uniqueIndex:idx_policy_key;size:40"` // 객실이용요금감면, 입장료면제, 주차료면제
	TargetGroup       string    `json:"target_group" gorm:"uniqueIndex:idx_policy_key;size:40"`    // 표준화된 대상 그룹
	DiscountRate      int       `json:"discount_rate"`                                             // 할인율(%) 0~100
	OriginalText      string    `json:"original_text" gorm:"type:text"`                            // 추출 원문
	Conditions        string    `json:"conditions" gorm:"size:100"`                                // 비수기/주중 등 적용 조건
	RequiredDocuments string    `json:"required_documents" gorm:"size:200"`                        // 증빙 서류
	CrawledAt         time.Time `json:"crawled_at" gorm:"autoUpdateTime"`
}
