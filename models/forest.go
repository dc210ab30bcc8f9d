package models

import "time"

// Forest 전국 자연휴양림
type Forest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:100"` // 휴양림 이름
	Sido      string    `json:"sido" gorm:"size:20"`              // 소재 시도
	HmpgID    string    `json:"hmpg_id" gorm:"size:40"`           // 숲나들e 홈페이지 식별자, 없으면 빈 문자열
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Accommodations []Accommodation `json:"-" gorm:"foreignKey:ForestID"`
}

// HasHomepage 숲나들e 페이지 보유 여부
func (f *Forest) HasHomepage() bool {
	return f.HmpgID != ""
}
