package dto

// RecommendPreferences 추천 선호 조건
type RecommendPreferences struct {
	Capacity int    `json:"capacity"`
	Price    int    `json:"price"`
	Location string `json:"location"`
	TopK     int    `json:"top_k"`
}

// RecommendRequest 추천 요청
type RecommendRequest struct {
	Query       string               `json:"query" binding:"required"`
	Preferences RecommendPreferences `json:"preferences"`
}
