package validator

import (
	"strings"

	"hyurimbot/dto"
	"hyurimbot/errors"
)

// ValidateLogin 로그인 요청 검증
func ValidateLogin(req *dto.LoginRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "아이디를 입력해 주세요", nil)
	}
	if req.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "비밀번호를 입력해 주세요", nil)
	}
	return nil
}

// ValidateCrawlBasic 기본 크롤링 요청 검증
func ValidateCrawlBasic(req *dto.CrawlBasicRequest) error {
	if req.ForestID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "휴양림 ID가 필요합니다", nil)
	}
	return nil
}

// ValidateCrawlDetailed 상세 크롤링 요청 검증
func ValidateCrawlDetailed(req *dto.CrawlDetailedRequest) error {
	if req.ForestID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "휴양림 ID가 필요합니다", nil)
	}
	if req.AccommodationID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "숙박시설 ID가 필요합니다", nil)
	}
	return nil
}

// ValidateCrawlDiscount 할인정책 크롤링 요청 검증
func ValidateCrawlDiscount(req *dto.CrawlDiscountRequest) error {
	if req.ForestID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "휴양림 ID가 필요합니다", nil)
	}
	return nil
}

// ValidateRecommend 추천 요청 검증
func ValidateRecommend(req *dto.RecommendRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "검색어를 입력해 주세요", nil)
	}
	if req.Preferences.Capacity < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "인원은 음수일 수 없습니다", nil)
	}
	if req.Preferences.Price < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "가격은 음수일 수 없습니다", nil)
	}
	if req.Preferences.TopK < 0 || req.Preferences.TopK > 50 {
		return errors.NewAppError(errors.ErrCodeValidation, "추천 개수는 1~50 사이여야 합니다", nil)
	}
	return nil
}
