package errors

import (
	"errors"
	"fmt"
)

// ErrorCode 정의 에러 코드
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"

	// Crawl errors
	ErrCodeNavigation       ErrorCode = "NAVIGATION_ERROR"
	ErrCodeFacilityNotFound ErrorCode = "FACILITY_NOT_FOUND"
	ErrCodeExtractionEmpty  ErrorCode = "EXTRACTION_EMPTY"
	ErrCodeNoHomepage       ErrorCode = "NO_HOMEPAGE"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Job errors
	ErrCodeJobNotFound ErrorCode = "JOB_NOT_FOUND"
	ErrCodeJobQueue    ErrorCode = "JOB_QUEUE_FULL"
)

// AppError 애플리케이션 공통 에러
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError 새 AppError 생성
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError error가 AppError인지 확인
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError error에서 AppError 추출
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// Crawl errors
	ErrForestNotFound        = errors.New("forest not found")
	ErrForestWithoutHomepage = errors.New("forest has no foresttrip homepage")
	ErrFacilityNotMatched    = errors.New("facility not matched on list page")
	ErrEmptyExtraction       = errors.New("extraction produced no fields")

	// Recommend errors
	ErrNoCandidates = errors.New("no accommodations to score")

	// Auth errors
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidPassword = errors.New("invalid password")

	// Job errors
	ErrJobNotFound = errors.New("job not found")
)
