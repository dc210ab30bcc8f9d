package constants

// 데이터 수집 상태
const (
	DataStatusNone     = "미수집"
	DataStatusBasic    = "기본"
	DataStatusDetailed = "상세"
)

// 할인정책 수집 상태
const (
	DiscountStatusNone      = "미수집"
	DiscountStatusCollected = "수집"
)

// 크롤링 작업 상태
const (
	JobStatusPending = "대기"
	JobStatusRunning = "실행중"
	JobStatusDone    = "완료"
	JobStatusFailed  = "실패"
)

// 크롤링 작업 종류
const (
	JobTypeBasic    = "basic"
	JobTypeDetailed = "detailed"
	JobTypeDiscount = "discount"
)

// 관리자 role
const (
	RoleAdmin = 1
)
