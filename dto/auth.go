package dto

// LoginRequest 관리자 로그인 요청
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 로그인 성공 시 토큰 반환
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
