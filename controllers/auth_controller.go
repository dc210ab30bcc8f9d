package controllers

import (
	"log"
	"time"

	"hyurimbot/config"
	"hyurimbot/dto"
	"hyurimbot/response"
	"hyurimbot/services"
	"hyurimbot/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const adminUsername = "admin"

// AuthController 관리자 인증
type AuthController struct {
	rdb          *redis.Client
	passwordHash []byte
}

// NewAuthController 관리자 비밀번호는 ADMIN_PASSWORD 환경변수로 교체 가능
func NewAuthController(rdb *redis.Client) *AuthController {
	password := config.GetEnvDefault("ADMIN_PASSWORD", "hyurimbot2025")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("관리자 비밀번호 해시 생성 실패: %v", err)
	}
	return &AuthController{
		rdb:          rdb,
		passwordHash: hash,
	}
}

// Login POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	if err := validator.ValidateLogin(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if req.Username != adminUsername ||
		bcrypt.CompareHashAndPassword(ac.passwordHash, []byte(req.Password)) != nil {
		response.Unauthorized(c)
		return
	}

	token, err := services.CreateToken(req.Username)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}

// Logout POST /api/auth/logout
// 토큰 만료 전까지 차단 목록에 등록한다
func (ac *AuthController) Logout(c *gin.Context) {
	tokenValue, exists := c.Get("token")
	if !exists {
		response.Unauthorized(c)
		return
	}
	token := tokenValue.(string)

	_, _, expiresAt, err := services.ParseToken(token)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if ac.rdb != nil {
		ttl := time.Until(expiresAt)
		if err := services.BlacklistToken(config.Ctx, ac.rdb, token, ttl); err != nil {
			response.ServerError(c)
			return
		}
	}

	response.Success(c, nil)
}
