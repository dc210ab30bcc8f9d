package services

import (
	"os"
	"time"

	"hyurimbot/constants"
	"hyurimbot/errors"

	"github.com/dgrijalva/jwt-go"
)

func jwtSecret() []byte {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = "hyurimbot-dev-secret"
	}
	return []byte(secret)
}

// CreateToken 관리자용 24시간 JWT 발급
func CreateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"username": username,
			"role":     constants.RoleAdmin,
		},
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken 토큰 검증 후 username, role, 만료 시각 반환
func ParseToken(tokenString string) (string, int, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "지원하지 않는 서명 방식입니다", nil)
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", 0, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "토큰이 유효하지 않습니다", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "토큰 claims를 해석할 수 없습니다", nil)
	}

	userInfo, ok := claims["userinfo"].(map[string]interface{})
	if !ok {
		return "", 0, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "토큰에 사용자 정보가 없습니다", nil)
	}

	username, okName := userInfo["username"].(string)
	if !okName {
		return "", 0, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "토큰에 username이 없습니다", nil)
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return "", 0, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "토큰에 role이 없습니다", nil)
	}

	var expiresAt time.Time
	if exp, okExp := claims["exp"].(float64); okExp {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return username, int(role), expiresAt, nil
}
