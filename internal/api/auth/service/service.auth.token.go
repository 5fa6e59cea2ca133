// Package authsvc - tạo và xác thực JWT token, băm mật khẩu.
package authsvc

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dgrijalva/jwt-go"

	models "content_craft/internal/api/auth/models"
	"content_craft/internal/common"
)

// tokenLifetime là thời gian sống của JWT token
const tokenLifetime = 72 * time.Hour

// CreateToken tạo JWT token mới cho user với claims UserID + time + số ngẫu nhiên.
// Time và randomNumber làm token mỗi lần login là duy nhất.
func CreateToken(secret string, userID string, timeHex string, randomNumber string) (string, error) {
	claims := models.JwtToken{
		UserID:       userID,
		Time:         timeHex,
		RandomNumber: randomNumber,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenLifetime).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", common.NewError(common.ErrCodeAuthToken, "Không thể tạo token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// VerifyToken xác thực JWT token và trả về claims.
// Trả về ErrTokenExpired nếu token hết hạn, ErrTokenInvalid cho các lỗi khác.
func VerifyToken(secret string, tokenStr string) (*models.JwtToken, error) {
	claims := &models.JwtToken{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// GenerateSalt sinh salt ngẫu nhiên 16 bytes dạng hex
func GenerateSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể sinh salt", common.StatusInternalServerError, err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword băm mật khẩu với salt bằng SHA-256
func HashPassword(password string, salt string) string {
	hash := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(hash[:])
}

// ComparePassword so sánh mật khẩu plaintext với hash đã lưu
func ComparePassword(password string, salt string, hashed string) bool {
	return HashPassword(password, salt) == hashed
}
