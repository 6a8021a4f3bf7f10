package service

import (
	"strings"
	"time"

	"github.com/cockpitforge/internal/config"
	"github.com/cockpitforge/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务：管理员登录签发与两类令牌解析。
// 用户注册/登录本身是外部协作方，这里只做归属识别。
type AuthService struct {
	adminRepo repository.AdminRepository
	adminJWT  config.JWTConfig
	userJWT   config.JWTConfig
}

// NewAuthService 创建认证服务
func NewAuthService(adminRepo repository.AdminRepository, adminJWT, userJWT config.JWTConfig) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		adminJWT:  adminJWT,
		userJWT:   userJWT,
	}
}

// AdminLogin 管理员登录，成功返回 JWT
func (s *AuthService) AdminLogin(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	expireHours := s.adminJWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"exp":      time.Now().Add(time.Duration(expireHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.adminJWT.SecretKey))
}

// ParseAdminToken 解析管理员令牌，返回管理员ID
func (s *AuthService) ParseAdminToken(tokenString string) (uint, error) {
	return parseIDToken(tokenString, s.adminJWT.SecretKey, "admin_id")
}

// ParseUserToken 解析用户令牌，返回用户ID
func (s *AuthService) ParseUserToken(tokenString string) (uint, error) {
	return parseIDToken(tokenString, s.userJWT.SecretKey, "user_id")
}

func parseIDToken(tokenString, secret, claimKey string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidCredentials
	}
	id, ok := claims[claimKey].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidCredentials
	}
	return uint(id), nil
}
