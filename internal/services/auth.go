package services

import (
	"errors"
	"time"

	"github.com/czhengjuarez/FireDrill/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *AuthService) Register(username, password string) (string, error) {
	var existing models.Facilitator
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return "", errors.New("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	facilitator := models.Facilitator{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&facilitator).Error; err != nil {
		return "", err
	}

	return s.GenerateToken(facilitator.ID)
}

func (s *AuthService) Login(username, password string) (string, error) {
	var facilitator models.Facilitator
	if err := s.db.Where("username = ?", username).First(&facilitator).Error; err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(facilitator.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return s.GenerateToken(facilitator.ID)
}

func (s *AuthService) GenerateToken(facilitatorID uint) (string, error) {
	claims := jwt.MapClaims{
		"facilitator_id": facilitatorID,
		"exp":            time.Now().Add(s.tokenTTL).Unix(),
		"iat":            time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	idFloat, ok := claims["facilitator_id"].(float64)
	if !ok {
		return 0, errors.New("invalid facilitator_id in token")
	}

	return uint(idFloat), nil
}
