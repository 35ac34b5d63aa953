package services

import (
	"errors"

	"github.com/czhengjuarez/FireDrill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRoleNotFound = errors.New("role not found")

type CustomRoleService struct {
	db *gorm.DB
}

func NewCustomRoleService(db *gorm.DB) *CustomRoleService {
	return &CustomRoleService{db: db}
}

func (s *CustomRoleService) List() ([]models.CustomRole, error) {
	var roles []models.CustomRole
	if err := s.db.Order("created_at ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *CustomRoleService) Create(role *models.CustomRole) (*models.CustomRole, error) {
	if role.Name == "" {
		return nil, errors.New("role name is required")
	}
	role.ID = uuid.NewString()
	role.IsCustom = true
	if err := s.db.Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (s *CustomRoleService) Delete(id string) error {
	result := s.db.Delete(&models.CustomRole{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}
	return nil
}
