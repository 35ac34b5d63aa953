package services

import (
	"errors"
	"time"

	"github.com/czhengjuarez/FireDrill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// List returns summaries only; the inject decks can get large.
func (s *ProjectService) List() ([]models.ProjectSummary, error) {
	var projects []models.Project
	if err := s.db.Order("updated_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	summaries := make([]models.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = models.ProjectSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
	}
	return summaries, nil
}

func (s *ProjectService) Create(project *models.Project) (*models.Project, error) {
	if project.Name == "" {
		return nil, errors.New("project name is required")
	}
	project.ID = uuid.NewString()
	if err := s.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}

// Update replaces the stored project with the caller's document, keeping
// id and creation time.
func (s *ProjectService) Update(id string, project *models.Project) (*models.Project, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	project.ID = existing.ID
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now()
	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(id string) error {
	result := s.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
