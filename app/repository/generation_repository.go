package repository

import (
	"gorm.io/gorm"

	"github.com/adityasampath/Imagify-Project/app/models"
)

// generationRepository implements the GenerationRepository interface
type generationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new generation repository instance
func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

// Create persists a generation audit row
func (r *generationRepository) Create(generation *models.Generation) error {
	return r.db.Create(generation).Error
}

// CountByUserID returns how many generations a user has completed
func (r *generationRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Generation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
