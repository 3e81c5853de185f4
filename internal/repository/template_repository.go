package repository

import (
	"storefront-config-backend/internal/models"

	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(template *models.Template) error
	GetByID(id uint) (*models.Template, error)
	GetByKey(storeID, templateType, name string) (*models.Template, error)
	GetAllByStore(storeID string) ([]models.Template, error)
	Delete(id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *models.Template) error {
	return r.db.Create(template).Error
}

func (r *templateRepository) GetByID(id uint) (*models.Template, error) {
	var template models.Template
	if err := r.db.First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) GetByKey(storeID, templateType, name string) (*models.Template, error) {
	var template models.Template
	if err := r.db.Where(
		"store_id = ? AND template_type = ? AND name = ?",
		storeID, templateType, name,
	).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) GetAllByStore(storeID string) ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.Where("store_id = ?", storeID).
		Order("template_type ASC, name ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("template_id = ?", id).
			Delete(&models.Widget{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Template{}, id).Error
	})
}
