package repository

import (
	"storefront-config-backend/internal/models"

	"gorm.io/gorm"
)

type WidgetRepository interface {
	Create(widget *models.Widget) error
	Update(widget *models.Widget) error
	Delete(id uint) error
	GetByWidgetID(templateID uint, widgetID string) (*models.Widget, error)
	GetByTemplate(templateID uint) ([]models.Widget, error)
	GetVisibleByTemplate(templateID uint) ([]models.Widget, error)
	UpdatePositions(templateID uint, order []string) error
}

type widgetRepository struct {
	db *gorm.DB
}

func NewWidgetRepository(db *gorm.DB) WidgetRepository {
	return &widgetRepository{db: db}
}

func (r *widgetRepository) Create(widget *models.Widget) error {
	return r.db.Create(widget).Error
}

// Update is the point update addressed by the storage row id, not widget_id.
func (r *widgetRepository) Update(widget *models.Widget) error {
	return r.db.Save(widget).Error
}

func (r *widgetRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Widget{}, id).Error
}

func (r *widgetRepository) GetByWidgetID(templateID uint, widgetID string) (*models.Widget, error) {
	var widget models.Widget
	if err := r.db.Where("template_id = ? AND widget_id = ?", templateID, widgetID).
		First(&widget).Error; err != nil {
		return nil, err
	}
	return &widget, nil
}

func (r *widgetRepository) GetByTemplate(templateID uint) ([]models.Widget, error) {
	var widgets []models.Widget
	if err := r.db.Where("template_id = ?", templateID).
		Order("position ASC").
		Find(&widgets).Error; err != nil {
		return nil, err
	}
	return widgets, nil
}

func (r *widgetRepository) GetVisibleByTemplate(templateID uint) ([]models.Widget, error) {
	var widgets []models.Widget
	if err := r.db.Where("template_id = ? AND visible = ?", templateID, true).
		Order("position ASC").
		Find(&widgets).Error; err != nil {
		return nil, err
	}
	return widgets, nil
}

// UpdatePositions renumbers widgets to match the given widget_id order inside
// one transaction.
func (r *widgetRepository) UpdatePositions(templateID uint, order []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for position, widgetID := range order {
			if err := tx.Model(&models.Widget{}).
				Where("template_id = ? AND widget_id = ?", templateID, widgetID).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
