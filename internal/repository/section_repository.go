package repository

import (
	"storefront-config-backend/internal/models"

	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *models.Section) error
	Update(section *models.Section) error
	Delete(id string) error
	GetByID(id string) (*models.Section, error)
	GetByLayout(layoutID uint) ([]models.Section, error)
	GetVisibleByLayout(layoutID uint) ([]models.Section, error)
	UpdatePositions(order []string) error
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *models.Section) error {
	return r.db.Create(section).Error
}

func (r *sectionRepository) Update(section *models.Section) error {
	return r.db.Save(section).Error
}

// Delete removes the section and its blocks for good. The cascade stops at
// blocks; owning layouts are never touched.
func (r *sectionRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("section_id = ?", id).
			Delete(&models.Block{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Section{}, "id = ?", id).Error
	})
}

func (r *sectionRepository) GetByID(id string) (*models.Section, error) {
	var section models.Section
	if err := r.db.First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) GetByLayout(layoutID uint) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.Where("layout_id = ?", layoutID).
		Order("position ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepository) GetVisibleByLayout(layoutID uint) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.Where("layout_id = ? AND visible = ?", layoutID, true).
		Order("position ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// UpdatePositions renumbers sections to match the given id order inside one
// transaction, so a concurrent reader never observes a gap or a duplicate.
func (r *sectionRepository) UpdatePositions(order []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for position, id := range order {
			if err := tx.Model(&models.Section{}).
				Where("id = ?", id).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
