package repository

import (
	"storefront-config-backend/internal/models"

	"gorm.io/gorm"
)

type BlockRepository interface {
	Create(block *models.Block) error
	Update(block *models.Block) error
	Delete(id string) error
	GetByID(id string) (*models.Block, error)
	GetBySection(sectionID string) ([]models.Block, error)
	GetVisibleBySection(sectionID string) ([]models.Block, error)
	UpdatePositions(order []string) error
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(block *models.Block) error {
	return r.db.Create(block).Error
}

func (r *blockRepository) Update(block *models.Block) error {
	return r.db.Save(block).Error
}

func (r *blockRepository) Delete(id string) error {
	return r.db.Unscoped().Delete(&models.Block{}, "id = ?", id).Error
}

func (r *blockRepository) GetByID(id string) (*models.Block, error) {
	var block models.Block
	if err := r.db.First(&block, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *blockRepository) GetBySection(sectionID string) ([]models.Block, error) {
	var blocks []models.Block
	if err := r.db.Where("section_id = ?", sectionID).
		Order("position ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *blockRepository) GetVisibleBySection(sectionID string) ([]models.Block, error) {
	var blocks []models.Block
	if err := r.db.Where("section_id = ? AND visible = ?", sectionID, true).
		Order("position ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// UpdatePositions renumbers blocks to match the given id order inside one
// transaction.
func (r *blockRepository) UpdatePositions(order []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for position, id := range order {
			if err := tx.Model(&models.Block{}).
				Where("id = ?", id).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
