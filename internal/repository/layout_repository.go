package repository

import (
	"errors"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LayoutRepository interface {
	Create(layout *models.PageLayout) error
	GetByID(id uint) (*models.PageLayout, error)
	GetByTarget(storeID, pageType, pageHandle, variant string) (*models.PageLayout, error)
	GetAllByStore(storeID string) ([]models.PageLayout, error)
	Delete(id uint) error
	ReplacePublished(draft *models.PageLayout, sections []models.Section) (*models.PageLayout, error)
}

type layoutRepository struct {
	db *gorm.DB
}

func NewLayoutRepository(db *gorm.DB) LayoutRepository {
	return &layoutRepository{db: db}
}

func (r *layoutRepository) Create(layout *models.PageLayout) error {
	return r.db.Create(layout).Error
}

func (r *layoutRepository) GetByID(id uint) (*models.PageLayout, error) {
	var layout models.PageLayout
	if err := r.db.First(&layout, id).Error; err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *layoutRepository) GetByTarget(storeID, pageType, pageHandle, variant string) (*models.PageLayout, error) {
	var layout models.PageLayout
	if err := r.db.Where(
		"store_id = ? AND page_type = ? AND page_handle = ? AND variant = ?",
		storeID, pageType, pageHandle, variant,
	).First(&layout).Error; err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *layoutRepository) GetAllByStore(storeID string) ([]models.PageLayout, error) {
	var layouts []models.PageLayout
	if err := r.db.Where("store_id = ?", storeID).
		Order("page_type ASC, page_handle ASC, variant ASC").
		Find(&layouts).Error; err != nil {
		return nil, err
	}
	return layouts, nil
}

func (r *layoutRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []string
		if err := tx.Model(&models.Section{}).
			Where("layout_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Unscoped().Where("section_id IN ?", sectionIDs).
				Delete(&models.Block{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("layout_id = ?", id).
				Delete(&models.Section{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&models.PageLayout{}, id).Error
	})
}

// ReplacePublished swaps the published variant of the draft's target for a
// copy of the given draft sections in one transaction, so readers never see
// a half-published layout. Returns the published layout row.
func (r *layoutRepository) ReplacePublished(draft *models.PageLayout, sections []models.Section) (*models.PageLayout, error) {
	published := &models.PageLayout{
		StoreID:    draft.StoreID,
		PageType:   draft.PageType,
		PageHandle: draft.PageHandle,
		Variant:    constants.VariantPublished,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PageLayout
		result := tx.Where(
			"store_id = ? AND page_type = ? AND page_handle = ? AND variant = ?",
			draft.StoreID, draft.PageType, draft.PageHandle, constants.VariantPublished,
		).First(&existing)

		switch {
		case result.Error == nil:
			published.ID = existing.ID
			var sectionIDs []string
			if err := tx.Model(&models.Section{}).
				Where("layout_id = ?", existing.ID).
				Pluck("id", &sectionIDs).Error; err != nil {
				return err
			}
			if len(sectionIDs) > 0 {
				if err := tx.Unscoped().Where("section_id IN ?", sectionIDs).
					Delete(&models.Block{}).Error; err != nil {
					return err
				}
				if err := tx.Unscoped().Where("layout_id = ?", existing.ID).
					Delete(&models.Section{}).Error; err != nil {
					return err
				}
			}
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			if err := tx.Create(published).Error; err != nil {
				return err
			}
		default:
			return result.Error
		}

		for _, section := range sections {
			copied := section
			copied.ID = uuid.New().String()
			copied.LayoutID = published.ID
			blocks := copied.Blocks
			copied.Blocks = nil
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
			for _, block := range blocks {
				copiedBlock := block
				copiedBlock.ID = uuid.New().String()
				copiedBlock.SectionID = copied.ID
				if err := tx.Create(&copiedBlock).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}
