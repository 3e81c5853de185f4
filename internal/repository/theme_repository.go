package repository

import (
	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThemeRepository interface {
	GetByStore(storeID, variant string) (*models.ThemeSettings, error)
	Upsert(settings *models.ThemeSettings) error
	ReplacePublished(draft *models.ThemeSettings) error
}

type themeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) GetByStore(storeID, variant string) (*models.ThemeSettings, error) {
	var settings models.ThemeSettings
	if err := r.db.Where("store_id = ? AND variant = ?", storeID, variant).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *themeRepository) Upsert(settings *models.ThemeSettings) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "variant"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"colors", "typography", "layout", "animation",
			"custom_css", "custom_js", "updated_at",
		}),
	}).Create(settings).Error
}

// ReplacePublished copies the draft theme row over the published one.
func (r *themeRepository) ReplacePublished(draft *models.ThemeSettings) error {
	published := &models.ThemeSettings{
		StoreID:    draft.StoreID,
		Variant:    constants.VariantPublished,
		Colors:     draft.Colors,
		Typography: draft.Typography,
		Layout:     draft.Layout,
		Animation:  draft.Animation,
		CustomCSS:  draft.CustomCSS,
		CustomJS:   draft.CustomJS,
	}
	return r.Upsert(published)
}
