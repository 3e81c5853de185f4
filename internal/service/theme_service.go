package service

import (
	"errors"
	"fmt"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/repository"
	"storefront-config-backend/internal/sections"
	"storefront-config-backend/pkg/validator"

	"github.com/aymerick/douceur/parser"
	"gorm.io/gorm"
)

// ThemeService manages a store's global theme settings in their draft and
// published variants.
type ThemeService struct {
	themeRepo repository.ThemeRepository
}

func NewThemeService(themeRepo repository.ThemeRepository) *ThemeService {
	return &ThemeService{themeRepo: themeRepo}
}

// GetDraft returns the store's draft theme settings, creating the defaults
// on first access.
func (s *ThemeService) GetDraft(storeID string) (*models.ThemeSettings, error) {
	settings, err := s.themeRepo.GetByStore(storeID, constants.VariantDraft)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = sections.DefaultThemeSettings(storeID, constants.VariantDraft)
	if err := s.themeRepo.Upsert(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateDraft patches the draft theme settings. Color values must be hex
// strings and custom CSS must parse; either is rejected before storage.
// Custom JS is carried verbatim.
func (s *ThemeService) UpdateDraft(storeID string, req models.UpdateThemeRequest) (*models.ThemeSettings, error) {
	settings, err := s.GetDraft(storeID)
	if err != nil {
		return nil, err
	}

	if req.Colors != nil {
		for name, value := range *req.Colors {
			color, ok := value.(string)
			if !ok || !validator.IsValidHexColor(color) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidThemeColor, name)
			}
		}
		settings.Colors = *req.Colors
	}
	if req.Typography != nil {
		settings.Typography = *req.Typography
	}
	if req.Layout != nil {
		settings.Layout = *req.Layout
	}
	if req.Animation != nil {
		settings.Animation = *req.Animation
	}
	if req.CustomCSS != nil {
		if _, err := parser.Parse(*req.CustomCSS); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCustomCSS, err)
		}
		settings.CustomCSS = *req.CustomCSS
	}
	if req.CustomJS != nil {
		settings.CustomJS = *req.CustomJS
	}

	if err := s.themeRepo.Upsert(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
