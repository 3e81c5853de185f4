package service

import (
	"errors"
	"time"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/repository"
	"storefront-config-backend/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

// FastPathStore is the edge-tier contract: keyed reads and writes of
// pre-generated canonical documents. Any error from it is treated as a miss.
type FastPathStore interface {
	GetPageConfig(storeID, pageType, pageHandle string, dest interface{}) error
	CachePageConfig(storeID, pageType, pageHandle string, config interface{}) error
	InvalidateStore(storeID string) error
}

var (
	fastPathHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "fastpath_hits_total",
		Help:      "Page config requests served from the fast-path store.",
	})
	fastPathFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "fastpath_fallbacks_total",
		Help:      "Page config requests that fell back to relational assembly.",
	})
)

// ResolverService produces canonical page configs (cache first, relational
// fallback) and owns the draft-to-published transition.
type ResolverService struct {
	layoutRepo  repository.LayoutRepository
	sectionRepo repository.SectionRepository
	blockRepo   repository.BlockRepository
	themeRepo   repository.ThemeRepository
	fastPath    FastPathStore
}

func NewResolverService(
	layoutRepo repository.LayoutRepository,
	sectionRepo repository.SectionRepository,
	blockRepo repository.BlockRepository,
	themeRepo repository.ThemeRepository,
	fastPath FastPathStore,
) *ResolverService {
	return &ResolverService{
		layoutRepo:  layoutRepo,
		sectionRepo: sectionRepo,
		blockRepo:   blockRepo,
		themeRepo:   themeRepo,
		fastPath:    fastPath,
	}
}

// ResolvePageConfig returns the canonical document for one page target, or
// (nil, nil) when no layout exists so callers can fall back to a built-in
// default. Published requests try the fast-path store first; a miss, timeout
// or decode failure silently falls back to relational assembly. Draft
// requests always read relationally since drafts are never cached.
func (s *ResolverService) ResolvePageConfig(storeID, pageType, pageHandle, variant string) (*models.PageConfig, error) {
	if variant != constants.VariantDraft {
		variant = constants.VariantPublished
	}

	if variant == constants.VariantPublished && s.fastPath != nil {
		var cached models.PageConfig
		err := s.fastPath.GetPageConfig(storeID, pageType, pageHandle, &cached)
		if err == nil {
			fastPathHits.Inc()
			return &cached, nil
		}
		fastPathFallbacks.Inc()
		logger.Debug("Fast-path miss, assembling from storage", map[string]interface{}{
			"store_id":  storeID,
			"page_type": pageType,
			"reason":    err.Error(),
		})
	}

	config, err := s.assembleFromStorage(storeID, pageType, pageHandle, variant)
	if err != nil || config == nil {
		return config, err
	}

	// Repopulate the edge tier so the next read within the revalidation
	// window is a hit. Best effort only.
	if variant == constants.VariantPublished && s.fastPath != nil {
		if err := s.fastPath.CachePageConfig(storeID, pageType, pageHandle, config); err != nil {
			logger.Warn("Failed to repopulate fast-path store", map[string]interface{}{
				"store_id":  storeID,
				"page_type": pageType,
				"error":     err.Error(),
			})
		}
	}

	return config, nil
}

// assembleFromStorage builds the canonical document from relational rows:
// the most specific layout (exact handle match wins over the handle-less
// default), its visible sections ordered by position, their visible blocks,
// and the store's theme settings for the variant.
func (s *ResolverService) assembleFromStorage(storeID, pageType, pageHandle, variant string) (*models.PageConfig, error) {
	layout, err := s.layoutRepo.GetByTarget(storeID, pageType, pageHandle, variant)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if pageHandle == "" {
			return nil, nil
		}
		layout, err = s.layoutRepo.GetByTarget(storeID, pageType, "", variant)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}

	visibleSections, err := s.sectionRepo.GetVisibleByLayout(layout.ID)
	if err != nil {
		return nil, err
	}
	for i := range visibleSections {
		blocks, err := s.blockRepo.GetVisibleBySection(visibleSections[i].ID)
		if err != nil {
			return nil, err
		}
		visibleSections[i].Blocks = blocks
	}

	theme, err := s.themeRepo.GetByStore(storeID, variant)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return buildPageConfig(pageType, visibleSections, theme), nil
}

// buildPageConfig shapes rows into the canonical document. section_order is
// always recomputed from the sections' position order; a stored order list
// is never trusted.
func buildPageConfig(pageType string, layoutSections []models.Section, theme *models.ThemeSettings) *models.PageConfig {
	config := &models.PageConfig{
		Version:      constants.ConfigVersion,
		GeneratedAt:  time.Now().UTC(),
		PageType:     pageType,
		Sections:     make(map[string]models.SectionConfig, len(layoutSections)),
		SectionOrder: make([]string, 0, len(layoutSections)),
	}

	for _, section := range layoutSections {
		blocks := make([]models.BlockConfig, 0, len(section.Blocks))
		for _, block := range section.Blocks {
			blocks = append(blocks, models.BlockConfig{
				ID:       block.ID,
				Type:     block.Type,
				Content:  block.Content,
				Settings: block.Settings,
				Style:    block.Style,
			})
		}
		config.Sections[section.ID] = models.SectionConfig{
			Type:          section.Type,
			Position:      section.Position,
			Settings:      section.Settings,
			Style:         section.Style,
			Blocks:        blocks,
			CustomClasses: section.CustomClasses,
			Responsive:    section.Responsive,
		}
		config.SectionOrder = append(config.SectionOrder, section.ID)
	}

	if theme != nil {
		config.GlobalSettings = models.GlobalSettings{
			Colors:     theme.Colors,
			Typography: theme.Typography,
			Layout:     theme.Layout,
			Animation:  theme.Animation,
		}
		config.CustomCSS = theme.CustomCSS
		config.CustomJS = theme.CustomJS
	}

	return config
}

// Validate assembles the draft document for a layout and runs the
// pre-publish integrity checks without touching anything.
func (s *ResolverService) Validate(storeID string, layoutID uint) (*models.ValidationResult, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	config, err := s.assembleFromStorage(layout.StoreID, layout.PageType, layout.PageHandle, constants.VariantDraft)
	if err != nil {
		return nil, err
	}

	result := ValidateConfig(config)
	return &result, nil
}

// Publish promotes a draft layout to the published variant. The draft is
// validated first; a failed validation blocks the publish and leaves the
// draft untouched. The published rows are swapped in a single transaction and
// the fast-path store is repopulated best effort, so a stale document may be
// served until the revalidation window expires.
func (s *ResolverService) Publish(storeID string, layoutID uint) (*models.ValidationResult, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	draftConfig, err := s.assembleFromStorage(layout.StoreID, layout.PageType, layout.PageHandle, constants.VariantDraft)
	if err != nil {
		return nil, err
	}

	result := ValidateConfig(draftConfig)
	if !result.Valid {
		return &result, nil
	}

	// Copy every draft section, hidden ones included; visibility filtering
	// happens at assembly time, not at publish time.
	draftSections, err := s.sectionRepo.GetByLayout(layout.ID)
	if err != nil {
		return nil, err
	}
	for i := range draftSections {
		blocks, err := s.blockRepo.GetBySection(draftSections[i].ID)
		if err != nil {
			return nil, err
		}
		draftSections[i].Blocks = blocks
	}

	if _, err := s.layoutRepo.ReplacePublished(layout, draftSections); err != nil {
		return nil, err
	}

	if theme, err := s.themeRepo.GetByStore(storeID, constants.VariantDraft); err == nil {
		if err := s.themeRepo.ReplacePublished(theme); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if s.fastPath != nil {
		published, err := s.assembleFromStorage(layout.StoreID, layout.PageType, layout.PageHandle, constants.VariantPublished)
		if err == nil && published != nil {
			if err := s.fastPath.CachePageConfig(layout.StoreID, layout.PageType, layout.PageHandle, published); err != nil {
				logger.Warn("Failed to write published config to fast-path store", map[string]interface{}{
					"store_id":  layout.StoreID,
					"page_type": layout.PageType,
					"error":     err.Error(),
				})
			}
		} else if err != nil {
			logger.Error(err, "Failed to assemble published config after publish", map[string]interface{}{
				"store_id":  layout.StoreID,
				"layout_id": layout.ID,
			})
		}
	}

	return &result, nil
}

func (s *ResolverService) getOwnedDraft(storeID string, layoutID uint) (*models.PageLayout, error) {
	layout, err := s.layoutRepo.GetByID(layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	if layout.StoreID != storeID {
		return nil, ErrLayoutNotFound
	}
	if layout.Variant != constants.VariantDraft {
		return nil, ErrLayoutNotDraft
	}
	return layout, nil
}
