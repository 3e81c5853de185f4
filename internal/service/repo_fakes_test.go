package service

import (
	"sort"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memoryStore backs the in-memory repository fakes used across the service
// tests. One store instance is shared by all the fakes of a test so layouts,
// sections and blocks stay consistent with each other.
type memoryStore struct {
	layouts      map[uint]models.PageLayout
	sections     map[string]models.Section
	blocks       map[string]models.Block
	themes       map[string]models.ThemeSettings
	nextLayoutID uint
	nextThemeID  uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		layouts:  make(map[uint]models.PageLayout),
		sections: make(map[string]models.Section),
		blocks:   make(map[string]models.Block),
		themes:   make(map[string]models.ThemeSettings),
	}
}

func (m *memoryStore) sectionsOf(layoutID uint) []models.Section {
	out := []models.Section{}
	for _, section := range m.sections {
		if section.LayoutID == layoutID {
			out = append(out, section)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memoryStore) blocksOf(sectionID string) []models.Block {
	out := []models.Block{}
	for _, block := range m.blocks {
		if block.SectionID == sectionID {
			out = append(out, block)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type memoryLayoutRepository struct{ store *memoryStore }

var _ repository.LayoutRepository = (*memoryLayoutRepository)(nil)

func (r *memoryLayoutRepository) Create(layout *models.PageLayout) error {
	r.store.nextLayoutID++
	layout.ID = r.store.nextLayoutID
	r.store.layouts[layout.ID] = *layout
	return nil
}

func (r *memoryLayoutRepository) GetByID(id uint) (*models.PageLayout, error) {
	layout, ok := r.store.layouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := layout
	return &out, nil
}

func (r *memoryLayoutRepository) GetByTarget(storeID, pageType, pageHandle, variant string) (*models.PageLayout, error) {
	for _, layout := range r.store.layouts {
		if layout.StoreID == storeID && layout.PageType == pageType &&
			layout.PageHandle == pageHandle && layout.Variant == variant {
			out := layout
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryLayoutRepository) GetAllByStore(storeID string) ([]models.PageLayout, error) {
	out := []models.PageLayout{}
	for _, layout := range r.store.layouts {
		if layout.StoreID == storeID {
			out = append(out, layout)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryLayoutRepository) Delete(id uint) error {
	for _, section := range r.store.sectionsOf(id) {
		for _, block := range r.store.blocksOf(section.ID) {
			delete(r.store.blocks, block.ID)
		}
		delete(r.store.sections, section.ID)
	}
	delete(r.store.layouts, id)
	return nil
}

func (r *memoryLayoutRepository) ReplacePublished(draft *models.PageLayout, sections []models.Section) (*models.PageLayout, error) {
	published, err := r.GetByTarget(draft.StoreID, draft.PageType, draft.PageHandle, constants.VariantPublished)
	if err != nil {
		published = &models.PageLayout{
			StoreID:    draft.StoreID,
			PageType:   draft.PageType,
			PageHandle: draft.PageHandle,
			Variant:    constants.VariantPublished,
		}
		if err := r.Create(published); err != nil {
			return nil, err
		}
	} else {
		for _, section := range r.store.sectionsOf(published.ID) {
			for _, block := range r.store.blocksOf(section.ID) {
				delete(r.store.blocks, block.ID)
			}
			delete(r.store.sections, section.ID)
		}
	}

	for _, section := range sections {
		copied := section
		copied.ID = uuid.New().String()
		copied.LayoutID = published.ID
		blocks := copied.Blocks
		copied.Blocks = nil
		r.store.sections[copied.ID] = copied
		for _, block := range blocks {
			copiedBlock := block
			copiedBlock.ID = uuid.New().String()
			copiedBlock.SectionID = copied.ID
			r.store.blocks[copiedBlock.ID] = copiedBlock
		}
	}
	return published, nil
}

type memorySectionRepository struct{ store *memoryStore }

var _ repository.SectionRepository = (*memorySectionRepository)(nil)

func (r *memorySectionRepository) Create(section *models.Section) error {
	r.store.sections[section.ID] = *section
	return nil
}

func (r *memorySectionRepository) Update(section *models.Section) error {
	if _, ok := r.store.sections[section.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.sections[section.ID] = *section
	return nil
}

func (r *memorySectionRepository) Delete(id string) error {
	for _, block := range r.store.blocksOf(id) {
		delete(r.store.blocks, block.ID)
	}
	delete(r.store.sections, id)
	return nil
}

func (r *memorySectionRepository) GetByID(id string) (*models.Section, error) {
	section, ok := r.store.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := section
	return &out, nil
}

func (r *memorySectionRepository) GetByLayout(layoutID uint) ([]models.Section, error) {
	return r.store.sectionsOf(layoutID), nil
}

func (r *memorySectionRepository) GetVisibleByLayout(layoutID uint) ([]models.Section, error) {
	out := []models.Section{}
	for _, section := range r.store.sectionsOf(layoutID) {
		if section.Visible {
			out = append(out, section)
		}
	}
	return out, nil
}

func (r *memorySectionRepository) UpdatePositions(order []string) error {
	for position, id := range order {
		section, ok := r.store.sections[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		section.Position = position
		r.store.sections[id] = section
	}
	return nil
}

type memoryBlockRepository struct{ store *memoryStore }

var _ repository.BlockRepository = (*memoryBlockRepository)(nil)

func (r *memoryBlockRepository) Create(block *models.Block) error {
	r.store.blocks[block.ID] = *block
	return nil
}

func (r *memoryBlockRepository) Update(block *models.Block) error {
	if _, ok := r.store.blocks[block.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.blocks[block.ID] = *block
	return nil
}

func (r *memoryBlockRepository) Delete(id string) error {
	delete(r.store.blocks, id)
	return nil
}

func (r *memoryBlockRepository) GetByID(id string) (*models.Block, error) {
	block, ok := r.store.blocks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := block
	return &out, nil
}

func (r *memoryBlockRepository) GetBySection(sectionID string) ([]models.Block, error) {
	return r.store.blocksOf(sectionID), nil
}

func (r *memoryBlockRepository) GetVisibleBySection(sectionID string) ([]models.Block, error) {
	out := []models.Block{}
	for _, block := range r.store.blocksOf(sectionID) {
		if block.Visible {
			out = append(out, block)
		}
	}
	return out, nil
}

func (r *memoryBlockRepository) UpdatePositions(order []string) error {
	for position, id := range order {
		block, ok := r.store.blocks[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		block.Position = position
		r.store.blocks[id] = block
	}
	return nil
}

type memoryThemeRepository struct{ store *memoryStore }

var _ repository.ThemeRepository = (*memoryThemeRepository)(nil)

func themeKey(storeID, variant string) string { return storeID + "|" + variant }

func (r *memoryThemeRepository) GetByStore(storeID, variant string) (*models.ThemeSettings, error) {
	theme, ok := r.store.themes[themeKey(storeID, variant)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := theme
	return &out, nil
}

func (r *memoryThemeRepository) Upsert(settings *models.ThemeSettings) error {
	key := themeKey(settings.StoreID, settings.Variant)
	if existing, ok := r.store.themes[key]; ok {
		settings.ID = existing.ID
	} else {
		r.store.nextThemeID++
		settings.ID = r.store.nextThemeID
	}
	r.store.themes[key] = *settings
	return nil
}

func (r *memoryThemeRepository) ReplacePublished(draft *models.ThemeSettings) error {
	published := *draft
	published.ID = 0
	published.Variant = constants.VariantPublished
	return r.Upsert(&published)
}

// newTestLayoutService wires a LayoutService onto a fresh shared store.
func newTestLayoutService() (*LayoutService, *memoryStore) {
	store := newMemoryStore()
	svc := NewLayoutService(
		&memoryLayoutRepository{store: store},
		&memorySectionRepository{store: store},
		&memoryBlockRepository{store: store},
	)
	return svc, store
}
