package service

import (
	"errors"
	"fmt"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/repository"
	"storefront-config-backend/internal/sections"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LayoutService implements the editor mutation API for draft layouts. Every
// structural mutation leaves the layout's section positions contiguous
// (0..N-1, no gaps, no duplicates).
type LayoutService struct {
	layoutRepo  repository.LayoutRepository
	sectionRepo repository.SectionRepository
	blockRepo   repository.BlockRepository
}

func NewLayoutService(
	layoutRepo repository.LayoutRepository,
	sectionRepo repository.SectionRepository,
	blockRepo repository.BlockRepository,
) *LayoutService {
	return &LayoutService{
		layoutRepo:  layoutRepo,
		sectionRepo: sectionRepo,
		blockRepo:   blockRepo,
	}
}

// CreateDraft creates the draft layout for a page target and seeds it with
// the mandatory header/footer plus the page type's default body sections.
func (s *LayoutService) CreateDraft(storeID string, req models.CreateLayoutRequest) (*models.PageLayout, error) {
	req.PageType = constants.Canonical(req.PageType)
	if !constants.IsValidPageType(req.PageType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPageType, req.PageType)
	}

	if _, err := s.layoutRepo.GetByTarget(storeID, req.PageType, req.PageHandle, constants.VariantDraft); err == nil {
		return nil, ErrLayoutExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	layout := &models.PageLayout{
		StoreID:    storeID,
		PageType:   req.PageType,
		PageHandle: req.PageHandle,
		Variant:    constants.VariantDraft,
	}
	if err := s.layoutRepo.Create(layout); err != nil {
		return nil, err
	}

	for position, sectionType := range sections.SeedTypes(req.PageType) {
		section := &models.Section{
			ID:       uuid.New().String(),
			LayoutID: layout.ID,
			Type:     sectionType,
			Position: position,
			Visible:  true,
			Locked:   constants.IsLockedSectionType(sectionType),
			Settings: sections.DefaultSettings(sectionType),
			Style:    sections.DefaultStyle(sectionType),
		}
		if err := s.sectionRepo.Create(section); err != nil {
			return nil, err
		}
		layout.Sections = append(layout.Sections, *section)
	}

	return layout, nil
}

// GetLayout returns the layout with its sections and blocks ordered by
// position.
func (s *LayoutService) GetLayout(storeID string, layoutID uint) (*models.PageLayout, error) {
	layout, err := s.getOwnedLayout(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	layoutSections, err := s.sectionRepo.GetByLayout(layout.ID)
	if err != nil {
		return nil, err
	}
	for i := range layoutSections {
		blocks, err := s.blockRepo.GetBySection(layoutSections[i].ID)
		if err != nil {
			return nil, err
		}
		layoutSections[i].Blocks = blocks
	}
	layout.Sections = layoutSections
	return layout, nil
}

// GetAllLayouts lists every layout row of a store, draft and published.
func (s *LayoutService) GetAllLayouts(storeID string) ([]models.PageLayout, error) {
	return s.layoutRepo.GetAllByStore(storeID)
}

// DeleteLayout removes a layout with its sections and blocks.
func (s *LayoutService) DeleteLayout(storeID string, layoutID uint) error {
	layout, err := s.getOwnedLayout(storeID, layoutID)
	if err != nil {
		return err
	}
	return s.layoutRepo.Delete(layout.ID)
}

// AddSection creates a section of the given type and inserts it at the
// requested position (default: end), renumbering subsequent sections.
func (s *LayoutService) AddSection(storeID string, layoutID uint, req models.AddSectionRequest) ([]models.Section, error) {
	req.Type = constants.Canonical(req.Type)
	if !constants.IsValidSectionType(req.Type) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSectionType, req.Type)
	}

	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	existing, err := s.sectionRepo.GetByLayout(layout.ID)
	if err != nil {
		return nil, err
	}

	position := len(existing)
	if req.Position != nil {
		position = clamp(*req.Position, 0, len(existing))
	}

	settings := req.Settings
	if settings == nil {
		settings = sections.DefaultSettings(req.Type)
	}
	style := req.Style
	if style == nil {
		style = sections.DefaultStyle(req.Type)
	}

	section := &models.Section{
		ID:            uuid.New().String(),
		LayoutID:      layout.ID,
		Type:          req.Type,
		Position:      position,
		Visible:       true,
		Locked:        constants.IsLockedSectionType(req.Type),
		Settings:      settings,
		Style:         style,
		CustomClasses: req.CustomClasses,
	}
	if err := s.sectionRepo.Create(section); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(existing)+1)
	for _, sec := range existing {
		order = append(order, sec.ID)
	}
	order = insertAt(order, section.ID, position)
	if err := s.sectionRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.sectionRepo.GetByLayout(layout.ID)
}

// RemoveSection deletes a section, cascading to its blocks, and renumbers the
// remaining sections. Locked sections are refused untouched.
func (s *LayoutService) RemoveSection(storeID string, layoutID uint, sectionID string) ([]models.Section, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if section.Locked {
		return nil, ErrSectionLocked
	}

	if err := s.sectionRepo.Delete(section.ID); err != nil {
		return nil, err
	}

	remaining, err := s.sectionRepo.GetByLayout(layout.ID)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(remaining))
	for _, sec := range remaining {
		order = append(order, sec.ID)
	}
	if err := s.sectionRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.sectionRepo.GetByLayout(layout.ID)
}

// MoveSection moves a section to a new position, clamped to the valid range.
// Moving a locked section is refused; locked siblings do not block the move.
func (s *LayoutService) MoveSection(storeID string, layoutID uint, sectionID string, newPosition int) ([]models.Section, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if section.Locked {
		return nil, ErrSectionLocked
	}

	existing, err := s.sectionRepo.GetByLayout(layout.ID)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(existing)-1)
	for _, sec := range existing {
		if sec.ID != section.ID {
			order = append(order, sec.ID)
		}
	}
	order = insertAt(order, section.ID, clamp(newPosition, 0, len(order)))
	if err := s.sectionRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.sectionRepo.GetByLayout(layout.ID)
}

// UpdateSection patches a section's settings, style, responsive overrides and
// custom classes. Locked sections accept settings edits; lock only guards
// structure.
func (s *LayoutService) UpdateSection(storeID string, layoutID uint, sectionID string, req models.UpdateSectionRequest) (*models.Section, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	if req.Settings != nil {
		section.Settings = *req.Settings
	}
	if req.Style != nil {
		section.Style = *req.Style
	}
	if req.Responsive != nil {
		section.Responsive = *req.Responsive
	}
	if req.CustomClasses != nil {
		section.CustomClasses = *req.CustomClasses
	}

	if err := s.sectionRepo.Update(section); err != nil {
		return nil, err
	}
	return section, nil
}

// SetSectionVisibility flips the visibility flag. Position and order are
// never affected; locked sections may be hidden.
func (s *LayoutService) SetSectionVisibility(storeID string, layoutID uint, sectionID string, visible bool) (*models.Section, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	section.Visible = visible
	if err := s.sectionRepo.Update(section); err != nil {
		return nil, err
	}
	return section, nil
}

// DuplicateSection copies a section with fresh section and block ids and
// inserts the copy right after the original. The copy is never locked.
func (s *LayoutService) DuplicateSection(storeID string, layoutID uint, sectionID string) ([]models.Section, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}

	original, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	duplicate := *original
	duplicate.ID = uuid.New().String()
	duplicate.Locked = false
	duplicate.Settings = original.Settings.Clone()
	duplicate.Style = original.Style.Clone()
	duplicate.Blocks = nil
	if err := s.sectionRepo.Create(&duplicate); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.GetBySection(original.ID)
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		copied := block
		copied.ID = uuid.New().String()
		copied.SectionID = duplicate.ID
		if err := s.blockRepo.Create(&copied); err != nil {
			return nil, err
		}
	}

	existing, err := s.sectionRepo.GetByLayout(layout.ID)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(existing))
	for _, sec := range existing {
		if sec.ID == duplicate.ID {
			continue
		}
		order = append(order, sec.ID)
		if sec.ID == original.ID {
			order = append(order, duplicate.ID)
		}
	}
	if err := s.sectionRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.sectionRepo.GetByLayout(layout.ID)
}

func (s *LayoutService) getOwnedLayout(storeID string, layoutID uint) (*models.PageLayout, error) {
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
	return layout, nil
}

func (s *LayoutService) getOwnedDraft(storeID string, layoutID uint) (*models.PageLayout, error) {
	layout, err := s.getOwnedLayout(storeID, layoutID)
	if err != nil {
		return nil, err
	}
	if layout.Variant != constants.VariantDraft {
		return nil, ErrLayoutNotDraft
	}
	return layout, nil
}

func (s *LayoutService) getOwnedSection(layoutID uint, sectionID string) (*models.Section, error) {
	section, err := s.sectionRepo.GetByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	if section.LayoutID != layoutID {
		return nil, ErrSectionNotFound
	}
	return section, nil
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func insertAt(order []string, id string, position int) []string {
	out := make([]string, 0, len(order)+1)
	out = append(out, order[:position]...)
	out = append(out, id)
	out = append(out, order[position:]...)
	return out
}
