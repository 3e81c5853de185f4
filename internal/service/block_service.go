package service

import (
	"errors"
	"fmt"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Block mutations mirror the section mutations one level down, scoped to a
// single section's block list. Blocks carry no lock flag.

// AddBlock creates a block inside a section and renumbers block positions to
// stay contiguous.
func (s *LayoutService) AddBlock(storeID string, layoutID uint, sectionID string, req models.AddBlockRequest) ([]models.Block, error) {
	req.Type = constants.Canonical(req.Type)
	if !constants.IsValidBlockType(req.Type) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBlockType, req.Type)
	}

	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}
	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	existing, err := s.blockRepo.GetBySection(section.ID)
	if err != nil {
		return nil, err
	}

	position := len(existing)
	if req.Position != nil {
		position = clamp(*req.Position, 0, len(existing))
	}

	block := &models.Block{
		ID:        uuid.New().String(),
		SectionID: section.ID,
		Type:      req.Type,
		Position:  position,
		Visible:   true,
		Content:   sanitizeBlockContent(req.Content),
		Settings:  req.Settings,
		Style:     req.Style,
	}
	if block.Settings == nil {
		block.Settings = models.JSONMap{}
	}
	if err := s.blockRepo.Create(block); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(existing)+1)
	for _, b := range existing {
		order = append(order, b.ID)
	}
	order = insertAt(order, block.ID, position)
	if err := s.blockRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.blockRepo.GetBySection(section.ID)
}

// RemoveBlock deletes a block and renumbers the remaining blocks.
func (s *LayoutService) RemoveBlock(storeID string, layoutID uint, sectionID, blockID string) ([]models.Block, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}
	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	block, err := s.getOwnedBlock(section.ID, blockID)
	if err != nil {
		return nil, err
	}

	if err := s.blockRepo.Delete(block.ID); err != nil {
		return nil, err
	}

	remaining, err := s.blockRepo.GetBySection(section.ID)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(remaining))
	for _, b := range remaining {
		order = append(order, b.ID)
	}
	if err := s.blockRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.blockRepo.GetBySection(section.ID)
}

// MoveBlock moves a block to a new position within its section, clamped to
// the valid range.
func (s *LayoutService) MoveBlock(storeID string, layoutID uint, sectionID, blockID string, newPosition int) ([]models.Block, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}
	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	block, err := s.getOwnedBlock(section.ID, blockID)
	if err != nil {
		return nil, err
	}

	existing, err := s.blockRepo.GetBySection(section.ID)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(existing)-1)
	for _, b := range existing {
		if b.ID != block.ID {
			order = append(order, b.ID)
		}
	}
	order = insertAt(order, block.ID, clamp(newPosition, 0, len(order)))
	if err := s.blockRepo.UpdatePositions(order); err != nil {
		return nil, err
	}

	return s.blockRepo.GetBySection(section.ID)
}

// UpdateBlock patches a block's content, settings and style.
func (s *LayoutService) UpdateBlock(storeID string, layoutID uint, sectionID, blockID string, req models.UpdateBlockRequest) (*models.Block, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}
	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	block, err := s.getOwnedBlock(section.ID, blockID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		block.Content = sanitizeBlockContent(*req.Content)
	}
	if req.Settings != nil {
		block.Settings = *req.Settings
	}
	if req.Style != nil {
		block.Style = *req.Style
	}

	if err := s.blockRepo.Update(block); err != nil {
		return nil, err
	}
	return block, nil
}

// SetBlockVisibility flips the visibility flag of a block.
func (s *LayoutService) SetBlockVisibility(storeID string, layoutID uint, sectionID, blockID string, visible bool) (*models.Block, error) {
	layout, err := s.getOwnedDraft(storeID, layoutID)
	if err != nil {
		return nil, err
	}
	section, err := s.getOwnedSection(layout.ID, sectionID)
	if err != nil {
		return nil, err
	}

	block, err := s.getOwnedBlock(section.ID, blockID)
	if err != nil {
		return nil, err
	}

	block.Visible = visible
	if err := s.blockRepo.Update(block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *LayoutService) getOwnedBlock(sectionID, blockID string) (*models.Block, error) {
	block, err := s.blockRepo.GetByID(blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	if block.SectionID != sectionID {
		return nil, ErrBlockNotFound
	}
	return block, nil
}

// sanitizeBlockContent strips markup from plain-text fields and cleans the
// rich-text body before anything reaches storage.
func sanitizeBlockContent(content models.BlockContent) models.BlockContent {
	content.Heading = validator.SanitizeString(content.Heading)
	content.Subheading = validator.SanitizeString(content.Subheading)
	content.AltText = validator.SanitizeString(content.AltText)
	content.ButtonLabel = validator.SanitizeString(content.ButtonLabel)
	content.Body = validator.SanitizeHTML(content.Body)
	return content
}
