package service

import (
	"fmt"

	"storefront-config-backend/internal/models"
)

// ValidateConfig runs the structural integrity checks that gate promotion
// from draft to published. All checks run; errors are collected rather than
// short-circuited so the editor can surface every problem at once. The
// document is never mutated.
func ValidateConfig(config *models.PageConfig) models.ValidationResult {
	result := models.ValidationResult{Errors: []string{}}
	if config == nil {
		result.Errors = append(result.Errors, "config is empty")
		return result
	}

	if config.PageType == "" {
		result.Errors = append(result.Errors, "page_type is required")
	}
	if len(config.Sections) == 0 {
		result.Errors = append(result.Errors, "at least one section is required")
	}
	if len(config.SectionOrder) == 0 {
		result.Errors = append(result.Errors, "section_order must not be empty")
	}

	seen := make(map[string]bool, len(config.SectionOrder))
	for _, id := range config.SectionOrder {
		if seen[id] {
			result.Errors = append(result.Errors, fmt.Sprintf("section_order contains duplicate id %q", id))
			continue
		}
		seen[id] = true
		if _, ok := config.Sections[id]; !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("section_order references missing section %q", id))
		}
	}
	for id := range config.Sections {
		if !seen[id] {
			result.Errors = append(result.Errors, fmt.Sprintf("section %q is missing from section_order", id))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
