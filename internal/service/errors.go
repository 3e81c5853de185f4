package service

import "errors"

var (
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrLayoutExists     = errors.New("layout already exists for this page target")
	ErrLayoutNotDraft   = errors.New("layout is not a draft")
	ErrSectionNotFound  = errors.New("section not found")
	ErrBlockNotFound    = errors.New("block not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("template already exists for this key")
	ErrWidgetNotFound   = errors.New("widget not found")

	ErrInvalidPageType     = errors.New("invalid page type")
	ErrInvalidSectionType  = errors.New("invalid section type")
	ErrInvalidBlockType    = errors.New("invalid block type")
	ErrInvalidTemplateType = errors.New("invalid template type")
	ErrInvalidWidgetType   = errors.New("invalid widget type")

	// ErrSectionLocked is returned when a delete or move targets a locked
	// section. The section is left untouched.
	ErrSectionLocked = errors.New("section is locked")

	ErrInvalidCustomCSS  = errors.New("invalid custom css")
	ErrInvalidThemeColor = errors.New("invalid theme color")
)
