package service

import (
	"errors"
	"fmt"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateService manages loop-page templates and their widgets. Template
// resolution reads relationally on every call; loop templates have no
// fast-path cache tier.
type TemplateService struct {
	templateRepo repository.TemplateRepository
	widgetRepo   repository.WidgetRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository, widgetRepo repository.WidgetRepository) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		widgetRepo:   widgetRepo,
	}
}

// seedWidgets are the widgets a fresh template starts with, in order. The
// dynamic ones bind to the runtime loop variable named by Variable.
func seedWidgets(templateType string) []models.Widget {
	switch templateType {
	case constants.TemplateTypeProduct:
		return []models.Widget{
			{Type: constants.WidgetBreadcrumbs, Dynamic: true, Variable: "current_product_path"},
			{Type: constants.WidgetMediaGrid, Dynamic: true, Variable: "current_product_media"},
			{Type: constants.WidgetTitle, Dynamic: true, Variable: "current_product_title"},
			{Type: constants.WidgetPrice, Dynamic: true, Variable: "current_product_price"},
			{Type: constants.WidgetVariantPick, Dynamic: true, Variable: "current_product_variants"},
			{Type: constants.WidgetAddToCart, Dynamic: true, Variable: "current_product"},
			{Type: constants.WidgetDescription, Dynamic: true, Variable: "current_product_description"},
		}
	case constants.TemplateTypeCollection:
		return []models.Widget{
			{Type: constants.WidgetBreadcrumbs, Dynamic: true, Variable: "current_collection_path"},
			{Type: constants.WidgetTitle, Dynamic: true, Variable: "current_collection_title"},
			{Type: constants.WidgetProductGrid, Dynamic: true, Variable: "current_collection_products"},
		}
	default:
		return nil
	}
}

// CreateTemplate creates a template keyed by (store, type, name) and seeds
// its default widget set.
func (s *TemplateService) CreateTemplate(storeID string, req models.CreateTemplateRequest) (*models.Template, error) {
	req.TemplateType = constants.Canonical(req.TemplateType)
	if !constants.IsValidTemplateType(req.TemplateType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplateType, req.TemplateType)
	}

	if _, err := s.templateRepo.GetByKey(storeID, req.TemplateType, req.Name); err == nil {
		return nil, ErrTemplateExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	template := &models.Template{
		StoreID:      storeID,
		TemplateType: req.TemplateType,
		Name:         req.Name,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, err
	}

	for position, widget := range seedWidgets(req.TemplateType) {
		widget.TemplateID = template.ID
		widget.WidgetID = uuid.New().String()
		widget.Position = position
		widget.Visible = true
		widget.Settings = models.JSONMap{}
		if err := s.widgetRepo.Create(&widget); err != nil {
			return nil, err
		}
		template.Widgets = append(template.Widgets, widget)
	}

	return template, nil
}

// GetTemplate returns the template with all widgets ordered by position.
func (s *TemplateService) GetTemplate(storeID string, templateID uint) (*models.Template, error) {
	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return nil, err
	}
	widgets, err := s.widgetRepo.GetByTemplate(template.ID)
	if err != nil {
		return nil, err
	}
	template.Widgets = widgets
	return template, nil
}

// GetAllTemplates lists a store's templates without widgets.
func (s *TemplateService) GetAllTemplates(storeID string) ([]models.Template, error) {
	return s.templateRepo.GetAllByStore(storeID)
}

// DeleteTemplate removes the template and cascades to its widgets.
func (s *TemplateService) DeleteTemplate(storeID string, templateID uint) error {
	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return err
	}
	return s.templateRepo.Delete(template.ID)
}

// Resolve returns the visible widgets of a template addressed by key,
// ordered by position. Returns (nil, nil) when the template does not exist,
// mirroring page config resolution.
func (s *TemplateService) Resolve(storeID, templateType, name string) (*models.Template, error) {
	template, err := s.templateRepo.GetByKey(storeID, templateType, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	widgets, err := s.widgetRepo.GetVisibleByTemplate(template.ID)
	if err != nil {
		return nil, err
	}
	template.Widgets = widgets
	return template, nil
}

// AddWidget creates a widget with a fresh widget_id and renumbers positions.
func (s *TemplateService) AddWidget(storeID string, templateID uint, req models.AddWidgetRequest) ([]models.Widget, error) {
	req.Type = constants.Canonical(req.Type)
	if !constants.IsValidWidgetType(req.Type) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWidgetType, req.Type)
	}

	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return nil, err
	}

	existing, err := s.widgetRepo.GetByTemplate(template.ID)
	if err != nil {
		return nil, err
	}

	position := len(existing)
	if req.Position != nil {
		position = clamp(*req.Position, 0, len(existing))
	}

	widget := &models.Widget{
		TemplateID: template.ID,
		WidgetID:   uuid.New().String(),
		Type:       req.Type,
		Dynamic:    req.Dynamic,
		Variable:   req.Variable,
		Position:   position,
		Visible:    true,
		Settings:   req.Settings,
	}
	if widget.Settings == nil {
		widget.Settings = models.JSONMap{}
	}
	if err := s.widgetRepo.Create(widget); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(existing)+1)
	for _, w := range existing {
		order = append(order, w.WidgetID)
	}
	order = insertAt(order, widget.WidgetID, position)
	if err := s.widgetRepo.UpdatePositions(template.ID, order); err != nil {
		return nil, err
	}

	return s.widgetRepo.GetByTemplate(template.ID)
}

// RemoveWidget deletes a widget addressed by widget_id and renumbers the
// remaining positions.
func (s *TemplateService) RemoveWidget(storeID string, templateID uint, widgetID string) ([]models.Widget, error) {
	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return nil, err
	}

	widget, err := s.getOwnedWidget(template.ID, widgetID)
	if err != nil {
		return nil, err
	}

	if err := s.widgetRepo.Delete(widget.ID); err != nil {
		return nil, err
	}

	remaining, err := s.widgetRepo.GetByTemplate(template.ID)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(remaining))
	for _, w := range remaining {
		order = append(order, w.WidgetID)
	}
	if err := s.widgetRepo.UpdatePositions(template.ID, order); err != nil {
		return nil, err
	}

	return s.widgetRepo.GetByTemplate(template.ID)
}

// MoveWidget moves a widget to a new position. The widget is addressed by
// widget_id; the row id stays internal.
func (s *TemplateService) MoveWidget(storeID string, templateID uint, widgetID string, newPosition int) ([]models.Widget, error) {
	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return nil, err
	}

	widget, err := s.getOwnedWidget(template.ID, widgetID)
	if err != nil {
		return nil, err
	}

	existing, err := s.widgetRepo.GetByTemplate(template.ID)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(existing)-1)
	for _, w := range existing {
		if w.WidgetID != widget.WidgetID {
			order = append(order, w.WidgetID)
		}
	}
	order = insertAt(order, widget.WidgetID, clamp(newPosition, 0, len(order)))
	if err := s.widgetRepo.UpdatePositions(template.ID, order); err != nil {
		return nil, err
	}

	return s.widgetRepo.GetByTemplate(template.ID)
}

// UpdateWidget patches a widget's bound variable and settings.
func (s *TemplateService) UpdateWidget(storeID string, templateID uint, widgetID string, req models.UpdateWidgetRequest) (*models.Widget, error) {
	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return nil, err
	}

	widget, err := s.getOwnedWidget(template.ID, widgetID)
	if err != nil {
		return nil, err
	}

	if req.Variable != nil {
		widget.Variable = *req.Variable
	}
	if req.Settings != nil {
		widget.Settings = *req.Settings
	}

	if err := s.widgetRepo.Update(widget); err != nil {
		return nil, err
	}
	return widget, nil
}

// SetWidgetVisibility flips the visibility flag of a widget.
func (s *TemplateService) SetWidgetVisibility(storeID string, templateID uint, widgetID string, visible bool) (*models.Widget, error) {
	template, err := s.getOwnedTemplate(storeID, templateID)
	if err != nil {
		return nil, err
	}

	widget, err := s.getOwnedWidget(template.ID, widgetID)
	if err != nil {
		return nil, err
	}

	widget.Visible = visible
	if err := s.widgetRepo.Update(widget); err != nil {
		return nil, err
	}
	return widget, nil
}

func (s *TemplateService) getOwnedTemplate(storeID string, templateID uint) (*models.Template, error) {
	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.StoreID != storeID {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

func (s *TemplateService) getOwnedWidget(templateID uint, widgetID string) (*models.Widget, error) {
	widget, err := s.widgetRepo.GetByWidgetID(templateID, widgetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWidgetNotFound
		}
		return nil, err
	}
	return widget, nil
}
