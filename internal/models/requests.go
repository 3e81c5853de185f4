package models

// CreateLayoutRequest creates a draft layout for a page target.
type CreateLayoutRequest struct {
	PageType   string `json:"page_type" binding:"required"`
	PageHandle string `json:"page_handle" binding:"omitempty,handle"`
}

// AddSectionRequest adds a new section to a draft layout. Position defaults
// to the end of the layout when omitted.
type AddSectionRequest struct {
	Type          string      `json:"type" binding:"required"`
	Position      *int        `json:"position,omitempty"`
	Settings      JSONMap     `json:"settings,omitempty"`
	Style         StyleObject `json:"style,omitempty"`
	CustomClasses string      `json:"custom_classes,omitempty" binding:"omitempty,no_html"`
}

// UpdateSectionRequest patches an existing section. Nil fields are left
// untouched.
type UpdateSectionRequest struct {
	Settings      *JSONMap       `json:"settings,omitempty"`
	Style         *StyleObject   `json:"style,omitempty"`
	Responsive    *ResponsiveMap `json:"responsive,omitempty"`
	CustomClasses *string        `json:"custom_classes,omitempty" binding:"omitempty,no_html"`
}

// MoveSectionRequest moves a section to a new position. The position is
// clamped to the valid range.
type MoveSectionRequest struct {
	Position *int `json:"position" binding:"required"`
}

// SetVisibilityRequest flips the visibility flag of a section, block or widget.
type SetVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// AddBlockRequest adds a block to a section.
type AddBlockRequest struct {
	Type     string       `json:"type" binding:"required"`
	Position *int         `json:"position,omitempty"`
	Content  BlockContent `json:"content"`
	Settings JSONMap      `json:"settings,omitempty"`
	Style    StyleObject  `json:"style,omitempty"`
}

// UpdateBlockRequest patches an existing block.
type UpdateBlockRequest struct {
	Content  *BlockContent `json:"content,omitempty"`
	Settings *JSONMap      `json:"settings,omitempty"`
	Style    *StyleObject  `json:"style,omitempty"`
}

// MoveBlockRequest moves a block within its section.
type MoveBlockRequest struct {
	Position *int `json:"position" binding:"required"`
}

// CreateTemplateRequest creates a loop-page template.
type CreateTemplateRequest struct {
	TemplateType string `json:"template_type" binding:"required"`
	Name         string `json:"name" binding:"required,handle"`
}

// AddWidgetRequest adds a widget to a template. Dynamic widgets bind to a
// named runtime variable; static widgets carry fixed settings only.
type AddWidgetRequest struct {
	Type     string  `json:"type" binding:"required"`
	Dynamic  bool    `json:"dynamic"`
	Variable string  `json:"variable"`
	Position *int    `json:"position,omitempty"`
	Settings JSONMap `json:"settings,omitempty"`
}

// UpdateWidgetRequest patches an existing widget, addressed by widget_id.
type UpdateWidgetRequest struct {
	Variable *string  `json:"variable,omitempty"`
	Settings *JSONMap `json:"settings,omitempty"`
}

// MoveWidgetRequest moves a widget within its template.
type MoveWidgetRequest struct {
	Position *int `json:"position" binding:"required"`
}

// UpdateThemeRequest patches the draft theme settings of a store.
type UpdateThemeRequest struct {
	Colors     *JSONMap `json:"colors,omitempty"`
	Typography *JSONMap `json:"typography,omitempty"`
	Layout     *JSONMap `json:"layout,omitempty"`
	Animation  *JSONMap `json:"animation,omitempty"`
	CustomCSS  *string  `json:"custom_css,omitempty"`
	CustomJS   *string  `json:"custom_js,omitempty"`
}
