package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PageLayout is the ordered section list for one page target. A target is
// identified by (store, page type, optional page handle) and exists in a
// draft and a published variant; at most one row per tuple and variant.
type PageLayout struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StoreID    string `gorm:"not null;uniqueIndex:idx_layout_target" json:"store_id"`
	PageType   string `gorm:"not null;uniqueIndex:idx_layout_target" json:"page_type"`
	PageHandle string `gorm:"default:'';uniqueIndex:idx_layout_target" json:"page_handle"`
	Variant    string `gorm:"not null;default:'draft';uniqueIndex:idx_layout_target" json:"variant"`

	Sections []Section `gorm:"foreignKey:LayoutID" json:"sections,omitempty"`
}

// Section is a composable page region. Its string primary key is the stable
// id referenced by section_order; it never changes across reorders.
type Section struct {
	ID        string         `gorm:"primarykey;type:varchar(64)" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LayoutID uint   `gorm:"not null;index" json:"layout_id"`
	Type     string `gorm:"not null" json:"type"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Visible  bool   `gorm:"default:true" json:"visible"`
	Locked   bool   `gorm:"default:false" json:"locked"`

	Settings      JSONMap       `gorm:"type:jsonb" json:"settings"`
	Style         StyleObject   `gorm:"type:jsonb" json:"style"`
	Responsive    ResponsiveMap `gorm:"type:jsonb" json:"responsive,omitempty"`
	CustomClasses string        `json:"custom_classes,omitempty"`

	Blocks []Block `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"blocks,omitempty"`
}

// Block is the smallest content unit, owned by exactly one section. Deleting
// the section cascades to its blocks.
type Block struct {
	ID        string         `gorm:"primarykey;type:varchar(64)" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SectionID string `gorm:"not null;index;type:varchar(64)" json:"section_id"`
	Type      string `gorm:"not null" json:"type"`
	Position  int    `gorm:"not null;default:0" json:"position"`
	Visible   bool   `gorm:"default:true" json:"visible"`

	Content  BlockContent `gorm:"type:jsonb" json:"content"`
	Settings JSONMap      `gorm:"type:jsonb" json:"settings"`
	Style    StyleObject  `gorm:"type:jsonb" json:"style"`
}

// BlockContent carries the type-dependent payload of a block. Only the
// fields relevant to the block's type are populated.
type BlockContent struct {
	Heading    string `json:"heading,omitempty"`
	Subheading string `json:"subheading,omitempty"`
	Body       string `json:"body,omitempty"`

	ImageURL       string `json:"image_url,omitempty"`
	MobileImageURL string `json:"mobile_image_url,omitempty"`
	AltText        string `json:"alt_text,omitempty"`

	ButtonLabel string `json:"button_label,omitempty"`
	ButtonURL   string `json:"button_url,omitempty"`

	ProductIDs    []string `json:"product_ids,omitempty"`
	CollectionIDs []string `json:"collection_ids,omitempty"`

	VideoURL string `json:"video_url,omitempty"`
}

func (c BlockContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *BlockContent) Scan(value interface{}) error {
	if value == nil {
		*c = BlockContent{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan BlockContent")
	}

	return json.Unmarshal(bytes, c)
}

// Template is the lightweight composition used for loop pages. It owns an
// ordered list of widgets rather than free-form sections.
type Template struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StoreID      string `gorm:"not null;uniqueIndex:idx_template_key" json:"store_id"`
	TemplateType string `gorm:"not null;uniqueIndex:idx_template_key" json:"template_type"`
	Name         string `gorm:"not null;uniqueIndex:idx_template_key" json:"name"`

	Widgets []Widget `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"widgets,omitempty"`
}

// Widget is the template equivalent of a block. WidgetID is the identity the
// editor orders by; the numeric row id is only used for point updates.
type Widget struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TemplateID uint   `gorm:"not null;uniqueIndex:idx_template_widget" json:"template_id"`
	WidgetID   string `gorm:"not null;uniqueIndex:idx_template_widget;type:varchar(64)" json:"widget_id"`

	Type     string `gorm:"not null" json:"type"`
	Dynamic  bool   `gorm:"default:false" json:"dynamic"`
	Variable string `json:"variable,omitempty"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Visible  bool   `gorm:"default:true" json:"visible"`

	Settings JSONMap `gorm:"type:jsonb" json:"settings"`
}

// ThemeSettings holds a store's global defaults plus raw custom CSS/JS.
// One row per store and variant.
type ThemeSettings struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StoreID string `gorm:"not null;uniqueIndex:idx_theme_store_variant" json:"store_id"`
	Variant string `gorm:"not null;default:'draft';uniqueIndex:idx_theme_store_variant" json:"variant"`

	Colors     JSONMap `gorm:"type:jsonb" json:"colors"`
	Typography JSONMap `gorm:"type:jsonb" json:"typography"`
	Layout     JSONMap `gorm:"type:jsonb" json:"layout"`
	Animation  JSONMap `gorm:"type:jsonb" json:"animation"`

	CustomCSS string `gorm:"type:text" json:"custom_css"`
	CustomJS  string `gorm:"type:text" json:"custom_js"`
}
