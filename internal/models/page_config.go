package models

import "time"

// PageConfig is the canonical document handed to the rendering layer. It is
// the shape written to the fast-path store on publish and assembled from
// relational rows on a cache miss.
type PageConfig struct {
	Version        string                   `json:"version"`
	GeneratedAt    time.Time                `json:"generated_at"`
	PageType       string                   `json:"page_type"`
	GlobalSettings GlobalSettings           `json:"global_settings"`
	Sections       map[string]SectionConfig `json:"sections"`
	SectionOrder   []string                 `json:"section_order"`
	CustomCSS      string                   `json:"custom_css"`
	CustomJS       string                   `json:"custom_js"`
}

// GlobalSettings carries the store-wide theme defaults into the document.
type GlobalSettings struct {
	Colors     JSONMap `json:"colors"`
	Typography JSONMap `json:"typography"`
	Layout     JSONMap `json:"layout"`
	Animation  JSONMap `json:"animation"`
}

// SectionConfig is one resolved section inside a PageConfig. SectionOrder is
// derived from Position at assembly time; the two always agree.
type SectionConfig struct {
	Type          string        `json:"type"`
	Position      int           `json:"position"`
	Settings      JSONMap       `json:"settings"`
	Style         StyleObject   `json:"style"`
	Blocks        []BlockConfig `json:"blocks"`
	CustomClasses string        `json:"custom_classes,omitempty"`

	// Responsive carries the per-device deltas through to read time so a
	// cached document can still be resolved for tablet or mobile.
	Responsive ResponsiveMap `json:"responsive,omitempty"`
}

// BlockConfig is one resolved block inside a SectionConfig.
type BlockConfig struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Content  BlockContent `json:"content"`
	Settings JSONMap      `json:"settings"`
	Style    StyleObject  `json:"style"`
}

// ValidationResult is the outcome of the pre-publish integrity check. Errors
// are collected, never short-circuited, so the editor can show all problems.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
