package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap is a free-form settings map persisted as JSONB.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan JSONMap")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(bytes, &decoded); err != nil {
		return err
	}

	*m = decoded
	return nil
}

// Clone returns a deep copy of the map via a JSON round trip.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return JSONMap{}
	}
	var out JSONMap
	if err := json.Unmarshal(raw, &out); err != nil {
		return JSONMap{}
	}
	return out
}

// StyleObject groups style values by concern: "colors", "typography",
// "spacing", "border", "shadow", "button", "background". Each category is
// itself a keyed map so device overrides can patch individual keys.
type StyleObject map[string]interface{}

func (s StyleObject) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StyleObject) Scan(value interface{}) error {
	if value == nil {
		*s = StyleObject{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StyleObject")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(bytes, &decoded); err != nil {
		return err
	}

	*s = decoded
	return nil
}

// Clone returns a deep copy of the style object via a JSON round trip.
func (s StyleObject) Clone() StyleObject {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return StyleObject{}
	}
	var out StyleObject
	if err := json.Unmarshal(raw, &out); err != nil {
		return StyleObject{}
	}
	return out
}

// Category returns the named style category as a map when it is one.
func (s StyleObject) Category(name string) (map[string]interface{}, bool) {
	raw, ok := s[name]
	if !ok {
		return nil, false
	}
	category, ok := raw.(map[string]interface{})
	return category, ok
}

// ColorStyle holds the color values of a section or block.
type ColorStyle struct {
	Text       string `json:"text,omitempty"`
	Heading    string `json:"heading,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
}

// TypographyStyle holds font values.
type TypographyStyle struct {
	FontFamily    string `json:"font_family,omitempty"`
	FontSize      string `json:"font_size,omitempty"`
	FontWeight    string `json:"font_weight,omitempty"`
	LineHeight    string `json:"line_height,omitempty"`
	LetterSpacing string `json:"letter_spacing,omitempty"`
	TextAlign     string `json:"text_align,omitempty"`
}

// SpacingStyle holds padding and margin values in pixels.
type SpacingStyle struct {
	PaddingTop    int `json:"padding_top"`
	PaddingBottom int `json:"padding_bottom"`
	PaddingLeft   int `json:"padding_left"`
	PaddingRight  int `json:"padding_right"`
	MarginTop     int `json:"margin_top"`
	MarginBottom  int `json:"margin_bottom"`
}

// BorderStyle holds border values.
type BorderStyle struct {
	Width  int    `json:"width"`
	Style  string `json:"style,omitempty"`
	Color  string `json:"color,omitempty"`
	Radius int    `json:"radius"`
}

// ShadowStyle holds box shadow values.
type ShadowStyle struct {
	OffsetX int    `json:"offset_x"`
	OffsetY int    `json:"offset_y"`
	Blur    int    `json:"blur"`
	Spread  int    `json:"spread"`
	Color   string `json:"color,omitempty"`
}

// ButtonStyle holds call-to-action button values.
type ButtonStyle struct {
	Variant      string `json:"variant,omitempty"`
	Background   string `json:"background,omitempty"`
	TextColor    string `json:"text_color,omitempty"`
	BorderRadius int    `json:"border_radius"`
}

// BackgroundStyle holds the section background including the independent
// mobile image and the video fields. These values are carried through to the
// rendering layer, never interpreted here.
type BackgroundStyle struct {
	Color         string `json:"color,omitempty"`
	Image         string `json:"image,omitempty"`
	MobileImage   string `json:"mobile_image,omitempty"`
	VideoURL      string `json:"video_url,omitempty"`
	VideoAutoplay bool   `json:"video_autoplay"`
	VideoMuted    bool   `json:"video_muted"`
	VideoLoop     bool   `json:"video_loop"`
	ObjectFit     string `json:"object_fit,omitempty"`
	OverlayColor  string `json:"overlay_color,omitempty"`
	OverlayAlpha  int    `json:"overlay_alpha"`
}

// NewStyleObject folds the typed style values into a StyleObject keyed by
// category. Nil components are omitted.
func NewStyleObject(
	colors *ColorStyle,
	typography *TypographyStyle,
	spacing *SpacingStyle,
	border *BorderStyle,
	shadow *ShadowStyle,
	button *ButtonStyle,
	background *BackgroundStyle,
) StyleObject {
	style := StyleObject{}
	put := func(name string, v interface{}) {
		raw, err := json.Marshal(v)
		if err != nil {
			return
		}
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			return
		}
		style[name] = m
	}

	if colors != nil {
		put("colors", colors)
	}
	if typography != nil {
		put("typography", typography)
	}
	if spacing != nil {
		put("spacing", spacing)
	}
	if border != nil {
		put("border", border)
	}
	if shadow != nil {
		put("shadow", shadow)
	}
	if button != nil {
		put("button", button)
	}
	if background != nil {
		put("background", background)
	}
	return style
}

// ResponsiveOverride carries the partial settings and style delta applied on
// top of the desktop baseline for one device.
type ResponsiveOverride struct {
	Settings JSONMap     `json:"settings,omitempty"`
	Style    StyleObject `json:"style,omitempty"`
}

// ResponsiveMap maps a device ("tablet", "mobile") to its override delta.
type ResponsiveMap map[string]ResponsiveOverride

func (r ResponsiveMap) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *ResponsiveMap) Scan(value interface{}) error {
	if value == nil {
		*r = ResponsiveMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ResponsiveMap")
	}

	return json.Unmarshal(bytes, r)
}
