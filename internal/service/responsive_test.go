package service

import (
	"reflect"
	"testing"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
)

func responsiveSection() *models.Section {
	return &models.Section{
		ID:   "sec-1",
		Type: constants.SectionHeroBanner,
		Settings: models.JSONMap{
			"full_width":      true,
			"content_align":   "center",
			"overlay_opacity": 0.4,
		},
		Style: models.StyleObject{
			"typography": map[string]interface{}{
				"font_size":   "48px",
				"font_weight": "700",
			},
			"spacing": map[string]interface{}{
				"padding_top":    "96px",
				"padding_bottom": "96px",
			},
		},
		Responsive: models.ResponsiveMap{
			constants.DeviceMobile: {
				Settings: models.JSONMap{"content_align": "left"},
				Style: models.StyleObject{
					"typography": map[string]interface{}{"font_size": "28px"},
				},
			},
		},
	}
}

func TestResolveSectionDesktopIsIdentity(t *testing.T) {
	section := responsiveSection()

	settings, style := ResolveSection(section, constants.DeviceDesktop)

	if !reflect.DeepEqual(settings, section.Settings) {
		t.Fatalf("desktop settings differ from baseline: %v", settings)
	}
	if !reflect.DeepEqual(style, section.Style) {
		t.Fatalf("desktop style differs from baseline: %v", style)
	}
}

func TestResolveSectionUnknownDeviceFallsBackToDesktop(t *testing.T) {
	section := responsiveSection()

	settings, _ := ResolveSection(section, "watch")

	if !reflect.DeepEqual(settings, section.Settings) {
		t.Fatalf("unknown device should resolve as desktop, got %v", settings)
	}
}

func TestResolveSectionMergesSettingsShallowly(t *testing.T) {
	section := responsiveSection()

	settings, _ := ResolveSection(section, constants.DeviceMobile)

	if settings["content_align"] != "left" {
		t.Fatalf("override key not applied: %v", settings["content_align"])
	}
	if settings["full_width"] != true || settings["overlay_opacity"] != 0.4 {
		t.Fatalf("untouched keys must survive: %v", settings)
	}
}

func TestResolveSectionMergesStyleOneLevelDeep(t *testing.T) {
	section := responsiveSection()

	_, style := ResolveSection(section, constants.DeviceMobile)

	typography, ok := style["typography"].(map[string]interface{})
	if !ok {
		t.Fatalf("typography category missing: %v", style)
	}
	if typography["font_size"] != "28px" {
		t.Fatalf("override not patched into category: %v", typography)
	}
	if typography["font_weight"] != "700" {
		t.Fatalf("sibling keys in the category must survive: %v", typography)
	}

	spacing, ok := style["spacing"].(map[string]interface{})
	if !ok || spacing["padding_top"] != "96px" {
		t.Fatalf("categories absent from the override must be untouched: %v", style)
	}
}

func TestResolveSectionNonObjectOverrideReplacesCategory(t *testing.T) {
	section := responsiveSection()
	section.Responsive[constants.DeviceTablet] = models.ResponsiveOverride{
		Style: models.StyleObject{"typography": "inherit"},
	}

	_, style := ResolveSection(section, constants.DeviceTablet)

	if style["typography"] != "inherit" {
		t.Fatalf("non-object override must replace the category outright: %v", style["typography"])
	}
}

func TestResolveSectionDoesNotMutateBaseline(t *testing.T) {
	section := responsiveSection()

	ResolveSection(section, constants.DeviceMobile)

	typography := section.Style["typography"].(map[string]interface{})
	if typography["font_size"] != "48px" {
		t.Fatalf("baseline style mutated: %v", typography)
	}
	if section.Settings["content_align"] != "center" {
		t.Fatalf("baseline settings mutated: %v", section.Settings)
	}
}

func deviceTestConfig() *models.PageConfig {
	section := responsiveSection()
	return &models.PageConfig{
		Version:  constants.ConfigVersion,
		PageType: constants.PageTypeHome,
		Sections: map[string]models.SectionConfig{
			section.ID: {
				Type:       section.Type,
				Settings:   section.Settings,
				Style:      section.Style,
				Responsive: section.Responsive,
			},
		},
		SectionOrder: []string{section.ID},
	}
}

func TestApplyDeviceToConfigResolvesSections(t *testing.T) {
	config := deviceTestConfig()

	resolved := ApplyDeviceToConfig(config, constants.DeviceMobile)

	section := resolved.Sections["sec-1"]
	if section.Settings["content_align"] != "left" {
		t.Fatalf("override not applied: %v", section.Settings)
	}
	if section.Responsive != nil {
		t.Fatalf("resolved sections must not carry responsive deltas")
	}
	if config.Sections["sec-1"].Settings["content_align"] != "center" {
		t.Fatalf("input config mutated")
	}
}

func TestApplyDeviceToConfigIsIdempotent(t *testing.T) {
	config := deviceTestConfig()

	once := ApplyDeviceToConfig(config, constants.DeviceMobile)
	twice := ApplyDeviceToConfig(once, constants.DeviceMobile)

	if !reflect.DeepEqual(once.Sections, twice.Sections) {
		t.Fatalf("applying the same device twice must be a no-op")
	}
}

func TestApplyDeviceToConfigDesktopReturnsSameDocument(t *testing.T) {
	config := deviceTestConfig()

	resolved := ApplyDeviceToConfig(config, constants.DeviceDesktop)

	if resolved != config {
		t.Fatalf("desktop resolution should hand the document back unchanged")
	}
}
