package service

import (
	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
)

// ResolveSection merges a section's desktop baseline with the override for
// the given device and returns the effective settings and style. Desktop is
// the identity: the baseline is returned as-is (cloned). The inputs are never
// mutated.
//
// Settings merge shallowly: every key present in the override replaces the
// base key outright. Style merges one level deep: when both the base and the
// override hold an object for the same category, override keys patch into the
// base category; a non-object override value replaces the category outright.
func ResolveSection(section *models.Section, device string) (models.JSONMap, models.StyleObject) {
	settings := section.Settings.Clone()
	style := section.Style.Clone()
	if settings == nil {
		settings = models.JSONMap{}
	}
	if style == nil {
		style = models.StyleObject{}
	}

	device = constants.NormaliseDevice(device)
	if device == constants.DeviceDesktop {
		return settings, style
	}

	override, ok := section.Responsive[device]
	if !ok {
		return settings, style
	}

	return MergeSettings(settings, override.Settings), MergeStyle(style, override.Style)
}

// MergeSettings overwrites base keys with override keys. The base map is
// modified and returned; callers pass a clone when the original must survive.
func MergeSettings(base models.JSONMap, override models.JSONMap) models.JSONMap {
	for key, value := range override {
		base[key] = value
	}
	return base
}

// MergeStyle patches override categories into base one level deep. Categories
// absent from the override are untouched.
func MergeStyle(base models.StyleObject, override models.StyleObject) models.StyleObject {
	for category, raw := range override {
		overrideMap, overrideIsMap := raw.(map[string]interface{})
		baseMap, baseIsMap := base[category].(map[string]interface{})
		if !overrideIsMap || !baseIsMap {
			base[category] = raw
			continue
		}
		for key, value := range overrideMap {
			baseMap[key] = value
		}
	}
	return base
}

// ApplyDeviceToConfig returns a copy of the canonical document with every
// section resolved for the given device. Responsive deltas are consumed in
// the process, so applying the same device twice is a no-op. Desktop requests
// get the document back unchanged.
func ApplyDeviceToConfig(config *models.PageConfig, device string) *models.PageConfig {
	if config == nil {
		return nil
	}
	device = constants.NormaliseDevice(device)
	if device == constants.DeviceDesktop {
		return config
	}

	resolved := *config
	resolved.Sections = make(map[string]models.SectionConfig, len(config.Sections))
	for id, section := range config.Sections {
		settings := section.Settings.Clone()
		style := section.Style.Clone()
		if settings == nil {
			settings = models.JSONMap{}
		}
		if style == nil {
			style = models.StyleObject{}
		}
		if override, ok := section.Responsive[device]; ok {
			settings = MergeSettings(settings, override.Settings)
			style = MergeStyle(style, override.Style)
		}
		section.Settings = settings
		section.Style = style
		section.Responsive = nil
		resolved.Sections[id] = section
	}
	return &resolved
}
