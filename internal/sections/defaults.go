package sections

import (
	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
)

// DefaultSettings returns the starting settings map for a freshly created
// section of the given type. Unknown types get an empty map; the type check
// happens in the service layer before this is called.
func DefaultSettings(sectionType string) models.JSONMap {
	switch sectionType {
	case constants.SectionHeroBanner:
		return models.JSONMap{
			"heading":        "Welcome to our store",
			"subheading":     "",
			"show_button":    true,
			"button_label":   "Shop now",
			"button_url":     "/collections/all",
			"content_align":  "center",
			"full_height":    false,
			"overlay_enable": true,
		}
	case constants.SectionFeaturedProducts:
		return models.JSONMap{
			"heading":      "Featured products",
			"product_ids":  []interface{}{},
			"columns":      4,
			"show_price":   true,
			"show_vendor":  false,
			"show_buy_now": true,
		}
	case constants.SectionFeaturedCollections:
		return models.JSONMap{
			"heading":        "Shop by collection",
			"collection_ids": []interface{}{},
			"columns":        3,
		}
	case constants.SectionAnnouncementBar:
		return models.JSONMap{
			"text":       "",
			"link":       "",
			"dismissible": true,
			"autoplay":   false,
		}
	case constants.SectionNewsletter:
		return models.JSONMap{
			"heading":      "Subscribe to our newsletter",
			"subheading":   "",
			"button_label": "Subscribe",
			"success_text": "Thanks for subscribing",
		}
	case constants.SectionSlideshow:
		return models.JSONMap{
			"autoplay":       true,
			"interval_ms":    5000,
			"show_indicators": true,
		}
	case constants.SectionRichText:
		return models.JSONMap{
			"body":          "",
			"content_align": "left",
			"narrow_width":  true,
		}
	case constants.SectionImageWithText:
		return models.JSONMap{
			"image_position": "left",
			"heading":        "",
			"body":           "",
		}
	case constants.SectionVideo:
		return models.JSONMap{
			"video_url": "",
			"autoplay":  false,
			"muted":     true,
			"loop":      false,
		}
	case constants.SectionHeader:
		return models.JSONMap{
			"sticky":       true,
			"show_search":  true,
			"show_cart":    true,
			"show_account": true,
		}
	case constants.SectionFooter:
		return models.JSONMap{
			"show_newsletter":   true,
			"show_social_links": true,
			"copyright_text":    "",
		}
	case constants.SectionProductDetails:
		return models.JSONMap{
			"show_vendor":    false,
			"show_sku":       false,
			"gallery_layout": "thumbnails",
		}
	case constants.SectionCollectionGrid:
		return models.JSONMap{
			"columns":      4,
			"page_size":    24,
			"show_filters": true,
			"show_sorting": true,
		}
	default:
		return models.JSONMap{}
	}
}

// DefaultStyle returns the starting style object for a freshly created
// section. All section types share the same baseline; type-specific tweaks
// go on top.
func DefaultStyle(sectionType string) models.StyleObject {
	style := models.NewStyleObject(
		&models.ColorStyle{},
		&models.TypographyStyle{TextAlign: "left"},
		&models.SpacingStyle{PaddingTop: 64, PaddingBottom: 64},
		nil,
		nil,
		&models.ButtonStyle{Variant: "primary", BorderRadius: 4},
		&models.BackgroundStyle{VideoMuted: true, ObjectFit: "cover"},
	)

	switch sectionType {
	case constants.SectionHeroBanner, constants.SectionSlideshow:
		if typography, ok := style.Category("typography"); ok {
			typography["text_align"] = "center"
		}
	case constants.SectionAnnouncementBar:
		if spacing, ok := style.Category("spacing"); ok {
			spacing["padding_top"] = 8
			spacing["padding_bottom"] = 8
		}
	}
	return style
}

// DefaultThemeSettings returns the starting theme row contents for a new store.
func DefaultThemeSettings(storeID, variant string) *models.ThemeSettings {
	return &models.ThemeSettings{
		StoreID: storeID,
		Variant: variant,
		Colors: models.JSONMap{
			"primary":    "#111111",
			"secondary":  "#6b7280",
			"accent":     "#2563eb",
			"background": "#ffffff",
		},
		Typography: models.JSONMap{
			"heading_font": "Inter",
			"body_font":    "Inter",
			"base_size":    16,
		},
		Layout: models.JSONMap{
			"max_width":     1280,
			"section_gap":   0,
			"border_radius": 4,
		},
		Animation: models.JSONMap{
			"enabled":  true,
			"duration": "200ms",
		},
	}
}

// SeedTypes returns the section types a fresh draft layout of the given page
// type is created with. Header and footer are first and last; the body set
// depends on the page type.
func SeedTypes(pageType string) []string {
	body := []string{}
	switch pageType {
	case constants.PageTypeHome:
		body = []string{
			constants.SectionHeroBanner,
			constants.SectionFeaturedProducts,
			constants.SectionFeaturedCollections,
			constants.SectionNewsletter,
		}
	case constants.PageTypeProduct:
		body = []string{
			constants.SectionProductDetails,
			constants.SectionProductRecommended,
		}
	case constants.PageTypeCollection:
		body = []string{
			constants.SectionCollectionBanner,
			constants.SectionCollectionGrid,
		}
	}

	types := make([]string, 0, len(body)+2)
	types = append(types, constants.SectionHeader)
	types = append(types, body...)
	types = append(types, constants.SectionFooter)
	return types
}
